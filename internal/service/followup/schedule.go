package followup

import (
	"time"

	"github.com/liamdatt/invoicegen/internal/domain"
)

// EffectiveInterval returns the profile's override when set, otherwise the
// global default.
func EffectiveInterval(p *domain.FollowUpProfile, s domain.FollowUpSettings) int {
	if p.IntervalOverrideDays != nil && *p.IntervalOverrideDays >= 1 {
		return *p.IntervalOverrideDays
	}
	return s.DefaultIntervalDays
}

// ComputeNextDate returns the last service date plus the effective
// interval, or nil when no service date is known.
func ComputeNextDate(p *domain.FollowUpProfile, s domain.FollowUpSettings) *time.Time {
	if p.LastServiceDate == nil {
		return nil
	}
	next := dateOnly(*p.LastServiceDate).AddDate(0, 0, EffectiveInterval(p, s))
	return &next
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return dateOnly(*a).Equal(dateOnly(*b))
}
