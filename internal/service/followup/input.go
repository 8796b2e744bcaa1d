package followup

import (
	"strings"
	"time"

	"github.com/liamdatt/invoicegen/internal/domain"
)

// EnrollInput holds the parameters for enrolling a client.
type EnrollInput struct {
	ClientID             int64
	LastServiceDate      *time.Time
	IntervalOverrideDays *int
}

// Validate checks all fields and collects all errors.
func (i EnrollInput) Validate() error {
	var errs []domain.FieldError

	if i.ClientID <= 0 {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	}
	if i.IntervalOverrideDays != nil && *i.IntervalOverrideDays < 1 {
		errs = append(errs, domain.FieldError{Field: "interval_override_days", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateProfileInput holds the parameters for editing a profile.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	ProfileID            int64
	IsActive             *bool
	LastServiceDate      *time.Time
	ClearLastServiceDate bool
	IntervalOverrideDays *int
	ClearOverride        bool
}

// Validate checks all fields and collects all errors.
func (i UpdateProfileInput) Validate() error {
	var errs []domain.FieldError

	if i.ProfileID <= 0 {
		errs = append(errs, domain.FieldError{Field: "profile_id", Message: "required"})
	}
	if i.IntervalOverrideDays != nil && *i.IntervalOverrideDays < 1 {
		errs = append(errs, domain.FieldError{Field: "interval_override_days", Message: "must be at least 1"})
	}
	if i.IntervalOverrideDays != nil && i.ClearOverride {
		errs = append(errs, domain.FieldError{Field: "interval_override_days", Message: "cannot set and clear at once"})
	}
	if i.LastServiceDate != nil && i.ClearLastServiceDate {
		errs = append(errs, domain.FieldError{Field: "last_service_date", Message: "cannot set and clear at once"})
	}
	if i.IsActive == nil && i.LastServiceDate == nil && !i.ClearLastServiceDate &&
		i.IntervalOverrideDays == nil && !i.ClearOverride {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// changesSchedule reports whether the edit touches an input of the next
// follow-up date.
func (i UpdateProfileInput) changesSchedule() bool {
	return i.LastServiceDate != nil || i.ClearLastServiceDate ||
		i.IntervalOverrideDays != nil || i.ClearOverride
}

// UpdateSettingsInput holds the parameters for editing the global settings.
// Nil fields are left unchanged.
type UpdateSettingsInput struct {
	DefaultIntervalDays *int
	BusinessDisplayName *string
}

// Validate checks all fields and collects all errors.
func (i UpdateSettingsInput) Validate() error {
	var errs []domain.FieldError

	if i.DefaultIntervalDays == nil && i.BusinessDisplayName == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.DefaultIntervalDays != nil && *i.DefaultIntervalDays < 1 {
		errs = append(errs, domain.FieldError{Field: "default_interval_days", Message: "must be at least 1"})
	}
	if i.BusinessDisplayName != nil && len(strings.TrimSpace(*i.BusinessDisplayName)) > 255 {
		errs = append(errs, domain.FieldError{Field: "business_display_name", Message: "max 255 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateTrigger(t domain.MessageTrigger) error {
	if !t.IsValid() {
		return domain.NewValidationError("trigger", "must be MANUAL or SCHEDULED")
	}
	return nil
}
