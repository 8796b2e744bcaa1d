package followup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/liamdatt/invoicegen/internal/domain"
)

// RefreshSchedule recomputes and persists a profile's next follow-up date.
func (s *Service) RefreshSchedule(ctx context.Context, profileID int64) (*domain.FollowUpProfile, error) {
	var out *domain.FollowUpProfile
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, settings, err := s.lockWithSettings(ctx, profileID)
		if err != nil {
			return err
		}
		p.NextFollowUpDate = ComputeNextDate(p, *settings)
		if err := s.profiles.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("save profile %d: %w", profileID, err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterSuccess records a delivered reminder and schedules the next one
// relative to today, so reminders keep recurring.
func (s *Service) RegisterSuccess(ctx context.Context, profileID int64) (*domain.FollowUpProfile, error) {
	var out *domain.FollowUpProfile
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, settings, err := s.lockWithSettings(ctx, profileID)
		if err != nil {
			return err
		}
		s.applySuccess(p, *settings)
		if err := s.profiles.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("save profile %d: %w", profileID, err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterFailure records the error of a failed delivery. The schedule is
// left as it was.
func (s *Service) RegisterFailure(ctx context.Context, profileID int64, errText string) (*domain.FollowUpProfile, error) {
	var out *domain.FollowUpProfile
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.profiles.GetProfileForUpdate(ctx, profileID)
		if err != nil {
			return fmt.Errorf("lock profile %d: %w", profileID, err)
		}
		p.LastError = errText
		if err := s.profiles.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("save profile %d: %w", profileID, err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) applySuccess(p *domain.FollowUpProfile, settings domain.FollowUpSettings) {
	now := s.now().UTC()
	next := s.today().AddDate(0, 0, EffectiveInterval(p, settings))
	p.LastSentAt = &now
	p.LastError = ""
	p.NextFollowUpDate = &next
}

func (s *Service) lockWithSettings(ctx context.Context, profileID int64) (*domain.FollowUpProfile, *domain.FollowUpSettings, error) {
	p, err := s.profiles.GetProfileForUpdate(ctx, profileID)
	if err != nil {
		return nil, nil, fmt.Errorf("lock profile %d: %w", profileID, err)
	}
	settings, err := s.profiles.GetOrCreateSettings(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("get follow-up settings: %w", err)
	}
	return p, settings, nil
}

// refreshWhereChanged persists a recomputed next date when it differs from
// the cached one and reports whether it did.
func (s *Service) refreshWhereChanged(ctx context.Context, p *domain.FollowUpProfile, settings domain.FollowUpSettings) (bool, error) {
	next := ComputeNextDate(p, settings)
	if sameDate(next, p.NextFollowUpDate) {
		return false, nil
	}
	p.NextFollowUpDate = next
	if err := s.profiles.SaveProfile(ctx, p); err != nil {
		return false, fmt.Errorf("save profile %d: %w", p.ID, err)
	}
	s.log.DebugContext(ctx, "schedule refreshed", slog.Int64("profile_id", p.ID))
	return true, nil
}
