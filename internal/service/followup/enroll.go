package followup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/liamdatt/invoicegen/internal/domain"
)

// Enroll creates or reactivates a client's follow-up profile and computes
// its next follow-up date immediately. Re-enrolling replaces the service
// date and override with the input, unset values included.
func (s *Service) Enroll(ctx context.Context, input EnrollInput) (*domain.FollowUpProfile, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	lastService := input.LastServiceDate
	if lastService != nil {
		d := dateOnly(*lastService)
		lastService = &d
	}

	var out *domain.FollowUpProfile
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.clients.GetByID(ctx, input.ClientID); err != nil {
			return fmt.Errorf("get client %d: %w", input.ClientID, err)
		}

		p, err := s.profiles.UpsertProfile(ctx, input.ClientID, lastService, input.IntervalOverrideDays)
		if err != nil {
			return fmt.Errorf("upsert profile: %w", err)
		}

		settings, err := s.profiles.GetOrCreateSettings(ctx)
		if err != nil {
			return fmt.Errorf("get follow-up settings: %w", err)
		}

		p.NextFollowUpDate = ComputeNextDate(p, *settings)
		if err := s.profiles.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("save profile %d: %w", p.ID, err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "client enrolled",
		slog.Int64("client_id", input.ClientID),
		slog.Int64("profile_id", out.ID),
	)
	return out, nil
}

// UpdateProfile edits a profile. The next follow-up date is recomputed
// only when the service date or the interval override changes.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.FollowUpProfile, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var out *domain.FollowUpProfile
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, settings, err := s.lockWithSettings(ctx, input.ProfileID)
		if err != nil {
			return err
		}

		if input.IsActive != nil {
			p.IsActive = *input.IsActive
		}
		switch {
		case input.ClearLastServiceDate:
			p.LastServiceDate = nil
		case input.LastServiceDate != nil:
			d := dateOnly(*input.LastServiceDate)
			p.LastServiceDate = &d
		}
		switch {
		case input.ClearOverride:
			p.IntervalOverrideDays = nil
		case input.IntervalOverrideDays != nil:
			v := *input.IntervalOverrideDays
			p.IntervalOverrideDays = &v
		}

		// A send-relative date survives edits that leave the schedule
		// inputs alone, such as pausing and resuming.
		if input.changesSchedule() {
			p.NextFollowUpDate = ComputeNextDate(p, *settings)
		}
		if err := s.profiles.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("save profile %d: %w", p.ID, err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListEligibleClients returns clients that have no active profile and can
// be enrolled.
func (s *Service) ListEligibleClients(ctx context.Context, limit int) ([]domain.Client, error) {
	clients, err := s.clients.ListWithoutActiveFollowUp(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list eligible clients: %w", err)
	}
	return clients, nil
}

// Profile returns a single profile.
func (s *Service) Profile(ctx context.Context, profileID int64) (*domain.FollowUpProfile, error) {
	p, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("get profile %d: %w", profileID, err)
	}
	return p, nil
}
