package followup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/liamdatt/invoicegen/internal/domain"
)

const refreshPageSize = 200

// Settings returns the global follow-up settings, creating them with
// defaults on first use.
func (s *Service) Settings(ctx context.Context) (*domain.FollowUpSettings, error) {
	settings, err := s.profiles.GetOrCreateSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get follow-up settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings edits the global settings. Profiles whose cached date
// depends only on the default interval (no override, never sent) are
// rescheduled in the same transaction.
func (s *Service) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*domain.FollowUpSettings, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		out       *domain.FollowUpSettings
		refreshed int
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		cur, err := s.profiles.GetOrCreateSettings(ctx)
		if err != nil {
			return fmt.Errorf("get follow-up settings: %w", err)
		}

		next := *cur
		if input.DefaultIntervalDays != nil {
			next.DefaultIntervalDays = *input.DefaultIntervalDays
		}
		if input.BusinessDisplayName != nil {
			next.BusinessDisplayName = strings.TrimSpace(*input.BusinessDisplayName)
		}

		saved, err := s.profiles.SaveSettings(ctx, next)
		if err != nil {
			return fmt.Errorf("save follow-up settings: %w", err)
		}
		out = saved

		if saved.DefaultIntervalDays == cur.DefaultIntervalDays {
			return nil
		}

		var afterID int64
		for {
			page, err := s.profiles.ListProfiles(ctx, domain.ProfileFilter{
				WithoutOverride: true,
				NeverSent:       true,
				AfterID:         afterID,
				Limit:           refreshPageSize,
			})
			if err != nil {
				return fmt.Errorf("list profiles: %w", err)
			}
			for i := range page {
				changed, err := s.refreshWhereChanged(ctx, &page[i], *saved)
				if err != nil {
					return err
				}
				if changed {
					refreshed++
				}
			}
			if len(page) < refreshPageSize {
				return nil
			}
			afterID = page[len(page)-1].ID
		}
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "follow-up settings updated",
		slog.Int("default_interval_days", out.DefaultIntervalDays),
		slog.Int("profiles_refreshed", refreshed),
	)
	return out, nil
}
