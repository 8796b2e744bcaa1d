package followup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/liamdatt/invoicegen/internal/domain"
	"github.com/liamdatt/invoicegen/pkg/ctxutil"
)

const sweepPageSize = 200

// SweepResult records the outcome for one due profile. Entry is nil when
// Err is set.
type SweepResult struct {
	ProfileID int64
	Entry     *domain.MessageLogEntry
	Err       error
}

// SweepReport summarizes a scheduled sweep. Errored counts profiles that
// could not be attempted at all.
type SweepReport struct {
	Due     int
	Sent    int
	Failed  int
	Errored int
	Results []SweepResult
}

// Sweep sends a SCHEDULED reminder to every active profile due today or
// earlier. Profiles are handled independently; only listing, cancellation
// or a missing transport abort the sweep.
func (s *Service) Sweep(ctx context.Context) (SweepReport, error) {
	var report SweepReport

	messenger, err := s.messenger(ctx)
	if err != nil {
		return report, fmt.Errorf("connect messenger: %w", err)
	}
	ctx = ctxutil.WithTrigger(ctx, string(domain.MessageTriggerScheduled))

	today := s.today()
	due, err := s.listDue(ctx, today)
	if err != nil {
		return report, err
	}
	report.Due = len(due)

	s.log.InfoContext(ctx, "sweep started",
		slog.Int("due", report.Due),
		slog.String("today", today.Format("2006-01-02")),
	)

	for _, id := range due {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res := SweepResult{ProfileID: id}
		entry, err := s.send(ctx, messenger, id, domain.MessageTriggerScheduled)
		switch {
		case err != nil:
			res.Err = err
			report.Errored++
			s.log.ErrorContext(ctx, "sweep profile failed",
				slog.Int64("profile_id", id),
				slog.String("error", err.Error()),
			)
		case entry.Status == domain.MessageStatusSent:
			res.Entry = entry
			report.Sent++
		default:
			res.Entry = entry
			report.Failed++
		}
		report.Results = append(report.Results, res)
	}

	s.log.InfoContext(ctx, "sweep finished",
		slog.Int("sent", report.Sent),
		slog.Int("failed", report.Failed),
		slog.Int("errored", report.Errored),
	)
	return report, nil
}

func (s *Service) listDue(ctx context.Context, today time.Time) ([]int64, error) {
	var (
		ids     []int64
		afterID int64
	)
	for {
		page, err := s.profiles.ListProfiles(ctx, domain.ProfileFilter{
			ActiveOnly: true,
			DueOn:      &today,
			AfterID:    afterID,
			Limit:      sweepPageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("list due profiles: %w", err)
		}
		for _, p := range page {
			ids = append(ids, p.ID)
		}
		if len(page) < sweepPageSize {
			return ids, nil
		}
		afterID = page[len(page)-1].ID
	}
}
