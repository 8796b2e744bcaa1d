package followup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/liamdatt/invoicegen/internal/domain"
	"github.com/liamdatt/invoicegen/pkg/ctxutil"
)

// Send renders and delivers a reminder for a profile, then records the
// attempt. A delivery failure is returned as a FAILED log entry, not as an
// error; errors are reserved for validation, configuration and store
// problems.
func (s *Service) Send(ctx context.Context, profileID int64, trigger domain.MessageTrigger) (*domain.MessageLogEntry, error) {
	if err := validateTrigger(trigger); err != nil {
		return nil, err
	}

	messenger, err := s.messenger(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect messenger: %w", err)
	}
	return s.send(ctxutil.WithTrigger(ctx, string(trigger)), messenger, profileID, trigger)
}

func (s *Service) send(ctx context.Context, messenger Messenger, profileID int64, trigger domain.MessageTrigger) (*domain.MessageLogEntry, error) {
	p, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("get profile %d: %w", profileID, err)
	}
	settings, err := s.profiles.GetOrCreateSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get follow-up settings: %w", err)
	}

	body := RenderMessage(s.template, p, *settings, s.today())

	var phone string
	if p.Client != nil {
		phone = strings.TrimSpace(p.Client.Phone)
	}

	var (
		providerID string
		sendErr    error
	)
	if phone == "" {
		sendErr = errors.New("client has no phone number")
	} else {
		providerID, sendErr = messenger.Send(ctx, phone, body)
	}
	if sendErr != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	entry := domain.MessageLogEntry{
		ProfileID:         profileID,
		Trigger:           trigger,
		Body:              body,
		ProviderMessageID: providerID,
	}

	var out *domain.MessageLogEntry
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		locked, err := s.profiles.GetProfileForUpdate(ctx, profileID)
		if err != nil {
			return fmt.Errorf("lock profile %d: %w", profileID, err)
		}

		if sendErr == nil {
			entry.Status = domain.MessageStatusSent
			s.applySuccess(locked, *settings)
		} else {
			entry.Status = domain.MessageStatusFailed
			entry.ErrorText = sendErr.Error()
			locked.LastError = sendErr.Error()
		}
		if err := s.profiles.SaveProfile(ctx, locked); err != nil {
			return fmt.Errorf("save profile %d: %w", profileID, err)
		}

		out, err = s.profiles.AppendMessage(ctx, entry)
		if err != nil {
			return fmt.Errorf("append message log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if sendErr != nil {
		s.log.WarnContext(ctx, "follow-up delivery failed",
			slog.Int64("profile_id", profileID),
			slog.String("error", sendErr.Error()),
		)
	} else {
		s.log.InfoContext(ctx, "follow-up sent",
			slog.Int64("profile_id", profileID),
			slog.String("provider_message_id", providerID),
		)
	}
	return out, nil
}

// History returns the message log of a profile, newest first.
func (s *Service) History(ctx context.Context, profileID int64, limit int) ([]domain.MessageLogEntry, error) {
	if _, err := s.profiles.GetProfile(ctx, profileID); err != nil {
		return nil, fmt.Errorf("get profile %d: %w", profileID, err)
	}
	entries, err := s.profiles.ListMessages(ctx, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages of profile %d: %w", profileID, err)
	}
	return entries, nil
}
