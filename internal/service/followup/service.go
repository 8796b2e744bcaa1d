// Package followup runs the recurring customer outreach cycle: it keeps
// each profile's next reminder date current, renders reminder messages and
// records every delivery attempt.
package followup

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/liamdatt/invoicegen/internal/domain"
)

type profileRepo interface {
	GetOrCreateSettings(ctx context.Context) (*domain.FollowUpSettings, error)
	SaveSettings(ctx context.Context, s domain.FollowUpSettings) (*domain.FollowUpSettings, error)

	UpsertProfile(ctx context.Context, clientID int64, lastService *time.Time, override *int) (*domain.FollowUpProfile, error)
	GetProfile(ctx context.Context, id int64) (*domain.FollowUpProfile, error)
	GetProfileForUpdate(ctx context.Context, id int64) (*domain.FollowUpProfile, error)
	ListProfiles(ctx context.Context, f domain.ProfileFilter) ([]domain.FollowUpProfile, error)
	SaveProfile(ctx context.Context, p *domain.FollowUpProfile) error

	AppendMessage(ctx context.Context, e domain.MessageLogEntry) (*domain.MessageLogEntry, error)
	ListMessages(ctx context.Context, profileID int64, limit int) ([]domain.MessageLogEntry, error)
}

type clientRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	ListWithoutActiveFollowUp(ctx context.Context, limit int) ([]domain.Client, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Messenger delivers a rendered reminder to a client's phone and returns
// the transport's message ID.
type Messenger interface {
	Send(ctx context.Context, phone, body string) (string, error)
}

// MessengerFactory returns the outreach transport. It returns an error
// wrapping domain.ErrConfigurationMissing when no transport is configured.
type MessengerFactory func(ctx context.Context) (Messenger, error)

// Service provides follow-up scheduling and outreach operations.
type Service struct {
	profiles  profileRepo
	clients   clientRepo
	tx        txManager
	messenger MessengerFactory
	template  string
	loc       *time.Location
	now       func() time.Time
	log       *slog.Logger
}

// NewService creates a new follow-up service. An empty template uses
// DefaultTemplate; a nil location means UTC.
func NewService(
	log *slog.Logger,
	profiles profileRepo,
	clients clientRepo,
	tx txManager,
	messenger MessengerFactory,
	template string,
	loc *time.Location,
) *Service {
	if strings.TrimSpace(template) == "" {
		template = DefaultTemplate
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		profiles:  profiles,
		clients:   clients,
		tx:        tx,
		messenger: messenger,
		template:  template,
		loc:       loc,
		now:       time.Now,
		log:       log.With("service", "followup"),
	}
}

func (s *Service) today() time.Time {
	return Today(s.now(), s.loc)
}
