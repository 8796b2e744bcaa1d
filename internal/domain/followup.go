package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultFollowUpDays is the interval used when no settings row exists yet.
const DefaultFollowUpDays = 90

// FollowUpSettings is the process-wide outreach configuration, stored as a
// single well-known row.
type FollowUpSettings struct {
	DefaultIntervalDays int
	BusinessDisplayName string
	UpdatedAt           time.Time
}

// DefaultFollowUpSettings returns the values a fresh settings row gets.
func DefaultFollowUpSettings() FollowUpSettings {
	return FollowUpSettings{DefaultIntervalDays: DefaultFollowUpDays}
}

// FollowUpProfile is the per-client reminder schedule. NextFollowUpDate is a
// cache of the schedule and is refreshed by the follow-up service.
type FollowUpProfile struct {
	ID                   int64
	ClientID             int64
	Client               *Client
	IsActive             bool
	LastServiceDate      *time.Time
	IntervalOverrideDays *int
	NextFollowUpDate     *time.Time
	LastSentAt           *time.Time
	LastError            string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// MessageLogEntry is an immutable record of one outreach attempt.
type MessageLogEntry struct {
	ID                uuid.UUID
	ProfileID         int64
	Status            MessageStatus
	Trigger           MessageTrigger
	Body              string
	ProviderMessageID string
	ErrorText         string
	CreatedAt         time.Time
}

// GoogleAccount is the single connected Google identity used for Drive
// storage and Gmail delivery.
type GoogleAccount struct {
	Email           string
	Token           []byte
	DriveFolderID   string
	DriveFolderName string
	UpdatedAt       time.Time
}

// HasToken reports whether OAuth credentials have been stored.
func (a *GoogleAccount) HasToken() bool {
	return a != nil && len(a.Token) > 0
}

// ProfileFilter narrows profile listings. Zero values mean "no constraint".
type ProfileFilter struct {
	ActiveOnly      bool
	DueOn           *time.Time // next_follow_up_date <= DueOn
	WithoutOverride bool
	NeverSent       bool
	AfterID         int64
	Limit           int
}
