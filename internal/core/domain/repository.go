package domain

import (
	"context"
	"errors"
)

var (
	// ErrInsufficientLogs means there is no basis for any report: no logs at
	// all, or fewer than 3 in the resolved analysis window.
	ErrInsufficientLogs = errors.New("not enough logs for analysis (minimum 3 days)")

	// ErrStateNotFound means the singleton settings row was never seeded.
	ErrStateNotFound = errors.New("state row not initialized")
)

type LogRepository interface {
	// Upsert writes the log for its date, replacing any existing record.
	Upsert(ctx context.Context, log *DailyLog) error

	// Delete removes the log for the given date. Deleting a missing date is
	// not an error.
	Delete(ctx context.Context, date string) error

	// ListDescending returns logs ordered by date descending. A limit <= 0
	// means no limit.
	ListDescending(ctx context.Context, limit int) ([]DailyLog, error)
}

type SettingsRepository interface {
	// Get returns the singleton settings with goals merged over defaults.
	Get(ctx context.Context) (*Settings, error)

	// Save replaces the singleton settings row.
	Save(ctx context.Context, settings *Settings) error
}
