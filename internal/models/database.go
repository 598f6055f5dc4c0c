package models

import (
	"context"
)

// * This interface defines all db operations needed by the application
type Database interface {
	// * Preference operations
	GetPreference(ctx context.Context, visitorID, key string) (*Preference, error)
	SetPreference(ctx context.Context, pref *Preference) error
	DeletePreferences(ctx context.Context, visitorID string) (int64, error)

	Close() error
}
