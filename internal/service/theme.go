package service

import (
	"context"
	"fmt"

	"github.com/KOFI-GYIMAH/portfolio/internal/models"
	"github.com/KOFI-GYIMAH/portfolio/internal/theme"
	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
)

type ThemeService struct {
	db models.Database
}

// * NewThemeService accepts a nil database, in which case preferences are
// * not persisted and every visitor starts on light
func NewThemeService(db models.Database) *ThemeService {
	return &ThemeService{db: db}
}

// * Resolve mounts the visitor's theme toggle over a fresh document
func (s *ThemeService) Resolve(ctx context.Context, visitorID string, prefersDark bool) (*theme.Toggle, *theme.Document) {
	doc := theme.NewDocument()
	toggle := theme.NewToggle(s.store(ctx, visitorID), doc, theme.PrefersDark(prefersDark))
	toggle.Mount()
	return toggle, doc
}

// * Select mounts the toggle and applies the visitor's new choice
func (s *ThemeService) Select(ctx context.Context, visitorID string, prefersDark bool, raw string) (*theme.Toggle, *theme.Document, error) {
	pref, err := theme.ParsePreference(raw)
	if err != nil {
		return nil, nil, errors.New(
			errors.RefInvalidPreference,
			"Invalid theme preference",
			fmt.Sprintf("%q is not one of light, dark or system", raw),
			err,
			errors.LevelError,
		)
	}

	toggle, doc := s.Resolve(ctx, visitorID, prefersDark)
	if err := toggle.Select(pref); err != nil {
		return nil, nil, err
	}
	return toggle, doc, nil
}

// * Forget removes everything stored for the visitor
func (s *ThemeService) Forget(ctx context.Context, visitorID string) error {
	if s.db == nil {
		return errors.New(
			errors.RefStorageUnavailable,
			"Preference storage is not configured",
			"Nothing is stored when no database is configured",
			nil,
			errors.LevelInfo,
		)
	}
	_, err := s.db.DeletePreferences(ctx, visitorID)
	return err
}

// * State summarises a resolved toggle for API responses
func State(toggle *theme.Toggle) models.ThemeState {
	options := make([]string, len(theme.Preferences))
	for i, p := range theme.Preferences {
		options[i] = string(p)
	}
	return models.ThemeState{
		Preference: string(toggle.Preference()),
		Dark:       toggle.Dark(),
		Options:    options,
	}
}

func (s *ThemeService) store(ctx context.Context, visitorID string) theme.PreferenceStore {
	if s.db == nil {
		return nil
	}
	return &visitorStore{ctx: ctx, db: s.db, visitorID: visitorID}
}

// * visitorStore scopes the preference table to one visitor
type visitorStore struct {
	ctx       context.Context
	db        models.Database
	visitorID string
}

func (v *visitorStore) Load(key string) (string, bool, error) {
	pref, err := v.db.GetPreference(v.ctx, v.visitorID, key)
	if err != nil || pref == nil {
		return "", false, err
	}
	return pref.Value, true, nil
}

func (v *visitorStore) Save(key, value string) error {
	return v.db.SetPreference(v.ctx, &models.Preference{
		VisitorID: v.visitorID,
		Key:       key,
		Value:     value,
	})
}
