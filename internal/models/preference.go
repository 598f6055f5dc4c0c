package models

import "time"

// * A persisted visitor preference
type Preference struct {
	VisitorID string    `json:"visitor_id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ThemeState struct {
	Preference string   `json:"preference"`
	Dark       bool     `json:"dark"`
	Options    []string `json:"options"`
}

type PreferenceRequest struct {
	Preference string `json:"preference"`
}

type RepositoriesRequest struct {
	Repositories []string `json:"repositories"`
}
