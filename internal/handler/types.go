package handler

import "github.com/KOFI-GYIMAH/portfolio/internal/projects"

type APIResponse struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type pageData struct {
	Class      string
	Preference string
	Options    []string
	Projects   projects.View
}
