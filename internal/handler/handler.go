package handler

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/KOFI-GYIMAH/portfolio/internal/middleware"
	"github.com/KOFI-GYIMAH/portfolio/internal/models"
	"github.com/KOFI-GYIMAH/portfolio/internal/projects"
	"github.com/KOFI-GYIMAH/portfolio/internal/service"
	"github.com/KOFI-GYIMAH/portfolio/internal/theme"
	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	"github.com/gorilla/mux"
)

// * ColorSchemeHint is the client hint browsers send once asked via Accept-CH
const ColorSchemeHint = "Sec-CH-Prefers-Color-Scheme"

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.Must(projects.Templates.Clone()).Funcs(template.FuncMap{
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}).ParseFS(templateFS, "templates/page.html"))

type PortfolioHandler struct {
	projects *service.ProjectsService
	theme    *service.ThemeService
}

func NewPortfolioHandler(projects *service.ProjectsService, theme *service.ThemeService) *PortfolioHandler {
	return &PortfolioHandler{
		projects: projects,
		theme:    theme,
	}
}

// * RegisterRoutes mounts the JSON API
func (h *PortfolioHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/projects", h.getProjects).Methods("GET")
	r.HandleFunc("/projects", h.setProjects).Methods("PUT")
	r.HandleFunc("/projects/refresh", h.refreshProjects).Methods("POST")
	r.HandleFunc("/theme", h.getTheme).Methods("GET")
	r.HandleFunc("/theme", h.setTheme).Methods("PUT")
	r.HandleFunc("/theme", h.forgetTheme).Methods("DELETE")
}

// * RegisterPages mounts the host page and its form endpoints
func (h *PortfolioHandler) RegisterPages(r *mux.Router) {
	r.HandleFunc("/", h.page).Methods("GET")
	r.HandleFunc("/theme", h.selectThemeForm).Methods("POST")
}

func writeSuccess(w http.ResponseWriter, status int, data any, message ...string) {
	resp := APIResponse{
		Status: "success",
		Data:   data,
	}
	if len(message) > 0 {
		resp.Message = message[0]
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func prefersDark(r *http.Request) bool {
	return strings.Trim(r.Header.Get(ColorSchemeHint), `" `) == "dark"
}

func askForColorScheme(w http.ResponseWriter) {
	w.Header().Set("Accept-CH", ColorSchemeHint)
	w.Header().Add("Vary", ColorSchemeHint)
	w.Header().Add("Vary", "Cookie")
}

// getProjects godoc
// @Summary Get Projects
// @Description Current render state of the project list: loading, error or loaded
// @Tags Projects
// @Produce json
// @Success 200 {object} projects.View
// @Router /projects [get]
func (h *PortfolioHandler) getProjects(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, h.projects.View())
}

// setProjects godoc
// @Summary Replace Repositories
// @Description Replaces the ordered repository list and starts a new batch when it changed
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body models.RepositoriesRequest true "Repositories in display order"
// @Success 202 {object} APIResponse
// @Success 200 {object} APIResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Router /projects [put]
func (h *PortfolioHandler) setProjects(w http.ResponseWriter, r *http.Request) {
	var req models.RepositoriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteHTTPError(w, errors.New(
			errors.RefInvalidRequest,
			"Invalid request",
			"Body must be a JSON object with a repositories array",
			err,
			errors.LevelError,
		))
		return
	}

	started, err := h.projects.SetRepositories(req.Repositories)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	if !started {
		writeSuccess(w, http.StatusOK, h.projects.View(), "Repository list unchanged")
		return
	}

	logger.Info("Repository list replaced with %d entries", len(req.Repositories))
	writeSuccess(w, http.StatusAccepted, h.projects.View(), "Loading projects")
}

// refreshProjects godoc
// @Summary Refresh Projects
// @Description Re-fetches every repository. Optionally replaces the list first.
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body models.RepositoriesRequest false "Optional replacement list"
// @Success 202 {object} APIResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 503 {object} errors.HTTPErrorResponse
// @Router /projects/refresh [post]
func (h *PortfolioHandler) refreshProjects(w http.ResponseWriter, r *http.Request) {
	var req models.RepositoriesRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errors.WriteHTTPError(w, errors.New(
				errors.RefInvalidRequest,
				"Invalid request",
				"Body must be empty or a JSON object with a repositories array",
				err,
				errors.LevelError,
			))
			return
		}
	}

	if err := h.projects.RequestRefresh(r.Context(), req.Repositories); err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeSuccess(w, http.StatusAccepted, nil, "Refresh requested")
}

// getTheme godoc
// @Summary Get Theme
// @Description Stored preference and effective mode for the calling visitor
// @Tags Theme
// @Produce json
// @Success 200 {object} models.ThemeState
// @Router /theme [get]
func (h *PortfolioHandler) getTheme(w http.ResponseWriter, r *http.Request) {
	askForColorScheme(w)
	toggle, _ := h.theme.Resolve(r.Context(), middleware.VisitorID(r.Context()), prefersDark(r))
	writeSuccess(w, http.StatusOK, service.State(toggle))
}

// setTheme godoc
// @Summary Set Theme
// @Description Persists light, dark or system for the calling visitor
// @Tags Theme
// @Accept json
// @Produce json
// @Param request body models.PreferenceRequest true "New preference"
// @Success 200 {object} models.ThemeState
// @Failure 400 {object} errors.HTTPErrorResponse
// @Router /theme [put]
func (h *PortfolioHandler) setTheme(w http.ResponseWriter, r *http.Request) {
	var req models.PreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteHTTPError(w, errors.New(
			errors.RefInvalidRequest,
			"Invalid request",
			"Body must be a JSON object with a preference field",
			err,
			errors.LevelError,
		))
		return
	}

	askForColorScheme(w)
	toggle, _, err := h.theme.Select(r.Context(), middleware.VisitorID(r.Context()), prefersDark(r), req.Preference)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, service.State(toggle), "Theme preference saved")
}

// forgetTheme godoc
// @Summary Forget Theme
// @Description Deletes every stored preference of the calling visitor
// @Tags Theme
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 404 {object} errors.HTTPErrorResponse
// @Router /theme [delete]
func (h *PortfolioHandler) forgetTheme(w http.ResponseWriter, r *http.Request) {
	if err := h.theme.Forget(r.Context(), middleware.VisitorID(r.Context())); err != nil {
		errors.WriteHTTPError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "Theme preference removed")
}

func (h *PortfolioHandler) page(w http.ResponseWriter, r *http.Request) {
	askForColorScheme(w)
	toggle, doc := h.theme.Resolve(r.Context(), middleware.VisitorID(r.Context()), prefersDark(r))
	h.renderPage(w, toggle.Preference(), doc.Class())
}

func (h *PortfolioHandler) selectThemeForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	if _, _, err := h.theme.Select(r.Context(), middleware.VisitorID(r.Context()), prefersDark(r), r.PostForm.Get("preference")); err != nil {
		http.Error(w, "Unknown theme preference", http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PortfolioHandler) renderPage(w http.ResponseWriter, pref theme.Preference, class string) {
	options := make([]string, len(theme.Preferences))
	for i, p := range theme.Preferences {
		options[i] = string(p)
	}

	data := pageData{
		Class:      class,
		Preference: string(pref),
		Options:    options,
		Projects:   h.projects.View(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.ExecuteTemplate(w, "page", data); err != nil {
		logger.Error("rendering page: %v", err)
	}
}
