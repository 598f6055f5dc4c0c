package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
)

type ErrorLevel int

const (
	LevelFatal ErrorLevel = iota + 1
	LevelError
	LevelWarning
	LevelInfo
)

func (l ErrorLevel) String() string {
	if p, ok := levelPolicies[l]; ok {
		return p.name
	}
	return "Unknown"
}

// * Reference codes carried by ApplicationError
const (
	RefGitHubAPI          = "GITHUB_API_ERROR"
	RefRepositoryNotFound = "REPOSITORY_NOT_FOUND"
	RefInvalidDescriptor  = "INVALID_DESCRIPTOR"
	RefInvalidPreference  = "INVALID_PREFERENCE"
	RefInvalidRequest     = "INVALID_REQUEST"
	RefStorageUnavailable = "STORAGE_UNAVAILABLE"
	RefDBConnection       = "DB_CONNECTION_ERROR"
	RefDBMigration        = "DB_MIGRATION_ERROR"
	RefDBPreference       = "DB_PREFERENCE_ERROR"
	RefQueue              = "QUEUE_ERROR"
)

// * levelPolicy decides how a level surfaces over HTTP and in the log
type levelPolicy struct {
	name       string
	status     int
	resolution string
	log        func(format string, args ...any)
}

var levelPolicies = map[ErrorLevel]levelPolicy{
	LevelFatal:   {"Fatal", http.StatusInternalServerError, "Please contact support with the error reference", logger.Error},
	LevelError:   {"Error", http.StatusBadRequest, "", logger.Warn},
	LevelWarning: {"Warning", http.StatusServiceUnavailable, "Please try again later", logger.Error},
	LevelInfo:    {"Info", http.StatusNotFound, "", logger.Info},
}

type ApplicationError struct {
	Reference   string
	Title       string
	Detail      string
	RootCause   error
	Level       ErrorLevel
	OccurredAt  time.Time
	CallerTrace []string
}

func New(ref, title, detail string, cause error, level ErrorLevel) *ApplicationError {
	return &ApplicationError{
		Reference:   ref,
		Title:       title,
		Detail:      detail,
		RootCause:   cause,
		Level:       level,
		OccurredAt:  time.Now().UTC(),
		CallerTrace: callers(3),
	}
}

func (e *ApplicationError) Error() string {
	parts := []string{fmt.Sprintf("[%s] %s", e.Reference, e.Title)}
	if e.Detail != "" {
		parts = append(parts, "- "+e.Detail)
	}
	if e.RootCause != nil {
		parts = append(parts, fmt.Sprintf("(caused by: %v)", e.RootCause))
	}
	return strings.Join(parts, " ")
}

func (e *ApplicationError) Unwrap() error { return e.RootCause }

// * HasReference reports whether any ApplicationError in err's chain carries ref
func HasReference(err error, ref string) bool {
	for err != nil {
		var appErr *ApplicationError
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Reference == ref {
			return true
		}
		err = appErr.RootCause
	}
	return false
}

// * callers records file:line for the stack above New, stopping at the runtime
func callers(skip int) []string {
	pc := make([]uintptr, 16)
	frames := runtime.CallersFrames(pc[:runtime.Callers(skip, pc)])

	var trace []string
	for {
		frame, more := frames.Next()
		if strings.HasPrefix(frame.Function, "runtime.") {
			break
		}
		if frame.Function != "" {
			trace = append(trace, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}
	return trace
}

type HTTPErrorResponse struct {
	Status     int       `json:"status"`
	ErrorRef   string    `json:"error_reference,omitempty"`
	Title      string    `json:"title"`
	Detail     string    `json:"detail,omitempty"`
	Resolution string    `json:"resolution,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// * WriteHTTPError renders err as JSON. Errors outside this package are 500s
func WriteHTTPError(w http.ResponseWriter, err error) {
	resp := HTTPErrorResponse{
		Status:    http.StatusInternalServerError,
		Title:     "An unexpected error occurred",
		Detail:    err.Error(),
		Timestamp: time.Now().UTC(),
	}
	log := logger.Error

	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		resp.ErrorRef = appErr.Reference
		resp.Title = appErr.Title
		resp.Detail = appErr.Detail
		resp.Timestamp = appErr.OccurredAt

		if p, ok := levelPolicies[appErr.Level]; ok {
			resp.Status = p.status
			resp.Resolution = p.resolution
			log = p.log
		}
	}

	log("%v", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}
