package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoVisitor() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(VisitorID(r.Context())))
	})
}

func TestVisitorMiddleware_IssuesCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	VisitorMiddleware(echoVisitor()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, VisitorCookie, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, rec.Body.String())

	_, err := uuid.Parse(rec.Body.String())
	assert.NoError(t, err)
}

func TestVisitorMiddleware_ReusesCookie(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: VisitorCookie, Value: id})

	rec := httptest.NewRecorder()
	VisitorMiddleware(echoVisitor()).ServeHTTP(rec, req)

	assert.Equal(t, id, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestVisitorMiddleware_ReplacesMalformedCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: VisitorCookie, Value: "'; DROP TABLE preferences; --"})

	rec := httptest.NewRecorder()
	VisitorMiddleware(echoVisitor()).ServeHTTP(rec, req)

	assert.NotEqual(t, "'; DROP TABLE preferences; --", rec.Body.String())
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestVisitorID_OutsideMiddleware(t *testing.T) {
	assert.Empty(t, VisitorID(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}

func TestLoggingMiddleware_RecordsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	var seen int

	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		seen = w.(*statusRecorder).status
	}))
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brew", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, http.StatusTeapot, seen)
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	color.NoColor = true
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stdout) })
	return &buf
}

func TestLoggingMiddleware_LogsVisitorAndLevel(t *testing.T) {
	buf := captureLog(t)

	id := uuid.NewString()
	h := VisitorMiddleware(LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	})))

	req := httptest.NewRequest(http.MethodGet, "/v1/projects?x=1", nil)
	req.AddCookie(&http.Cookie{Name: VisitorCookie, Value: id})
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "[ERROR] GET /v1/projects?x=1 500 5B")
	assert.Contains(t, out, "visitor="+id[:8])
}

func TestLoggingMiddleware_AnonymousVisitor(t *testing.T) {
	buf := captureLog(t)

	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, buf.String(), "[INFO] GET / 200 0B")
	assert.Contains(t, buf.String(), "visitor=-")
}
