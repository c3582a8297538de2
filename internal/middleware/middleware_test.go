package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.DebugLevel)
	return l
}

func newServer(logger logrus.FieldLogger, h echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.Use(RequestID(), Logger(logger), AccessLog())
	e.GET("/x", h)
	return e
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestRequestIDGenerated(t *testing.T) {
	var buf bytes.Buffer
	var seen string
	e := newServer(newLogger(&buf), func(c echo.Context) error {
		LoggerFrom(c).Info("inside")
		seen = c.Response().Header().Get(echo.HeaderXRequestID)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	id := rec.Header().Get(echo.HeaderXRequestID)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	require.Equal(t, id, seen)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	require.Equal(t, "inside", lines[0]["msg"])
	require.Equal(t, id, lines[0]["request_id"])
	require.Equal(t, "request", lines[1]["msg"])
	require.Equal(t, id, lines[1]["request_id"])
	require.Equal(t, "/x", lines[1]["uri"])
	require.EqualValues(t, http.StatusOK, lines[1]["status"])
	require.Equal(t, "info", lines[1]["level"])
}

func TestRequestIDPropagated(t *testing.T) {
	var buf bytes.Buffer
	e := newServer(newLogger(&buf), func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.Equal(t, "abc-123", lines[0]["request_id"])
	require.Equal(t, "warning", lines[0]["level"])
}

func TestLoggerFromFallback(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	require.NotNil(t, LoggerFrom(c))

	c.Set(ContextLoggerKey, "not a logger")
	require.NotNil(t, LoggerFrom(c))
}
