package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/photoshare/apiserver/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedactsSensitiveFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(config.LogConfig{Level: "debug", Format: "json"}, &buf)

	logger.WithFields(logrus.Fields{
		"email":         "a@x.com",
		"password":      "secret1",
		"Authorization": "Bearer abc",
		"token":         "abc.def.ghi",
	}).Info("login attempt")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "login attempt", entry["msg"])
	assert.Equal(t, "a@x.com", entry["email"])
	assert.Equal(t, redactedValue, entry["password"])
	assert.Equal(t, redactedValue, entry["Authorization"])
	assert.Equal(t, redactedValue, entry["token"])
	assert.NotContains(t, buf.String(), "secret1")
}

func TestNewLevelFallback(t *testing.T) {
	logger := NewWithOutput(config.LogConfig{Level: "chatty"}, &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	logger = NewWithOutput(config.LogConfig{Level: "warn"}, &bytes.Buffer{})
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
}

func TestRedactHookExtraKeys(t *testing.T) {
	hook := NewRedactHook("api_key")
	entry := &logrus.Entry{Data: logrus.Fields{"API_KEY": "k", "user": "u"}}

	require.NoError(t, hook.Fire(entry))
	assert.Equal(t, redactedValue, entry.Data["API_KEY"])
	assert.Equal(t, "u", entry.Data["user"])
}

func TestRequestLoggerUsesLogrus(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(config.LogConfig{Level: "info", Format: "json"}, &buf)

	handler := NewRequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login?token=abc", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/api/auth/login", entry["path"])
	assert.EqualValues(t, http.StatusCreated, entry["status"])
	assert.EqualValues(t, 2, entry["bytes"])
	assert.NotContains(t, buf.String(), "abc")
}

func TestRequestLoggerHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(config.LogConfig{Level: "warn", Format: "text"}, &buf)

	handler := NewRequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Empty(t, buf.String())

	handler = NewRequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Contains(t, buf.String(), "status=404")
}
