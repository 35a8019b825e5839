package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	config := Config{
		Level:   DebugLevel,
		Format:  "json",
		Service: "lms-backend",
	}

	logger := NewLogger(config)
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}
}

func TestLoggerWithFields(t *testing.T) {
	logger := NewLogger(Config{Level: InfoLevel, Format: "json", Service: "lms-backend"})

	loggerWithFields := logger.WithFields(
		StringField("key1", "value1"),
		StringField("key2", "value2"),
	)

	// Original logger should not be affected (immutable)
	if logger == loggerWithFields {
		t.Error("WithFields should return a new logger instance")
	}
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer

	logrusLogger := logrus.New()
	logrusLogger.SetOutput(&buf)
	logrusLogger.SetFormatter(&logrus.JSONFormatter{})

	logger := &logger{
		logrus:  logrusLogger,
		fields:  []LogField{{Key: "service", Value: "lms-backend"}},
		service: "lms-backend",
	}

	logger.Info("test message", StringField("test_key", "test_value"))

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log output: %v", err)
	}

	if logEntry["msg"] != "test message" {
		t.Errorf("Expected msg='test message', got %v", logEntry["msg"])
	}

	if logEntry["service"] != "lms-backend" {
		t.Errorf("Expected service='lms-backend', got %v", logEntry["service"])
	}

	if logEntry["test_key"] != "test_value" {
		t.Errorf("Expected test_key='test_value', got %v", logEntry["test_key"])
	}

	if logEntry["level"] != "info" {
		t.Errorf("Expected level='info', got %v", logEntry["level"])
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	logrusLogger := logrus.New()
	logrusLogger.SetOutput(&buf)
	logrusLogger.SetFormatter(&logrus.JSONFormatter{})
	logrusLogger.SetLevel(logrus.DebugLevel)

	logger := &logger{
		logrus:  logrusLogger,
		fields:  []LogField{},
		service: "lms-backend",
	}

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	for _, msg := range []string{"debug message", "info message", "warn message", "error message"} {
		if !bytes.Contains(buf.Bytes(), []byte(msg)) {
			t.Errorf("%q not found in output", msg)
		}
	}
}

func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		name     string
		field    LogField
		expected LogField
	}{
		{
			name:     "StringField",
			field:    StringField("test", "value"),
			expected: LogField{Key: "test", Value: "value"},
		},
		{
			name:     "IntField",
			field:    IntField("count", 42),
			expected: LogField{Key: "count", Value: "42"},
		},
		{
			name:     "DurationField",
			field:    DurationField("duration", 5*time.Second),
			expected: LogField{Key: "duration", Value: "5s"},
		},
		{
			name:     "CorrelationIDField",
			field:    CorrelationIDField("test-id"),
			expected: LogField{Key: "correlation_id", Value: "test-id"},
		},
		{
			name:     "HTTPMethodField",
			field:    HTTPMethodField("GET"),
			expected: LogField{Key: "http_method", Value: "GET"},
		},
		{
			name:     "HTTPPathField",
			field:    HTTPPathField("/api/health"),
			expected: LogField{Key: "http_path", Value: "/api/health"},
		},
		{
			name:     "HTTPStatusField",
			field:    HTTPStatusField(200),
			expected: LogField{Key: "http_status", Value: "200"},
		},
		{
			name:     "AgentField",
			field:    AgentField("course_creator"),
			expected: LogField{Key: "agent", Value: "course_creator"},
		},
		{
			name:     "SessionIDField",
			field:    SessionIDField("session-abc"),
			expected: LogField{Key: "session_id", Value: "session-abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.expected.Key {
				t.Errorf("Expected key=%s, got %s", tt.expected.Key, tt.field.Key)
			}
			if tt.field.Value != tt.expected.Value {
				t.Errorf("Expected value=%s, got %s", tt.expected.Value, tt.field.Value)
			}
		})
	}
}

func TestLoggerImmutability(t *testing.T) {
	logger1 := NewLogger(Config{Level: InfoLevel, Format: "json", Service: "lms-backend"})
	logger2 := logger1.WithFields(StringField("key1", "value1"))
	logger3 := logger2.WithFields(StringField("key2", "value2"))

	if logger1 == logger2 || logger2 == logger3 || logger1 == logger3 {
		t.Error("Logger instances should be independent")
	}
}

func TestEnsureHTTPCorrelationID(t *testing.T) {
	t.Run("generates when missing", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		r, id := EnsureHTTPCorrelationID(r)

		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("generated correlation ID is not a UUID: %v", err)
		}
		if got := GetCorrelationIDFromContext(r.Context()); got != id {
			t.Errorf("context correlation ID = %q, want %q", got, id)
		}
	})

	t.Run("keeps valid existing ID", func(t *testing.T) {
		existing := uuid.New().String()
		r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		r.Header.Set("X-Correlation-ID", existing)

		_, id := EnsureHTTPCorrelationID(r)
		if id != existing {
			t.Errorf("correlation ID = %q, want %q", id, existing)
		}
	})

	t.Run("replaces invalid ID", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		r.Header.Set("X-Correlation-ID", "not-a-uuid")

		_, id := EnsureHTTPCorrelationID(r)
		if id == "not-a-uuid" {
			t.Error("invalid correlation ID was not replaced")
		}
	})
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: InfoLevel, Format: "json", Service: "lms-backend", Output: &buf})

	handler := logger.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if !bytes.Contains(buf.Bytes(), []byte("HTTP request received")) {
		t.Error("request log entry missing")
	}
	if !bytes.Contains(buf.Bytes(), []byte("HTTP response sent")) {
		t.Error("response log entry missing")
	}
}
