package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quizwizards/quizapi/internal/auth"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func decodeLogEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log: %v\nraw: %s", err, buf.String())
	}
	return entry
}

// TestLoggingMiddleware_LogsRequestFields はリクエストログに必要なフィールドが含まれることを検証する。
func TestLoggingMiddleware_LogsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	handler := NewLoggingMiddleware(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/topics", nil))

	entry := decodeLogEntry(t, &buf)
	if entry["msg"] != "http_request" {
		t.Errorf("msg = %v, want http_request", entry["msg"])
	}
	if entry["method"] != "GET" {
		t.Errorf("method = %v, want GET", entry["method"])
	}
	if entry["path"] != "/api/topics" {
		t.Errorf("path = %v, want /api/topics", entry["path"])
	}
	if entry["status"] != float64(200) {
		t.Errorf("status = %v, want 200", entry["status"])
	}
	if d, ok := entry["duration_ms"].(float64); !ok || d < 0 {
		t.Errorf("duration_ms = %v, want non-negative number", entry["duration_ms"])
	}
	if entry["bytes"] != float64(2) {
		t.Errorf("bytes = %v, want 2", entry["bytes"])
	}
	if entry["remote_addr"] != "192.0.2.1:1234" {
		t.Errorf("remote_addr = %v, want httptest default", entry["remote_addr"])
	}
	if _, ok := entry["route"]; ok {
		t.Error("route should be omitted outside a chi router")
	}
	if _, ok := entry["taker_id"]; ok {
		t.Error("taker_id should be omitted for anonymous requests")
	}
}

func TestLoggingMiddleware_LogsRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	r := chi.NewRouter()
	r.Use(NewLoggingMiddleware(newTestLogger(&buf)))
	r.Get("/api/takers/{id}/quizzes", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/takers/5/quizzes", nil))

	entry := decodeLogEntry(t, &buf)
	if entry["route"] != "/api/takers/{id}/quizzes" {
		t.Errorf("route = %v, want /api/takers/{id}/quizzes", entry["route"])
	}
	if entry["status"] != float64(http.StatusNoContent) {
		t.Errorf("status = %v, want 204", entry["status"])
	}
}

// TestLoggingMiddleware_IncludesTakerIDFromInnerAuth は内側の認証ミドルウェアが
// 設定したテイカーIDがログに含まれることを検証する。
func TestLoggingMiddleware_IncludesTakerIDFromInnerAuth(t *testing.T) {
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Issuer: "iss", Audience: "aud", Key: "logging-test-key-0123456789abcdef", TTL: time.Minute,
	})
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	token, _, err := tokens.Issue(77)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var buf bytes.Buffer
	inner := NewBearerAuthMiddleware(tokens, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	handler := NewLoggingMiddleware(newTestLogger(&buf))(inner)

	req := httptest.NewRequest(http.MethodDelete, "/api/quizzes/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entry := decodeLogEntry(t, &buf)
	if entry["taker_id"] != float64(77) {
		t.Errorf("taker_id = %v, want 77", entry["taker_id"])
	}
	if entry["status"] != float64(204) {
		t.Errorf("status = %v, want 204", entry["status"])
	}
}

// TestLoggingMiddleware_LevelByStatus はステータスコードに応じてログレベルが変わることを検証する。
func TestLoggingMiddleware_LevelByStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusCreated, "INFO"},
		{http.StatusBadRequest, "WARN"},
		{http.StatusUnauthorized, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			handler := NewLoggingMiddleware(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			entry := decodeLogEntry(t, &buf)
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %s", entry["level"], tt.level)
			}
			if entry["status"] != float64(tt.status) {
				t.Errorf("status = %v, want %d", entry["status"], tt.status)
			}
		})
	}
}

// TestStatusRecorder_FirstWriteHeaderWins は最初のステータスコードのみ記録されることを検証する。
func TestStatusRecorder_FirstWriteHeaderWins(t *testing.T) {
	w := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

	rec.WriteHeader(http.StatusCreated)
	rec.WriteHeader(http.StatusInternalServerError)

	if rec.statusCode != http.StatusCreated {
		t.Errorf("statusCode = %d, want %d", rec.statusCode, http.StatusCreated)
	}
	if rec.Unwrap() != w {
		t.Error("Unwrap should return the wrapped writer")
	}
}
