package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder は書き込まれたステータスコードとバイト数を記録する。
// WriteHeaderを呼ばずにWriteした場合は200として扱う。
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	bytes      int
	written    bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

// Unwrap はhttp.ResponseControllerが元のResponseWriterに到達できるようにする。
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

// requestState は認証ミドルウェアが外側のログミドルウェアへテイカーIDを渡すための入れ物。
type requestState struct {
	takerID int64
}

var requestStateContextKey = contextKey("request_state")

func requestStateFromContext(ctx context.Context) *requestState {
	st, _ := ctx.Value(requestStateContextKey).(*requestState)
	return st
}

// levelForStatus は5xxをError、4xxをWarn、それ以外をInfoとする。
func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// NewLoggingMiddleware はリクエストごとに1行の "http_request" JSONログを出力する。
// 属性: method, path, route, status, bytes, duration_ms, remote_addr, taker_id（認証済みのみ）。
// remote_addrはchiのRealIPより内側に置いた場合にクライアントIPとなる。
func NewLoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			st := &requestState{}

			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestStateContextKey, st)))

			elapsed := time.Since(start)
			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			}
			if route := routePattern(r); route != "" {
				attrs = append(attrs, slog.String("route", route))
			}
			attrs = append(attrs,
				slog.Int("status", rec.statusCode),
				slog.Int("bytes", rec.bytes),
				slog.Float64("duration_ms", float64(elapsed.Microseconds())/1000),
				slog.String("remote_addr", r.RemoteAddr),
			)

			takerID := st.takerID
			if takerID == 0 {
				takerID, _ = TakerIDFromContext(r.Context())
			}
			if takerID > 0 {
				attrs = append(attrs, slog.Int64("taker_id", takerID))
			}

			logger.Log(r.Context(), levelForStatus(rec.statusCode), "http_request", attrs...)
		})
	}
}
