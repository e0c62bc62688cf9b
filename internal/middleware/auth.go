// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/quizwizards/quizapi/internal/auth"
	"github.com/quizwizards/quizapi/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// takerIDContextKey はリクエストコンテキストに認証済みテイカーIDを格納するためのキー。
var takerIDContextKey = contextKey("taker_id")

// TokenValidator はベアラートークンの検証に必要なインターフェース。
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// AuthFailureRecorder は認証失敗の記録インターフェース。
type AuthFailureRecorder interface {
	RecordAuthFailure(reason string)
}

// NewBearerAuthMiddleware はAuthorizationヘッダーのベアラートークンを検証するミドルウェアを返す。
// 検証に成功した場合はテイカーIDをリクエストコンテキストに注入する。
// ヘッダーがない場合、または検証に失敗した場合は401とWWW-Authenticateヘッダーを返し、
// 後続のハンドラーは実行しない。
func NewBearerAuthMiddleware(validator TokenValidator, recorder AuthFailureRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				recordAuthFailure(recorder, "missing")
				w.Header().Set("WWW-Authenticate", `Bearer`)
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				reason := auth.FailureReason(err)
				recordAuthFailure(recorder, reason)
				slog.Info("bearer token rejected",
					slog.String("reason", reason),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
				return
			}

			takerID, err := claims.TakerID()
			if err != nil {
				recordAuthFailure(recorder, auth.FailureReason(err))
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidTokenError())
				return
			}

			if st := requestStateFromContext(r.Context()); st != nil {
				st.takerID = takerID
			}
			next.ServeHTTP(w, r.WithContext(ContextWithTakerID(r.Context(), takerID)))
		})
	}
}

// bearerToken はAuthorizationヘッダーからトークン部分を取り出す。
// スキーム名の大文字小文字は区別しない。
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func recordAuthFailure(recorder AuthFailureRecorder, reason string) {
	if recorder != nil {
		recorder.RecordAuthFailure(reason)
	}
}

// ErrNoTakerInContext はコンテキストに認証済みテイカーIDがないことを示す。
var ErrNoTakerInContext = errors.New("taker ID not found in context")

// TakerIDFromContext はリクエストコンテキストから認証済みテイカーIDを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func TakerIDFromContext(ctx context.Context) (int64, error) {
	takerID, ok := ctx.Value(takerIDContextKey).(int64)
	if !ok || takerID <= 0 {
		return 0, ErrNoTakerInContext
	}
	return takerID, nil
}

// ContextWithTakerID はコンテキストにテイカーIDを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithTakerID(ctx context.Context, takerID int64) context.Context {
	return context.WithValue(ctx, takerIDContextKey, takerID)
}
