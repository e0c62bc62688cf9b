package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/quizwizards/quizapi/internal/dto"
	"github.com/quizwizards/quizapi/internal/model"
)

// LoginServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type LoginServiceInterface interface {
	Login(ctx context.Context, in dto.LoginDTO) (*dto.TokenDTO, error)
}

// LoginRecorder はログイン試行の結果を記録するインターフェース。
type LoginRecorder interface {
	RecordLogin(success bool)
}

// AuthHandler はトークン発行のHTTPハンドラー。
type AuthHandler struct {
	service  LoginServiceInterface
	recorder LoginRecorder
}

// NewAuthHandler はAuthHandlerを生成する。recorderはnilでもよい。
func NewAuthHandler(service LoginServiceInterface, recorder LoginRecorder) *AuthHandler {
	return &AuthHandler{
		service:  service,
		recorder: recorder,
	}
}

// Login はユーザー名とパスワードを検証しベアラートークンを返す。
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in dto.LoginDTO
	if !decodeJSON(w, r, &in) {
		return
	}

	out, err := h.service.Login(r.Context(), in)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.Code == model.ErrCodeInvalidCredentials {
			h.record(false)
		}
		handleServiceError(w, err)
		return
	}

	h.record(true)
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, out)
}

func (h *AuthHandler) record(success bool) {
	if h.recorder != nil {
		h.recorder.RecordLogin(success)
	}
}
