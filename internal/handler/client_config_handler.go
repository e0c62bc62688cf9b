package handler

import (
	"net/http"

	"github.com/quizwizards/quizapi/internal/clientconfig"
)

// NewClientConfigHandler は起動時に決定したクライアント設定を返すハンドラーを生成する。
// GET /client-config
func NewClientConfigHandler(cfg clientconfig.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cfg)
	}
}
