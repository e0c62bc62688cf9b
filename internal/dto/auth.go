package dto

import "time"

// LoginDTO はログインリクエストのボディ。
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenDTO はログイン成功時に返すアクセストークン。
type TokenDTO struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}
