// Package model はDBの行に対応するドメインモデルを定義する。
package model

import "time"

// Taker はクイズを所有・受験するユーザーを表す。
// PasswordHashはbcryptハッシュのみを保持し、平文は保持しない。
type Taker struct {
	ID           int64
	Name         string
	Address      string
	Email        string
	Username     string
	PasswordHash string
	TakerType    string
	CreatedDate  time.Time
	UpdatedDate  time.Time
}
