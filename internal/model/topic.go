package model

import "time"

// Topic はクイズの分類を表す。
type Topic struct {
	ID          int64
	Name        string
	Description string
	CreatedDate time.Time
	UpdatedDate time.Time
}
