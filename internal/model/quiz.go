package model

import "time"

// Quiz はテイカーが所有するクイズを表す。
// TopicIDは未分類の場合nil。
type Quiz struct {
	ID          int64
	TakerID     int64
	TopicID     *int64
	Title       string
	Description string
	CreatedDate time.Time
	UpdatedDate time.Time
}

// Question はクイズに属する設問を表す。
type Question struct {
	ID          int64
	QuizID      int64
	Text        string
	Choices     []string
	Answer      string
	Points      int
	CreatedDate time.Time
	UpdatedDate time.Time
}
