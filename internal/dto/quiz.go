package dto

import (
	"time"

	"github.com/quizwizards/quizapi/internal/model"
)

// QuizDTO はクイズのリクエスト・レスポンス表現。
// Questionsは詳細取得時のみ展開される。
type QuizDTO struct {
	ID          int64         `json:"id"`
	TakerID     int64         `json:"takerId"`
	TopicID     *int64        `json:"topicId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	CreatedDate time.Time     `json:"createdDate"`
	UpdatedDate time.Time     `json:"updatedDate"`
	Questions   []QuestionDTO `json:"questions,omitempty"`
}

// QuestionDTO は設問のリクエスト・レスポンス表現。
type QuestionDTO struct {
	ID          int64     `json:"id"`
	QuizID      int64     `json:"quizId"`
	Text        string    `json:"text"`
	Choices     []string  `json:"choices"`
	Answer      string    `json:"answer"`
	Points      int       `json:"points"`
	CreatedDate time.Time `json:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate"`
}

// QuizFromRow は永続化行をDTOに変換する。
func QuizFromRow(row *model.Quiz, questions []QuestionDTO) QuizDTO {
	return QuizDTO{
		ID:          row.ID,
		TakerID:     row.TakerID,
		TopicID:     row.TopicID,
		Title:       row.Title,
		Description: row.Description,
		CreatedDate: row.CreatedDate,
		UpdatedDate: row.UpdatedDate,
		Questions:   questions,
	}
}

// QuizzesFromRows は複数の永続化行をDTOに変換する。
func QuizzesFromRows(rows []*model.Quiz) []QuizDTO {
	results := make([]QuizDTO, len(rows))
	for i, row := range rows {
		results[i] = QuizFromRow(row, nil)
	}
	return results
}

// QuizRowFromDTO はDTOを永続化行に変換する。
func QuizRowFromDTO(in QuizDTO) *model.Quiz {
	return &model.Quiz{
		ID:          in.ID,
		TakerID:     in.TakerID,
		TopicID:     in.TopicID,
		Title:       in.Title,
		Description: in.Description,
		CreatedDate: in.CreatedDate,
		UpdatedDate: in.UpdatedDate,
	}
}

// QuestionFromRow は永続化行をDTOに変換する。
// Choicesがnilの場合は空スライスとしてシリアライズされる。
func QuestionFromRow(row *model.Question) QuestionDTO {
	choices := row.Choices
	if choices == nil {
		choices = []string{}
	}
	return QuestionDTO{
		ID:          row.ID,
		QuizID:      row.QuizID,
		Text:        row.Text,
		Choices:     choices,
		Answer:      row.Answer,
		Points:      row.Points,
		CreatedDate: row.CreatedDate,
		UpdatedDate: row.UpdatedDate,
	}
}

// QuestionsFromRows は複数の永続化行をDTOに変換する。
func QuestionsFromRows(rows []*model.Question) []QuestionDTO {
	results := make([]QuestionDTO, len(rows))
	for i, row := range rows {
		results[i] = QuestionFromRow(row)
	}
	return results
}

// QuestionRowFromDTO はDTOを永続化行に変換する。
func QuestionRowFromDTO(in QuestionDTO) *model.Question {
	return &model.Question{
		ID:          in.ID,
		QuizID:      in.QuizID,
		Text:        in.Text,
		Choices:     in.Choices,
		Answer:      in.Answer,
		Points:      in.Points,
		CreatedDate: in.CreatedDate,
		UpdatedDate: in.UpdatedDate,
	}
}

// DefaultQuestionPoints は配点未指定時の設問の配点。
const DefaultQuestionPoints = 1

// NewQuestionDTO は配点を既定値で初期化したQuestionDTOを返す。
// リクエストボディのデコード先として使用し、pointsが省略された場合に既定値を残す。
func NewQuestionDTO() QuestionDTO {
	return QuestionDTO{
		Points:  DefaultQuestionPoints,
		Choices: []string{},
	}
}
