package dto

import (
	"time"

	"github.com/quizwizards/quizapi/internal/model"
)

// TopicDTO はトピックのリクエスト・レスポンス表現。
type TopicDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedDate time.Time `json:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate"`
}

// TopicFromRow は永続化行をDTOに変換する。
func TopicFromRow(row *model.Topic) TopicDTO {
	return TopicDTO{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CreatedDate: row.CreatedDate,
		UpdatedDate: row.UpdatedDate,
	}
}

// TopicsFromRows は複数の永続化行をDTOに変換する。
func TopicsFromRows(rows []*model.Topic) []TopicDTO {
	results := make([]TopicDTO, len(rows))
	for i, row := range rows {
		results[i] = TopicFromRow(row)
	}
	return results
}

// TopicRowFromDTO はDTOを永続化行に変換する。
func TopicRowFromDTO(in TopicDTO) *model.Topic {
	return &model.Topic{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		CreatedDate: in.CreatedDate,
		UpdatedDate: in.UpdatedDate,
	}
}
