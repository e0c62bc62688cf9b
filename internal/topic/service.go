// Package topic はクイズの分類（トピック）管理を提供する。
package topic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quizwizards/quizapi/internal/dto"
	"github.com/quizwizards/quizapi/internal/model"
	"github.com/quizwizards/quizapi/internal/repository"
)

const maxNameLength = 200

// Service はトピック管理のサービス層。
type Service struct {
	repo repository.TopicRepository
	now  func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.TopicRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Get は指定IDのトピックを取得する。
func (s *Service) Get(ctx context.Context, id int64) (*dto.TopicDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("トピックの取得に失敗しました: %w", err)
	}
	if row == nil {
		return nil, model.NewTopicNotFoundError(id)
	}
	out := dto.TopicFromRow(row)
	return &out, nil
}

// List は全トピックを名前順で返す。
func (s *Service) List(ctx context.Context) ([]dto.TopicDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("トピック一覧の取得に失敗しました: %w", err)
	}
	return dto.TopicsFromRows(rows), nil
}

// Create はトピックを作成する。
func (s *Service) Create(ctx context.Context, in dto.TopicDTO) (*dto.TopicDTO, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate(in); err != nil {
		return nil, err
	}

	now := s.now()
	row := dto.TopicRowFromDTO(in)
	row.ID = 0
	row.CreatedDate = now
	row.UpdatedDate = now

	if err := s.repo.Create(ctx, row); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.NewDuplicateTopicError(in.Name)
		}
		return nil, fmt.Errorf("トピックの作成に失敗しました: %w", err)
	}
	out := dto.TopicFromRow(row)
	return &out, nil
}

// Update はトピックを更新する。作成日時は変更しない。
func (s *Service) Update(ctx context.Context, id int64, in dto.TopicDTO) (*dto.TopicDTO, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("トピックの取得に失敗しました: %w", err)
	}
	if existing == nil {
		return nil, model.NewTopicNotFoundError(id)
	}

	row := dto.TopicRowFromDTO(in)
	row.ID = id
	row.CreatedDate = existing.CreatedDate
	row.UpdatedDate = s.now()

	if err := s.repo.Update(ctx, row); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, model.NewDuplicateTopicError(in.Name)
		case errors.Is(err, repository.ErrNotFound):
			return nil, model.NewTopicNotFoundError(id)
		}
		return nil, fmt.Errorf("トピックの更新に失敗しました: %w", err)
	}
	out := dto.TopicFromRow(row)
	return &out, nil
}

// Delete はトピックを削除する。参照していたクイズは未分類になる。
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.NewTopicNotFoundError(id)
		}
		return fmt.Errorf("トピックの削除に失敗しました: %w", err)
	}
	return nil
}

func validate(in dto.TopicDTO) error {
	if in.Name == "" {
		return model.NewValidationError("name", "必須項目です")
	}
	if len(in.Name) > maxNameLength {
		return model.NewValidationError("name", fmt.Sprintf("%d文字以内で指定してください", maxNameLength))
	}
	return nil
}
