// Package quiz はクイズ管理のドメインロジックを提供する。
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/quizwizards/quizapi/internal/dto"
	"github.com/quizwizards/quizapi/internal/model"
	"github.com/quizwizards/quizapi/internal/repository"
)

const maxTitleLength = 300

// QuestionLister はクイズに属する設問の取得インターフェース。
type QuestionLister interface {
	ListByQuizID(ctx context.Context, quizID int64) ([]*model.Question, error)
}

// TakerFinder はクイズ所有者の存在確認に使うインターフェース。
type TakerFinder interface {
	FindByID(ctx context.Context, id int64) (*model.Taker, error)
}

// Service はクイズ管理のサービス層。
type Service struct {
	quizRepo     repository.QuizRepository
	questionRepo QuestionLister
	takerRepo    TakerFinder
	now          func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(quizRepo repository.QuizRepository, questionRepo QuestionLister, takerRepo TakerFinder) *Service {
	return &Service{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		takerRepo:    takerRepo,
		now:          time.Now,
	}
}

// Get は指定IDのクイズを設問付きで取得する。
func (s *Service) Get(ctx context.Context, id int64) (*dto.QuizDTO, error) {
	row, err := s.quizRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("クイズの取得に失敗しました: %w", err)
	}
	if row == nil {
		return nil, model.NewQuizNotFoundError(id)
	}

	questions, err := s.questionRepo.ListByQuizID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("設問一覧の取得に失敗しました: %w", err)
	}
	out := dto.QuizFromRow(row, dto.QuestionsFromRows(questions))
	return &out, nil
}

// List は全クイズを返す。
func (s *Service) List(ctx context.Context) ([]dto.QuizDTO, error) {
	rows, err := s.quizRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("クイズ一覧の取得に失敗しました: %w", err)
	}
	return dto.QuizzesFromRows(rows), nil
}

// ListByTaker はテイカーが所有するクイズを返す。テイカーが存在しない場合はTAKER_NOT_FOUND。
func (s *Service) ListByTaker(ctx context.Context, takerID int64) ([]dto.QuizDTO, error) {
	taker, err := s.takerRepo.FindByID(ctx, takerID)
	if err != nil {
		return nil, fmt.Errorf("テイカーの取得に失敗しました: %w", err)
	}
	if taker == nil {
		return nil, model.NewTakerNotFoundError(strconv.FormatInt(takerID, 10))
	}

	rows, err := s.quizRepo.ListByTakerID(ctx, takerID)
	if err != nil {
		return nil, fmt.Errorf("クイズ一覧の取得に失敗しました: %w", err)
	}
	return dto.QuizzesFromRows(rows), nil
}

// Create はクイズを作成する。TakerIDは呼び出し側で設定済みであること。
func (s *Service) Create(ctx context.Context, in dto.QuizDTO) (*dto.QuizDTO, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate(in); err != nil {
		return nil, err
	}
	if in.TakerID <= 0 {
		return nil, model.NewValidationError("takerId", "必須項目です")
	}

	now := s.now()
	row := dto.QuizRowFromDTO(in)
	row.ID = 0
	row.CreatedDate = now
	row.UpdatedDate = now

	if err := s.quizRepo.Create(ctx, row); err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return nil, model.NewReferenceNotFoundError(referenceField(in))
		}
		return nil, fmt.Errorf("クイズの作成に失敗しました: %w", err)
	}

	slog.Info("quiz created",
		slog.Int64("quiz_id", row.ID),
		slog.Int64("taker_id", row.TakerID),
	)

	out := dto.QuizFromRow(row, nil)
	return &out, nil
}

// Update はクイズを更新する。所有者と作成日時は変更しない。
func (s *Service) Update(ctx context.Context, id int64, in dto.QuizDTO) (*dto.QuizDTO, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate(in); err != nil {
		return nil, err
	}

	existing, err := s.quizRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("クイズの取得に失敗しました: %w", err)
	}
	if existing == nil {
		return nil, model.NewQuizNotFoundError(id)
	}

	row := dto.QuizRowFromDTO(in)
	row.ID = id
	row.TakerID = existing.TakerID
	row.CreatedDate = existing.CreatedDate
	row.UpdatedDate = s.now()

	if err := s.quizRepo.Update(ctx, row); err != nil {
		switch {
		case errors.Is(err, repository.ErrReferenceNotFound):
			return nil, model.NewReferenceNotFoundError("topicId")
		case errors.Is(err, repository.ErrNotFound):
			return nil, model.NewQuizNotFoundError(id)
		}
		return nil, fmt.Errorf("クイズの更新に失敗しました: %w", err)
	}
	out := dto.QuizFromRow(row, nil)
	return &out, nil
}

// Delete はクイズを削除する。設問も削除される。
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.quizRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.NewQuizNotFoundError(id)
		}
		return fmt.Errorf("クイズの削除に失敗しました: %w", err)
	}
	return nil
}

func validate(in dto.QuizDTO) error {
	if in.Title == "" {
		return model.NewValidationError("title", "必須項目です")
	}
	if len(in.Title) > maxTitleLength {
		return model.NewValidationError("title", fmt.Sprintf("%d文字以内で指定してください", maxTitleLength))
	}
	if in.TopicID != nil && *in.TopicID <= 0 {
		return model.NewValidationError("topicId", "正の整数を指定してください")
	}
	return nil
}

// referenceField は外部キー違反時に疑わしい参照フィールド名を返す。
func referenceField(in dto.QuizDTO) string {
	if in.TopicID != nil {
		return "takerId/topicId"
	}
	return "takerId"
}
