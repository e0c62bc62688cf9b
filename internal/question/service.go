// Package question は設問管理のドメインロジックを提供する。
package question

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/quizwizards/quizapi/internal/dto"
	"github.com/quizwizards/quizapi/internal/model"
	"github.com/quizwizards/quizapi/internal/repository"
)

const maxChoices = 20

// maxPoints はquestions.points（INTEGER）に格納できる上限。
const maxPoints = math.MaxInt32

// QuizFinder は設問の親クイズの存在確認に使うインターフェース。
type QuizFinder interface {
	FindByID(ctx context.Context, id int64) (*model.Quiz, error)
}

// Service は設問管理のサービス層。
type Service struct {
	repo    repository.QuestionRepository
	quizzes QuizFinder
	now     func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.QuestionRepository, quizzes QuizFinder) *Service {
	return &Service{repo: repo, quizzes: quizzes, now: time.Now}
}

// Get は指定IDの設問を取得する。
func (s *Service) Get(ctx context.Context, id int64) (*dto.QuestionDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("設問の取得に失敗しました: %w", err)
	}
	if row == nil {
		return nil, model.NewQuestionNotFoundError(id)
	}
	out := dto.QuestionFromRow(row)
	return &out, nil
}

// List は全設問を返す。
func (s *Service) List(ctx context.Context) ([]dto.QuestionDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("設問一覧の取得に失敗しました: %w", err)
	}
	return dto.QuestionsFromRows(rows), nil
}

// ListByQuiz はクイズに属する設問を返す。クイズが存在しない場合はQUIZ_NOT_FOUND。
func (s *Service) ListByQuiz(ctx context.Context, quizID int64) ([]dto.QuestionDTO, error) {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("クイズの取得に失敗しました: %w", err)
	}
	if quiz == nil {
		return nil, model.NewQuizNotFoundError(quizID)
	}

	rows, err := s.repo.ListByQuizID(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("設問一覧の取得に失敗しました: %w", err)
	}
	return dto.QuestionsFromRows(rows), nil
}

// Create は設問を作成する。
func (s *Service) Create(ctx context.Context, in dto.QuestionDTO) (*dto.QuestionDTO, error) {
	normalize(&in)
	if err := validate(in); err != nil {
		return nil, err
	}

	now := s.now()
	row := dto.QuestionRowFromDTO(in)
	row.ID = 0
	row.CreatedDate = now
	row.UpdatedDate = now

	if err := s.repo.Create(ctx, row); err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return nil, model.NewReferenceNotFoundError("quizId")
		}
		return nil, fmt.Errorf("設問の作成に失敗しました: %w", err)
	}
	out := dto.QuestionFromRow(row)
	return &out, nil
}

// Update は設問を更新する。作成日時は変更しない。
func (s *Service) Update(ctx context.Context, id int64, in dto.QuestionDTO) (*dto.QuestionDTO, error) {
	normalize(&in)

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("設問の取得に失敗しました: %w", err)
	}
	if existing == nil {
		return nil, model.NewQuestionNotFoundError(id)
	}
	if in.QuizID == 0 {
		in.QuizID = existing.QuizID
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	row := dto.QuestionRowFromDTO(in)
	row.ID = id
	row.CreatedDate = existing.CreatedDate
	row.UpdatedDate = s.now()

	if err := s.repo.Update(ctx, row); err != nil {
		switch {
		case errors.Is(err, repository.ErrReferenceNotFound):
			return nil, model.NewReferenceNotFoundError("quizId")
		case errors.Is(err, repository.ErrNotFound):
			return nil, model.NewQuestionNotFoundError(id)
		}
		return nil, fmt.Errorf("設問の更新に失敗しました: %w", err)
	}
	out := dto.QuestionFromRow(row)
	return &out, nil
}

// Delete は設問を削除する。
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.NewQuestionNotFoundError(id)
		}
		return fmt.Errorf("設問の削除に失敗しました: %w", err)
	}
	return nil
}

// normalize は前後の空白を除去し、空の選択肢を取り除く。
// text[]カラムはNOT NULLのため、選択肢がない場合も空スライスにする。
func normalize(in *dto.QuestionDTO) {
	in.Text = strings.TrimSpace(in.Text)
	in.Answer = strings.TrimSpace(in.Answer)

	choices := make([]string, 0, len(in.Choices))
	for _, c := range in.Choices {
		if c = strings.TrimSpace(c); c != "" {
			choices = append(choices, c)
		}
	}
	in.Choices = choices
}

func validate(in dto.QuestionDTO) error {
	switch {
	case in.QuizID <= 0:
		return model.NewValidationError("quizId", "必須項目です")
	case in.Text == "":
		return model.NewValidationError("text", "必須項目です")
	case in.Points < 0:
		return model.NewValidationError("points", "0以上を指定してください")
	case in.Points > maxPoints:
		return model.NewValidationError("points", fmt.Sprintf("%d以下を指定してください", maxPoints))
	case len(in.Choices) > maxChoices:
		return model.NewValidationError("choices", fmt.Sprintf("%d個以内で指定してください", maxChoices))
	}
	return nil
}
