// Package taker はテイカー（利用者）管理のドメインロジックを提供する。
package taker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/quizwizards/quizapi/internal/auth"
	"github.com/quizwizards/quizapi/internal/dto"
	"github.com/quizwizards/quizapi/internal/model"
	"github.com/quizwizards/quizapi/internal/repository"
)

// 入力値の最大長（takersテーブルのカラム定義に合わせる）
const (
	maxNameLength      = 200
	maxAddressLength   = 500
	maxEmailLength     = 320
	maxUsernameLength  = 100
	maxTakerTypeLength = 50
)

// QuizLister はテイカー所有クイズの取得インターフェース。
type QuizLister interface {
	ListByTakerID(ctx context.Context, takerID int64) ([]*model.Quiz, error)
}

// Service はテイカー管理のサービス層。
// パスワードはbcryptでハッシュ化してから永続化する。
type Service struct {
	takerRepo repository.TakerRepository
	quizRepo  QuizLister
	hash      func(plain string) (string, error)
	now       func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(takerRepo repository.TakerRepository, quizRepo QuizLister) *Service {
	return &Service{
		takerRepo: takerRepo,
		quizRepo:  quizRepo,
		hash:      auth.HashPassword,
		now:       time.Now,
	}
}

// Get は指定IDのテイカーを所有クイズ付きで取得する。
func (s *Service) Get(ctx context.Context, id int64) (*dto.TakerDTO, error) {
	row, err := s.takerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("テイカーの取得に失敗しました: %w", err)
	}
	if row == nil {
		return nil, model.NewTakerNotFoundError(strconv.FormatInt(id, 10))
	}
	return s.withQuizzes(ctx, row)
}

// GetByUsername はユーザー名でテイカーを所有クイズ付きで取得する。
func (s *Service) GetByUsername(ctx context.Context, username string) (*dto.TakerDTO, error) {
	row, err := s.takerRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("テイカーの取得に失敗しました: %w", err)
	}
	if row == nil {
		return nil, model.NewTakerNotFoundError(username)
	}
	return s.withQuizzes(ctx, row)
}

// List は全テイカーを返す。一覧ではクイズを展開しない。
func (s *Service) List(ctx context.Context) ([]dto.TakerDTO, error) {
	rows, err := s.takerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("テイカー一覧の取得に失敗しました: %w", err)
	}
	return dto.TakersFromRows(rows), nil
}

// Create はテイカーを登録する。
// CreatedDateが未設定の場合は現在時刻を設定する。
func (s *Service) Create(ctx context.Context, in dto.TakerUserNameDTO) (*dto.TakerDTO, error) {
	normalize(&in)
	if err := validate(in); err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, model.NewValidationError("password", "必須項目です")
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if in.CreatedDate.IsZero() {
		in.CreatedDate = now
	}
	in.UpdatedDate = now

	row := dto.TakerRowFromDTO(in, hash)
	row.ID = 0
	if err := s.takerRepo.Create(ctx, row); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.NewDuplicateUsernameError(in.Username)
		}
		return nil, fmt.Errorf("テイカーの登録に失敗しました: %w", err)
	}

	slog.Info("taker registered",
		slog.Int64("taker_id", row.ID),
	)

	out := dto.TakerFromRow(row, nil)
	return &out, nil
}

// Update はテイカー情報を更新する。
// パスワードが指定された場合のみ再ハッシュ化し、それ以外は既存のハッシュを維持する。
// CreatedDateは変更しない。
func (s *Service) Update(ctx context.Context, id int64, in dto.TakerUserNameDTO) (*dto.TakerDTO, error) {
	normalize(&in)
	if err := validate(in); err != nil {
		return nil, err
	}

	existing, err := s.takerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("テイカーの取得に失敗しました: %w", err)
	}
	if existing == nil {
		return nil, model.NewTakerNotFoundError(strconv.FormatInt(id, 10))
	}

	hash := existing.PasswordHash
	if in.Password != "" {
		hash, err = s.hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
	}

	row := dto.TakerRowFromDTO(in, hash)
	row.ID = id
	row.CreatedDate = existing.CreatedDate
	row.UpdatedDate = s.now()

	if err := s.takerRepo.Update(ctx, row); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, model.NewDuplicateUsernameError(in.Username)
		case errors.Is(err, repository.ErrNotFound):
			return nil, model.NewTakerNotFoundError(strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("テイカーの更新に失敗しました: %w", err)
	}

	return s.withQuizzes(ctx, row)
}

// Delete は指定IDのテイカーを削除する。所有するクイズと設問も削除される。
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.takerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.NewTakerNotFoundError(strconv.FormatInt(id, 10))
		}
		return fmt.Errorf("テイカーの削除に失敗しました: %w", err)
	}

	slog.Info("taker deleted",
		slog.Int64("taker_id", id),
	)
	return nil
}

func (s *Service) withQuizzes(ctx context.Context, row *model.Taker) (*dto.TakerDTO, error) {
	quizzes, err := s.quizRepo.ListByTakerID(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("クイズ一覧の取得に失敗しました: %w", err)
	}
	out := dto.TakerFromRow(row, dto.QuizzesFromRows(quizzes))
	return &out, nil
}

func (s *Service) hashPassword(plain string) (string, error) {
	hash, err := s.hash(plain)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return "", model.NewValidationError("password", "72バイト以内で指定してください")
		}
		return "", fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}
	return hash, nil
}

func normalize(in *dto.TakerUserNameDTO) {
	in.Name = strings.TrimSpace(in.Name)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.TakerType = strings.TrimSpace(in.TakerType)
}

func validate(in dto.TakerUserNameDTO) error {
	switch {
	case in.Username == "":
		return model.NewValidationError("username", "必須項目です")
	case len(in.Username) > maxUsernameLength:
		return model.NewValidationError("username", fmt.Sprintf("%d文字以内で指定してください", maxUsernameLength))
	case in.Name == "":
		return model.NewValidationError("name", "必須項目です")
	case len(in.Name) > maxNameLength:
		return model.NewValidationError("name", fmt.Sprintf("%d文字以内で指定してください", maxNameLength))
	case len(in.Address) > maxAddressLength:
		return model.NewValidationError("address", fmt.Sprintf("%d文字以内で指定してください", maxAddressLength))
	case len(in.Email) > maxEmailLength:
		return model.NewValidationError("email", fmt.Sprintf("%d文字以内で指定してください", maxEmailLength))
	case in.Email != "" && !strings.Contains(in.Email, "@"):
		return model.NewValidationError("email", "メールアドレスの形式ではありません")
	case len(in.TakerType) > maxTakerTypeLength:
		return model.NewValidationError("takerType", fmt.Sprintf("%d文字以内で指定してください", maxTakerTypeLength))
	}
	return nil
}
