package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quizwizards/quizapi/internal/dto"
	"github.com/quizwizards/quizapi/internal/model"
)

// TakerFinder はログインに必要なテイカー検索インターフェース。
// repository.TakerRepositoryの部分集合として定義する。
type TakerFinder interface {
	FindByUsername(ctx context.Context, username string) (*model.Taker, error)
}

// TokenIssuer はアクセストークン発行のインターフェース。
type TokenIssuer interface {
	Issue(takerID int64) (string, time.Time, error)
}

// Service はユーザー名とパスワードによるログインを提供する。
type Service struct {
	takers TakerFinder
	tokens TokenIssuer
}

// NewService はServiceを生成する。
func NewService(takers TakerFinder, tokens TokenIssuer) *Service {
	return &Service{
		takers: takers,
		tokens: tokens,
	}
}

// Login は認証情報を検証し、アクセストークンを発行する。
// ユーザー名の誤りとパスワードの誤りは区別せずINVALID_CREDENTIALSを返す。
func (s *Service) Login(ctx context.Context, in dto.LoginDTO) (*dto.TokenDTO, error) {
	if in.Username == "" || in.Password == "" {
		return nil, model.NewInvalidCredentialsError()
	}

	taker, err := s.takers.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("テイカーの取得に失敗しました: %w", err)
	}
	if taker == nil {
		CheckPassword(dummyHash(), in.Password)
		return nil, model.NewInvalidCredentialsError()
	}
	if !CheckPassword(taker.PasswordHash, in.Password) {
		slog.Warn("login failed",
			slog.Int64("taker_id", taker.ID),
		)
		return nil, model.NewInvalidCredentialsError()
	}

	token, expiresAt, err := s.tokens.Issue(taker.ID)
	if err != nil {
		return nil, fmt.Errorf("トークンの発行に失敗しました: %w", err)
	}

	slog.Info("login succeeded",
		slog.Int64("taker_id", taker.ID),
	)

	return &dto.TokenDTO{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	}, nil
}
