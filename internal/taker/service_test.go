package taker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/quizwizards/quizapi/internal/auth"
	"github.com/quizwizards/quizapi/internal/dto"
	"github.com/quizwizards/quizapi/internal/model"
	"github.com/quizwizards/quizapi/internal/repository"
)

// --- モック ---

type mockTakerRepo struct {
	findByIDFn       func(ctx context.Context, id int64) (*model.Taker, error)
	findByUsernameFn func(ctx context.Context, username string) (*model.Taker, error)
	listFn           func(ctx context.Context) ([]*model.Taker, error)
	createFn         func(ctx context.Context, taker *model.Taker) error
	updateFn         func(ctx context.Context, taker *model.Taker) error
	deleteFn         func(ctx context.Context, id int64) error
}

func (m *mockTakerRepo) FindByID(ctx context.Context, id int64) (*model.Taker, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockTakerRepo) FindByUsername(ctx context.Context, username string) (*model.Taker, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return nil, nil
}
func (m *mockTakerRepo) List(ctx context.Context) ([]*model.Taker, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockTakerRepo) Create(ctx context.Context, taker *model.Taker) error {
	if m.createFn != nil {
		return m.createFn(ctx, taker)
	}
	taker.ID = 1
	return nil
}
func (m *mockTakerRepo) Update(ctx context.Context, taker *model.Taker) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, taker)
	}
	return nil
}
func (m *mockTakerRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockQuizLister struct {
	listByTakerIDFn func(ctx context.Context, takerID int64) ([]*model.Quiz, error)
}

func (m *mockQuizLister) ListByTakerID(ctx context.Context, takerID int64) ([]*model.Quiz, error) {
	if m.listByTakerIDFn != nil {
		return m.listByTakerIDFn(ctx, takerID)
	}
	return nil, nil
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *mockTakerRepo, quizzes *mockQuizLister) *Service {
	if quizzes == nil {
		quizzes = &mockQuizLister{}
	}
	svc := NewService(repo, quizzes)
	svc.hash = func(plain string) (string, error) {
		if len(plain) > 72 {
			return "", auth.ErrPasswordTooLong
		}
		return "hashed:" + plain, nil
	}
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func assertAPIErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %T (%v)", err, err)
	}
	if apiErr.Code != code {
		t.Errorf("Code = %q, want %q", apiErr.Code, code)
	}
}

func validInput() dto.TakerUserNameDTO {
	in := dto.NewTakerUserNameDTO()
	in.Name = "Alice"
	in.Username = "alice"
	in.Password = "p@ssw0rd"
	in.Email = "alice@example.com"
	in.TakerType = "student"
	return in
}

// --- テスト ---

// TestService_Create_HashesPasswordAndKeepsCreatedDate はパスワードがハッシュ化され、
// 構築時の作成日時がそのまま保存されることを検証する。
func TestService_Create_HashesPasswordAndKeepsCreatedDate(t *testing.T) {
	var saved *model.Taker
	repo := &mockTakerRepo{
		createFn: func(ctx context.Context, taker *model.Taker) error {
			saved = taker
			taker.ID = 11
			return nil
		},
	}
	svc := newTestService(repo, nil)

	in := validInput()
	created := in.CreatedDate
	out, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if saved.PasswordHash != "hashed:p@ssw0rd" {
		t.Errorf("PasswordHash = %q", saved.PasswordHash)
	}
	if !saved.CreatedDate.Equal(created) {
		t.Errorf("CreatedDate = %v, want %v", saved.CreatedDate, created)
	}
	if !saved.UpdatedDate.Equal(fixedNow) {
		t.Errorf("UpdatedDate = %v, want %v", saved.UpdatedDate, fixedNow)
	}
	if out.ID != 11 {
		t.Errorf("ID = %d, want 11", out.ID)
	}
	if out.Quizzes == nil {
		t.Error("Quizzes should be an empty slice, not nil")
	}
}

// TestService_Create_StampsZeroCreatedDate はCreatedDate未設定の入力に現在時刻が設定されることを検証する。
func TestService_Create_StampsZeroCreatedDate(t *testing.T) {
	var saved *model.Taker
	repo := &mockTakerRepo{
		createFn: func(ctx context.Context, taker *model.Taker) error {
			saved = taker
			return nil
		},
	}
	svc := newTestService(repo, nil)

	in := validInput()
	in.CreatedDate = time.Time{}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !saved.CreatedDate.Equal(fixedNow) {
		t.Errorf("CreatedDate = %v, want %v", saved.CreatedDate, fixedNow)
	}
}

// TestService_Create_Validation は入力値バリデーションを検証する。
func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *dto.TakerUserNameDTO)
	}{
		{"ユーザー名なし", func(in *dto.TakerUserNameDTO) { in.Username = "  " }},
		{"名前なし", func(in *dto.TakerUserNameDTO) { in.Name = "" }},
		{"パスワードなし", func(in *dto.TakerUserNameDTO) { in.Password = "" }},
		{"メール形式不正", func(in *dto.TakerUserNameDTO) { in.Email = "not-an-email" }},
		{"パスワード長すぎ", func(in *dto.TakerUserNameDTO) { in.Password = fmt.Sprintf("%080d", 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTakerRepo{
				createFn: func(ctx context.Context, taker *model.Taker) error {
					t.Fatal("Create should not be called")
					return nil
				},
			}
			svc := newTestService(repo, nil)
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), in)
			assertAPIErrorCode(t, err, model.ErrCodeValidationFailed)
		})
	}
}

// TestService_Create_DuplicateUsername はユーザー名重複がDUPLICATE_USERNAMEになることを検証する。
func TestService_Create_DuplicateUsername(t *testing.T) {
	repo := &mockTakerRepo{
		createFn: func(ctx context.Context, taker *model.Taker) error {
			return fmt.Errorf("create taker: %w", repository.ErrDuplicate)
		},
	}
	svc := newTestService(repo, nil)

	_, err := svc.Create(context.Background(), validInput())
	assertAPIErrorCode(t, err, model.ErrCodeDuplicateUsername)
}

// TestService_Get_IncludesQuizzes は詳細取得で所有クイズが展開されることを検証する。
func TestService_Get_IncludesQuizzes(t *testing.T) {
	repo := &mockTakerRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Taker, error) {
			return &model.Taker{ID: id, Username: "alice", PasswordHash: "secret"}, nil
		},
	}
	quizzes := &mockQuizLister{
		listByTakerIDFn: func(ctx context.Context, takerID int64) ([]*model.Quiz, error) {
			if takerID != 5 {
				t.Errorf("takerID = %d, want 5", takerID)
			}
			return []*model.Quiz{{ID: 1, TakerID: 5, Title: "Go basics"}}, nil
		},
	}
	svc := newTestService(repo, quizzes)

	out, err := svc.Get(context.Background(), 5)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(out.Quizzes) != 1 || out.Quizzes[0].Title != "Go basics" {
		t.Errorf("Quizzes = %+v", out.Quizzes)
	}
}

// TestService_Get_NotFound は存在しないIDでTAKER_NOT_FOUNDになることを検証する。
func TestService_Get_NotFound(t *testing.T) {
	svc := newTestService(&mockTakerRepo{}, nil)

	_, err := svc.Get(context.Background(), 404)
	assertAPIErrorCode(t, err, model.ErrCodeTakerNotFound)

	_, err = svc.GetByUsername(context.Background(), "ghost")
	assertAPIErrorCode(t, err, model.ErrCodeTakerNotFound)
}

// TestService_Get_RepositoryError はリポジトリのエラーがAPIErrorに変換されないことを検証する。
func TestService_Get_RepositoryError(t *testing.T) {
	repo := &mockTakerRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Taker, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := newTestService(repo, nil)

	_, err := svc.Get(context.Background(), 1)
	var apiErr *model.APIError
	if err == nil || errors.As(err, &apiErr) {
		t.Fatalf("expected plain error, got %v", err)
	}
}

// TestService_Update_KeepsHashWhenPasswordOmitted はパスワード未指定時に既存ハッシュが維持されることを検証する。
func TestService_Update_KeepsHashWhenPasswordOmitted(t *testing.T) {
	original := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var updated *model.Taker
	repo := &mockTakerRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Taker, error) {
			return &model.Taker{ID: id, Username: "alice", PasswordHash: "old-hash", CreatedDate: original}, nil
		},
		updateFn: func(ctx context.Context, taker *model.Taker) error {
			updated = taker
			return nil
		},
	}
	svc := newTestService(repo, nil)

	in := validInput()
	in.Password = ""
	in.Name = "Alice Updated"
	out, err := svc.Update(context.Background(), 3, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PasswordHash != "old-hash" {
		t.Errorf("PasswordHash = %q, want old-hash", updated.PasswordHash)
	}
	if !updated.CreatedDate.Equal(original) {
		t.Errorf("CreatedDate = %v, want %v", updated.CreatedDate, original)
	}
	if !updated.UpdatedDate.Equal(fixedNow) {
		t.Errorf("UpdatedDate = %v, want %v", updated.UpdatedDate, fixedNow)
	}
	if updated.ID != 3 || out.Name != "Alice Updated" {
		t.Errorf("unexpected result: row=%+v out=%+v", updated, out)
	}
}

// TestService_Update_RehashesNewPassword は新しいパスワードが再ハッシュ化されることを検証する。
func TestService_Update_RehashesNewPassword(t *testing.T) {
	var updated *model.Taker
	repo := &mockTakerRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Taker, error) {
			return &model.Taker{ID: id, PasswordHash: "old-hash"}, nil
		},
		updateFn: func(ctx context.Context, taker *model.Taker) error {
			updated = taker
			return nil
		},
	}
	svc := newTestService(repo, nil)

	in := validInput()
	in.Password = "new-pass"
	if _, err := svc.Update(context.Background(), 3, in); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PasswordHash != "hashed:new-pass" {
		t.Errorf("PasswordHash = %q", updated.PasswordHash)
	}
}

// TestService_Update_NotFound は存在しないテイカーの更新でTAKER_NOT_FOUNDになることを検証する。
func TestService_Update_NotFound(t *testing.T) {
	svc := newTestService(&mockTakerRepo{}, nil)

	_, err := svc.Update(context.Background(), 9, validInput())
	assertAPIErrorCode(t, err, model.ErrCodeTakerNotFound)
}

// TestService_Delete はリポジトリエラーの変換を検証する。
func TestService_Delete(t *testing.T) {
	t.Run("成功", func(t *testing.T) {
		called := false
		repo := &mockTakerRepo{
			deleteFn: func(ctx context.Context, id int64) error {
				called = id == 4
				return nil
			},
		}
		if err := newTestService(repo, nil).Delete(context.Background(), 4); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if !called {
			t.Error("repository Delete was not called with id 4")
		}
	})

	t.Run("存在しない", func(t *testing.T) {
		repo := &mockTakerRepo{
			deleteFn: func(ctx context.Context, id int64) error {
				return fmt.Errorf("delete taker: %w", repository.ErrNotFound)
			},
		}
		err := newTestService(repo, nil).Delete(context.Background(), 4)
		assertAPIErrorCode(t, err, model.ErrCodeTakerNotFound)
	})
}

// TestService_List は一覧でクイズを展開しないことを検証する。
func TestService_List(t *testing.T) {
	repo := &mockTakerRepo{
		listFn: func(ctx context.Context) ([]*model.Taker, error) {
			return []*model.Taker{{ID: 1, Username: "a"}, {ID: 2, Username: "b"}}, nil
		},
	}
	quizzes := &mockQuizLister{
		listByTakerIDFn: func(ctx context.Context, takerID int64) ([]*model.Quiz, error) {
			t.Fatal("List should not load quizzes")
			return nil, nil
		},
	}

	out, err := newTestService(repo, quizzes).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
}
