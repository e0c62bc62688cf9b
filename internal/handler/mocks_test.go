package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/quizwizards/quizapi/internal/dto"
	"github.com/quizwizards/quizapi/internal/middleware"
)

// --- モック定義 ---

type mockTakerService struct {
	getFn           func(ctx context.Context, id int64) (*dto.TakerDTO, error)
	getByUsernameFn func(ctx context.Context, username string) (*dto.TakerDTO, error)
	listFn          func(ctx context.Context) ([]dto.TakerDTO, error)
	createFn        func(ctx context.Context, in dto.TakerUserNameDTO) (*dto.TakerDTO, error)
	updateFn        func(ctx context.Context, id int64, in dto.TakerUserNameDTO) (*dto.TakerDTO, error)
	deleteFn        func(ctx context.Context, id int64) error
}

func (m *mockTakerService) Get(ctx context.Context, id int64) (*dto.TakerDTO, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &dto.TakerDTO{ID: id}, nil
}

func (m *mockTakerService) GetByUsername(ctx context.Context, username string) (*dto.TakerDTO, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return &dto.TakerDTO{Username: username}, nil
}

func (m *mockTakerService) List(ctx context.Context) ([]dto.TakerDTO, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []dto.TakerDTO{}, nil
}

func (m *mockTakerService) Create(ctx context.Context, in dto.TakerUserNameDTO) (*dto.TakerDTO, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return &dto.TakerDTO{ID: 1, Username: in.Username}, nil
}

func (m *mockTakerService) Update(ctx context.Context, id int64, in dto.TakerUserNameDTO) (*dto.TakerDTO, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, in)
	}
	return &dto.TakerDTO{ID: id}, nil
}

func (m *mockTakerService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockTopicService struct {
	getFn    func(ctx context.Context, id int64) (*dto.TopicDTO, error)
	listFn   func(ctx context.Context) ([]dto.TopicDTO, error)
	createFn func(ctx context.Context, in dto.TopicDTO) (*dto.TopicDTO, error)
	updateFn func(ctx context.Context, id int64, in dto.TopicDTO) (*dto.TopicDTO, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockTopicService) Get(ctx context.Context, id int64) (*dto.TopicDTO, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &dto.TopicDTO{ID: id}, nil
}

func (m *mockTopicService) List(ctx context.Context) ([]dto.TopicDTO, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []dto.TopicDTO{}, nil
}

func (m *mockTopicService) Create(ctx context.Context, in dto.TopicDTO) (*dto.TopicDTO, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	in.ID = 1
	return &in, nil
}

func (m *mockTopicService) Update(ctx context.Context, id int64, in dto.TopicDTO) (*dto.TopicDTO, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, in)
	}
	in.ID = id
	return &in, nil
}

func (m *mockTopicService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockQuizService はgetFnが未設定の場合、どのIDのクイズもownerIDの所有として返す。
type mockQuizService struct {
	ownerID       int64
	getFn         func(ctx context.Context, id int64) (*dto.QuizDTO, error)
	listFn        func(ctx context.Context) ([]dto.QuizDTO, error)
	listByTakerFn func(ctx context.Context, takerID int64) ([]dto.QuizDTO, error)
	createFn      func(ctx context.Context, in dto.QuizDTO) (*dto.QuizDTO, error)
	updateFn      func(ctx context.Context, id int64, in dto.QuizDTO) (*dto.QuizDTO, error)
	deleteFn      func(ctx context.Context, id int64) error
}

func (m *mockQuizService) Get(ctx context.Context, id int64) (*dto.QuizDTO, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &dto.QuizDTO{ID: id, TakerID: m.ownerID}, nil
}

func (m *mockQuizService) List(ctx context.Context) ([]dto.QuizDTO, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []dto.QuizDTO{}, nil
}

func (m *mockQuizService) ListByTaker(ctx context.Context, takerID int64) ([]dto.QuizDTO, error) {
	if m.listByTakerFn != nil {
		return m.listByTakerFn(ctx, takerID)
	}
	return []dto.QuizDTO{}, nil
}

func (m *mockQuizService) Create(ctx context.Context, in dto.QuizDTO) (*dto.QuizDTO, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	in.ID = 1
	return &in, nil
}

func (m *mockQuizService) Update(ctx context.Context, id int64, in dto.QuizDTO) (*dto.QuizDTO, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, in)
	}
	in.ID = id
	return &in, nil
}

func (m *mockQuizService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockQuestionService struct {
	getFn        func(ctx context.Context, id int64) (*dto.QuestionDTO, error)
	listFn       func(ctx context.Context) ([]dto.QuestionDTO, error)
	listByQuizFn func(ctx context.Context, quizID int64) ([]dto.QuestionDTO, error)
	createFn     func(ctx context.Context, in dto.QuestionDTO) (*dto.QuestionDTO, error)
	updateFn     func(ctx context.Context, id int64, in dto.QuestionDTO) (*dto.QuestionDTO, error)
	deleteFn     func(ctx context.Context, id int64) error
}

func (m *mockQuestionService) Get(ctx context.Context, id int64) (*dto.QuestionDTO, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &dto.QuestionDTO{ID: id}, nil
}

func (m *mockQuestionService) List(ctx context.Context) ([]dto.QuestionDTO, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []dto.QuestionDTO{}, nil
}

func (m *mockQuestionService) ListByQuiz(ctx context.Context, quizID int64) ([]dto.QuestionDTO, error) {
	if m.listByQuizFn != nil {
		return m.listByQuizFn(ctx, quizID)
	}
	return []dto.QuestionDTO{}, nil
}

func (m *mockQuestionService) Create(ctx context.Context, in dto.QuestionDTO) (*dto.QuestionDTO, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	in.ID = 1
	return &in, nil
}

func (m *mockQuestionService) Update(ctx context.Context, id int64, in dto.QuestionDTO) (*dto.QuestionDTO, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, in)
	}
	in.ID = id
	return &in, nil
}

func (m *mockQuestionService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockLoginService struct {
	loginFn func(ctx context.Context, in dto.LoginDTO) (*dto.TokenDTO, error)
}

func (m *mockLoginService) Login(ctx context.Context, in dto.LoginDTO) (*dto.TokenDTO, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, in)
	}
	return &dto.TokenDTO{Token: "token", TokenType: "Bearer"}, nil
}

// --- テストヘルパー ---

// withURLParams はchiのURLパラメータを設定したリクエストを返す。
func withURLParams(req *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// asTaker は認証済みテイカーIDをコンテキストに設定したリクエストを返す。
func asTaker(req *http.Request, takerID int64) *http.Request {
	return req.WithContext(middleware.ContextWithTakerID(req.Context(), takerID))
}

// decodeErrorCode はエラーレスポンスのcodeを取り出す。
func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body middleware.ErrorResponseBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body.Code
}
