package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/quizwizards/quizapi/internal/dto"
	"github.com/quizwizards/quizapi/internal/model"
)

// QuestionServiceInterface は設問ハンドラーが必要とするサービスインターフェース。
type QuestionServiceInterface interface {
	Get(ctx context.Context, id int64) (*dto.QuestionDTO, error)
	List(ctx context.Context) ([]dto.QuestionDTO, error)
	ListByQuiz(ctx context.Context, quizID int64) ([]dto.QuestionDTO, error)
	Create(ctx context.Context, in dto.QuestionDTO) (*dto.QuestionDTO, error)
	Update(ctx context.Context, id int64, in dto.QuestionDTO) (*dto.QuestionDTO, error)
	Delete(ctx context.Context, id int64) error
}

// QuizOwnerLookup は設問の親クイズの所有者を確認するためのインターフェース。
type QuizOwnerLookup interface {
	Get(ctx context.Context, id int64) (*dto.QuizDTO, error)
}

// QuestionHandler は設問管理のHTTPハンドラー。
// 設問の作成・更新・削除は親クイズの所有者のみ行える。
type QuestionHandler struct {
	service QuestionServiceInterface
	quizzes QuizOwnerLookup
}

// NewQuestionHandler はQuestionHandlerを生成する。
func NewQuestionHandler(service QuestionServiceInterface, quizzes QuizOwnerLookup) *QuestionHandler {
	return &QuestionHandler{service: service, quizzes: quizzes}
}

// List GET /api/questions
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Get GET /api/questions/{id}
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	out, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Create は設問を作成する。pointsが省略された場合は既定の配点になる。
// POST /api/questions
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	takerID, ok := requireTakerID(w, r)
	if !ok {
		return
	}
	in := dto.NewQuestionDTO()
	if !decodeJSON(w, r, &in) {
		return
	}
	// quizIdなしはサービス層のバリデーションで400になる
	if in.QuizID > 0 && !h.authorizeQuiz(w, r, takerID, in.QuizID) {
		return
	}
	out, err := h.service.Create(r.Context(), in)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	w.Header().Set("Location", "/api/questions/"+formatID(out.ID))
	writeJSON(w, http.StatusCreated, out)
}

// Update PUT /api/questions/{id}
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	takerID, ok := requireTakerID(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	in := dto.NewQuestionDTO()
	if !decodeJSON(w, r, &in) {
		return
	}
	current, ok := h.authorizeQuestion(w, r, takerID, id)
	if !ok {
		return
	}
	// 別のクイズへ移す場合は移動先の所有者も確認する
	if in.QuizID > 0 && in.QuizID != current.QuizID && !h.authorizeQuiz(w, r, takerID, in.QuizID) {
		return
	}
	out, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Delete DELETE /api/questions/{id}
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	takerID, ok := requireTakerID(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	if _, ok := h.authorizeQuestion(w, r, takerID, id); !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorizeQuestion は設問を取得し、その親クイズが認証済みテイカーの所有であることを検証する。
func (h *QuestionHandler) authorizeQuestion(w http.ResponseWriter, r *http.Request, takerID, id int64) (*dto.QuestionDTO, bool) {
	current, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return nil, false
	}
	if !h.authorizeQuiz(w, r, takerID, current.QuizID) {
		return nil, false
	}
	return current, true
}

// authorizeQuiz はクイズの所有者が認証済みテイカーであることを検証する。
// 参照先のクイズが存在しない場合はREFERENCE_NOT_FOUND（400）を書き込む。
func (h *QuestionHandler) authorizeQuiz(w http.ResponseWriter, r *http.Request, takerID, quizID int64) bool {
	quiz, err := h.quizzes.Get(r.Context(), quizID)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.Code == model.ErrCodeQuizNotFound {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewReferenceNotFoundError("quizId"))
			return false
		}
		handleServiceError(w, err)
		return false
	}
	if quiz.TakerID != takerID {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewNotQuizOwnerError())
		return false
	}
	return true
}
