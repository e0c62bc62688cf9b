package handler

import (
	"context"
	"net/http"

	"github.com/quizwizards/quizapi/internal/dto"
	"github.com/quizwizards/quizapi/internal/model"
)

// QuizServiceInterface はクイズハンドラーが必要とするサービスインターフェース。
type QuizServiceInterface interface {
	Get(ctx context.Context, id int64) (*dto.QuizDTO, error)
	List(ctx context.Context) ([]dto.QuizDTO, error)
	ListByTaker(ctx context.Context, takerID int64) ([]dto.QuizDTO, error)
	Create(ctx context.Context, in dto.QuizDTO) (*dto.QuizDTO, error)
	Update(ctx context.Context, id int64, in dto.QuizDTO) (*dto.QuizDTO, error)
	Delete(ctx context.Context, id int64) error
}

// QuizQuestionLister はクイズに属する設問一覧のインターフェース。
type QuizQuestionLister interface {
	ListByQuiz(ctx context.Context, quizID int64) ([]dto.QuestionDTO, error)
}

// QuizHandler はクイズ管理のHTTPハンドラー。
type QuizHandler struct {
	service   QuizServiceInterface
	questions QuizQuestionLister
}

// NewQuizHandler はQuizHandlerを生成する。
func NewQuizHandler(service QuizServiceInterface, questions QuizQuestionLister) *QuizHandler {
	return &QuizHandler{
		service:   service,
		questions: questions,
	}
}

// List GET /api/quizzes
func (h *QuizHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Get は設問付きでクイズを返す。
// GET /api/quizzes/{id}
func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
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

// Create はクイズを作成する。所有者は常に認証済みテイカーとなり、
// 別のテイカーのtakerIdを指定した場合は403を返す。
// POST /api/quizzes
func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	takerID, ok := requireTakerID(w, r)
	if !ok {
		return
	}

	var in dto.QuizDTO
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.TakerID != 0 && in.TakerID != takerID {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewNotQuizOwnerError())
		return
	}
	in.TakerID = takerID

	out, err := h.service.Create(r.Context(), in)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	w.Header().Set("Location", "/api/quizzes/"+formatID(out.ID))
	writeJSON(w, http.StatusCreated, out)
}

// Update は所有者のみ実行できる。
// PUT /api/quizzes/{id}
func (h *QuizHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizeOwner(w, r)
	if !ok {
		return
	}
	var in dto.QuizDTO
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Delete は所有者のみ実行できる。
// DELETE /api/quizzes/{id}
func (h *QuizHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizeOwner(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListQuestions はクイズに属する設問一覧を返す。
// GET /api/quizzes/{id}/questions
func (h *QuizHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	out, err := h.questions.ListByQuiz(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// authorizeOwner はパスのクイズが認証済みテイカーの所有であることを検証する。
// クイズが存在しない場合は404、所有者が異なる場合は403を書き込む。
func (h *QuizHandler) authorizeOwner(w http.ResponseWriter, r *http.Request) (int64, bool) {
	takerID, ok := requireTakerID(w, r)
	if !ok {
		return 0, false
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return 0, false
	}
	quiz, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return 0, false
	}
	if quiz.TakerID != takerID {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewNotQuizOwnerError())
		return 0, false
	}
	return id, true
}
