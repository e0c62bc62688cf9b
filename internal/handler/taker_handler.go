package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizwizards/quizapi/internal/dto"
	"github.com/quizwizards/quizapi/internal/model"
)

// TakerServiceInterface はテイカーハンドラーが必要とするサービスインターフェース。
type TakerServiceInterface interface {
	Get(ctx context.Context, id int64) (*dto.TakerDTO, error)
	GetByUsername(ctx context.Context, username string) (*dto.TakerDTO, error)
	List(ctx context.Context) ([]dto.TakerDTO, error)
	Create(ctx context.Context, in dto.TakerUserNameDTO) (*dto.TakerDTO, error)
	Update(ctx context.Context, id int64, in dto.TakerUserNameDTO) (*dto.TakerDTO, error)
	Delete(ctx context.Context, id int64) error
}

// TakerQuizLister はテイカー所有クイズ一覧のインターフェース。
type TakerQuizLister interface {
	ListByTaker(ctx context.Context, takerID int64) ([]dto.QuizDTO, error)
}

// TakerHandler はテイカー管理のHTTPハンドラー。
type TakerHandler struct {
	service TakerServiceInterface
	quizzes TakerQuizLister
}

// NewTakerHandler はTakerHandlerを生成する。
func NewTakerHandler(service TakerServiceInterface, quizzes TakerQuizLister) *TakerHandler {
	return &TakerHandler{
		service: service,
		quizzes: quizzes,
	}
}

// Register はテイカーを登録する。認証不要。
// POST /api/takers
func (h *TakerHandler) Register(w http.ResponseWriter, r *http.Request) {
	in := dto.NewTakerUserNameDTO()
	if !decodeJSON(w, r, &in) {
		return
	}

	out, err := h.service.Create(r.Context(), in)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/api/takers/"+formatID(out.ID))
	writeJSON(w, http.StatusCreated, out)
}

// List はテイカー一覧を返す。
// GET /api/takers
func (h *TakerHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Get は指定IDのテイカーを所有クイズ付きで返す。
// GET /api/takers/{id}
func (h *TakerHandler) Get(w http.ResponseWriter, r *http.Request) {
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

// GetByUsername はユーザー名でテイカーを返す。
// GET /api/takers/username/{username}
func (h *TakerHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("username", "必須項目です"))
		return
	}

	out, err := h.service.GetByUsername(r.Context(), username)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Update はテイカー情報を更新する。自分自身のみ更新できる。
// PUT /api/takers/{id}
func (h *TakerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizeSelf(w, r)
	if !ok {
		return
	}

	var in dto.TakerUserNameDTO
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

// Delete はテイカーを削除する。自分自身のみ削除できる。
// DELETE /api/takers/{id}
func (h *TakerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizeSelf(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListQuizzes はテイカーが所有するクイズ一覧を返す。
// GET /api/takers/{id}/quizzes
func (h *TakerHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	out, err := h.quizzes.ListByTaker(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// authorizeSelf はパスのIDが認証済みテイカー自身であることを検証する。
func (h *TakerHandler) authorizeSelf(w http.ResponseWriter, r *http.Request) (int64, bool) {
	takerID, ok := requireTakerID(w, r)
	if !ok {
		return 0, false
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return 0, false
	}
	if id != takerID {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
		return 0, false
	}
	return id, true
}
