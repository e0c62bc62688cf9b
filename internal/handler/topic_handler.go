package handler

import (
	"context"
	"net/http"

	"github.com/quizwizards/quizapi/internal/dto"
)

// TopicServiceInterface はトピックハンドラーが必要とするサービスインターフェース。
type TopicServiceInterface interface {
	Get(ctx context.Context, id int64) (*dto.TopicDTO, error)
	List(ctx context.Context) ([]dto.TopicDTO, error)
	Create(ctx context.Context, in dto.TopicDTO) (*dto.TopicDTO, error)
	Update(ctx context.Context, id int64, in dto.TopicDTO) (*dto.TopicDTO, error)
	Delete(ctx context.Context, id int64) error
}

// TopicHandler はトピック管理のHTTPハンドラー。
type TopicHandler struct {
	service TopicServiceInterface
}

// NewTopicHandler はTopicHandlerを生成する。
func NewTopicHandler(service TopicServiceInterface) *TopicHandler {
	return &TopicHandler{service: service}
}

// List GET /api/topics
func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Get GET /api/topics/{id}
func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
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

// Create POST /api/topics
func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in dto.TopicDTO
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.service.Create(r.Context(), in)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	w.Header().Set("Location", "/api/topics/"+formatID(out.ID))
	writeJSON(w, http.StatusCreated, out)
}

// Update PUT /api/topics/{id}
func (h *TopicHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	var in dto.TopicDTO
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

// Delete DELETE /api/topics/{id}
func (h *TopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
