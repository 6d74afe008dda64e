package activity

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kitty/internal/group"
	"kitty/pkg/middleware"
	"kitty/pkg/response"
)

// Handler handles activity feed HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new activity handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get godoc
// @Summary Get group activity feed
// @Description Returns the most recent contributions and expenses merged into one feed, newest first
// @Tags activity
// @Produce json
// @Param groupID path string true "Group ID"
// @Success 200 {object} response.APIResponse{data=[]EntryResponse}
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Security BearerAuth
// @Router /groups/{groupID}/activity [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	groupID := chi.URLParam(r, "groupID")

	feed, err := h.service.Feed(r.Context(), groupID, callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, feed)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, group.ErrGroupNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, group.ErrNotMember):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, "Failed to load activity")
	}
}
