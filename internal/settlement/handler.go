package settlement

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kitty/internal/group"
	"kitty/pkg/middleware"
	"kitty/pkg/response"
)

// Handler handles settlement HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get godoc
// @Summary Get settlement plan
// @Description Returns net balances and a minimized list of payments that settles the group
// @Tags settlement
// @Produce json
// @Param groupID path string true "Group ID"
// @Success 200 {object} response.APIResponse{data=SettlementResponse}
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Security BearerAuth
// @Router /groups/{groupID}/settlement [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	groupID := chi.URLParam(r, "groupID")

	plan, err := h.service.Plan(r.Context(), groupID, callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, plan)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, group.ErrGroupNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, group.ErrNotMember):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, "Failed to compute settlement")
	}
}
