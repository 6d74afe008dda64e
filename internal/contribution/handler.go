package contribution

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kitty/internal/group"
	"kitty/pkg/middleware"
	"kitty/pkg/response"
)

// Handler handles HTTP requests for contribution operations
type Handler struct {
	service *Service
}

// NewHandler creates a new contribution handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for contribution endpoints, mounted under
// /groups/{groupID}/contributions
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /groups/{groupID}/contributions
// @Summary      Record a contribution
// @Description  Deposit money into the group pool as the caller
// @Tags         contributions
// @Accept       json
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        request body CreateContributionRequest true "Contribution"
// @Success      201 {object} response.APIResponse{data=ContributionResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /groups/{groupID}/contributions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	groupID := chi.URLParam(r, "groupID")

	var req CreateContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	c, err := h.service.Add(r.Context(), groupID, callerID, &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to record contribution")
		return
	}

	response.JSON(w, http.StatusCreated, c.ToResponse())
}

// List handles GET /groups/{groupID}/contributions
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	groupID := chi.URLParam(r, "groupID")

	contributions, err := h.service.List(r.Context(), groupID, callerID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to list contributions")
		return
	}

	responses := make([]*ContributionResponse, len(contributions))
	for i, c := range contributions {
		responses[i] = c.ToResponse()
	}

	response.JSON(w, http.StatusOK, responses)
}

// Update handles PUT /groups/{groupID}/contributions/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	groupID := chi.URLParam(r, "groupID")
	id := chi.URLParam(r, "id")

	var req UpdateContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	c, err := h.service.Update(r.Context(), groupID, callerID, id, &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to update contribution")
		return
	}

	response.JSON(w, http.StatusOK, c.ToResponse())
}

// Delete handles DELETE /groups/{groupID}/contributions/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	groupID := chi.URLParam(r, "groupID")
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), groupID, callerID, id); err != nil {
		h.writeServiceError(w, err, "Failed to delete contribution")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Contribution deleted successfully"})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, group.ErrGroupNotFound), errors.Is(err, ErrContributionNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, group.ErrNotMember), errors.Is(err, ErrNotContributor):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrInvalidAmount):
		response.ValidationError(w, "amount", err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
