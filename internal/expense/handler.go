package expense

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kitty/internal/group"
	"kitty/pkg/middleware"
	"kitty/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints, mounted under
// /groups/{groupID}/expenses
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /groups/{groupID}/expenses
// @Summary      Record a shared expense
// @Description  paid_by defaults to the caller, split_among to all members
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        request body CreateExpenseRequest true "Expense"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /groups/{groupID}/expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	groupID := chi.URLParam(r, "groupID")

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	e, err := h.service.Add(r.Context(), groupID, callerID, &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to record expense")
		return
	}

	response.JSON(w, http.StatusCreated, e.ToResponse())
}

// List handles GET /groups/{groupID}/expenses
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	groupID := chi.URLParam(r, "groupID")

	expenses, err := h.service.List(r.Context(), groupID, callerID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to list expenses")
		return
	}

	responses := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = e.ToResponse()
	}

	response.JSON(w, http.StatusOK, responses)
}

// Update handles PUT /groups/{groupID}/expenses/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	groupID := chi.URLParam(r, "groupID")
	id := chi.URLParam(r, "id")

	var req UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	e, err := h.service.Update(r.Context(), groupID, callerID, id, &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to update expense")
		return
	}

	response.JSON(w, http.StatusOK, e.ToResponse())
}

// Delete handles DELETE /groups/{groupID}/expenses/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	groupID := chi.URLParam(r, "groupID")
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), groupID, callerID, id); err != nil {
		h.writeServiceError(w, err, "Failed to delete expense")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, group.ErrGroupNotFound), errors.Is(err, ErrExpenseNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, group.ErrNotMember), errors.Is(err, ErrNotAuthor):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrInvalidAmount):
		response.ValidationError(w, "amount", err.Error())
	case errors.Is(err, ErrDescriptionMissing):
		response.ValidationError(w, "description", err.Error())
	case errors.Is(err, ErrCategoryMissing):
		response.ValidationError(w, "category", err.Error())
	case errors.Is(err, ErrEmptySplit):
		response.ValidationError(w, "split_among", err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
