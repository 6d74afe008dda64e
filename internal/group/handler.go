package group

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kitty/pkg/middleware"
	"kitty/pkg/response"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service        *Service
	inviteBasePath string
}

// NewHandler creates a new group handler
func NewHandler(service *Service, inviteBasePath string) *Handler {
	return &Handler{service: service, inviteBasePath: inviteBasePath}
}

// Create handles POST /groups
// @Summary      Create a group
// @Description  Create a shared group with the caller as its admin member
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} response.APIResponse{data=GroupResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	g, err := h.service.Create(r.Context(), callerID, &req)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			response.ValidationError(w, "name", err.Error())
			return
		}
		response.InternalError(w, "Failed to create group")
		return
	}

	response.JSON(w, http.StatusCreated, g.ToResponse())
}

// List handles GET /groups
// @Summary      List my groups
// @Tags         groups
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]GroupResponse}
// @Router       /groups [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groups, err := h.service.List(r.Context(), callerID)
	if err != nil {
		response.InternalError(w, "Failed to list groups")
		return
	}

	response.JSON(w, http.StatusOK, groups)
}

// Get handles GET /groups/{groupID}
// @Summary      Get group detail
// @Description  Group with resolved members and the active invitation token
// @Tags         groups
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	groupID := chi.URLParam(r, "groupID")

	detail, err := h.service.Get(r.Context(), groupID, callerID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get group")
		return
	}

	resp := detail.Group.ToResponse()
	resp.Members = make([]*MemberResponse, len(detail.Members))
	for i, m := range detail.Members {
		member := &MemberResponse{
			UserID:   m.Member.UserID,
			Name:     m.Identity.DisplayName,
			Email:    m.Identity.Email,
			PhotoURL: m.Identity.PhotoURL,
			Role:     m.Member.Role,
		}
		if !m.Member.JoinedAt.IsZero() {
			member.JoinedAt = m.Member.JoinedAt.UTC().Format(time.RFC3339)
		}
		resp.Members[i] = member
	}
	if detail.InvitationToken != "" {
		resp.InvitationToken = detail.InvitationToken
		resp.InvitationLink = h.inviteBasePath + "/" + detail.InvitationToken
	}

	response.JSON(w, http.StatusOK, resp)
}

// Update handles PUT /groups/{groupID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	groupID := chi.URLParam(r, "groupID")

	var req UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	g, err := h.service.Update(r.Context(), groupID, callerID, &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to update group")
		return
	}

	response.JSON(w, http.StatusOK, g.ToResponse())
}

// Delete handles DELETE /groups/{groupID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	groupID := chi.URLParam(r, "groupID")

	if err := h.service.Delete(r.Context(), groupID, callerID); err != nil {
		h.writeServiceError(w, err, "Failed to delete group")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Group deleted successfully"})
}

// RemoveMember handles DELETE /groups/{groupID}/members/{userID}
// @Summary      Remove a member
// @Description  Creator-only; removing yourself is rejected, use leave
// @Tags         groups
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        userID path string true "Member user ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /groups/{groupID}/members/{userID} [delete]
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	groupID := chi.URLParam(r, "groupID")
	targetID := chi.URLParam(r, "userID")

	if err := h.service.RemoveMember(r.Context(), groupID, callerID, targetID); err != nil {
		h.writeServiceError(w, err, "Failed to remove member")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Member removed successfully"})
}

// Leave handles POST /groups/{groupID}/leave
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	groupID := chi.URLParam(r, "groupID")

	if err := h.service.Leave(r.Context(), groupID, callerID); err != nil {
		h.writeServiceError(w, err, "Failed to leave group")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Left group successfully"})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrGroupNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotMember),
		errors.Is(err, ErrNotCreator),
		errors.Is(err, ErrCannotRemoveSelf),
		errors.Is(err, ErrCreatorCannotLeave):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
