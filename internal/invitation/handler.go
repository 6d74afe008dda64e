package invitation

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kitty/internal/group"
	"kitty/pkg/middleware"
	"kitty/pkg/response"
)

// Handler handles HTTP requests for invitation operations
type Handler struct {
	service        *Service
	inviteBasePath string
}

// NewHandler creates a new invitation handler
func NewHandler(service *Service, inviteBasePath string) *Handler {
	return &Handler{service: service, inviteBasePath: inviteBasePath}
}

// Create handles POST /groups/{groupID}/invitations
// @Summary      Create an invitation
// @Description  Mint a join token for the group (creator only, 7-day expiry)
// @Tags         invitations
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Success      201 {object} response.APIResponse{data=InvitationResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID}/invitations [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	groupID := chi.URLParam(r, "groupID")

	inv, err := h.service.Create(r.Context(), groupID, callerID)
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, group.ErrNotCreator) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create invitation")
		return
	}

	response.JSON(w, http.StatusCreated, &InvitationResponse{
		Token:     inv.Token,
		Link:      h.inviteBasePath + "/" + inv.Token,
		ExpiresAt: inv.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Verify handles GET /invitations/{token}/verify (public)
// @Summary      Verify an invitation
// @Description  Check a join token and preview its group; no auth required
// @Tags         invitations
// @Produce      json
// @Param        token path string true "Invitation token"
// @Success      200 {object} response.APIResponse{data=VerifyResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /invitations/{token}/verify [get]
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	_, g, err := h.service.Verify(r.Context(), token)
	if err != nil {
		h.writeServiceError(w, err, "Failed to verify invitation")
		return
	}

	response.JSON(w, http.StatusOK, &VerifyResponse{
		Valid: true,
		Group: &GroupSummary{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			Icon:        g.Icon,
			MemberCount: len(g.MemberIDs),
		},
	})
}

// Accept handles POST /invitations/{token}/accept
// @Summary      Accept an invitation
// @Description  Join the group behind the token; accepting twice is a no-op
// @Tags         invitations
// @Produce      json
// @Param        token path string true "Invitation token"
// @Success      200 {object} response.APIResponse{data=AcceptResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /invitations/{token}/accept [post]
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	token := chi.URLParam(r, "token")

	groupID, err := h.service.Accept(r.Context(), token, callerID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to accept invitation")
		return
	}

	response.JSON(w, http.StatusOK, &AcceptResponse{GroupID: groupID})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvitationNotFound), errors.Is(err, group.ErrGroupNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrInvitationExpired):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
