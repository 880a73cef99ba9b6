package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	inviteUC "purser/internal/application/invite/usecases"
	"purser/internal/interfaces/http/middleware"
	"purser/internal/shared/logger"
	"purser/internal/shared/utils"
)

type InviteHandler struct {
	createUseCase *inviteUC.CreateInviteUseCase
	acceptUseCase *inviteUC.AcceptInviteUseCase
	revokeUseCase *inviteUC.RevokeInviteUseCase
	listUseCase   *inviteUC.ListInvitesUseCase
	logger        logger.Interface
}

func NewInviteHandler(
	createUseCase *inviteUC.CreateInviteUseCase,
	acceptUseCase *inviteUC.AcceptInviteUseCase,
	revokeUseCase *inviteUC.RevokeInviteUseCase,
	listUseCase *inviteUC.ListInvitesUseCase,
	logger logger.Interface,
) *InviteHandler {
	return &InviteHandler{
		createUseCase: createUseCase,
		acceptUseCase: acceptUseCase,
		revokeUseCase: revokeUseCase,
		listUseCase:   listUseCase,
		logger:        logger,
	}
}

type CreateInviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=admin member"`
}

// Create issues a team invitation. The raw token is emailed to the invitee
// and never appears in any API response.
func (h *InviteHandler) Create(c *gin.Context) {
	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	var invitedBy uint
	if v, ok := c.Get("user_id"); ok {
		invitedBy, _ = v.(uint)
	}

	inv, err := h.createUseCase.Execute(c.Request.Context(), inviteUC.CreateInviteCommand{
		AgencyID:  middleware.AgencyID(c),
		Email:     req.Email,
		Role:      req.Role,
		InvitedBy: invitedBy,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toInviteResponse(inv), "invite sent")
}

type AcceptInviteRequest struct {
	Token    string `json:"token" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// Accept redeems an invitation token and creates the staff account. This is
// the only unauthenticated invite endpoint.
func (h *InviteHandler) Accept(c *gin.Context) {
	var req AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	u, err := h.acceptUseCase.Execute(c.Request.Context(), inviteUC.AcceptInviteCommand{
		Token:    req.Token,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toUserResponse(u), "invite accepted")
}

// Revoke cancels a pending invitation.
func (h *InviteHandler) Revoke(c *gin.Context) {
	err := h.revokeUseCase.Execute(c.Request.Context(), inviteUC.RevokeInviteCommand{
		AgencyID:  middleware.AgencyID(c),
		InviteSID: c.Param("sid"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// List returns the agency's invitations, newest first.
func (h *InviteHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listUseCase.Execute(c.Request.Context(), inviteUC.ListInvitesCommand{
		AgencyID:   middleware.AgencyID(c),
		Pagination: pagination,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]*InviteResponse, 0, len(result.Invites))
	for _, inv := range result.Invites {
		items = append(items, toInviteResponse(inv))
	}

	utils.ListSuccessResponse(c, items, result.Total, pagination.Page, pagination.PageSize)
}
