package handlers

import (
	"github.com/gin-gonic/gin"

	userUC "purser/internal/application/user/usecases"
	"purser/internal/interfaces/http/middleware"
	"purser/internal/shared/logger"
	"purser/internal/shared/utils"
)

type TeamHandler struct {
	listMembersUseCase *userUC.ListTeamMembersUseCase
	logger             logger.Interface
}

func NewTeamHandler(listMembersUseCase *userUC.ListTeamMembersUseCase, logger logger.Interface) *TeamHandler {
	return &TeamHandler{
		listMembersUseCase: listMembersUseCase,
		logger:             logger,
	}
}

// ListMembers returns the agency's staff accounts.
func (h *TeamHandler) ListMembers(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listMembersUseCase.Execute(c.Request.Context(), userUC.ListTeamMembersCommand{
		AgencyID:   middleware.AgencyID(c),
		Pagination: pagination,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]*UserResponse, 0, len(result.Users))
	for _, u := range result.Users {
		items = append(items, toUserResponse(u))
	}

	utils.ListSuccessResponse(c, items, result.Total, pagination.Page, pagination.PageSize)
}
