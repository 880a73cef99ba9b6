package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userUC "purser/internal/application/user/usecases"
	"purser/internal/shared/logger"
	"purser/internal/shared/utils"
)

type AuthHandler struct {
	loginUseCase *userUC.LoginUseCase
	logger       logger.Interface
}

func NewAuthHandler(loginUseCase *userUC.LoginUseCase, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		loginUseCase: loginUseCase,
		logger:       logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// Login authenticates a staff member and returns an access token. The token
// is also set as a cookie so browser clients need no extra handling.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), userUC.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", result.Token, 3600, "/", "", false, true)

	utils.SuccessResponse(c, http.StatusOK, "login successful", LoginResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	})
}
