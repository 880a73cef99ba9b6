package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	agencyUC "purser/internal/application/agency/usecases"
	"purser/internal/domain/agency"
	"purser/internal/interfaces/http/middleware"
	"purser/internal/shared/logger"
	"purser/internal/shared/utils"
)

type AgencyHandler struct {
	registerUseCase *agencyUC.RegisterAgencyUseCase
	getUseCase      *agencyUC.GetAgencyUseCase
	updateUseCase   *agencyUC.UpdateAgencyUseCase
	logger          logger.Interface
}

func NewAgencyHandler(
	registerUseCase *agencyUC.RegisterAgencyUseCase,
	getUseCase *agencyUC.GetAgencyUseCase,
	updateUseCase *agencyUC.UpdateAgencyUseCase,
	logger logger.Interface,
) *AgencyHandler {
	return &AgencyHandler{
		registerUseCase: registerUseCase,
		getUseCase:      getUseCase,
		updateUseCase:   updateUseCase,
		logger:          logger,
	}
}

type RegisterAgencyRequest struct {
	Name         string `json:"name" binding:"required"`
	BillingEmail string `json:"billing_email" binding:"required,email"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	AdminName    string `json:"admin_name" binding:"required"`
	AdminEmail   string `json:"admin_email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
}

type RegisterAgencyResponse struct {
	Agency *AgencyResponse `json:"agency"`
	Admin  *UserResponse   `json:"admin"`
}

// Register signs up a new agency with its first admin account.
func (h *AgencyHandler) Register(c *gin.Context) {
	var req RegisterAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), agencyUC.RegisterAgencyCommand{
		Name:         req.Name,
		BillingEmail: req.BillingEmail,
		ContactEmail: req.ContactEmail,
		AdminName:    req.AdminName,
		AdminEmail:   req.AdminEmail,
		Password:     req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, RegisterAgencyResponse{
		Agency: toAgencyResponse(result.Agency),
		Admin:  toUserResponse(result.Admin),
	}, "agency registered")
}

// Get returns the caller's own agency.
func (h *AgencyHandler) Get(c *gin.Context) {
	ag, err := h.getUseCase.Execute(c.Request.Context(), agencyUC.GetAgencyCommand{
		AgencyID: middleware.AgencyID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toAgencyResponse(ag))
}

type UpdateAgencyRequest struct {
	Name         *string `json:"name"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	Branding     *struct {
		DisplayName string `json:"display_name"`
		AccentColor string `json:"accent_color"`
		LogoURL     string `json:"logo_url"`
	} `json:"branding"`
}

// Update changes the agency's profile fields. Billing state is not
// reachable from here; only the checkout and webhook flows touch it.
func (h *AgencyHandler) Update(c *gin.Context) {
	var req UpdateAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	cmd := agencyUC.UpdateAgencyCommand{
		AgencyID:     middleware.AgencyID(c),
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
	}
	if req.Branding != nil {
		cmd.Branding = &agency.Branding{
			DisplayName: req.Branding.DisplayName,
			AccentColor: req.Branding.AccentColor,
			LogoURL:     req.Branding.LogoURL,
		}
	}

	ag, err := h.updateUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "agency updated", toAgencyResponse(ag))
}
