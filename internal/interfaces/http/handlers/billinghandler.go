package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	billingUC "purser/internal/application/billing/usecases"
	"purser/internal/interfaces/http/middleware"
	"purser/internal/shared/logger"
	"purser/internal/shared/utils"
)

type BillingHandler struct {
	checkoutUseCase *billingUC.CreateCheckoutSessionUseCase
	portalUseCase   *billingUC.CreatePortalSessionUseCase
	logger          logger.Interface
}

func NewBillingHandler(
	checkoutUseCase *billingUC.CreateCheckoutSessionUseCase,
	portalUseCase *billingUC.CreatePortalSessionUseCase,
	logger logger.Interface,
) *BillingHandler {
	return &BillingHandler{
		checkoutUseCase: checkoutUseCase,
		portalUseCase:   portalUseCase,
		logger:          logger,
	}
}

type CreateCheckoutSessionRequest struct {
	PlanKey string `json:"plan_key" binding:"required"`
	Locale  string `json:"locale"`
}

type CreateCheckoutSessionResponse struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// CreateCheckoutSession starts a subscription checkout for the caller's
// agency and returns the hosted payment page URL.
func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	var req CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.checkoutUseCase.Execute(c.Request.Context(), billingUC.CreateCheckoutSessionCommand{
		AgencyID: middleware.AgencyID(c),
		PlanKey:  req.PlanKey,
		Locale:   req.Locale,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", CreateCheckoutSessionResponse{
		CheckoutURL: result.CheckoutURL,
		SessionID:   result.SessionID,
	})
}

type CreatePortalSessionResponse struct {
	PortalURL string `json:"portal_url"`
}

// CreatePortalSession opens the billing portal for subscription management.
func (h *BillingHandler) CreatePortalSession(c *gin.Context) {
	result, err := h.portalUseCase.Execute(c.Request.Context(), billingUC.CreatePortalSessionCommand{
		AgencyID: middleware.AgencyID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", CreatePortalSessionResponse{
		PortalURL: result.PortalURL,
	})
}
