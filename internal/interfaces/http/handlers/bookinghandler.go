package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	bookingUC "purser/internal/application/booking/usecases"
	"purser/internal/interfaces/http/middleware"
	"purser/internal/shared/logger"
	"purser/internal/shared/utils"
)

type BookingHandler struct {
	createUseCase       *bookingUC.CreateBookingUseCase
	getUseCase          *bookingUC.GetBookingUseCase
	listUseCase         *bookingUC.ListBookingsUseCase
	addCabinUseCase     *bookingUC.AddCabinUseCase
	setDeadlinesUseCase *bookingUC.SetCabinDeadlinesUseCase
	applyPaymentUseCase *bookingUC.ApplyPaymentUseCase
	attributeUseCase    *bookingUC.AttributeGeneralPaymentUseCase
	listPaymentsUseCase *bookingUC.ListPaymentsUseCase
	logger              logger.Interface
}

func NewBookingHandler(
	createUseCase *bookingUC.CreateBookingUseCase,
	getUseCase *bookingUC.GetBookingUseCase,
	listUseCase *bookingUC.ListBookingsUseCase,
	addCabinUseCase *bookingUC.AddCabinUseCase,
	setDeadlinesUseCase *bookingUC.SetCabinDeadlinesUseCase,
	applyPaymentUseCase *bookingUC.ApplyPaymentUseCase,
	attributeUseCase *bookingUC.AttributeGeneralPaymentUseCase,
	listPaymentsUseCase *bookingUC.ListPaymentsUseCase,
	logger logger.Interface,
) *BookingHandler {
	return &BookingHandler{
		createUseCase:       createUseCase,
		getUseCase:          getUseCase,
		listUseCase:         listUseCase,
		addCabinUseCase:     addCabinUseCase,
		setDeadlinesUseCase: setDeadlinesUseCase,
		applyPaymentUseCase: applyPaymentUseCase,
		attributeUseCase:    attributeUseCase,
		listPaymentsUseCase: listPaymentsUseCase,
		logger:              logger,
	}
}

type DeadlineRequest struct {
	Label     string    `json:"label" binding:"required"`
	DueDate   time.Time `json:"due_date" binding:"required"`
	AmountCAD int64     `json:"amount_cad" binding:"required,gt=0"`
}

type CabinRequest struct {
	CabinNumber   string            `json:"cabin_number" binding:"required"`
	SubtotalCAD   int64             `json:"subtotal_cad" binding:"required,gt=0"`
	GratuitiesCAD int64             `json:"gratuities_cad" binding:"gte=0"`
	Deadlines     []DeadlineRequest `json:"deadlines" binding:"dive"`
}

type CreateBookingRequest struct {
	GroupName    string         `json:"group_name" binding:"required"`
	FamilyName   string         `json:"family_name" binding:"required"`
	ContactEmail string         `json:"contact_email" binding:"omitempty,email"`
	Cabins       []CabinRequest `json:"cabins" binding:"required,min=1,dive"`
}

func toCabinInput(req CabinRequest) bookingUC.CabinInput {
	deadlines := make([]bookingUC.DeadlineInput, 0, len(req.Deadlines))
	for _, d := range req.Deadlines {
		deadlines = append(deadlines, bookingUC.DeadlineInput{
			Label:     d.Label,
			DueDate:   d.DueDate,
			AmountCAD: d.AmountCAD,
		})
	}
	return bookingUC.CabinInput{
		CabinNumber:   req.CabinNumber,
		SubtotalCAD:   req.SubtotalCAD,
		GratuitiesCAD: req.GratuitiesCAD,
		Deadlines:     deadlines,
	}
}

// Create opens a booking with its initial cabin accounts.
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	cabins := make([]bookingUC.CabinInput, 0, len(req.Cabins))
	for _, cab := range req.Cabins {
		cabins = append(cabins, toCabinInput(cab))
	}

	b, err := h.createUseCase.Execute(c.Request.Context(), bookingUC.CreateBookingCommand{
		AgencyID:     middleware.AgencyID(c),
		GroupName:    req.GroupName,
		FamilyName:   req.FamilyName,
		ContactEmail: req.ContactEmail,
		Cabins:       cabins,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toBookingResponse(b), "booking created")
}

// Get returns one booking with its full cabin ledger.
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.getUseCase.Execute(c.Request.Context(), bookingUC.GetBookingCommand{
		AgencyID:   middleware.AgencyID(c),
		BookingSID: c.Param("sid"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toBookingResponse(b))
}

// List returns the agency's bookings, paginated.
func (h *BookingHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listUseCase.Execute(c.Request.Context(), bookingUC.ListBookingsCommand{
		AgencyID:   middleware.AgencyID(c),
		Pagination: pagination,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]*BookingResponse, 0, len(result.Bookings))
	for _, b := range result.Bookings {
		items = append(items, toBookingResponse(b))
	}

	utils.ListSuccessResponse(c, items, result.Total, pagination.Page, pagination.PageSize)
}

// AddCabin appends a cabin account to an existing booking.
func (h *BookingHandler) AddCabin(c *gin.Context) {
	var req CabinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	b, err := h.addCabinUseCase.Execute(c.Request.Context(), bookingUC.AddCabinCommand{
		AgencyID:   middleware.AgencyID(c),
		BookingSID: c.Param("sid"),
		Cabin:      toCabinInput(req),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "cabin added", toBookingResponse(b))
}

type SetDeadlinesRequest struct {
	CabinIndex int               `json:"cabin_index" binding:"gte=0"`
	Deadlines  []DeadlineRequest `json:"deadlines" binding:"required,dive"`
}

// SetDeadlines replaces the installment schedule on one cabin. Statuses are
// recomputed immediately against what that cabin has already paid.
func (h *BookingHandler) SetDeadlines(c *gin.Context) {
	var req SetDeadlinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	deadlines := make([]bookingUC.DeadlineInput, 0, len(req.Deadlines))
	for _, d := range req.Deadlines {
		deadlines = append(deadlines, bookingUC.DeadlineInput{
			Label:     d.Label,
			DueDate:   d.DueDate,
			AmountCAD: d.AmountCAD,
		})
	}

	b, err := h.setDeadlinesUseCase.Execute(c.Request.Context(), bookingUC.SetCabinDeadlinesCommand{
		AgencyID:   middleware.AgencyID(c),
		BookingSID: c.Param("sid"),
		CabinIndex: req.CabinIndex,
		Deadlines:  deadlines,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "deadlines updated", toBookingResponse(b))
}

type ApplyPaymentRequest struct {
	AmountCAD int64 `json:"amount_cad" binding:"required,gt=0"`
	// CabinIndex targets one cabin's ledger; omit it to record a general
	// payment held at the booking level.
	CabinIndex *int       `json:"cabin_index"`
	Method     string     `json:"method"`
	Note       string     `json:"note"`
	ReceivedAt *time.Time `json:"received_at"`
}

// ApplyPayment records a payment against a cabin or the booking as a whole.
func (h *BookingHandler) ApplyPayment(c *gin.Context) {
	var req ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	cmd := bookingUC.ApplyPaymentCommand{
		AgencyID:   middleware.AgencyID(c),
		BookingSID: c.Param("sid"),
		AmountCAD:  req.AmountCAD,
		CabinIndex: req.CabinIndex,
		Method:     req.Method,
		Note:       req.Note,
	}
	if req.ReceivedAt != nil {
		cmd.ReceivedAt = *req.ReceivedAt
	}

	b, err := h.applyPaymentUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment applied", toBookingResponse(b))
}

type AttributePaymentRequest struct {
	AmountCAD  int64 `json:"amount_cad" binding:"required,gt=0"`
	CabinIndex int   `json:"cabin_index" binding:"gte=0"`
}

// AttributePayment moves part of the general balance onto one cabin.
func (h *BookingHandler) AttributePayment(c *gin.Context) {
	var req AttributePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	b, err := h.attributeUseCase.Execute(c.Request.Context(), bookingUC.AttributeGeneralPaymentCommand{
		AgencyID:   middleware.AgencyID(c),
		BookingSID: c.Param("sid"),
		AmountCAD:  req.AmountCAD,
		CabinIndex: req.CabinIndex,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment attributed", toBookingResponse(b))
}

// ListPayments returns the booking's payment history, oldest first.
func (h *BookingHandler) ListPayments(c *gin.Context) {
	payments, err := h.listPaymentsUseCase.Execute(c.Request.Context(), bookingUC.ListPaymentsCommand{
		AgencyID:   middleware.AgencyID(c),
		BookingSID: c.Param("sid"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]*PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, toPaymentResponse(p))
	}

	utils.SuccessResponse(c, http.StatusOK, "", items)
}
