package handlers

import (
	"time"

	"purser/internal/domain/agency"
	"purser/internal/domain/booking"
	"purser/internal/domain/invite"
	"purser/internal/domain/user"
)

type UserResponse struct {
	SID       string    `json:"sid"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		SID:       u.SID(),
		Email:     u.Email(),
		Name:      u.Name(),
		Role:      u.Role().String(),
		Active:    u.IsActive(),
		CreatedAt: u.CreatedAt(),
	}
}

type BrandingResponse struct {
	DisplayName string `json:"display_name"`
	AccentColor string `json:"accent_color"`
	LogoURL     string `json:"logo_url"`
}

type BillingResponse struct {
	Status           string     `json:"status"`
	PlanKey          string     `json:"plan_key"`
	HasCustomer      bool       `json:"has_customer"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
}

type AgencyResponse struct {
	SID          string           `json:"sid"`
	Name         string           `json:"name"`
	BillingEmail string           `json:"billing_email"`
	ContactEmail string           `json:"contact_email"`
	Branding     BrandingResponse `json:"branding"`
	Billing      BillingResponse  `json:"billing"`
	CreatedAt    time.Time        `json:"created_at"`
}

func toAgencyResponse(ag *agency.Agency) *AgencyResponse {
	b := ag.Billing()
	return &AgencyResponse{
		SID:          ag.SID(),
		Name:         ag.Name(),
		BillingEmail: ag.BillingEmail(),
		ContactEmail: ag.ContactEmail(),
		Branding: BrandingResponse{
			DisplayName: ag.Branding().DisplayName,
			AccentColor: ag.Branding().AccentColor,
			LogoURL:     ag.Branding().LogoURL,
		},
		Billing: BillingResponse{
			Status:           string(b.Status),
			PlanKey:          string(b.PlanKey),
			HasCustomer:      b.HasCustomer(),
			CurrentPeriodEnd: b.CurrentPeriodEnd,
		},
		CreatedAt: ag.CreatedAt(),
	}
}

// BookingResponse exposes the full ledger. Cabin accounts and their
// deadlines serialize through the domain types' own JSON tags.
type BookingResponse struct {
	SID              string                 `json:"sid"`
	GroupName        string                 `json:"group_name"`
	FamilyName       string                 `json:"family_name"`
	ContactEmail     string                 `json:"contact_email"`
	Cabins           []booking.CabinAccount `json:"cabins"`
	TotalCADGlobal   int64                  `json:"total_cad_global"`
	PaidCADGlobal    int64                  `json:"paid_cad_global"`
	BalanceCADGlobal int64                  `json:"balance_cad_global"`
	GeneralPaidCAD   int64                  `json:"general_paid_cad"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

func toBookingResponse(b *booking.Booking) *BookingResponse {
	return &BookingResponse{
		SID:              b.SID(),
		GroupName:        b.GroupName(),
		FamilyName:       b.FamilyName(),
		ContactEmail:     b.ContactEmail(),
		Cabins:           b.Cabins(),
		TotalCADGlobal:   b.TotalCADGlobal(),
		PaidCADGlobal:    b.PaidCADGlobal(),
		BalanceCADGlobal: b.BalanceCADGlobal(),
		GeneralPaidCAD:   b.GeneralPaidCAD(),
		CreatedAt:        b.CreatedAt(),
		UpdatedAt:        b.UpdatedAt(),
	}
}

type PaymentResponse struct {
	SID        string    `json:"sid"`
	AmountCAD  int64     `json:"amount_cad"`
	CabinIndex *int      `json:"cabin_index,omitempty"`
	General    bool      `json:"general"`
	Method     string    `json:"method"`
	Note       string    `json:"note,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

func toPaymentResponse(p *booking.Payment) *PaymentResponse {
	return &PaymentResponse{
		SID:        p.SID(),
		AmountCAD:  p.AmountCAD(),
		CabinIndex: p.CabinIndex(),
		General:    p.IsGeneral(),
		Method:     p.Method(),
		Note:       p.Note(),
		ReceivedAt: p.ReceivedAt(),
	}
}

type InviteResponse struct {
	SID        string     `json:"sid"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Status     string     `json:"status"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toInviteResponse(inv *invite.TeamInvite) *InviteResponse {
	return &InviteResponse{
		SID:        inv.SID(),
		Email:      inv.Email(),
		Role:       inv.Role().String(),
		Status:     string(inv.Status()),
		ExpiresAt:  inv.ExpiresAt(),
		AcceptedAt: inv.AcceptedAt(),
		CreatedAt:  inv.CreatedAt(),
	}
}
