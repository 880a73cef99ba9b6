package agency

import (
	"fmt"
	"strings"
	"time"
)

// Branding holds the agency-facing presentation settings shown on payment
// pages and invite emails.
type Branding struct {
	DisplayName string `json:"display_name"`
	AccentColor string `json:"accent_color"`
	LogoURL     string `json:"logo_url"`
}

// Agency is the tenant aggregate root. Every booking, invite and user in the
// system hangs off exactly one agency. The billing sub-object is mutated only
// by the checkout and webhook flows.
type Agency struct {
	id           uint
	sid          string
	name         string
	billingEmail string
	contactEmail string
	branding     Branding
	billing      Billing
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

// NewAgency creates a new agency with billing in its initial state.
func NewAgency(sid, name, billingEmail, contactEmail string) (*Agency, error) {
	if sid == "" {
		return nil, fmt.Errorf("agency sid is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("agency name is required")
	}
	if billingEmail == "" {
		return nil, fmt.Errorf("billing email is required")
	}

	now := time.Now().UTC()
	return &Agency{
		sid:          sid,
		name:         name,
		billingEmail: billingEmail,
		contactEmail: contactEmail,
		billing:      Billing{Status: BillingStatusNone, PlanKey: PlanTrial},
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructAgency rebuilds an agency from persistence.
func ReconstructAgency(
	id uint,
	sid, name, billingEmail, contactEmail string,
	branding Branding,
	billing Billing,
	version int,
	createdAt, updatedAt time.Time,
) (*Agency, error) {
	if id == 0 {
		return nil, fmt.Errorf("agency ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("agency sid is required")
	}
	if !billing.Status.IsValid() {
		return nil, fmt.Errorf("invalid billing status: %s", billing.Status)
	}

	return &Agency{
		id:           id,
		sid:          sid,
		name:         name,
		billingEmail: billingEmail,
		contactEmail: contactEmail,
		branding:     branding,
		billing:      billing,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (a *Agency) ID() uint { return a.id }
func (a *Agency) SID() string { return a.sid }
func (a *Agency) Name() string { return a.name }
func (a *Agency) BillingEmail() string { return a.billingEmail }
func (a *Agency) ContactEmail() string { return a.contactEmail }
func (a *Agency) Branding() Branding { return a.branding }
func (a *Agency) Billing() Billing { return a.billing }
func (a *Agency) Version() int { return a.version }
func (a *Agency) CreatedAt() time.Time { return a.createdAt }
func (a *Agency) UpdatedAt() time.Time { return a.updatedAt }

// SetID sets the agency ID (only for persistence layer use).
func (a *Agency) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("agency ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("agency ID cannot be zero")
	}
	a.id = id
	return nil
}

// Rename changes the agency display name.
func (a *Agency) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("agency name cannot be empty")
	}
	a.name = name
	a.touch()
	return nil
}

// UpdateBranding replaces the presentation settings.
func (a *Agency) UpdateBranding(b Branding) {
	a.branding = b
	a.touch()
}

// UpdateContactEmail changes the operational contact address.
func (a *Agency) UpdateContactEmail(email string) error {
	if email == "" {
		return fmt.Errorf("contact email cannot be empty")
	}
	a.contactEmail = email
	a.touch()
	return nil
}

func (a *Agency) touch() {
	a.updatedAt = time.Now().UTC()
	a.version++
}
