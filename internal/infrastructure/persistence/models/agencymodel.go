package models

import (
	"time"

	"gorm.io/datatypes"
)

type AgencyModel struct {
	ID               uint   `gorm:"primaryKey"`
	SID              string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	Name             string `gorm:"size:255;not null"`
	BillingEmail     string `gorm:"size:255;not null"`
	ContactEmail     string `gorm:"size:255"`
	Branding         datatypes.JSON
	StripeCustomerID *string `gorm:"uniqueIndex;size:64"`
	SubscriptionID   *string `gorm:"size:64"`
	BillingStatus    string  `gorm:"size:20;not null;index"`
	PlanKey          string  `gorm:"size:20;not null"`
	CurrentPeriodEnd *time.Time
	Version          int `gorm:"default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (AgencyModel) TableName() string {
	return "agencies"
}
