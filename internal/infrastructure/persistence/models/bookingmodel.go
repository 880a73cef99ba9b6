package models

import (
	"time"

	"gorm.io/datatypes"
)

type BookingModel struct {
	ID               uint   `gorm:"primaryKey"`
	SID              string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	AgencyID         uint   `gorm:"index;not null"`
	GroupName        string `gorm:"size:255;not null"`
	FamilyName       string `gorm:"size:255;not null"`
	ContactEmail     string `gorm:"size:255"`
	Cabins           datatypes.JSON
	TotalCADGlobal   int64 `gorm:"not null"`
	PaidCADGlobal    int64 `gorm:"not null"`
	BalanceCADGlobal int64 `gorm:"not null"`
	GeneralPaidCAD   int64 `gorm:"not null;default:0"`
	Version          int   `gorm:"default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (BookingModel) TableName() string {
	return "bookings"
}
