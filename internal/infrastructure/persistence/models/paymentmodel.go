package models

import "time"

type PaymentModel struct {
	ID         uint   `gorm:"primaryKey"`
	SID        string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	BookingID  uint   `gorm:"index;not null"`
	AgencyID   uint   `gorm:"index;not null"`
	AmountCAD  int64  `gorm:"not null"`
	CabinIndex *int
	Method     string    `gorm:"size:32;not null"`
	Note       string    `gorm:"type:text"`
	ReceivedAt time.Time `gorm:"not null"`
	CreatedAt  time.Time
}

func (PaymentModel) TableName() string {
	return "payments"
}
