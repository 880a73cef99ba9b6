package models

import "time"

type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	SID          string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	AgencyID     uint   `gorm:"index;not null"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	Name         string `gorm:"size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:20;not null"`
	Active       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}
