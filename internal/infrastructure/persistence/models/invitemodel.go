package models

import "time"

type InviteModel struct {
	ID         uint      `gorm:"primaryKey"`
	SID        string    `gorm:"column:sid;uniqueIndex;size:32;not null"`
	AgencyID   uint      `gorm:"index;not null"`
	Email      string    `gorm:"size:255;not null;index"`
	Role       string    `gorm:"size:20;not null"`
	TokenHash  string    `gorm:"uniqueIndex;size:64;not null"`
	Status     string    `gorm:"size:20;not null;index"`
	InvitedBy  uint      `gorm:"not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	AcceptedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (InviteModel) TableName() string {
	return "team_invites"
}
