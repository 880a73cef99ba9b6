package models

import "time"

// WebhookEventModel records every provider event the system has applied.
// The unique event_id index is what makes webhook delivery idempotent.
type WebhookEventModel struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   string `gorm:"uniqueIndex;size:64;not null"`
	EventType string `gorm:"size:64;not null"`
	CreatedAt time.Time
}

func (WebhookEventModel) TableName() string {
	return "webhook_events"
}
