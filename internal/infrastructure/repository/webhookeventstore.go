package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"purser/internal/infrastructure/persistence/models"
	"purser/internal/shared/db"
)

// WebhookEventStore persists processed provider event ids. The insert relies
// on the unique event_id index, so under concurrent delivery of the same
// event exactly one caller observes fresh=true.
type WebhookEventStore struct {
	db *gorm.DB
}

func NewWebhookEventStore(db *gorm.DB) *WebhookEventStore {
	return &WebhookEventStore{db: db}
}

func (s *WebhookEventStore) MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	model := &models.WebhookEventModel{
		EventID:   eventID,
		EventType: eventType,
	}

	result := db.GetTxFromContext(ctx, s.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model)

	if result.Error != nil {
		return false, fmt.Errorf("failed to record webhook event: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}
