package repositories

import (
	"context"

	"beacon/internal/domain/models"
)

// EventRepository is the append-only audit log
type EventRepository interface {
	// Store appends an event. ID and CreatedAt are assigned by the store.
	Store(ctx context.Context, event *models.Event) error
}
