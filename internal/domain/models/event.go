package models

import (
	"time"
)

// EventType enumerates the audit events written by the project service
type EventType string

const (
	EventProjectCreated EventType = "project-created"
	EventProjectUpdated EventType = "project-updated"
	EventProjectDeleted EventType = "project-deleted"
)

// Event is an immutable audit record appended for every mutation
type Event struct {
	ID        string    `json:"id" db:"id"`
	Type      EventType `json:"type" db:"type"`
	CreatedBy string    `json:"createdBy" db:"created_by"`
	Data      any       `json:"data" db:"data"` // Stored as JSONB
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
