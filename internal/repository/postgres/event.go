package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"beacon/internal/domain/models"
	"beacon/internal/domain/repositories"
	"beacon/internal/metrics"

	"github.com/google/uuid"
)

// PostgresEventRepository implements the EventRepository interface as an
// append-only table
type PostgresEventRepository struct {
	db     repositories.DBTX
	tables *TableNames
	logger *slog.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(config *RepositoryConfig) repositories.EventRepository {
	return &PostgresEventRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Store appends an event, assigning its ID and CreatedAt
func (r *PostgresEventRepository) Store(ctx context.Context, event *models.Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("encode event data: %w", err)
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, type, created_by, data)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, r.tables.Events)

	executor := GetExecutor(ctx, r.db)
	err = executor.QueryRow(ctx, query,
		event.ID,
		string(event.Type),
		event.CreatedBy,
		data,
	).Scan(&event.CreatedAt)
	if err != nil {
		return fmt.Errorf("store event: %w", err)
	}

	metrics.EventsStored.WithLabelValues(string(event.Type)).Inc()
	r.logger.Debug("event stored",
		"id", event.ID,
		"type", event.Type,
		"created_by", event.CreatedBy,
	)

	return nil
}
