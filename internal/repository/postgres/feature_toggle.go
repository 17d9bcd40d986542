package postgres

import (
	"context"
	"fmt"

	"beacon/internal/domain/models"
	"beacon/internal/domain/repositories"
)

// PostgresFeatureToggleRepository implements the FeatureToggleRepository interface
type PostgresFeatureToggleRepository struct {
	db     repositories.DBTX
	tables *TableNames
}

// NewFeatureToggleRepository creates a new feature toggle repository
func NewFeatureToggleRepository(config *RepositoryConfig) repositories.FeatureToggleRepository {
	return &PostgresFeatureToggleRepository{
		db:     config.DB,
		tables: config.Tables,
	}
}

// GetFeaturesBy returns the toggles of a project with the given archived state
func (r *PostgresFeatureToggleRepository) GetFeaturesBy(ctx context.Context, q models.FeatureToggleQuery) ([]models.FeatureToggle, error) {
	query := fmt.Sprintf(`
		SELECT name, project, description, archived, created_at
		FROM %s
		WHERE project = $1 AND archived = $2
		ORDER BY name ASC
	`, r.tables.Features)

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.Query(ctx, query, q.Project, q.Archived)
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}
	defer rows.Close()

	toggles := []models.FeatureToggle{}
	for rows.Next() {
		var toggle models.FeatureToggle
		if err := rows.Scan(
			&toggle.Name,
			&toggle.Project,
			&toggle.Description,
			&toggle.Archived,
			&toggle.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		toggles = append(toggles, toggle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate features: %w", err)
	}

	return toggles, nil
}
