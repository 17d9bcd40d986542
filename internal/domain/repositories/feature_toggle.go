package repositories

import (
	"context"

	"beacon/internal/domain/models"
)

// FeatureToggleRepository defines read access to feature toggles
type FeatureToggleRepository interface {
	// GetFeaturesBy returns toggles matching the query, ordered by name
	GetFeaturesBy(ctx context.Context, query models.FeatureToggleQuery) ([]models.FeatureToggle, error)
}
