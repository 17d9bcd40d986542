package repositories

import (
	"context"

	"beacon/internal/domain/models"
)

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	// GetAll retrieves all projects, ordered by name
	GetAll(ctx context.Context) ([]models.Project, error)

	// Get retrieves a project by ID. Returns an error matching
	// domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*models.Project, error)

	// Create inserts a new project
	Create(ctx context.Context, project *models.Project) error

	// Update replaces the name and description of an existing project
	Update(ctx context.Context, project *models.Project) error

	// Delete removes a project
	Delete(ctx context.Context, id string) error

	// HasProject probes for a project. It returns nil when the project
	// exists and an error (domain.ErrNotFound) when it does not.
	HasProject(ctx context.Context, id string) error
}
