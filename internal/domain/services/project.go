package services

import (
	"context"

	"beacon/internal/domain/models"
)

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// GetProjects retrieves all projects in store order
	GetProjects(ctx context.Context) ([]models.Project, error)

	// GetProject retrieves a project by ID
	GetProject(ctx context.Context, id string) (*models.Project, error)

	// CreateProject validates and stores a new project, grants the user
	// the default project roles and records a project-created event
	CreateProject(ctx context.Context, newProject *models.Project, user *models.User) (*models.Project, error)

	// UpdateProject replaces an existing project with the validated payload
	UpdateProject(ctx context.Context, updatedProject *models.Project, user *models.User) (*models.Project, error)

	// DeleteProject removes a project that is not the default project
	// and has no active feature toggles
	DeleteProject(ctx context.Context, id string, user *models.User) error

	// ValidateID checks the id format and that no project uses it yet
	ValidateID(ctx context.Context, id string) (bool, error)

	// ValidateUniqueID returns a name-exists error if the id is taken
	ValidateUniqueID(ctx context.Context, id string) error

	// GetUsersWithAccess is not implemented yet and always returns domain.ErrNotImplemented
	GetUsersWithAccess(ctx context.Context, projectID string) (*models.UsersWithAccess, error)
}
