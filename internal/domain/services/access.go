package services

import (
	"context"

	"beacon/internal/domain/models"
)

// AccessService manages role grants on projects.
//
// Current implementation: each project gets an Admin and a Regular role,
// and the creator is added to Admin.
type AccessService interface {
	// CreateDefaultProjectRoles creates the project's default roles and
	// makes the user a project admin
	CreateDefaultProjectRoles(ctx context.Context, user *models.User, projectID string) error
}
