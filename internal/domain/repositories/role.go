package repositories

import (
	"context"

	"beacon/internal/domain/models"
)

// RoleRepository defines data access operations for roles
type RoleRepository interface {
	// CreateRole inserts a role and fills in its ID and CreatedAt
	CreateRole(ctx context.Context, role *models.Role) error

	// AddUserToRole assigns a user to a role (no-op if already assigned)
	AddUserToRole(ctx context.Context, userID string, roleID int64) error
}
