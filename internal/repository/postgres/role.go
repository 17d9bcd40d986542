package postgres

import (
	"context"
	"fmt"

	"beacon/internal/domain"
	"beacon/internal/domain/models"
	"beacon/internal/domain/repositories"
)

// PostgresRoleRepository implements the RoleRepository interface
type PostgresRoleRepository struct {
	db     repositories.DBTX
	tables *TableNames
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(config *RepositoryConfig) repositories.RoleRepository {
	return &PostgresRoleRepository{
		db:     config.DB,
		tables: config.Tables,
	}
}

// CreateRole inserts a role. Role names are unique per project.
func (r *PostgresRoleRepository) CreateRole(ctx context.Context, role *models.Role) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, type, project)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, r.tables.Roles)

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query,
		role.Name,
		role.Description,
		role.Type,
		role.Project,
	).Scan(&role.ID, &role.CreatedAt)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("role '%s' already exists for project '%s'", role.Name, role.Project),
				ResourceType: "role",
				ResourceID:   role.Name,
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s: %w", role.Project, domain.ErrNotFound)
		}
		return fmt.Errorf("create role: %w", err)
	}

	return nil
}

// AddUserToRole assigns a user to a role
func (r *PostgresRoleRepository) AddUserToRole(ctx context.Context, userID string, roleID int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`, r.tables.RoleUser)

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.Exec(ctx, query, userID, roleID); err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("role %d: %w", roleID, domain.ErrNotFound)
		}
		return fmt.Errorf("add user to role: %w", err)
	}

	return nil
}
