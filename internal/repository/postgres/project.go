package postgres

import (
	"context"
	"fmt"

	"beacon/internal/domain"
	"beacon/internal/domain/models"
	"beacon/internal/domain/repositories"
)

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	db     repositories.DBTX
	tables *TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		db:     config.DB,
		tables: config.Tables,
	}
}

// GetAll retrieves all projects ordered by name
func (r *PostgresProjectRepository) GetAll(ctx context.Context) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, created_at
		FROM %s
		ORDER BY name ASC
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var project models.Project
		if err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Description,
			&project.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// Get retrieves a project by ID
func (r *PostgresProjectRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Projects)

	var project models.Project
	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &project, nil
}

// Create inserts a new project and fills in CreatedAt. A duplicate id
// becomes a ConflictError.
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, description)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query,
		project.ID,
		project.Name,
		project.Description,
	).Scan(&project.CreatedAt)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("project '%s' already exists", project.ID),
				ResourceType: "project",
				ResourceID:   project.ID,
			}
		}
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// Update replaces a project's name and description
func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2
		WHERE id = $3
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.db)
	result, err := executor.Exec(ctx, query,
		project.Name,
		project.Description,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a project. Its roles go with it (ON DELETE CASCADE).
func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Projects)

	executor := GetExecutor(ctx, r.db)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// HasProject returns nil if the project exists and a not-found error if
// it does not. Callers rely on this shape; see ProjectService.ValidateUniqueID.
func (r *PostgresProjectRepository) HasProject(ctx context.Context, id string) error {
	query := fmt.Sprintf(`SELECT id FROM %s WHERE id = $1`, r.tables.Projects)

	var found string
	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query, id).Scan(&found)
	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("no project with id=%s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("probe project: %w", err)
	}

	return nil
}
