package postgres

import (
	"context"
	"fmt"

	"beacon/internal/domain/repositories"
)

// schemaStatements returns the DDL for all tables, in dependency order
func schemaStatements(tables *TableNames) []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Projects + ` (
			id VARCHAR(100) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Events + ` (
			id UUID PRIMARY KEY,
			type VARCHAR(64) NOT NULL,
			created_by VARCHAR(255) NOT NULL,
			data JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS ` + tables.Events + `_created_at_idx ON ` + tables.Events + ` (created_at)`,
		// No FK to projects: archived toggles outlive their project
		`CREATE TABLE IF NOT EXISTS ` + tables.Features + ` (
			name VARCHAR(255) PRIMARY KEY,
			project VARCHAR(100) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS ` + tables.Features + `_project_idx ON ` + tables.Features + ` (project, archived)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Roles + ` (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			type VARCHAR(32) NOT NULL,
			project VARCHAR(100) REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (project, name)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.RoleUser + ` (
			user_id VARCHAR(255) NOT NULL,
			role_id BIGINT NOT NULL REFERENCES ` + tables.Roles + `(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, role_id)
		)`,
	}
}

// EnsureSchema creates missing tables. Safe to run on every start.
func EnsureSchema(ctx context.Context, db repositories.DBTX, tables *TableNames) error {
	for _, stmt := range schemaStatements(tables) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// EnsureProject inserts a project if no project with its id exists
func EnsureProject(ctx context.Context, db repositories.DBTX, tables *TableNames, id, name, description string) error {
	query := `
		INSERT INTO ` + tables.Projects + ` (id, name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := db.Exec(ctx, query, id, name, description); err != nil {
		return fmt.Errorf("ensure project %s: %w", id, err)
	}
	return nil
}

// EnsureFeatureToggle inserts a toggle if none with its name exists
func EnsureFeatureToggle(ctx context.Context, db repositories.DBTX, tables *TableNames, name, project, description string, archived bool) error {
	query := `
		INSERT INTO ` + tables.Features + ` (name, project, description, archived)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING
	`
	if _, err := db.Exec(ctx, query, name, project, description, archived); err != nil {
		return fmt.Errorf("ensure feature %s: %w", name, err)
	}
	return nil
}
