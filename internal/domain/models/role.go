package models

import "time"

const (
	RoleTypeProject = "project"

	RoleAdmin   = "Admin"
	RoleRegular = "Regular"
)

// Role is a named permission set, scoped to a project for project roles
type Role struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Type        string    `json:"type" db:"type"`
	Project     string    `json:"project" db:"project"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
