package models

import (
	"time"
)

// Project is a named container scoping feature toggles and permissions.
// ID doubles as the project's URL-friendly name.
type Project struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt,omitzero" db:"created_at"`
}

// UserAccess describes one user with access to a project
type UserAccess struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// UsersWithAccess groups a project's users by role
type UsersWithAccess struct {
	Admins  []UserAccess `json:"admins"`
	Regular []UserAccess `json:"regular"`
}
