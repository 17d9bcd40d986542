package models

import "github.com/golang-jwt/jwt/v5"

// User is the acting principal for admin operations.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// AccessClaims represents the JWT claims issued to admin API users.
type AccessClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	PreferredUsername    string `json:"preferred_username"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Role                 string `json:"role"` // "authenticated" or "anon"
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *AccessClaims) GetUserID() string {
	return c.Subject
}

// User builds the acting user from the claims. The username falls back
// to the email and then the subject when no preferred username is set.
func (c *AccessClaims) User() *User {
	username := c.PreferredUsername
	if username == "" {
		username = c.Email
	}
	if username == "" {
		username = c.Subject
	}
	return &User{
		ID:       c.Subject,
		Username: username,
		Name:     c.Name,
		Email:    c.Email,
	}
}
