package config

const (
	// DefaultProjectID is the project every installation starts with.
	// It can never be deleted.
	DefaultProjectID = "default"

	// MinProjectIDLength and MaxProjectIDLength bound project ids.
	// Ids appear in URLs and toggle keys, so they stay short.
	MinProjectIDLength = 2
	MaxProjectIDLength = 100

	// MaxProjectNameLength is the maximum length for project display names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxProjectNameLength = 255
)
