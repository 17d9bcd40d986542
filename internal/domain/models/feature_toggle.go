package models

import (
	"time"
)

type FeatureToggle struct {
	Name        string    `json:"name" db:"name" yaml:"name"`
	Project     string    `json:"project" db:"project" yaml:"project"`
	Description string    `json:"description" db:"description" yaml:"description"`
	Archived    bool      `json:"archived" db:"archived" yaml:"archived"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" yaml:"-"`
}

// FeatureToggleQuery filters toggles by project and archived state
type FeatureToggleQuery struct {
	Project  string
	Archived bool
}
