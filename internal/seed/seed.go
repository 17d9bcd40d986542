// Package seed loads bootstrap projects and feature toggles and writes them
// to the database.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"beacon/internal/config"
	"beacon/internal/domain/repositories"
	"beacon/internal/repository/postgres"
	"beacon/internal/service"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

//go:embed config/seed.yaml
var defaultSeed []byte

// Project is a bootstrap project entry
type Project struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Toggle is a bootstrap feature toggle entry
type Toggle struct {
	Name        string `yaml:"name"`
	Project     string `yaml:"project"`
	Description string `yaml:"description"`
	Archived    bool   `yaml:"archived"`
}

// Data is the parsed seed file
type Data struct {
	Projects []Project `yaml:"projects"`
	Toggles  []Toggle  `yaml:"toggles"`
}

// Load parses the embedded seed file
func Load() (*Data, error) {
	return Parse(defaultSeed)
}

// Parse decodes and validates seed YAML. The default project is added if
// the file does not list it.
func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}

	if !data.hasProject(config.DefaultProjectID) {
		data.Projects = append([]Project{{
			ID:          config.DefaultProjectID,
			Name:        "Default",
			Description: "Default project",
		}}, data.Projects...)
	}

	return &data, nil
}

// Validate checks required fields and that every toggle points at a
// seeded project
func (d *Data) Validate() error {
	for i, p := range d.Projects {
		err := validation.ValidateStruct(&d.Projects[i],
			validation.Field(&d.Projects[i].ID, service.ProjectIDRules()...),
			validation.Field(&d.Projects[i].Name, validation.Required),
		)
		if err != nil {
			return fmt.Errorf("project %q: %w", p.ID, err)
		}
	}

	for i, t := range d.Toggles {
		err := validation.ValidateStruct(&d.Toggles[i],
			validation.Field(&d.Toggles[i].Name, validation.Required),
			validation.Field(&d.Toggles[i].Project, validation.Required),
		)
		if err != nil {
			return fmt.Errorf("toggle %q: %w", t.Name, err)
		}
		if t.Project != config.DefaultProjectID && !d.hasProject(t.Project) {
			return fmt.Errorf("toggle %q: unknown project %q", t.Name, t.Project)
		}
	}

	return nil
}

func (d *Data) hasProject(id string) bool {
	for _, p := range d.Projects {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Apply inserts the seed rows, leaving existing rows untouched
func Apply(ctx context.Context, db repositories.DBTX, tables *postgres.TableNames, data *Data, logger *slog.Logger) error {
	for _, p := range data.Projects {
		if err := postgres.EnsureProject(ctx, db, tables, p.ID, p.Name, p.Description); err != nil {
			return err
		}
		logger.Info("seeded project", "id", p.ID)
	}

	for _, t := range data.Toggles {
		if err := postgres.EnsureFeatureToggle(ctx, db, tables, t.Name, t.Project, t.Description, t.Archived); err != nil {
			return err
		}
		logger.Info("seeded feature toggle", "name", t.Name, "project", t.Project, "archived", t.Archived)
	}

	return nil
}
