package service

import (
	"errors"
	"fmt"
	"regexp"

	"beacon/internal/config"
	"beacon/internal/domain"
	"beacon/internal/domain/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// urlFriendly matches strings that survive URL component encoding unchanged
var urlFriendly = regexp.MustCompile(`^[A-Za-z0-9\-_.~!*'()]+$`)

// nameRules are the rules for a project id, which doubles as its name
var nameRules = []validation.Rule{
	validation.Required,
	validation.Length(config.MinProjectIDLength, config.MaxProjectIDLength),
	validation.Match(urlFriendly).Error("must be URL friendly"),
	validation.By(notDotSegment),
}

// validateProject validates a project payload and returns a copy holding
// only the schema fields. Store-managed fields like CreatedAt are dropped.
func validateProject(p *models.Project) (*models.Project, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: project is required", domain.ErrValidation)
	}

	data := &models.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
	}

	err := validation.ValidateStruct(data,
		validation.Field(&data.ID, nameRules...),
		validation.Field(&data.Name,
			validation.Required,
			validation.Length(1, config.MaxProjectNameLength),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return data, nil
}

// ProjectIDRules returns the ozzo rules a project id must satisfy. The
// seeder applies them to its ids so seeded projects stay addressable.
func ProjectIDRules() []validation.Rule {
	return append([]validation.Rule(nil), nameRules...)
}

// ValidateProjectID validates a bare project id
func ValidateProjectID(id string) error {
	if err := validation.Validate(id, nameRules...); err != nil {
		return fmt.Errorf("%w: id: %v", domain.ErrValidation, err)
	}
	return nil
}

// notDotSegment rejects "." and "..", which are URL friendly but resolve
// to path segments
func notDotSegment(value interface{}) error {
	id, ok := value.(string)
	if !ok {
		return errors.New("must be a string")
	}
	if id == "." || id == ".." {
		return errors.New("must be URL friendly")
	}
	return nil
}
