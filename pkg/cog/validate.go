package cog

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New()

// Validate checks the structural shape of an analysis document: required
// fields, enum membership, and sub-score ranges. It deliberately does NOT
// check foreign-key resolution; dangling references are a normal state of a
// partially-edited document and are handled by the hierarchy resolver's
// orphan exclusion, never as a validation failure.
func Validate(a *COGAnalysis) error {
	if a == nil {
		return errors.New("analysis cannot be nil")
	}

	if err := validate.Struct(a); err != nil {
		return formatValidationError(err)
	}

	for i, c := range a.CentersOfGravity {
		if !c.Domain.Valid() {
			return fmt.Errorf("centers_of_gravity[%d]: unknown domain %q", i, c.Domain)
		}
	}
	for i, r := range a.Requirements {
		if r.RequirementType != "" && !r.RequirementType.Valid() {
			return fmt.Errorf("requirements[%d]: unknown requirement_type %q", i, r.RequirementType)
		}
	}
	for i, v := range a.Vulnerabilities {
		if v.VulnerabilityType != "" && !v.VulnerabilityType.Valid() {
			return fmt.Errorf("vulnerabilities[%d]: unknown vulnerability_type %q", i, v.VulnerabilityType)
		}
	}

	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
