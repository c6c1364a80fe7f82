// Package validation provides optional strict-mode validation of a
// generated site configuration against a compiled JSON Schema, defending
// generator-determinism regressions before a config is persisted.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("validation: schema invalid")
	ErrSchemaValidation = errors.New("validation: config failed schema validation")
)

// ValidationIssue captures a single validation failure at a JSON pointer.
type ValidationIssue struct {
	Location string
	Message  string
}

// ConfigValidationError surfaces every issue found while checking a
// generated config against the compiled schema.
type ConfigValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *ConfigValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *ConfigValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts the validation issues carried by err, if any.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var configErr *ConfigValidationError
	if errors.As(err, &configErr) && configErr != nil {
		return configErr.Issues
	}
	var schemaErr *jsonschema.ValidationError
	if errors.As(err, &schemaErr) && schemaErr != nil {
		return collectValidationIssues(schemaErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// SiteConfigValidator compiles the site configuration schema once and
// validates generated configs against it. The zero value is not usable;
// construct with NewSiteConfigValidator.
type SiteConfigValidator struct {
	once     sync.Once
	compiled *jsonschema.Schema
	compileE error
}

// NewSiteConfigValidator returns a validator backed by the compiled-in
// site configuration schema.
func NewSiteConfigValidator() *SiteConfigValidator {
	return &SiteConfigValidator{}
}

// Validate checks the raw canonical JSON of a generated config against the
// schema. It returns a *ConfigValidationError describing every mismatch.
func (v *SiteConfigValidator) Validate(configJSON []byte) error {
	schema, err := v.schema()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	var payload any
	if err := json.Unmarshal(configJSON, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if err := schema.Validate(payload); err != nil {
		var schemaErr *jsonschema.ValidationError
		if errors.As(err, &schemaErr) {
			return &ConfigValidationError{Issues: collectValidationIssues(schemaErr), Cause: err}
		}
		return &ConfigValidationError{Cause: err}
	}
	return nil
}

func (v *SiteConfigValidator) schema() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		v.compiled, v.compileE = compileSchema(siteConfigSchemaJSON)
	})
	return v.compiled, v.compileE
}

func compileSchema(schemaJSON []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("siteconfig.json", bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile("siteconfig.json")
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

// siteConfigSchemaJSON is the compiled-in JSON Schema for a generated site
// configuration. It checks structural shape only (required top-level keys,
// section type enum); fine-grained per-section prop shapes are left to the
// generator and preview renderer, which already enforce the section
// whitelist.
var siteConfigSchemaJSON = []byte(`{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["schemaVersion", "generator", "brand", "site"],
	"properties": {
		"schemaVersion": {"type": "string", "minLength": 1},
		"generator": {
			"type": "object",
			"required": ["engine", "templateId"],
			"properties": {
				"engine": {"type": "string", "minLength": 1},
				"engineVersion": {"type": "string"},
				"templateId": {"type": "string", "minLength": 1}
			}
		},
		"brand": {
			"type": "object",
			"required": ["brandName"],
			"properties": {
				"brandName": {"type": "string", "minLength": 1, "maxLength": 100}
			}
		},
		"site": {
			"type": "object",
			"required": ["pages"],
			"properties": {
				"pages": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["id", "path", "sections"],
						"properties": {
							"id": {"type": "string", "minLength": 1},
							"path": {"type": "string"},
							"sections": {
								"type": "array",
								"items": {
									"type": "object",
									"required": ["id", "type"],
									"properties": {
										"id": {"type": "string", "minLength": 1},
										"type": {
											"type": "string",
											"enum": [
												"hero", "features", "about", "contact",
												"services", "gallery", "testimonials",
												"pricing", "faq", "team", "footer"
											]
										}
									}
								}
							}
						}
					}
				}
			}
		}
	}
}`)
