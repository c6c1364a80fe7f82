package validation_test

import (
	"strings"
	"testing"

	"github.com/itkodovaya/site-builder/internal/validation"
)

func TestSiteConfigValidator_AcceptsWellFormedConfig(t *testing.T) {
	v := validation.NewSiteConfigValidator()
	payload := []byte(`{
		"schemaVersion": "1.0",
		"generator": {"engine": "sitebuilder", "templateId": "tpl_tech_01"},
		"brand": {"brandName": "Acme Co"},
		"site": {"pages": [
			{"id": "home", "path": "/", "sections": [
				{"id": "sec1", "type": "hero"}
			]}
		]}
	}`)

	if err := v.Validate(payload); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestSiteConfigValidator_RejectsUnknownSectionType(t *testing.T) {
	v := validation.NewSiteConfigValidator()
	payload := []byte(`{
		"schemaVersion": "1.0",
		"generator": {"engine": "sitebuilder", "templateId": "tpl_tech_01"},
		"brand": {"brandName": "Acme Co"},
		"site": {"pages": [
			{"id": "home", "path": "/", "sections": [
				{"id": "sec1", "type": "carousel"}
			]}
		]}
	}`)

	err := v.Validate(payload)
	if err == nil {
		t.Fatal("expected validation error for unknown section type")
	}
}

func TestSiteConfigValidator_RejectsMissingBrand(t *testing.T) {
	v := validation.NewSiteConfigValidator()
	payload := []byte(`{
		"schemaVersion": "1.0",
		"generator": {"engine": "sitebuilder", "templateId": "tpl_tech_01"},
		"site": {"pages": []}
	}`)

	err := v.Validate(payload)
	if err == nil {
		t.Fatal("expected validation error for missing brand")
	}
	if issues := validation.Issues(err); len(issues) == 0 {
		t.Fatal("expected at least one validation issue")
	}
}

func TestConfigValidationError_FormatsLocationAndMessage(t *testing.T) {
	err := &validation.ConfigValidationError{
		Issues: []validation.ValidationIssue{
			{Location: "/brand/brandName", Message: "value is required"},
		},
	}
	if got := err.Error(); !strings.Contains(got, "/brand/brandName") || !strings.Contains(got, "required") {
		t.Fatalf("unexpected error message: %s", got)
	}
}
