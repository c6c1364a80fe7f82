// Package generator exposes the deterministic site-configuration generator
// to host applications: given a draft and a template registry, Build
// produces a publish-ready SiteConfig with no I/O beyond the registry
// lookup the caller supplies.
package generator

import (
	"time"

	internal "github.com/itkodovaya/site-builder/internal/generator"
	"github.com/itkodovaya/site-builder/internal/domain"
)

// Registry is the pure template lookup contract Build depends on.
type Registry = internal.Registry

// ErrBrandNameRequired is returned when the draft's normalized brand name
// is empty.
var ErrBrandNameRequired = internal.ErrBrandNameRequired

// Build executes the generator algorithm over draft using reg, stamping
// the result with configID and generatedAt.
func Build(draft domain.Draft, reg Registry, configID string, generatedAt time.Time) (domain.SiteConfig, error) {
	return internal.Build(draft, reg, configID, generatedAt)
}

// ContentHash returns the canonical content hash of cfg with ConfigID and
// GeneratedAt elided.
func ContentHash(cfg domain.SiteConfig) (string, error) {
	return internal.ContentHash(cfg)
}

// Slug derives the url-safe brand slug used in the generated config.
func Slug(brandName string) string {
	return internal.Slug(brandName)
}
