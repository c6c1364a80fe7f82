package generator

import "github.com/itkodovaya/site-builder/internal/domain"

// ContentHash computes the canonical content hash of cfg with the two
// non-deterministic fields (ConfigID, GeneratedAt) elided, so two
// invocations of Build over the same draft/template/engine-version produce
// the same hash regardless of when or how many times they ran.
func ContentHash(cfg domain.SiteConfig) (string, error) {
	stripped := cfg
	stripped.ConfigID = ""
	stripped.GeneratedAt = domain.SiteConfig{}.GeneratedAt
	return domain.CanonicalHash(stripped)
}
