// Package domain holds the value objects and invariants shared by the
// draft store, generator, preview renderer, and commit coordinator: Draft,
// BrandProfile, SiteConfig, Project, ProjectConfig, IndustryInfo, AssetInfo,
// and the canonical JSON serializer all of them share.
package domain
