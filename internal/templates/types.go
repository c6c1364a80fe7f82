// Package templates holds the compiled-in template registry the config
// generator consults: industry -> template selection, theme defaults, and
// the tokenized page/section skeletons copied verbatim into a generated
// site configuration.
package templates

import "github.com/itkodovaya/site-builder/internal/domain"

// SectionTemplate is a section skeleton whose Props may contain {{token}}
// placeholders resolved by the generator's token resolver.
type SectionTemplate struct {
	ID    string
	Type  domain.SectionType
	Props map[string]any
}

// PageTemplate is a page skeleton; Title may contain {{token}} placeholders.
type PageTemplate struct {
	ID       string
	Path     string
	Title    string
	Sections []SectionTemplate
}

// Definition is a fully specified template: theme defaults, SEO copy, and
// the ordered page/section skeletons the generator instantiates.
type Definition struct {
	TemplateID      string
	TemplateVersion int
	TitleSuffix     string
	Description     string
	Theme           domain.ConfigTheme
	Publishing      domain.ConfigPublishing
	Pages           []PageTemplate
}
