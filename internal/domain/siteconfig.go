package domain

import "time"

// SiteConfig is the publish-ready, deterministic output of the generator
// (internal/generator). Everything but ConfigID and GeneratedAt is a pure
// function of (Draft, template registry, generator version).
type SiteConfig struct {
	SchemaVersion int              `json:"schemaVersion"`
	ConfigVersion string           `json:"configVersion"`
	ConfigID      string           `json:"configId"`
	DraftID       string           `json:"draftId"`
	GeneratedAt   time.Time        `json:"generatedAt"`
	Generator     ConfigGenerator  `json:"generator"`
	Brand         ConfigBrand      `json:"brand"`
	Site          ConfigSite       `json:"site"`
	Theme         ConfigTheme      `json:"theme"`
	Pages         []ConfigPage     `json:"pages"`
	Assets        []AssetInfo      `json:"assets"`
	Publishing    ConfigPublishing `json:"publishing"`
}

type ConfigGenerator struct {
	Engine          string `json:"engine"`
	EngineVersion   string `json:"engineVersion"`
	TemplateID      string `json:"templateId"`
	TemplateVersion int    `json:"templateVersion"`
}

type ConfigBrand struct {
	Name     string     `json:"name"`
	Industry string     `json:"industry"`
	Slug     string     `json:"slug"`
	Logo     *AssetInfo `json:"logo,omitempty"`
}

type ConfigRouting struct {
	BasePath      string `json:"basePath"`
	TrailingSlash bool   `json:"trailingSlash"`
}

type ConfigSEO struct {
	OGImageAssetID *string `json:"ogImageAssetId"`
}

type ConfigSite struct {
	Language    string        `json:"language"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Routing     ConfigRouting `json:"routing"`
	SEO         ConfigSEO     `json:"seo"`
}

type Palette struct {
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Text       string `json:"text"`
	MutedText  string `json:"mutedText"`
}

type Typography struct {
	FontFamily string `json:"fontFamily"`
	Scale      string `json:"scale"`
}

type ConfigTheme struct {
	ThemeID    string     `json:"themeId"`
	Palette    Palette    `json:"palette"`
	Typography Typography `json:"typography"`
	Radius     string     `json:"radius"`
	Spacing    string     `json:"spacing"`
}

// SectionType is the closed tag of the preview renderer's whitelist (§4.D).
type SectionType string

const (
	SectionHero         SectionType = "hero"
	SectionFeatures      SectionType = "features"
	SectionAbout         SectionType = "about"
	SectionContact       SectionType = "contact"
	SectionServices      SectionType = "services"
	SectionGallery       SectionType = "gallery"
	SectionTestimonials  SectionType = "testimonials"
	SectionPricing       SectionType = "pricing"
	SectionFAQ           SectionType = "faq"
	SectionTeam          SectionType = "team"
	SectionFooter        SectionType = "footer"
)

// SectionWhitelist is the closed set of renderable section types. Anything
// outside this set is silently dropped by the preview renderer.
var SectionWhitelist = map[SectionType]struct{}{
	SectionHero:         {},
	SectionFeatures:     {},
	SectionAbout:        {},
	SectionContact:      {},
	SectionServices:     {},
	SectionGallery:      {},
	SectionTestimonials: {},
	SectionPricing:      {},
	SectionFAQ:          {},
	SectionTeam:         {},
	SectionFooter:       {},
}

// IsWhitelistedSection reports whether a section type may reach the renderer.
func IsWhitelistedSection(t SectionType) bool {
	_, ok := SectionWhitelist[t]
	return ok
}

type ConfigSection struct {
	ID    string         `json:"id"`
	Type  SectionType    `json:"type"`
	Props map[string]any `json:"props"`
}

type ConfigPage struct {
	ID       string          `json:"id"`
	Path     string          `json:"path"`
	Title    string          `json:"title"`
	Sections []ConfigSection `json:"sections"`
}

type ConfigOutput struct {
	Format      string `json:"format"`
	EntryPageID string `json:"entryPageId"`
}

type ConfigConstraints struct {
	MaxPages           int `json:"maxPages"`
	MaxSectionsPerPage int `json:"maxSectionsPerPage"`
}

type ConfigPublishing struct {
	Target      string            `json:"target"`
	Output      ConfigOutput      `json:"output"`
	Constraints ConfigConstraints `json:"constraints"`
}
