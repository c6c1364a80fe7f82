// Package generator turns a Draft plus a template registry into a
// publish-ready SiteConfig. The algorithm is pure and must not suspend: it
// accepts no context.Context and performs no I/O beyond the registry
// lookups passed to it.
package generator

import (
	"errors"
	"time"

	"github.com/itkodovaya/site-builder/internal/domain"
	"github.com/itkodovaya/site-builder/internal/templates"
)

var ErrBrandNameRequired = errors.New("generator: brand name is required")

const (
	engineName    = "sitebuilder-generator"
	engineVersion = "1.0.0"
	schemaVersion = 1
	configVersion = "1.0.0"
)

// Registry is the pure lookup contract the generator depends on. It is
// satisfied by *templates.Registry.
type Registry interface {
	LookupByIndustry(code domain.IndustryCode) (templateID string, templateVersion int)
	Load(templateID string) templates.Definition
}

// Build executes §4.C's algorithm: normalize, select template, derive slug,
// construct theme, resolve tokens, compose pages, stamp metadata. configID
// and generatedAt are supplied by the caller so Build stays pure; they are
// the only fields excluded from the canonical content hash (see ContentHash).
func Build(draft domain.Draft, reg Registry, configID string, generatedAt time.Time) (domain.SiteConfig, error) {
	brand := draft.BrandProfile
	name := domain.NormalizeBrandName(brand.BrandName)
	if !domain.ValidateBrandName(name) {
		return domain.SiteConfig{}, ErrBrandNameRequired
	}
	brand.BrandName = name

	templateID, templateVersion := reg.LookupByIndustry(brand.Industry.Code)
	def := reg.Load(templateID)

	slugValue := Slug(brand.BrandName)
	tokens := newTokenSet(brand, slugValue)

	cfg := domain.SiteConfig{
		SchemaVersion: schemaVersion,
		ConfigVersion: configVersion,
		ConfigID:      configID,
		DraftID:       draft.DraftID,
		GeneratedAt:   generatedAt.UTC().Truncate(time.Millisecond),
		Generator: domain.ConfigGenerator{
			Engine:          engineName,
			EngineVersion:   engineVersion,
			TemplateID:      templateID,
			TemplateVersion: templateVersion,
		},
		Brand: domain.ConfigBrand{
			Name:     brand.BrandName,
			Industry: string(brand.Industry.Code),
			Slug:     slugValue,
			Logo:     brand.Logo,
		},
		Theme:      def.Theme,
		Publishing: def.Publishing,
	}

	cfg.Site = buildSite(def, tokens, brand)
	cfg.Pages = buildPages(def, tokens)
	cfg.Assets = buildAssets(brand)

	return cfg, nil
}

func buildSite(def templates.Definition, tokens tokenSet, brand domain.BrandProfile) domain.ConfigSite {
	var ogImage *string
	if brand.Logo != nil {
		id := brand.Logo.AssetID
		ogImage = &id
	}
	return domain.ConfigSite{
		Language:    "en",
		Title:       resolveString(tokens, "{{brandName}} — "+def.TitleSuffix),
		Description: resolveString(tokens, def.Description),
		Routing: domain.ConfigRouting{
			BasePath:      "/",
			TrailingSlash: false,
		},
		SEO: domain.ConfigSEO{
			OGImageAssetID: ogImage,
		},
	}
}

func buildPages(def templates.Definition, tokens tokenSet) []domain.ConfigPage {
	pages := make([]domain.ConfigPage, 0, len(def.Pages))
	for _, pageTpl := range def.Pages {
		page := domain.ConfigPage{
			ID:    pageTpl.ID,
			Path:  pageTpl.Path,
			Title: resolveString(tokens, pageTpl.Title),
		}
		for _, sectionTpl := range pageTpl.Sections {
			page.Sections = append(page.Sections, domain.ConfigSection{
				ID:    sectionTpl.ID,
				Type:  sectionTpl.Type,
				Props: resolveProps(tokens, sectionTpl.Props),
			})
		}
		pages = append(pages, page)
	}
	return pages
}

func buildAssets(brand domain.BrandProfile) []domain.AssetInfo {
	if brand.Logo == nil {
		return []domain.AssetInfo{}
	}
	return []domain.AssetInfo{*brand.Logo}
}
