package preview

import (
	"time"

	"github.com/itkodovaya/site-builder/internal/domain"
	"github.com/itkodovaya/site-builder/internal/generator"
)

// Render produces a safe preview of cfg in the requested format. external
// may be nil; when non-nil and reporting availability, its output is tried
// first and falls through to the built-in renderer on any failure. Every
// section prop is HTML-escaped before reaching either output path (see
// sanitizeSection); structural unsafe-pattern detection is reserved for the
// external renderer's raw output, which bypasses that escaping entirely.
func Render(cfg domain.SiteConfig, format Format, generatedAt time.Time, external ExternalRenderer) (Output, error) {
	etag, err := computeETag(cfg)
	if err != nil {
		return Output{}, domain.WrapInternal(err, "preview.computeETag")
	}

	sanitizedPages := sanitizePages(cfg.Pages)

	if external != nil && external.Available() {
		if content, ok, err := external.Render(cfg, format); err == nil && ok && !containsUnsafeContent([]byte(content)) {
			return Output{
				Type:        format,
				Content:     content,
				GeneratedAt: generatedAt,
				ETag:        etag,
			}, nil
		}
	}

	switch format {
	case FormatJSON:
		return Output{
			Type:        FormatJSON,
			Model:       buildJSONModel(cfg, sanitizedPages),
			GeneratedAt: generatedAt,
			ETag:        etag,
		}, nil
	default:
		docCfg := cfg
		docCfg.Pages = sanitizedPages
		return Output{
			Type:        FormatHTML,
			Content:     buildDocument(docCfg, sanitizedPages),
			GeneratedAt: generatedAt,
			ETag:        etag,
		}, nil
	}
}

// computeETag derives the weak ETag from the canonical content hash with
// configId/generatedAt elided (generator.ContentHash), so two previews of
// an unchanged draft report the same ETag regardless of when either ran.
func computeETag(cfg domain.SiteConfig) (string, error) {
	hash, err := generator.ContentHash(cfg)
	if err != nil {
		return "", err
	}
	if len(hash) > 16 {
		hash = hash[:16]
	}
	return `W/"` + cfg.ConfigID + `:` + hash + `"`, nil
}

// sanitizePages drops non-whitelisted sections and escapes every remaining
// section's props recursively.
func sanitizePages(pages []domain.ConfigPage) []domain.ConfigPage {
	out := make([]domain.ConfigPage, len(pages))
	for i, page := range pages {
		sections := make([]domain.ConfigSection, 0, len(page.Sections))
		for _, section := range page.Sections {
			if !domain.IsWhitelistedSection(section.Type) {
				continue
			}
			sections = append(sections, sanitizeSection(section))
		}
		out[i] = domain.ConfigPage{
			ID:       page.ID,
			Path:     page.Path,
			Title:    escapeString(page.Title),
			Sections: sections,
		}
	}
	return out
}

func buildJSONModel(cfg domain.SiteConfig, sanitizedPages []domain.ConfigPage) JSONModel {
	return JSONModel{
		Brand: sanitizeBrand(cfg.Brand),
		Theme: cfg.Theme,
		Pages: sanitizedPages,
	}
}

// sanitizeBrand escapes the brand fields that carry normalized user input
// (name, slug). Industry is a closed enum code and Theme's fields are
// entirely template-controlled, so neither needs escaping.
func sanitizeBrand(brand domain.ConfigBrand) domain.ConfigBrand {
	brand.Name = escapeString(brand.Name)
	brand.Slug = escapeString(brand.Slug)
	return brand
}
