package preview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/itkodovaya/site-builder/internal/domain"
)

// sectionBuilder renders one whitelisted, already-sanitized section into an
// HTML fragment. Implementations emit only the escaped substrings already
// produced by sanitizeSection; none perform escaping themselves.
type sectionBuilder func(domain.ConfigSection) string

var sectionBuilders = map[domain.SectionType]sectionBuilder{
	domain.SectionHero:         buildHero,
	domain.SectionFeatures:     buildGenericList("features", "feature"),
	domain.SectionAbout:        buildAbout,
	domain.SectionContact:      buildContact,
	domain.SectionServices:     buildServices,
	domain.SectionGallery:      buildGenericList("gallery", "image"),
	domain.SectionTestimonials: buildGenericList("testimonials", "testimonial"),
	domain.SectionPricing:      buildGenericList("pricing", "plan"),
	domain.SectionFAQ:          buildGenericList("faq", "question"),
	domain.SectionTeam:         buildGenericList("team", "member"),
	domain.SectionFooter:       buildFooter,
}

func str(props map[string]any, key string) string {
	v, ok := props[key].(string)
	if !ok {
		return ""
	}
	return v
}

func buildHero(s domain.ConfigSection) string {
	return fmt.Sprintf(`<section class="section section-hero" id=%q><h1>%s</h1><p class="subheadline">%s</p></section>`,
		s.ID, str(s.Props, "headline"), str(s.Props, "subheadline"))
}

func buildAbout(s domain.ConfigSection) string {
	return fmt.Sprintf(`<section class="section section-about" id=%q><p>%s</p></section>`,
		s.ID, str(s.Props, "body"))
}

func buildContact(s domain.ConfigSection) string {
	return fmt.Sprintf(`<section class="section section-contact" id=%q><h2>%s</h2></section>`,
		s.ID, str(s.Props, "heading"))
}

func buildServices(s domain.ConfigSection) string {
	return fmt.Sprintf(`<section class="section section-services" id=%q><p>%s</p></section>`,
		s.ID, str(s.Props, "intro"))
}

func buildFooter(s domain.ConfigSection) string {
	return fmt.Sprintf(`<footer class="section section-footer" id=%q><span>%s</span><span class="slug">%s</span></footer>`,
		s.ID, str(s.Props, "brandName"), str(s.Props, "slug"))
}

// buildGenericList renders sections whose shape is an arbitrary bag of
// scalar props, emitting one labeled line per key in a stable (sorted)
// order so output is deterministic across identical inputs.
func buildGenericList(class, itemLabel string) sectionBuilder {
	return func(s domain.ConfigSection) string {
		keys := make([]string, 0, len(s.Props))
		for k := range s.Props {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var b strings.Builder
		fmt.Fprintf(&b, `<section class="section section-%s" id=%q>`, class, s.ID)
		for _, k := range keys {
			if v, ok := s.Props[k].(string); ok {
				fmt.Fprintf(&b, `<p data-%s="%s">%s</p>`, itemLabel, k, v)
			}
		}
		b.WriteString(`</section>`)
		return b.String()
	}
}

func buildDocument(cfg domain.SiteConfig, pages []domain.ConfigPage) string {
	var body strings.Builder
	for _, page := range pages {
		for _, section := range page.Sections {
			builder, ok := sectionBuilders[section.Type]
			if !ok {
				continue
			}
			body.WriteString(builder(section))
		}
	}

	palette := cfg.Theme.Palette
	style := fmt.Sprintf(
		`:root{--primary:%s;--accent:%s;--background:%s;--surface:%s;--text:%s;--muted:%s;--radius:%s;}`+
			`body{background:var(--background);color:var(--text);font-family:%s;}`+
			`.section{border-radius:var(--radius);background:var(--surface);}`,
		palette.Primary, palette.Accent, palette.Background, palette.Surface,
		palette.Text, palette.MutedText, cssRadius(cfg.Theme.Radius),
		cfg.Theme.Typography.FontFamily,
	)

	return fmt.Sprintf(
		`<!doctype html><html lang=%q><head><meta charset="utf-8">`+
			`<title>%s</title><style>%s</style></head><body>%s</body></html>`,
		cfg.Site.Language, escapeString(cfg.Site.Title), style, body.String(),
	)
}
