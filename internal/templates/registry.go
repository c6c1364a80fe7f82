package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/itkodovaya/site-builder/internal/domain"
)

//go:embed data/*.md
var descriptionFiles embed.FS

const (
	defaultTemplateID      = "tpl_default"
	defaultTemplateVersion = 1
)

// Registry resolves industry codes to template definitions. Both exported
// methods are pure; Load returns the default template (with a Diagnostic)
// for an unknown id rather than an error.
type Registry struct {
	defs        map[string]Definition
	byIndustry  map[domain.IndustryCode]string
	Diagnostics []string
}

type descriptionFrontMatter struct {
	TitleSuffix string `yaml:"titleSuffix"`
}

// NewRegistry loads the compiled-in template descriptions and assembles the
// registry's page/section skeletons.
func NewRegistry() (*Registry, error) {
	descriptions, titleSuffixes, err := loadDescriptions(descriptionFiles)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		defs: map[string]Definition{},
		byIndustry: map[domain.IndustryCode]string{
			domain.IndustryTech:       "tpl_tech",
			domain.IndustryFinance:    "tpl_finance",
			domain.IndustryHealthcare: "tpl_healthcare",
			domain.IndustryRetail:     "tpl_retail",
			domain.IndustryEducation:  "tpl_education",
			domain.IndustryRealEstate: "tpl_realestate",
			domain.IndustryConsulting: "tpl_consulting",
			domain.IndustryRestaurant: "tpl_restaurant",
		},
	}

	for id, slug := range map[string]string{
		defaultTemplateID: "default",
		"tpl_tech":        "tech",
		"tpl_finance":     "finance",
		"tpl_healthcare":  "healthcare",
		"tpl_retail":      "retail",
		"tpl_education":   "education",
		"tpl_realestate":  "realestate",
		"tpl_consulting":  "consulting",
		"tpl_restaurant":  "restaurant",
	} {
		r.defs[id] = buildDefinition(id, slug, titleSuffixes[slug], descriptions[slug])
	}

	if err := validateDefinitions(r.defs); err != nil {
		return nil, err
	}

	return r, nil
}

// unsafeMarkup matches the structural patterns a compiled-in template must
// never author directly. Brand-derived section content is resolved per
// request by the generator's token substitution and is escaped at render
// time (internal/preview); this check runs once, here, over the static
// template text itself, before any token is ever substituted into it.
var unsafeMarkup = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script`),
	regexp.MustCompile(`(?i)<iframe`),
	regexp.MustCompile(`(?i)<object`),
	regexp.MustCompile(`(?i)<embed`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
}

// validateDefinitions fails registry construction outright if a compiled-in
// template's own authored text (titles, section props, description) matches
// an unsafe pattern, catching a regression at startup rather than at the
// first preview request that happens to hit the offending template.
func validateDefinitions(defs map[string]Definition) error {
	for id, def := range defs {
		if containsUnsafeMarkup(def.Description) {
			return fmt.Errorf("templates: %s: description contains unsafe markup", id)
		}
		for _, page := range def.Pages {
			if containsUnsafeMarkup(page.Title) {
				return fmt.Errorf("templates: %s: page %s title contains unsafe markup", id, page.ID)
			}
			for _, section := range page.Sections {
				raw, err := json.Marshal(section.Props)
				if err != nil {
					return fmt.Errorf("templates: %s: section %s: %w", id, section.ID, err)
				}
				if containsUnsafeMarkup(string(raw)) {
					return fmt.Errorf("templates: %s: section %s props contain unsafe markup", id, section.ID)
				}
			}
		}
	}
	return nil
}

func containsUnsafeMarkup(s string) bool {
	for _, p := range unsafeMarkup {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// LookupByIndustry returns the templateId and templateVersion for the given
// industry code. Unknown codes resolve to the default template.
func (r *Registry) LookupByIndustry(code domain.IndustryCode) (templateID string, templateVersion int) {
	id, ok := r.byIndustry[code]
	if !ok {
		return defaultTemplateID, defaultTemplateVersion
	}
	def, ok := r.defs[id]
	if !ok {
		return defaultTemplateID, defaultTemplateVersion
	}
	return def.TemplateID, def.TemplateVersion
}

// Load returns the template definition for templateID. An unknown id
// resolves to the default template and appends a diagnostic.
func (r *Registry) Load(templateID string) Definition {
	if def, ok := r.defs[templateID]; ok {
		return def
	}
	r.Diagnostics = append(r.Diagnostics, fmt.Sprintf("unknown templateId %q, falling back to default", templateID))
	return r.defs[defaultTemplateID]
}

func loadDescriptions(fsys embed.FS) (descriptions map[string]string, titleSuffixes map[string]string, err error) {
	entries, err := fsys.ReadDir("data")
	if err != nil {
		return nil, nil, fmt.Errorf("templates: read data dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	descriptions = make(map[string]string, len(entries))
	titleSuffixes = make(map[string]string, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".md")
		raw, err := fsys.ReadFile("data/" + entry.Name())
		if err != nil {
			return nil, nil, fmt.Errorf("templates: read %s: %w", entry.Name(), err)
		}
		var meta descriptionFrontMatter
		body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
		if err != nil {
			return nil, nil, fmt.Errorf("templates: parse frontmatter in %s: %w", entry.Name(), err)
		}
		descriptions[name] = strings.TrimSpace(string(body))
		titleSuffixes[name] = meta.TitleSuffix
	}
	return descriptions, titleSuffixes, nil
}
