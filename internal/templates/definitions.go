package templates

import "github.com/itkodovaya/site-builder/internal/domain"

var palettes = map[string]domain.Palette{
	"default": {
		Primary: "#2563eb", Accent: "#f59e0b", Background: "#ffffff",
		Surface: "#f8fafc", Text: "#0f172a", MutedText: "#64748b",
	},
	"tech": {
		Primary: "#4f46e5", Accent: "#22d3ee", Background: "#0b1120",
		Surface: "#111827", Text: "#f8fafc", MutedText: "#94a3b8",
	},
	"finance": {
		Primary: "#1e3a8a", Accent: "#b45309", Background: "#ffffff",
		Surface: "#f1f5f9", Text: "#0f172a", MutedText: "#475569",
	},
	"healthcare": {
		Primary: "#0d9488", Accent: "#0ea5e9", Background: "#ffffff",
		Surface: "#f0fdfa", Text: "#134e4a", MutedText: "#5eead4",
	},
	"retail": {
		Primary: "#db2777", Accent: "#f97316", Background: "#ffffff",
		Surface: "#fdf2f8", Text: "#1f2937", MutedText: "#6b7280",
	},
	"education": {
		Primary: "#7c3aed", Accent: "#facc15", Background: "#ffffff",
		Surface: "#f5f3ff", Text: "#1e1b4b", MutedText: "#6d28d9",
	},
	"realestate": {
		Primary: "#065f46", Accent: "#d97706", Background: "#ffffff",
		Surface: "#ecfdf5", Text: "#064e3b", MutedText: "#475569",
	},
	"consulting": {
		Primary: "#111827", Accent: "#3b82f6", Background: "#ffffff",
		Surface: "#f9fafb", Text: "#111827", MutedText: "#6b7280",
	},
	"restaurant": {
		Primary: "#7f1d1d", Accent: "#ca8a04", Background: "#1c1917",
		Surface: "#292524", Text: "#fafaf9", MutedText: "#d6d3d1",
	},
}

func buildDefinition(templateID, slug, titleSuffix, description string) Definition {
	palette, ok := palettes[slug]
	if !ok {
		palette = palettes["default"]
	}
	if titleSuffix == "" {
		titleSuffix = "Welcome"
	}

	return Definition{
		TemplateID:      templateID,
		TemplateVersion: 1,
		TitleSuffix:     titleSuffix,
		Description:     description,
		Theme: domain.ConfigTheme{
			ThemeID: slug,
			Palette: palette,
			Typography: domain.Typography{
				FontFamily: "Inter, system-ui, sans-serif",
				Scale:      "1.0",
			},
			Radius:  "md",
			Spacing: "md",
		},
		Publishing: domain.ConfigPublishing{
			Target: "static",
			Output: domain.ConfigOutput{
				Format:      "html",
				EntryPageID: "home",
			},
			Constraints: domain.ConfigConstraints{
				MaxPages:           10,
				MaxSectionsPerPage: 12,
			},
		},
		Pages: []PageTemplate{
			{
				ID:    "home",
				Path:  "/",
				Title: "{{brandName}} — " + titleSuffix,
				Sections: []SectionTemplate{
					{
						ID:   "hero",
						Type: domain.SectionHero,
						Props: map[string]any{
							"headline":    "{{brandName}} — " + titleSuffix,
							"subheadline": "{{industryLabel}}",
							"logoUrl":     "{{logoUrl}}",
							"logoAssetId": "{{logoAssetId}}",
						},
					},
					{
						ID:   "about",
						Type: domain.SectionAbout,
						Props: map[string]any{
							"body": description,
						},
					},
					{
						ID:   "services",
						Type: domain.SectionServices,
						Props: map[string]any{
							"intro": "What {{brandName}} offers",
						},
					},
					{
						ID:   "contact",
						Type: domain.SectionContact,
						Props: map[string]any{
							"heading": "Get in touch with {{brandName}}",
						},
					},
					{
						ID:   "footer",
						Type: domain.SectionFooter,
						Props: map[string]any{
							"brandName": "{{brandName}}",
							"slug":      "{{slug}}",
						},
					},
				},
			},
		},
	}
}
