package domain

import (
	"strings"
	"unicode"
)

// MaxBrandNameLength is the inclusive upper bound on a normalized brand name.
const MaxBrandNameLength = 100

// BrandProfile is the submitted identity of the site being built.
type BrandProfile struct {
	SchemaVersion int          `json:"schemaVersion"`
	BrandName     string       `json:"brandName"`
	Industry      IndustryInfo `json:"industry"`
	Logo          *AssetInfo   `json:"logo,omitempty"`
}

// NormalizeBrandName applies the §4.A normalization rules: trim, drop C0/DEL
// control code points, collapse internal whitespace runs, truncate at
// MaxBrandNameLength code points. Callers must reject the empty result.
func NormalizeBrandName(raw string) string {
	withoutControl := make([]rune, 0, len(raw))
	for _, r := range raw {
		if r <= 0x1F || r == 0x7F {
			continue
		}
		withoutControl = append(withoutControl, r)
	}

	collapsed := strings.Join(strings.FieldsFunc(string(withoutControl), unicode.IsSpace), " ")
	trimmed := strings.TrimSpace(collapsed)

	runes := []rune(trimmed)
	if len(runes) > MaxBrandNameLength {
		runes = runes[:MaxBrandNameLength]
	}
	return string(runes)
}

// ValidateBrandName reports whether a normalized brand name satisfies the
// length invariant (1..MaxBrandNameLength code points after normalization).
func ValidateBrandName(normalized string) bool {
	count := len([]rune(normalized))
	return count >= 1 && count <= MaxBrandNameLength
}

// NewBrandProfile normalizes brandName and the industry code, returning an
// error-free value object. Validation of emptiness is the caller's
// responsibility (surfaced as InvalidInput at the HTTP boundary).
func NewBrandProfile(schemaVersion int, brandName string, industryCode, industryLabel string, logo *AssetInfo) BrandProfile {
	return BrandProfile{
		SchemaVersion: schemaVersion,
		BrandName:     NormalizeBrandName(brandName),
		Industry:      NewIndustryInfo(industryCode, industryLabel),
		Logo:          logo,
	}
}
