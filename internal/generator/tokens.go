package generator

import (
	"strings"

	"github.com/itkodovaya/site-builder/internal/domain"
	"github.com/itkodovaya/site-builder/internal/util"
)

// tokenSet is the closed token alphabet resolved through every props tree.
// logoAssetID is any (string or nil) per the "whole-field" substitution rule.
type tokenSet struct {
	brandName     string
	industryLabel string
	logoURL       string
	logoAssetID   any
	slug          string
}

func (t tokenSet) stringValue(name string) (string, bool) {
	switch name {
	case "brandName":
		return t.brandName, true
	case "industryLabel":
		return t.industryLabel, true
	case "logoUrl":
		return t.logoURL, true
	case "slug":
		return t.slug, true
	case "logoAssetId":
		if s, ok := t.logoAssetID.(string); ok {
			return s, true
		}
		return "", true
	default:
		return "", false
	}
}

// resolveString substitutes every {{name}} occurrence in s with its token's
// string form. If s is exactly "{{logoAssetId}}" the non-string value (the
// asset id or nil) is returned instead via resolveValue.
func resolveString(t tokenSet, s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		start := strings.Index(s[i:], "{{")
		if start < 0 {
			b.WriteString(s[i:])
			break
		}
		start += i
		b.WriteString(s[i:start])
		end := strings.Index(s[start:], "}}")
		if end < 0 {
			b.WriteString(s[start:])
			break
		}
		end += start
		name := strings.TrimSpace(s[start+2 : end])
		if value, ok := t.stringValue(name); ok {
			b.WriteString(value)
		} else {
			b.WriteString(s[start : end+2])
		}
		i = end + 2
	}
	return b.String()
}

// resolveValue resolves a single props value. Whole-string tokens that map
// to a non-string value (logoAssetId) pass that value through untouched;
// every other string undergoes resolveString substitution.
func resolveValue(t tokenSet, v any) any {
	switch typed := v.(type) {
	case string:
		if name, ok := wholeToken(typed); ok && name == "logoAssetId" {
			return t.logoAssetID
		}
		return resolveString(t, typed)
	case map[string]any:
		return resolveProps(t, typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = resolveValue(t, item)
		}
		return out
	default:
		return v
	}
}

// resolveProps deep-clones and resolves tokens through an entire props tree.
func resolveProps(t tokenSet, props map[string]any) map[string]any {
	cloned := util.CloneAnyMap(props)
	out := make(map[string]any, len(cloned))
	for key, value := range cloned {
		out[key] = resolveValue(t, value)
	}
	return out
}

func wholeToken(s string) (name string, ok bool) {
	if !strings.HasPrefix(s, "{{") || !strings.HasSuffix(s, "}}") {
		return "", false
	}
	inner := strings.TrimSpace(s[2 : len(s)-2])
	if strings.Contains(inner, "{{") {
		return "", false
	}
	return inner, true
}

func newTokenSet(brand domain.BrandProfile, slug string) tokenSet {
	set := tokenSet{
		brandName:     brand.BrandName,
		industryLabel: brand.Industry.Label,
		slug:          slug,
	}
	if brand.Logo != nil {
		set.logoURL = brand.Logo.URL
		set.logoAssetID = brand.Logo.AssetID
	} else {
		set.logoAssetID = nil
	}
	return set
}
