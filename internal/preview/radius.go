package preview

// radiusPixels maps the theme's named border-radius token to a CSS value.
// Unknown tokens fall back to the "none" value.
var radiusPixels = map[string]string{
	"none": "0",
	"sm":   "4px",
	"md":   "8px",
	"lg":   "16px",
	"full": "9999px",
}

func cssRadius(token string) string {
	if px, ok := radiusPixels[token]; ok {
		return px
	}
	return radiusPixels["none"]
}
