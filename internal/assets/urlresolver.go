package assets

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const (
	assetRouteGroup = "assets"
	assetRouteName  = "logo"
)

// URLResolver derives the public URL for an asset id from the configured
// blob-store base URL, the same go-urlkit group/route construction the
// teacher uses to resolve menu entry and page links (internal/menus).
type URLResolver struct {
	manager *urlkit.RouteManager
}

// NewURLResolver builds a resolver rooted at baseURL with a single
// ":assetId" route, so AssetConfig.BaseURL (§6.3) is the only moving part a
// deployment needs to configure.
func NewURLResolver(baseURL string) *URLResolver {
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    assetRouteGroup,
				BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
				Paths: map[string]string{
					assetRouteName: "/:assetId",
				},
			},
		},
	})
	return &URLResolver{manager: manager}
}

// URL builds the public URL for assetID. It never fails in practice (the
// route is static and fully specified at construction time); an error is
// only possible if the caller has not constructed the resolver correctly.
func (r *URLResolver) URL(assetID string) (string, error) {
	if r == nil || r.manager == nil {
		return "", fmt.Errorf("assets: url resolver not configured")
	}
	group := r.manager.Group(assetRouteGroup)
	if group == nil {
		return "", fmt.Errorf("assets: route group %q not found", assetRouteGroup)
	}
	builder := group.Builder(assetRouteName)
	return builder.WithParam("assetId", assetID).Build()
}
