package preview

import "github.com/itkodovaya/site-builder/internal/domain"

// ExternalRenderer is an optional alternate rendering backend. When present
// and Available reports true, Render consults it first; any error, or a
// failure of containsUnsafeContent's pattern check, falls through to the built-in
// renderer. A successful external path is non-observable: same ETag, same
// externally observable behavior as the built-in renderer would have
// produced. No concrete implementation ships with this service — wiring one
// in is a deployment-time decision.
type ExternalRenderer interface {
	Available() bool
	Render(cfg domain.SiteConfig, format Format) (content string, ok bool, err error)
}
