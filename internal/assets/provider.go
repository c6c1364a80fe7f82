// Package assets is the blob-metadata adapter (§1: "the asset (logo) blob
// store ... the core only consumes its metadata interface"). The core
// never reads the underlying bytes; it only resolves an AssetInfo record
// for a previously uploaded logo, which CreateDraft/UpdateDraft fold into
// BrandProfile.Logo and the generator later copies verbatim.
package assets

import (
	"context"

	"github.com/itkodovaya/site-builder/internal/domain"
)

// Provider is the suspension point named in §5 ("the AssetInfo fetch
// during Create/Update"): a single-method lookup against the external
// blob-metadata service, keyed by the opaque assetId a client supplies.
type Provider interface {
	// Fetch returns the AssetInfo for assetID, or domain.NewAssetNotFound
	// wrapped as a *domain.NotFoundError if the blob store has no record
	// of it.
	Fetch(ctx context.Context, assetID string) (domain.AssetInfo, error)
}
