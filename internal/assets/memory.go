package assets

import (
	"context"
	"sync"

	"github.com/itkodovaya/site-builder/internal/domain"
)

// MemoryProvider is a reference Provider backed by a registered in-memory
// map. Production deployments wire a real blob-metadata client instead;
// this implementation exists for local development and tests, the same
// role the teacher's memory.go repositories play for their domains.
type MemoryProvider struct {
	mu     sync.RWMutex
	assets map[string]domain.AssetInfo
}

// NewMemoryProvider constructs an empty MemoryProvider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{assets: make(map[string]domain.AssetInfo)}
}

// Register makes asset resolvable by its AssetID, as if it had been
// uploaded to the external blob store ahead of time.
func (p *MemoryProvider) Register(asset domain.AssetInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.assets[asset.AssetID] = asset
}

// Fetch implements Provider.
func (p *MemoryProvider) Fetch(_ context.Context, assetID string) (domain.AssetInfo, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	asset, ok := p.assets[assetID]
	if !ok {
		return domain.AssetInfo{}, domain.NewAssetNotFound(assetID)
	}
	return asset, nil
}
