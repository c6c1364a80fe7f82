package domain

import "time"

// AssetInfo describes a previously uploaded logo. The core never reads the
// underlying blob; it only consumes this metadata record from the
// blob-metadata adapter (assets.Provider, see internal/assets).
type AssetInfo struct {
	AssetID    string    `json:"assetId"`
	URL        string    `json:"url"`
	MimeType   string    `json:"mimeType"`
	Width      *int      `json:"width,omitempty"`
	Height     *int      `json:"height,omitempty"`
	Bytes      int64     `json:"bytes"`
	SHA256     string    `json:"sha256"`
	UploadedAt time.Time `json:"uploadedAt"`
}
