package domain

import "time"

// DraftStatus is always StatusDraft for records produced by this core; the
// field exists for forward schema compatibility only.
type DraftStatus string

const StatusDraft DraftStatus = "DRAFT"

// PreviewMode selects the renderer output shape.
type PreviewMode string

const (
	PreviewModeHTML PreviewMode = "html"
	PreviewModeJSON PreviewMode = "json"
)

// GeneratorInfo pins the generator identity used to produce a SiteConfig,
// carried on the Draft so a later Commit reproduces the same template
// selection even if the registry gains entries in the meantime.
type GeneratorInfo struct {
	Engine        string `json:"engine"`
	EngineVersion string `json:"engineVersion"`
	TemplateID    string `json:"templateId"`
	Locale        string `json:"locale"`
}

// PreviewState records the last preview rendered for a Draft.
type PreviewState struct {
	Mode            PreviewMode `json:"mode"`
	URL             string      `json:"url,omitempty"`
	LastGeneratedAt *time.Time  `json:"lastGeneratedAt,omitempty"`
	ETag            string      `json:"etag,omitempty"`
}

// DraftMeta carries operational provenance that never participates in
// generation; all fields are optional and privacy-preserving (hashes, not
// raw identifiers).
type DraftMeta struct {
	IPHash        string `json:"ipHash,omitempty"`
	UserAgentHash string `json:"userAgentHash,omitempty"`
	Source        string `json:"source,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// Draft is the primary temporary object manipulated by CreateDraft,
// UpdateDraft, GetDraft, GetPreview, and CommitDraft.
type Draft struct {
	SchemaVersion int           `json:"schemaVersion"`
	DraftID       string        `json:"draftId"`
	Status        DraftStatus   `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	ExpiresAt     time.Time     `json:"expiresAt"`
	TTLSeconds    int           `json:"ttlSeconds"`
	BrandProfile  BrandProfile  `json:"brandProfile"`
	Generator     GeneratorInfo `json:"generator"`
	Preview       PreviewState  `json:"preview"`
	Meta          DraftMeta     `json:"meta"`
}

// NewDraft constructs a Draft with createdAt == updatedAt == now and
// expiresAt = now + ttlSeconds, satisfying the §3.1 invariants.
func NewDraft(draftID string, brand BrandProfile, generator GeneratorInfo, meta DraftMeta, ttlSeconds int, now time.Time) Draft {
	now = now.UTC().Truncate(time.Millisecond)
	return Draft{
		SchemaVersion: 1,
		DraftID:       draftID,
		Status:        StatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
		ExpiresAt:     now.Add(time.Duration(ttlSeconds) * time.Second),
		TTLSeconds:    ttlSeconds,
		BrandProfile:  brand,
		Generator:     generator,
		Preview:       PreviewState{Mode: PreviewModeHTML},
		Meta:          meta,
	}
}

// Touch recomputes updatedAt/expiresAt for a mutation at `now`, preserving
// ttlSeconds. Every UpdateDraft and GetPreview call must invoke this to
// satisfy the sliding-TTL invariant `expiresAt = updatedAt + ttlSeconds`.
func (d Draft) Touch(now time.Time) Draft {
	now = now.UTC().Truncate(time.Millisecond)
	d.UpdatedAt = now
	d.ExpiresAt = now.Add(time.Duration(d.TTLSeconds) * time.Second)
	return d
}

// IsExpired reports semantic expiration per §4.B: the domain layer checks
// expiresAt <= now independently of the store's own TTL eviction, to cover
// clock skew between the store and the service process.
func (d Draft) IsExpired(now time.Time) bool {
	return !d.ExpiresAt.After(now)
}
