// Package identity derives the opaque, prefixed identifiers (drf_, cfg_,
// prj_, ast_) exposed at the domain boundary and the deterministic internal
// uuid.UUID primary keys the bun-backed repositories require.
package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const (
	draftPrefix   = "drf_"
	configPrefix  = "cfg_"
	projectPrefix = "prj_"
	assetPrefix   = "ast_"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// NewDraftID returns a fresh, randomly generated opaque draft identifier.
func NewDraftID() string {
	return draftPrefix + uuid.NewString()
}

// NewConfigID returns a fresh, randomly generated opaque config identifier.
func NewConfigID() string {
	return configPrefix + uuid.NewString()
}

// NewProjectID returns a fresh, randomly generated opaque project identifier.
func NewProjectID() string {
	return projectPrefix + uuid.NewString()
}

// ProjectRowUUID derives the deterministic internal primary key backing a
// project row, so that a commit retried after a crash before the response
// was observed still resolves to the same row via the unique draftId index
// rather than relying solely on application-level idempotency.
func ProjectRowUUID(projectID string) uuid.UUID {
	return UUID("sitebuilder:project:" + strings.TrimSpace(projectID))
}

// ConfigRowUUID derives the deterministic internal primary key backing a
// project_configs row.
func ConfigRowUUID(configID string) uuid.UUID {
	return UUID("sitebuilder:project_config:" + strings.TrimSpace(configID))
}

// PreviewConfigID derives a content-stable configId for an unpersisted
// preview, keyed only by draftId. Unlike NewConfigID (random, for the id a
// commit actually persists), repeated previews of the same draft must
// report the same configId so the preview ETag stays stable across calls.
func PreviewConfigID(draftID string) string {
	return configPrefix + UUID("sitebuilder:preview_config:"+strings.TrimSpace(draftID)).String()
}

// HasPrefix reports whether id carries one of the four opaque identifier
// prefixes this service recognizes.
func HasPrefix(id string) bool {
	for _, prefix := range []string{draftPrefix, configPrefix, projectPrefix, assetPrefix} {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}
