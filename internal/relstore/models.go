// Package relstore is the relational store for committed Projects and
// ProjectConfigs (§4.E). Every row uses the dual-id scheme: a deterministic
// internal uuid.UUID primary key (derived by internal/identity so
// go-repository-bun's generic Repository[*T] has the uuid.UUID it requires)
// alongside the opaque, externally-issued string id as a separate UNIQUE
// column.
package relstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// projectRecord is the bun model backing the projects table.
type projectRecord struct {
	bun.BaseModel `bun:"table:projects,alias:pr"`

	ID        uuid.UUID `bun:",pk,type:uuid"`
	ProjectID string    `bun:"project_id,notnull,unique"`
	DraftID   string    `bun:"draft_id,notnull,unique"`
	UserID    string    `bun:"user_id,notnull"`
	TenantID  string    `bun:"tenant_id"`
	Status    string    `bun:"status,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp"`
}

// projectConfigRecord is the bun model backing the project_configs table.
type projectConfigRecord struct {
	bun.BaseModel `bun:"table:project_configs,alias:pc"`

	ID              uuid.UUID `bun:",pk,type:uuid"`
	ConfigID        string    `bun:"config_id,notnull,unique"`
	ProjectRowID    uuid.UUID `bun:"project_row_id,notnull,type:uuid"`
	SchemaVersion   int       `bun:"schema_version,notnull"`
	ConfigVersion   string    `bun:"config_version,notnull"`
	TemplateID      string    `bun:"template_id,notnull"`
	TemplateVersion int       `bun:"template_version,notnull"`
	ConfigJSON      []byte    `bun:"config_json,type:jsonb,notnull"`
	ConfigHash      string    `bun:"config_hash,notnull"`
	CreatedAt       time.Time `bun:"created_at,nullzero,default:current_timestamp"`

	Project *projectRecord `bun:"rel:belongs-to,join:project_row_id=id"`
}
