// Package usecases wires the §4 operations (CreateDraft, UpdateDraft,
// GetDraft, GetPreview, CommitDraft) into command.Message request shapes,
// following the same Type()/Validate() contract the teacher's
// internal/commands/content.PublishContentCommand uses. Unlike that
// fire-and-forget pattern, every operation here returns a value the HTTP
// adapter serializes, so Service methods call command.ValidateMessage and
// the internal/commands error/context helpers directly instead of going
// through the discard-result commands.Handler[T].
package usecases

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/itkodovaya/site-builder/internal/domain"
)

const (
	createDraftMessageType = "sitebuilder.draft.create"
	updateDraftMessageType = "sitebuilder.draft.update"
	getDraftMessageType    = "sitebuilder.draft.get"
	getPreviewMessageType  = "sitebuilder.draft.preview"
	commitDraftMessageType = "sitebuilder.draft.commit"
)

// IndustryInput carries the client-submitted industry selection.
type IndustryInput struct {
	Code  string `json:"code"`
	Label string `json:"label,omitempty"`
}

// CreateDraftCommand requests a new Draft for a brand submission.
type CreateDraftCommand struct {
	BrandName   string        `json:"brandName"`
	Industry    IndustryInput `json:"industry"`
	LogoAssetID string        `json:"logoAssetId,omitempty"`
	TTLSeconds  int           `json:"ttlSeconds,omitempty"`
	Meta        domain.DraftMeta
}

// Type implements command.Message.
func (CreateDraftCommand) Type() string { return createDraftMessageType }

// Validate ensures a non-empty normalized brand name and industry code are
// present before the handler touches the asset provider or draft store.
func (m CreateDraftCommand) Validate() error {
	errs := validation.Errors{}
	if !domain.ValidateBrandName(domain.NormalizeBrandName(m.BrandName)) {
		errs["brandName"] = validation.NewError("sitebuilder.draft.create.brand_name_invalid", "brandName is required and must be 1-100 characters after normalization")
	}
	if strings.TrimSpace(m.Industry.Code) == "" {
		errs["industry.code"] = validation.NewError("sitebuilder.draft.create.industry_code_required", "industry.code is required")
	}
	if m.TTLSeconds < 0 {
		errs["ttlSeconds"] = validation.NewError("sitebuilder.draft.create.ttl_invalid", "ttlSeconds must not be negative")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateDraftCommand applies a tri-state PATCH to an existing Draft (§4.B).
// A field left Unset in the JSON payload is left untouched; Optional's
// UnmarshalJSON already distinguishes that from an explicit null (Cleared).
type UpdateDraftCommand struct {
	DraftID     string                         `json:"-"`
	BrandName   domain.Optional[string]        `json:"brandName"`
	Industry    domain.Optional[IndustryInput] `json:"industry"`
	LogoAssetID domain.Optional[string]        `json:"logoAssetId"`
}

// Type implements command.Message.
func (UpdateDraftCommand) Type() string { return updateDraftMessageType }

// Validate ensures draftId is present and any supplied brandName survives
// normalization.
func (m UpdateDraftCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.DraftID) == "" {
		errs["draftId"] = validation.NewError("sitebuilder.draft.update.draft_id_required", "draftId is required")
	}
	if name, ok := m.BrandName.Value(); ok && !domain.ValidateBrandName(domain.NormalizeBrandName(name)) {
		errs["brandName"] = validation.NewError("sitebuilder.draft.update.brand_name_invalid", "brandName must be 1-100 characters after normalization")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GetDraftQuery fetches a live Draft by id (§4.B, no TTL slide).
type GetDraftQuery struct {
	DraftID string `json:"-"`
}

// Type implements command.Message.
func (GetDraftQuery) Type() string { return getDraftMessageType }

// Validate ensures draftId is present.
func (m GetDraftQuery) Validate() error {
	if strings.TrimSpace(m.DraftID) == "" {
		return validation.Errors{"draftId": validation.NewError("sitebuilder.draft.get.draft_id_required", "draftId is required")}
	}
	return nil
}

// GetPreviewQuery renders a Draft's current SiteConfig (§4.D) and slides
// its TTL.
type GetPreviewQuery struct {
	DraftID string `json:"-"`
	Format  string `json:"-"`
}

// Type implements command.Message.
func (GetPreviewQuery) Type() string { return getPreviewMessageType }

// Validate ensures draftId is present and format, when supplied, is a
// recognized preview mode.
func (m GetPreviewQuery) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.DraftID) == "" {
		errs["draftId"] = validation.NewError("sitebuilder.draft.preview.draft_id_required", "draftId is required")
	}
	switch m.Format {
	case "", string(domain.PreviewModeHTML), string(domain.PreviewModeJSON):
	default:
		errs["type"] = validation.NewError("sitebuilder.draft.preview.format_invalid", "type must be html or json")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CommitDraftCommand migrates a Draft into a permanent Project (§4.E).
type CommitDraftCommand struct {
	DraftID string      `json:"-"`
	Owner   domain.Owner `json:"-"`
}

// Type implements command.Message.
func (CommitDraftCommand) Type() string { return commitDraftMessageType }

// Validate ensures draftId and an owning userId are present.
func (m CommitDraftCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.DraftID) == "" {
		errs["draftId"] = validation.NewError("sitebuilder.draft.commit.draft_id_required", "draftId is required")
	}
	if strings.TrimSpace(m.Owner.UserID) == "" {
		errs["owner.userId"] = validation.NewError("sitebuilder.draft.commit.owner_required", "owner.userId is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
