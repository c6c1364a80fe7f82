package httpapi

import (
	"github.com/itkodovaya/site-builder/internal/domain"
	"github.com/itkodovaya/site-builder/internal/usecases"
)

// industryRequest is the wire shape of §6.1's `industry:{code,label?}`.
type industryRequest struct {
	Code  string `json:"code"`
	Label string `json:"label,omitempty"`
}

// logoRequest is the wire shape of §6.1's `logo?:{assetId}`.
type logoRequest struct {
	AssetID string `json:"assetId"`
}

// createDraftRequest is the POST /drafts body.
type createDraftRequest struct {
	BrandName  string          `json:"brandName"`
	Industry   industryRequest `json:"industry"`
	Logo       *logoRequest    `json:"logo,omitempty"`
	TTLSeconds int             `json:"ttlSeconds,omitempty"`
}

func (r createDraftRequest) toCommand() usecases.CreateDraftCommand {
	cmd := usecases.CreateDraftCommand{
		BrandName:  r.BrandName,
		Industry:   usecases.IndustryInput{Code: r.Industry.Code, Label: r.Industry.Label},
		TTLSeconds: r.TTLSeconds,
	}
	if r.Logo != nil {
		cmd.LogoAssetID = r.Logo.AssetID
	}
	return cmd
}

// updateDraftRequest is the PATCH /drafts/{id} body. Every field is a
// tri-state Optional so a missing key leaves the draft untouched while an
// explicit `null` clears it (logo only; brandName/industry null is treated
// as Unset since the domain has no meaningful "no brand" state).
type updateDraftRequest struct {
	BrandName domain.Optional[string]          `json:"brandName"`
	Industry  domain.Optional[industryRequest] `json:"industry"`
	Logo      domain.Optional[logoRequest]     `json:"logo"`
}

func (r updateDraftRequest) toCommand(draftID string) usecases.UpdateDraftCommand {
	cmd := usecases.UpdateDraftCommand{DraftID: draftID}
	if name, ok := r.BrandName.Value(); ok {
		cmd.BrandName = domain.Set(name)
	}
	if industry, ok := r.Industry.Value(); ok {
		cmd.Industry = domain.Set(usecases.IndustryInput{Code: industry.Code, Label: industry.Label})
	}
	switch {
	case r.Logo.IsCleared():
		cmd.LogoAssetID = domain.Clear[string]()
	case r.Logo.IsPresent():
		logo, _ := r.Logo.Value()
		cmd.LogoAssetID = domain.Set(logo.AssetID)
	}
	return cmd
}

// commitDraftRequest is the POST /drafts/{id}/commit body.
type commitDraftRequest struct {
	Owner struct {
		UserID   string `json:"userId"`
		TenantID string `json:"tenantId,omitempty"`
	} `json:"owner"`
}
