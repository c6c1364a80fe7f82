package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	goerrors "github.com/goliatone/go-errors"
	"github.com/itkodovaya/site-builder/internal/domain"
	"github.com/itkodovaya/site-builder/internal/draftstore"
)

// errorResponse is the JSON error body every handler in this package writes:
// a stable machine-readable code, a human message, and optional field-level
// issues.
type errorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message,omitempty"`
	Issues  map[string]any `json:"issues,omitempty"`
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

// mapError implements the §7 error propagation table: typed domain errors
// and sentinels are recognized by errors.As/errors.Is before anything falls
// through to a generic 500, exactly the chain the teacher's mapError uses
// for its own domain-specific error types.
func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "internal_error"}
	}

	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		code := "not_found"
		switch notFound.Resource {
		case "draft":
			code = "draft_not_found"
		case "asset":
			code = "asset_not_found"
		case "project":
			code = "project_not_found"
		}
		return http.StatusNotFound, errorResponse{Error: code, Message: notFound.Error()}
	}

	if errors.Is(err, draftstore.ErrNotFound) {
		return http.StatusNotFound, errorResponse{Error: "draft_not_found", Message: err.Error()}
	}

	if errors.Is(err, domain.ErrDraftExpired) {
		return http.StatusGone, errorResponse{Error: "draft_expired", Message: err.Error()}
	}

	if errors.Is(err, domain.ErrCommitInProgress) {
		return http.StatusConflict, errorResponse{Error: "commit_in_progress", Message: err.Error()}
	}

	if errors.Is(err, domain.ErrUnauthorized) {
		return http.StatusUnauthorized, errorResponse{Error: "unauthorized", Message: err.Error()}
	}

	if errors.Is(err, domain.ErrPreviewUnsafe) {
		return http.StatusInternalServerError, errorResponse{Error: "preview_unsafe", Message: err.Error()}
	}

	if errors.Is(err, draftstore.ErrConflict) {
		return http.StatusConflict, errorResponse{Error: "conflict", Message: err.Error()}
	}

	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, errorResponse{
			Error:   "invalid_input",
			Message: err.Error(),
			Issues:  validationIssues(validationErrs),
		}
	}

	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: err.Error()}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()}
}

func validationIssues(errs validation.Errors) map[string]any {
	issues := make(map[string]any, len(errs))
	for field, err := range errs {
		issues[field] = err.Error()
	}
	return issues
}
