package domain

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// NotFoundError is the typed not-found error for a {Resource, Key} pair
// (draft, asset, project).
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// Sentinel domain errors surfaced by the draft store, generator, preview
// renderer, and commit coordinator. The HTTP boundary (internal/httpapi)
// maps these to the §7 status taxonomy via errors.Is/errors.As.
var (
	// ErrDraftExpired is returned when the semantic expiration check
	// (expiresAt <= now) fires even though the store has not yet evicted
	// the key (clock skew tolerance, §4.B).
	ErrDraftExpired = errors.New("draft: semantically expired")

	// ErrDraftConflict names a lost compare-and-set race. The draft store
	// reports that case with draftstore.ErrConflict; nothing returns this
	// value.
	ErrDraftConflict = errors.New("draft store: conflicting concurrent update")

	// ErrDraftAlreadyExists names an occupied key on Save. The draft store
	// reports that case with draftstore.ErrAlreadyExists; nothing returns
	// this value.
	ErrDraftAlreadyExists = errors.New("draft store: draft already exists")

	// ErrCommitInProgress signals the commit lock is currently held by
	// another attempt for the same draftId.
	ErrCommitInProgress = errors.New("commit: another commit is in progress for this draft")

	// ErrDraftAlreadyCommitted names the idempotent-replay outcome (§7: it
	// surfaces as 200 with the existing identifiers). The commit
	// coordinator does not return it; it reports replay through
	// CommitResult.Status (CommitStatusAlreadyCommitted) instead.
	ErrDraftAlreadyCommitted = errors.New("commit: draft was already committed")

	// ErrPreviewUnsafe names the unsafe-content outcome; httpapi maps it to
	// 500. The preview renderer does not return it: external output that
	// matches the detector falls back to the built-in renderer.
	ErrPreviewUnsafe = errors.New("preview: unsafe content detected")

	// ErrUnauthorized signals a missing or mismatched internal token on
	// the commit endpoint.
	ErrUnauthorized = errors.New("commit: internal token missing or invalid")
)

// WrapInvalidInput tags a validation failure with the Validation category so
// the HTTP boundary's mapError can recognize it without string matching.
func WrapInvalidInput(err error, textCode string) error {
	if err == nil {
		return nil
	}
	wrapped := goerrors.Wrap(err, goerrors.CategoryValidation, err.Error())
	if textCode != "" {
		wrapped = wrapped.WithTextCode(textCode)
	}
	return wrapped
}

// WrapInternal tags an unexpected failure with the Command category, the
// same category the teacher's command handlers use for execution failures.
func WrapInternal(err error, op string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, op)
}

// NewDraftNotFound constructs the typed not-found error for a draftId.
func NewDraftNotFound(draftID string) error {
	return &NotFoundError{Resource: "draft", Key: draftID}
}

// NewAssetNotFound constructs the typed not-found error for an assetId.
func NewAssetNotFound(assetID string) error {
	return &NotFoundError{Resource: "asset", Key: assetID}
}

// NewProjectNotFound constructs the typed not-found error for a projectId.
func NewProjectNotFound(key string) error {
	return &NotFoundError{Resource: "project", Key: key}
}
