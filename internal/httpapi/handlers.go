package httpapi

import (
	"net/http"

	"github.com/itkodovaya/site-builder/internal/domain"
	"github.com/itkodovaya/site-builder/internal/preview"
	"github.com/itkodovaya/site-builder/internal/usecases"
)

func (s *Server) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	var req createDraftRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: err.Error()})
		return
	}
	draft, err := s.service.CreateDraft(r.Context(), req.toCommand())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, draft)
}

func (s *Server) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	draftID := r.PathValue("draftId")
	var req updateDraftRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: err.Error()})
		return
	}
	draft, err := s.service.UpdateDraft(r.Context(), req.toCommand(draftID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	draftID := r.PathValue("draftId")
	draft, err := s.service.GetDraft(r.Context(), usecases.GetDraftQuery{DraftID: draftID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleGetPreview(w http.ResponseWriter, r *http.Request) {
	draftID := r.PathValue("draftId")
	format := r.URL.Query().Get("type")
	output, err := s.service.GetPreview(r.Context(), usecases.GetPreviewQuery{DraftID: draftID, Format: format})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("ETag", output.ETag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == output.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

// handleDirectPreview implements the §6.1 `GET /p/{draftId}` shortcut: the
// rendered HTML document is returned directly (not wrapped in the Output
// envelope), with ETag/If-None-Match support so repeated polling of an
// unchanged draft costs a 304 instead of a full render.
func (s *Server) handleDirectPreview(w http.ResponseWriter, r *http.Request) {
	draftID := r.PathValue("draftId")
	output, err := s.service.GetPreview(r.Context(), usecases.GetPreviewQuery{DraftID: draftID, Format: string(preview.FormatHTML)})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("ETag", output.ETag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == output.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(output.Content))
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	if s.internalToken != "" && r.Header.Get("X-Internal-Token") != s.internalToken {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	draftID := r.PathValue("draftId")
	var req commitDraftRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: err.Error()})
		return
	}
	result, err := s.service.CommitDraft(r.Context(), usecases.CommitDraftCommand{
		DraftID: draftID,
		Owner:   domain.Owner{UserID: req.Owner.UserID, TenantID: req.Owner.TenantID},
	})
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusOK
	if result.Status == domain.CommitStatusMigrated {
		status = http.StatusCreated
	}
	writeJSON(w, status, result)
}
