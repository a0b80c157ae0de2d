package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talentohq/ats-server/internal/reports"
	"github.com/talentohq/ats-server/internal/service/candidate"
	"github.com/talentohq/ats-server/internal/service/process"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DownloadProcessReport streams an xlsx export of a process and all its
// candidates.
func (h *Handlers) DownloadProcessReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	proc, err := h.processes.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, process.ErrNotFound) {
			respondError(w, http.StatusNotFound, "process not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// The export always covers every candidate, not one UI page.
	cands, _, err := h.candidates.ListByProcess(r.Context(), id, candidate.ListFilter{Limit: 10000})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	b, err := reports.BuildProcessReport(proc, cands)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="proceso-%s.xlsx"`, id))
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
