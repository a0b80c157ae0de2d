package api

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/talentohq/ats-server/internal/importer"
	"github.com/talentohq/ats-server/internal/service/process"
)

// ImportCandidates accepts a multipart CSV or spreadsheet upload and
// runs the bulk import into the process's first stage.
func (h *Handlers) ImportCandidates(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(h.config.Import.MaxFileSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read upload")
		return
	}

	rows, err := parseUpload(header.Filename, data)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.imports.Import(r.Context(), rows, chi.URLParam(r, "id"))
	if err != nil {
		var cfgErr *importer.ConfigurationError
		switch {
		case errors.As(err, &cfgErr):
			respondError(w, http.StatusUnprocessableEntity, cfgErr.Reason)
		case errors.Is(err, process.ErrNotFound):
			respondError(w, http.StatusNotFound, "process not found")
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// parseUpload picks the parser from the file extension, defaulting to
// CSV for anything that isn't a known workbook format.
func parseUpload(filename string, data []byte) ([]importer.RawRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return importer.ParseSpreadsheet(data)
	default:
		return importer.ParseCSV(string(data)), nil
	}
}

// RecentImports returns the last few import runs for the dashboard.
func (h *Handlers) RecentImports(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{"imports": []importer.ImportRecord{}})
		return
	}
	recs, err := h.history.Recent(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"imports": recs})
}
