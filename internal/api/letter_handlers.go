package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/talentohq/ats-server/internal/domain"
	"github.com/talentohq/ats-server/internal/letters"
	"github.com/talentohq/ats-server/internal/pkg/logger"
	"github.com/talentohq/ats-server/internal/service/candidate"
)

const letterContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

func (h *Handlers) readTemplate(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	maxBytes := int64(h.config.Import.MaxFileSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("template")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing template upload")
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read template")
		return nil, "", false
	}
	return data, filepath.Base(header.Filename), true
}

// DetectTemplateFields scans an uploaded template for placeholders.
// A template with zero placeholders is a valid result, not an error.
// Detect is where templates enter the system, so a valid upload is also
// archived to the document store when one is configured.
func (h *Handlers) DetectTemplateFields(w http.ResponseWriter, r *http.Request) {
	data, name, ok := h.readTemplate(w, r)
	if !ok {
		return
	}
	fields, err := letters.DetectFields(data)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.docs != nil {
		if key, err := h.docs.SaveTemplate(r.Context(), name, data); err != nil {
			logger.Warn("failed to archive template", "template", name, "error", err.Error())
		} else {
			w.Header().Set("X-Template-Key", key)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"fields": fields})
}

// AutoFillFields resolves detected field names against a candidate.
func (h *Handlers) AutoFillFields(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CandidateID string   `json:"candidate_id"`
		Fields      []string `json:"fields"`
	}
	if err := decodeBody(r, &in); err != nil || in.CandidateID == "" {
		respondError(w, http.StatusBadRequest, "candidate_id and fields are required")
		return
	}

	cand, proc, err := h.loadLetterSubjects(r, in.CandidateID)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			respondError(w, http.StatusNotFound, "candidate not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	values := h.resolver.AutoFill(in.Fields, cand, proc)
	respondJSON(w, http.StatusOK, map[string]interface{}{"values": values})
}

// GenerateLetter renders the final document. The session flow enforces
// that every detected field holds a value before anything is written.
func (h *Handlers) GenerateLetter(w http.ResponseWriter, r *http.Request) {
	data, _, ok := h.readTemplate(w, r)
	if !ok {
		return
	}
	candidateID := r.FormValue("candidate_id")
	values, ok := parseValuesField(w, r)
	if !ok {
		return
	}

	session := letters.NewSession(h.resolver)
	if _, err := session.LoadTemplate(data); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cand, proc, err := h.loadLetterSubjects(r, candidateID)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			respondError(w, http.StatusNotFound, "candidate not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if _, err := session.Resolve(cand, proc); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	for name, value := range values {
		if err := session.SetValue(name, value); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	doc, err := session.Generate()
	if err != nil {
		var missing *letters.MissingFieldError
		var render *letters.TemplateRenderError
		switch {
		case errors.As(err, &missing):
			respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":          "unresolved template fields",
				"missing_fields": missing.Fields,
			})
		case errors.As(err, &render):
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":    render.Message,
				"category": render.Category,
				"tag":      render.Tag,
			})
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if h.docs != nil && candidateID != "" {
		if key, err := h.docs.SaveLetter(r.Context(), candidateID, doc); err != nil {
			logger.Warn("failed to archive generated letter", "error", err.Error())
		} else {
			w.Header().Set("X-Letter-Key", key)
		}
	}

	w.Header().Set("Content-Type", letterContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="carta.docx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// PreviewLetter renders an HTML approximation of the filled letter.
func (h *Handlers) PreviewLetter(w http.ResponseWriter, r *http.Request) {
	data, _, ok := h.readTemplate(w, r)
	if !ok {
		return
	}
	values, ok := parseValuesField(w, r)
	if !ok {
		return
	}

	html, err := h.preview.Preview(data, values, h.config.Company.Name)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, html)
}

// loadLetterSubjects fetches the candidate and its process. A blank id
// yields nil subjects so templates can still render company-only
// fields.
func (h *Handlers) loadLetterSubjects(r *http.Request, candidateID string) (*domain.Candidate, *domain.Process, error) {
	if candidateID == "" {
		return nil, nil, nil
	}
	c, err := h.candidates.Get(r.Context(), candidateID)
	if err != nil {
		return nil, nil, err
	}
	p, err := h.processes.Get(r.Context(), c.ProcessID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading candidate's process: %w", err)
	}
	return c, p, nil
}

func parseValuesField(w http.ResponseWriter, r *http.Request) (map[string]string, bool) {
	values := map[string]string{}
	if raw := r.FormValue("values"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &values); err != nil {
			respondError(w, http.StatusBadRequest, "values must be a JSON object of field values")
			return nil, false
		}
	}
	return values, true
}
