package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talentohq/ats-server/internal/service/candidate"
	"github.com/talentohq/ats-server/internal/service/process"
)

func (h *Handlers) ListCandidates(w http.ResponseWriter, r *http.Request) {
	f := candidate.ListFilter{
		StageID: r.URL.Query().Get("stage_id"),
		Search:  r.URL.Query().Get("search"),
		Limit:   queryInt(r, "limit", 50),
		Offset:  queryInt(r, "offset", 0),
	}
	list, total, err := h.candidates.ListByProcess(r.Context(), chi.URLParam(r, "id"), f)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"candidates": list,
		"total":      total,
	})
}

func (h *Handlers) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var in candidate.CreateInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.candidates.Create(r.Context(), in)
	switch {
	case errors.Is(err, candidate.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, candidate.ErrStageNotFound):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, process.ErrNotFound):
		respondError(w, http.StatusNotFound, "process not found")
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		respondJSON(w, http.StatusCreated, c)
	}
}

func (h *Handlers) GetCandidate(w http.ResponseWriter, r *http.Request) {
	c, err := h.candidates.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			respondError(w, http.StatusNotFound, "candidate not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handlers) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	var u candidate.UpdateFields
	if err := decodeBody(r, &u); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err := h.candidates.Update(r.Context(), chi.URLParam(r, "id"), u)
	switch {
	case errors.Is(err, candidate.ErrNotFound):
		respondError(w, http.StatusNotFound, "candidate not found")
	case errors.Is(err, candidate.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func (h *Handlers) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	err := h.candidates.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, candidate.ErrNotFound):
		respondError(w, http.StatusNotFound, "candidate not found")
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func (h *Handlers) MoveCandidate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		StageID string `json:"stage_id"`
	}
	if err := decodeBody(r, &in); err != nil || in.StageID == "" {
		respondError(w, http.StatusBadRequest, "stage_id is required")
		return
	}
	err := h.candidates.MoveStage(r.Context(), chi.URLParam(r, "id"), in.StageID)
	switch {
	case errors.Is(err, candidate.ErrNotFound):
		respondError(w, http.StatusNotFound, "candidate not found")
	case errors.Is(err, candidate.ErrStageNotFound):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		respondJSON(w, http.StatusOK, map[string]string{"status": "moved"})
	}
}
