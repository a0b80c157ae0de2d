package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/talentohq/ats-server/internal/service/process"
)

func (h *Handlers) ListProcesses(w http.ResponseWriter, r *http.Request) {
	f := process.ListFilter{
		Search: r.URL.Query().Get("search"),
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}
	list, total, err := h.processes.List(r.Context(), f)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"processes": list,
		"total":     total,
	})
}

func (h *Handlers) CreateProcess(w http.ResponseWriter, r *http.Request) {
	var in process.CreateInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.processes.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, process.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *Handlers) GetProcess(w http.ResponseWriter, r *http.Request) {
	p, err := h.processes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, process.ErrNotFound) {
			respondError(w, http.StatusNotFound, "process not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) UpdateProcess(w http.ResponseWriter, r *http.Request) {
	var u process.UpdateFields
	if err := decodeBody(r, &u); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err := h.processes.Update(r.Context(), chi.URLParam(r, "id"), u)
	switch {
	case errors.Is(err, process.ErrNotFound):
		respondError(w, http.StatusNotFound, "process not found")
	case errors.Is(err, process.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func (h *Handlers) DeleteProcess(w http.ResponseWriter, r *http.Request) {
	err := h.processes.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, process.ErrNotFound):
		respondError(w, http.StatusNotFound, "process not found")
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
