package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/talentohq/ats-server/internal/config"
	"github.com/talentohq/ats-server/internal/importer"
	"github.com/talentohq/ats-server/internal/letters"
	"github.com/talentohq/ats-server/internal/service/candidate"
	"github.com/talentohq/ats-server/internal/service/process"
)

// DocStore archives letter artifacts in object storage. Satisfied by
// docstore.Store; optional, handlers work without one.
type DocStore interface {
	SaveLetter(ctx context.Context, candidateID string, doc []byte) (string, error)
	SaveTemplate(ctx context.Context, name string, doc []byte) (string, error)
}

// Handlers contains all HTTP handlers.
type Handlers struct {
	candidates *candidate.Service
	processes  *process.Service
	imports    *importer.Service
	history    *importer.History
	resolver   *letters.Resolver
	preview    *letters.PreviewService
	docs       DocStore
	config     *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(candidates *candidate.Service, processes *process.Service, imports *importer.Service, cfg *config.Config) *Handlers {
	return &Handlers{
		candidates: candidates,
		processes:  processes,
		imports:    imports,
		resolver:   letters.NewResolver(cfg.Company.Name),
		preview:    letters.NewPreviewService(),
		config:     cfg,
	}
}

// SetHistory attaches the optional recent-import log.
func (h *Handlers) SetHistory(history *importer.History) {
	h.history = history
}

// SetDocStore attaches the optional letter and template object store.
func (h *Handlers) SetDocStore(store DocStore) {
	h.docs = store
}

// HealthCheck reports server liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
