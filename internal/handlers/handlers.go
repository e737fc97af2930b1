package handlers

import (
	"sync"

	"github.com/birchwood/ethnograph/internal/dataset"
	"github.com/birchwood/ethnograph/internal/enrich"
	"github.com/birchwood/ethnograph/internal/models"
	"github.com/birchwood/ethnograph/internal/storage"
)

// Handlers contains all HTTP handlers for the API.
//
// The working view supports one logical session; mu serializes every access
// to the manager so concurrent requests cannot interleave filter state.
type Handlers struct {
	mu      sync.Mutex
	manager *dataset.Manager

	registry *enrich.Registry
	store    *storage.Store
	opts     dataset.Options
}

// NewHandlers creates a new handlers instance. The store may be nil when
// persistence is disabled.
func NewHandlers(registry *enrich.Registry, taxonomy []models.TopicEntry, confidenceThreshold float64) *Handlers {
	return &Handlers{
		registry: registry,
		opts: dataset.Options{
			Taxonomy:            taxonomy,
			ConfidenceThreshold: confidenceThreshold,
		},
	}
}

// SetStore enables dataset persistence.
func (h *Handlers) SetStore(store *storage.Store) {
	h.store = store
}

// withManager runs fn holding the session lock, returning false when no
// dataset has been constructed yet.
func (h *Handlers) withManager(fn func(mgr *dataset.Manager)) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.manager == nil {
		return false
	}
	fn(h.manager)
	return true
}
