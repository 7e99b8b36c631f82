package seed

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/studyatlas/studyatlas/pkg/api"
	"github.com/studyatlas/studyatlas/pkg/httputil"
	"github.com/studyatlas/studyatlas/pkg/observability"
)

// Handlers exposes the admin seed and migration endpoints. Both are
// refused outright in production deployments.
type Handlers struct {
	store      api.ContentStore // seed target, normally the failover router
	source     api.ContentStore // migration source (ephemeral)
	dest       api.ContentStore // migration destination (durable)
	dataset    *Dataset
	production bool
	logger     *observability.Logger

	// OnRow feeds the migration metrics when set.
	OnRow func(kind, outcome string)
}

// NewHandlers wires the admin content-management endpoints.
func NewHandlers(store, source, dest api.ContentStore, dataset *Dataset, production bool, logger *observability.Logger) *Handlers {
	if dataset == nil {
		dataset = DefaultDataset()
	}
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	return &Handlers{
		store:      store,
		source:     source,
		dest:       dest,
		dataset:    dataset,
		production: production,
		logger:     logger,
	}
}

// RegisterRoutes mounts the endpoints behind the given admin guard.
func (h *Handlers) RegisterRoutes(router *mux.Router, requireAdmin func(http.Handler) http.Handler) {
	router.Handle("/admin/seed", requireAdmin(http.HandlerFunc(h.handleSeed))).Methods(http.MethodPost)
	router.Handle("/admin/migrate", requireAdmin(http.HandlerFunc(h.handleMigrate))).Methods(http.MethodPost)
}

func (h *Handlers) refuseInProduction(w http.ResponseWriter) bool {
	if h.production {
		httputil.WriteForbidden(w, "disabled in production")
		return true
	}
	return false
}

func (h *Handlers) handleSeed(w http.ResponseWriter, r *http.Request) {
	if h.refuseInProduction(w) {
		return
	}
	if err := Populate(r.Context(), h.store, h.dataset, h.logger); err != nil {
		h.logger.WithError(err).Error("seeding failed")
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, map[string]interface{}{
		"status":   "seeded",
		"entities": h.dataset.Count(),
	})
}

func (h *Handlers) handleMigrate(w http.ResponseWriter, r *http.Request) {
	if h.refuseInProduction(w) {
		return
	}
	migrator := NewMigrator(h.source, h.dest, h.logger)
	migrator.OnRow = h.OnRow
	report, err := migrator.Run(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("migration failed")
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, report)
}
