package handlers

import (
	"net/http"

	"github.com/foodgram/backend/internal/ports/inbound"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogAPI serves the tag list and the measurement catalog.
type CatalogAPI struct {
	catalog inbound.CatalogService
	logger  *zap.Logger
}

// NewCatalogAPI creates the catalog handler group.
func NewCatalogAPI(catalog inbound.CatalogService, logger *zap.Logger) *CatalogAPI {
	return &CatalogAPI{
		catalog: catalog,
		logger:  logger.Named("catalog-api"),
	}
}

// Routes mounts the catalog endpoints. All of them are public reads.
func (a *CatalogAPI) Routes(r chi.Router) {
	r.Get("/tags", a.listTags)
	r.Get("/tags/{slug}", a.getTag)
	r.Get("/ingredients", a.searchMeasurements)
	r.Get("/ingredients/{measurementID}", a.getMeasurement)
}

func (a *CatalogAPI) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := a.catalog.ListTags(r.Context())
	if err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (a *CatalogAPI) getTag(w http.ResponseWriter, r *http.Request) {
	dto, err := a.catalog.GetTag(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (a *CatalogAPI) searchMeasurements(w http.ResponseWriter, r *http.Request) {
	found, err := a.catalog.SearchMeasurements(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (a *CatalogAPI) getMeasurement(w http.ResponseWriter, r *http.Request) {
	id, appErr := parseUUIDParam(chi.URLParam(r, "measurementID"), "measurementID")
	if appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	dto, err := a.catalog.GetMeasurement(r.Context(), id)
	if err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}
