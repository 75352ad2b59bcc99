package reference

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rxparse/rxparse/pkg/pagination"
)

// Handler provides REST endpoints for the reference catalog.
type Handler struct {
	svc *Service
}

// NewHandler creates a new reference catalog handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the catalog routes on the API group. Any
// authenticated role may read reference data, so no role guard is applied.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	ref := api.Group("/reference")
	ref.GET("/medications", h.SearchMedications)
	ref.GET("/medications/:brand", h.GetMedication)
	ref.GET("/icd10", h.SearchICD10)
	ref.GET("/icd10/:code", h.GetICD10)
}

// SearchMedications handles GET /api/v1/reference/medications?q=...
func (h *Handler) SearchMedications(c echo.Context) error {
	p := pagination.FromContext(c)
	meds, total := h.svc.SearchMedications(c.QueryParam("q"), p.Limit, p.Offset)
	return c.JSON(http.StatusOK, pagination.NewResponse(meds, total, p.Limit, p.Offset))
}

// GetMedication handles GET /api/v1/reference/medications/:brand
func (h *Handler) GetMedication(c echo.Context) error {
	med, err := h.svc.GetMedication(c.Param("brand"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, med)
}

// SearchICD10 handles GET /api/v1/reference/icd10?q=...
func (h *Handler) SearchICD10(c echo.Context) error {
	p := pagination.FromContext(c)
	codes, total := h.svc.SearchICD10(c.QueryParam("q"), p.Limit, p.Offset)
	return c.JSON(http.StatusOK, pagination.NewResponse(codes, total, p.Limit, p.Offset))
}

// GetICD10 handles GET /api/v1/reference/icd10/:code
func (h *Handler) GetICD10(c echo.Context) error {
	code, err := h.svc.GetICD10(c.Param("code"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, code)
}
