package http

import (
	"log/slog"
	"net/http"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/internal/service"
	"github.com/TubaAnsari/vendor-management-portal/pkg/httputil"
	"github.com/TubaAnsari/vendor-management-portal/pkg/validator"
)

// VendorHandler handles the public vendor directory.
type VendorHandler struct {
	service *service.VendorService
	logger  *slog.Logger
}

// NewVendorHandler creates a new vendor HTTP handler.
func NewVendorHandler(svc *service.VendorService, logger *slog.Logger) *VendorHandler {
	return &VendorHandler{service: svc, logger: logger}
}

// listVendorsQuery bounds the listing query parameters. The sort key is
// checked by the listing engine.
type listVendorsQuery struct {
	Category string `json:"category" validate:"max=100"`
	Search   string `json:"search" validate:"max=255"`
}

// List handles GET /api/v1/vendors?category=&search=&sort=
func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := listVendorsQuery{
		Category: params.Get("category"),
		Search:   params.Get("search"),
	}
	if err := validator.Validate(q); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	vendors, err := h.service.ListVendors(r.Context(),
		domain.CategoryFilter(q.Category),
		domain.SearchFilter(q.Search),
		domain.SortBy(params.Get("sort")),
	)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: vendors})
}

// Get handles GET /api/v1/vendors/{id}
func (h *VendorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.service.GetVendor(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: detail})
}

// ListProducts handles GET /api/v1/vendors/{id}/products
func (h *VendorHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	products, err := h.service.ListProducts(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}
