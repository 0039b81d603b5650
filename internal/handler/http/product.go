package http

import (
	"log/slog"
	"net/http"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/internal/service"
	"github.com/TubaAnsari/vendor-management-portal/pkg/httputil"
)

// ProductHandler handles product management for the authenticated vendor.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{service: svc, logger: logger}
}

// CreateProductRequest is the JSON request body for adding a product.
type CreateProductRequest struct {
	ProductName      string  `json:"product_name" validate:"required,notblank,min=2,max=255"`
	ProductImage     *string `json:"product_image" validate:"omitempty,url"`
	ShortDescription string  `json:"short_description" validate:"required,min=10,max=500"`
	PriceRange       string  `json:"price_range" validate:"max=100"`
}

// UpdateProductRequest is the JSON request body for a partial product update.
type UpdateProductRequest struct {
	ProductName      *string `json:"product_name" validate:"omitempty,notblank,min=2,max=255"`
	ProductImage     *string `json:"product_image" validate:"omitempty,url"`
	ShortDescription *string `json:"short_description" validate:"omitempty,min=10,max=500"`
	PriceRange       *string `json:"price_range" validate:"omitempty,max=100"`
}

// Create handles POST /api/v1/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := currentVendor(w, r)
	if !ok {
		return
	}

	var req CreateProductRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	product, err := h.service.CreateProduct(r.Context(), vendorID, service.CreateProductInput{
		ProductName:      req.ProductName,
		ImageURL:         req.ProductImage,
		ShortDescription: req.ShortDescription,
		PriceRange:       req.PriceRange,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// Update handles PUT /api/v1/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := currentVendor(w, r)
	if !ok {
		return
	}
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), vendorID, productID, domain.ProductUpdate{
		ProductName:      req.ProductName,
		ImageURL:         req.ProductImage,
		ShortDescription: req.ShortDescription,
		PriceRange:       req.PriceRange,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// Delete handles DELETE /api/v1/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := currentVendor(w, r)
	if !ok {
		return
	}
	productID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), vendorID, productID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
