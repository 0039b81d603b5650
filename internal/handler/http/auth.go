package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	"github.com/TubaAnsari/vendor-management-portal/internal/service"
	"github.com/TubaAnsari/vendor-management-portal/pkg/httputil"
	"github.com/TubaAnsari/vendor-management-portal/pkg/validator"
)

// AuthHandler handles vendor account endpoints.
type AuthHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// RegisterRequest is the JSON request body for vendor registration.
type RegisterRequest struct {
	VendorName       string  `json:"vendor_name" validate:"required,notblank,min=2,max=255"`
	OwnerName        string  `json:"owner_name" validate:"required,notblank,min=2,max=255"`
	ContactNumber    string  `json:"contact_number" validate:"required,len=10,numeric"`
	Email            string  `json:"email" validate:"required,email"`
	BusinessCategory string  `json:"business_category" validate:"required,notblank,max=100"`
	City             string  `json:"city" validate:"required,notblank,max=100"`
	Description      string  `json:"description" validate:"required,min=10,max=1000"`
	Password         string  `json:"password" validate:"required,min=6"`
	LogoURL          *string `json:"logo_url" validate:"omitempty,url"`
}

// LoginRequest is the JSON request body for vendor login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is the JSON request body for a partial profile update.
type UpdateProfileRequest struct {
	VendorName       *string `json:"vendor_name" validate:"omitempty,notblank,min=2,max=255"`
	OwnerName        *string `json:"owner_name" validate:"omitempty,notblank,min=2,max=255"`
	ContactNumber    *string `json:"contact_number" validate:"omitempty,len=10,numeric"`
	BusinessCategory *string `json:"business_category" validate:"omitempty,notblank,max=100"`
	City             *string `json:"city" validate:"omitempty,notblank,max=100"`
	Description      *string `json:"description" validate:"omitempty,min=10,max=1000"`
	LogoURL          *string `json:"logo_url" validate:"omitempty,url"`
}

// DeleteProfileRequest is the optional JSON body of a profile deletion.
type DeleteProfileRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// --- Handlers ---

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	result, err := h.service.Register(r.Context(), service.RegisterInput{
		VendorName:       req.VendorName,
		OwnerName:        req.OwnerName,
		ContactNumber:    req.ContactNumber,
		Email:            req.Email,
		BusinessCategory: req.BusinessCategory,
		City:             req.City,
		Description:      req.Description,
		Password:         req.Password,
		LogoURL:          req.LogoURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: result})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	result, err := h.service.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// GetProfile handles GET /api/v1/auth/profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := currentVendor(w, r)
	if !ok {
		return
	}

	vendor, err := h.service.GetProfile(r.Context(), vendorID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: vendor})
}

// UpdateProfile handles PUT /api/v1/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := currentVendor(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	vendor, err := h.service.UpdateProfile(r.Context(), vendorID, domain.VendorUpdate{
		VendorName:       req.VendorName,
		OwnerName:        req.OwnerName,
		ContactNumber:    req.ContactNumber,
		BusinessCategory: req.BusinessCategory,
		City:             req.City,
		Description:      req.Description,
		LogoURL:          req.LogoURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: vendor})
}

// DeleteProfile handles DELETE /api/v1/auth/profile
func (h *AuthHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := currentVendor(w, r)
	if !ok {
		return
	}

	var req DeleteProfileRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.WriteValidationError(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.DeleteProfile(r.Context(), vendorID, req.Reason); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
