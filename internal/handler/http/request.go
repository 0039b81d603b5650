package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TubaAnsari/vendor-management-portal/pkg/httputil"
	"github.com/TubaAnsari/vendor-management-portal/pkg/middleware"
	"github.com/TubaAnsari/vendor-management-portal/pkg/validator"
)

// decodeRequest decodes and validates a JSON body into dst. On failure it
// writes the 400 response and returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := validator.DecodeAndValidate(r, dst); err != nil {
		httputil.WriteValidationError(w, err)
		return false
	}
	return true
}

// pathID parses a positive integer path parameter.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	return httputil.ParseID(w, chi.URLParam(r, name))
}

// currentVendor returns the vendor id set by the Auth middleware.
func currentVendor(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id := middleware.VendorIDFromContext(r.Context())
	if id <= 0 {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"},
		})
		return 0, false
	}
	return id, true
}
