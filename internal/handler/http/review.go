package http

import (
	"log/slog"
	"net/http"

	"github.com/TubaAnsari/vendor-management-portal/internal/service"
	"github.com/TubaAnsari/vendor-management-portal/pkg/httputil"
)

// ReviewHandler handles HTTP requests for vendor reviews.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: svc, logger: logger}
}

// SubmitReviewRequest is the JSON request body for submitting a review.
type SubmitReviewRequest struct {
	ClientName  string  `json:"client_name" validate:"required,notblank,min=2,max=255"`
	ProjectName *string `json:"project_name" validate:"omitempty,max=255"`
	Rating      *int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comments    string  `json:"comments" validate:"required,notblank,min=10,max=1000"`
}

// Submit handles POST /api/v1/reviews/{vendorId}
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := pathID(w, r, "vendorId")
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	review, err := h.service.SubmitReview(r.Context(), service.SubmitReviewInput{
		VendorID:    vendorID,
		ClientName:  req.ClientName,
		ProjectName: req.ProjectName,
		Rating:      *req.Rating,
		Comments:    req.Comments,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: review})
}

// List handles GET /api/v1/reviews/{vendorId}
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := pathID(w, r, "vendorId")
	if !ok {
		return
	}

	reviews, err := h.service.GetReviews(r.Context(), vendorID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: reviews})
}
