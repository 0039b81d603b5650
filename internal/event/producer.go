package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	pkgkafka "github.com/TubaAnsari/vendor-management-portal/pkg/kafka"
	"github.com/TubaAnsari/vendor-management-portal/pkg/logger"
)

// Kafka topic constants for portal domain events.
const (
	TopicVendorRegistered    = "vendor-portal.vendor.registered"
	TopicVendorDeleted       = "vendor-portal.vendor.deleted"
	TopicReviewSubmitted     = "vendor-portal.review.submitted"
	TopicVendorRatingUpdated = "vendor-portal.vendor.rating_updated"
)

// Aggregate type constants.
const (
	AggregateTypeVendor = "vendor"
	AggregateTypeReview = "review"
)

// SourceVendorPortal identifies events originating from this service.
const SourceVendorPortal = "vendor-portal"

// VendorRegisteredData is the payload for a vendor.registered event.
type VendorRegisteredData struct {
	ID               int64  `json:"id"`
	VendorName       string `json:"vendor_name"`
	Email            string `json:"email"`
	BusinessCategory string `json:"business_category"`
	City             string `json:"city"`
}

// VendorDeletedData is the payload for a vendor.deleted event.
type VendorDeletedData struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason,omitempty"`
}

// ReviewSubmittedData is the payload for a review.submitted event.
type ReviewSubmittedData struct {
	ReviewID int64 `json:"review_id"`
	VendorID int64 `json:"vendor_id"`
	Rating   int   `json:"rating"`
}

// VendorRatingUpdatedData is the payload for a vendor.rating_updated event.
type VendorRatingUpdatedData struct {
	VendorID      int64         `json:"vendor_id"`
	AverageRating domain.Rating `json:"average_rating"`
	ReviewCount   int           `json:"review_count"`
}

// Producer publishes portal domain events to Kafka.
type Producer struct {
	kafka  pkgkafka.Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer. Pass pkgkafka.Discard when Kafka
// is disabled.
func NewProducer(kafka pkgkafka.Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishVendorRegistered publishes a vendor.registered event.
func (p *Producer) PublishVendorRegistered(ctx context.Context, v *domain.Vendor) error {
	data := VendorRegisteredData{
		ID:               v.ID,
		VendorName:       v.VendorName,
		Email:            v.Email,
		BusinessCategory: v.BusinessCategory,
		City:             v.City,
	}
	return p.publish(ctx, TopicVendorRegistered, v.ID, AggregateTypeVendor, data)
}

// PublishVendorDeleted publishes a vendor.deleted event.
func (p *Producer) PublishVendorDeleted(ctx context.Context, vendorID int64, reason string) error {
	data := VendorDeletedData{ID: vendorID, Reason: reason}
	return p.publish(ctx, TopicVendorDeleted, vendorID, AggregateTypeVendor, data)
}

// PublishReviewSubmitted publishes a review.submitted event.
func (p *Producer) PublishReviewSubmitted(ctx context.Context, r *domain.Review) error {
	data := ReviewSubmittedData{ReviewID: r.ID, VendorID: r.VendorID, Rating: r.Rating}
	return p.publish(ctx, TopicReviewSubmitted, r.ID, AggregateTypeReview, data)
}

// PublishVendorRatingUpdated publishes a vendor.rating_updated event.
func (p *Producer) PublishVendorRatingUpdated(ctx context.Context, vendorID int64, agg domain.Aggregate) error {
	data := VendorRatingUpdatedData{
		VendorID:      vendorID,
		AverageRating: agg.Rating(),
		ReviewCount:   agg.ReviewCount,
	}
	return p.publish(ctx, TopicVendorRatingUpdated, vendorID, AggregateTypeVendor, data)
}

func (p *Producer) publish(ctx context.Context, topic string, aggregateID int64, aggregateType string, data any) error {
	id := strconv.FormatInt(aggregateID, 10)

	event, err := pkgkafka.NewEvent(topic, id, aggregateType, SourceVendorPortal, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if correlationID := logger.CorrelationIDFromContext(ctx); correlationID != "" {
		event.WithCorrelationID(correlationID)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", id),
	)

	return nil
}
