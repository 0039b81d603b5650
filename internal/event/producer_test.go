package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TubaAnsari/vendor-management-portal/internal/domain"
	pkgkafka "github.com/TubaAnsari/vendor-management-portal/pkg/kafka"
	"github.com/TubaAnsari/vendor-management-portal/pkg/logger"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, event *pkgkafka.Event) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

func newTestProducer(pub pkgkafka.Publisher) *Producer {
	return NewProducer(pub, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPublishVendorRegistered(t *testing.T) {
	pub := new(mockPublisher)
	p := newTestProducer(pub)
	ctx := logger.WithCorrelationID(context.Background(), "corr-1")

	var captured *pkgkafka.Event
	pub.On("Publish", ctx, TopicVendorRegistered, mock.AnythingOfType("*kafka.Event")).
		Run(func(args mock.Arguments) { captured = args.Get(2).(*pkgkafka.Event) }).
		Return(nil)

	err := p.PublishVendorRegistered(ctx, &domain.Vendor{ID: 9, VendorName: "Acme", Email: "a@example.com"})
	require.NoError(t, err)
	pub.AssertExpectations(t)

	require.NotNil(t, captured)
	assert.Equal(t, TopicVendorRegistered, captured.EventType)
	assert.Equal(t, "9", captured.AggregateID)
	assert.Equal(t, AggregateTypeVendor, captured.AggregateType)
	assert.Equal(t, SourceVendorPortal, captured.Source)
	assert.Equal(t, "corr-1", captured.CorrelationID)

	var data VendorRegisteredData
	require.NoError(t, captured.UnmarshalData(&data))
	assert.Equal(t, "Acme", data.VendorName)
}

func TestPublishVendorRatingUpdated_Payload(t *testing.T) {
	pub := new(mockPublisher)
	p := newTestProducer(pub)
	ctx := context.Background()

	var captured *pkgkafka.Event
	pub.On("Publish", ctx, TopicVendorRatingUpdated, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(*pkgkafka.Event) }).
		Return(nil)

	require.NoError(t, p.PublishVendorRatingUpdated(ctx, 3, domain.ComputeAggregate(3, 13)))

	require.NotNil(t, captured)
	assert.Empty(t, captured.CorrelationID)
	assert.JSONEq(t, `{"vendor_id":3,"average_rating":4.33,"review_count":3}`, string(captured.Data))
}

func TestPublishReviewSubmitted_Error(t *testing.T) {
	pub := new(mockPublisher)
	p := newTestProducer(pub)
	ctx := context.Background()

	pub.On("Publish", ctx, TopicReviewSubmitted, mock.Anything).Return(errors.New("broker down"))

	err := p.PublishReviewSubmitted(ctx, &domain.Review{ID: 1, VendorID: 2, Rating: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), TopicReviewSubmitted)
	assert.Contains(t, err.Error(), "broker down")
}

func TestPublishVendorDeleted_Discard(t *testing.T) {
	p := newTestProducer(pkgkafka.Discard)
	assert.NoError(t, p.PublishVendorDeleted(context.Background(), 4, "closing business"))
}
