package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"courtbook/infras/otel/mocks"
	blockModel "courtbook/internal/domains/block/model"
	publisherMocks "courtbook/internal/domains/notification/mocks"
	"courtbook/internal/domains/notification/model"
	"courtbook/internal/domains/notification/service"
	resModel "courtbook/internal/domains/reservation/model"
	"courtbook/shared/metrics"
)

func reservation() resModel.Reservation {
	return resModel.Reservation{
		ID:          "res-1",
		CourtNumber: 5,
		BookingDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		StartHour:   10,
		EndHour:     11,
		BookedFor:   "m-1",
		BookedBy:    "m-2",
		Status:      resModel.StatusActive,
	}
}

func TestNotifier_NotifySuspended(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockPublisher := publisherMocks.NewMockPublisher(ctrl)
	notifier := service.New(mockPublisher, mocks.NewOtel())

	block := blockModel.Block{
		ID:           "b-1",
		CourtNumbers: pq.Int64Array{5},
		BlockDate:    time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		StartHour:    10,
		EndHour:      12,
		ReasonID:     "r-1",
		Temporary:    true,
	}

	var published model.Event

	mockPublisher.EXPECT().
		Publish(gomock.Any(), model.EventSuspended, "res-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, value any) error {
			published, _ = value.(model.Event)

			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	notifier.NotifySuspended(ctx, reservation(), block, "Rain")
	cancel()
	notifier.Wait()

	assert.Equal(t, model.EventSuspended, published.Type)
	assert.Equal(t, []string{"m-1", "m-2"}, published.Recipients)
	assert.Equal(t, "Rain", published.Reason)
	assert.Equal(t, "10:00", published.Reservation.StartTime)
	assert.Equal(t, "11:00", published.Reservation.EndTime)
	require.NotNil(t, published.Block)
	assert.Equal(t, []int{5}, published.Block.Courts)
	assert.Equal(t, "12:00", published.Block.EndTime)
}

func TestNotifier_NotifyModified(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockPublisher := publisherMocks.NewMockPublisher(ctrl)
	notifier := service.New(mockPublisher, mocks.NewOtel())

	previous := reservation()
	current := reservation()
	current.ID = "res-2"
	current.StartHour = 14
	current.EndHour = 15

	mockPublisher.EXPECT().
		Publish(gomock.Any(), model.EventModified, "res-2", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, value any) error {
			event, ok := value.(model.Event)
			if assert.True(t, ok) && assert.NotNil(t, event.Previous) {
				assert.Equal(t, "res-1", event.Previous.ID)
			}

			assert.Equal(t, "14:00", event.Reservation.StartTime)

			return nil
		})

	notifier.NotifyModified(context.Background(), previous, current)
	notifier.Wait()
}

func TestNotifier_PublishFailureIsCounted(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockPublisher := publisherMocks.NewMockPublisher(ctrl)
	notifier := service.New(mockPublisher, mocks.NewOtel())

	before := testutil.ToFloat64(metrics.NotificationFailuresTotal.WithLabelValues(model.EventCancelled))

	mockPublisher.EXPECT().
		Publish(gomock.Any(), model.EventCancelled, "res-1", gomock.Any()).
		Return(errors.New("broker unavailable"))

	assert.NotPanics(t, func() {
		notifier.NotifyCancelled(context.Background(), reservation(), "weather")
	})
	notifier.Wait()

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.NotificationFailuresTotal.WithLabelValues(model.EventCancelled)))
}

func TestNotifier_SingleRecipient(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockPublisher := publisherMocks.NewMockPublisher(ctrl)
	notifier := service.New(mockPublisher, mocks.NewOtel())

	own := reservation()
	own.BookedBy = own.BookedFor

	mockPublisher.EXPECT().
		Publish(gomock.Any(), model.EventRestored, "res-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, value any) error {
			event, _ := value.(model.Event)
			assert.Equal(t, []string{"m-1"}, event.Recipients)

			return nil
		})

	notifier.NotifyRestored(context.Background(), own)
	notifier.Wait()
}
