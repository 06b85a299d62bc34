package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/caretide/facility-metrics-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBus_PublishDeliversToSubscriber(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	received := []domain.ShiftUpdateEvent{}

	bus.Subscribe(TopicShiftUpdateFacilityMetric, func(_ context.Context, event domain.ShiftUpdateEvent) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, event)
		return nil
	})

	bus.Publish(context.Background(), TopicShiftUpdateFacilityMetric, domain.ShiftUpdateEvent{ShiftID: "shift-1"})
	bus.Wait()

	assert.Len(t, received, 1)
	assert.Equal(t, "shift-1", received[0].ShiftID)
	// O bus carimba o event_id na publicação
	assert.NotEmpty(t, received[0].EventID)
}

func TestBus_RespectsMaxInFlight(t *testing.T) {
	bus := NewBus()

	var inFlight, maxSeen atomic.Int64

	bus.Subscribe(TopicShiftUpdateFacilityMetric, func(_ context.Context, _ domain.ShiftUpdateEvent) error {
		current := inFlight.Add(1)
		defer inFlight.Add(-1)

		for {
			seen := maxSeen.Load()
			if current <= seen || maxSeen.CompareAndSwap(seen, current) {
				break
			}
		}

		time.Sleep(20 * time.Millisecond)
		return nil
	}, WithMaxInFlight(2))

	for i := 0; i < 6; i++ {
		bus.Publish(context.Background(), TopicShiftUpdateFacilityMetric, domain.ShiftUpdateEvent{ShiftID: "shift"})
	}
	bus.Wait()

	assert.LessOrEqual(t, maxSeen.Load(), int64(2))
}

func TestBus_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := NewBus()

	var delivered atomic.Int64
	bus.Subscribe(TopicShiftUpdateFacilityMetric, func(_ context.Context, _ domain.ShiftUpdateEvent) error {
		delivered.Add(1)
		return errors.New("falha no processamento")
	})

	bus.Publish(context.Background(), TopicShiftUpdateFacilityMetric, domain.ShiftUpdateEvent{ShiftID: "a"})
	bus.Publish(context.Background(), TopicShiftUpdateFacilityMetric, domain.ShiftUpdateEvent{ShiftID: "b"})
	bus.Wait()

	assert.Equal(t, int64(2), delivered.Load())
}

func TestBus_PublishWithoutSubscribersIsSafe(t *testing.T) {
	bus := NewBus()

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), "tópico-sem-ninguém", domain.ShiftUpdateEvent{})
		bus.Wait()
	})
}
