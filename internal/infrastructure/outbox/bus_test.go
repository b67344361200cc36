package outbox

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	domoutbox "github.com/quickshop/storefront/internal/domain/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct{ name string }

func (e testEvent) EventName() string { return e.name }

func TestBus_DeliversToSubscribers(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var received atomic.Int32
	done := make(chan struct{})
	bus.Subscribe("test.event", func(_ context.Context, e domoutbox.Event) error {
		require.Equal(t, "test.event", e.EventName())
		if received.Add(1) == 3 {
			close(done)
		}
		return nil
	})

	bus.Start(ctx)
	for i := 0; i < 3; i++ {
		require.NoError(t, bus.Publish(ctx, testEvent{name: "test.event"}))
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for deliveries")
	}
	bus.Stop(ctx)
	assert.Equal(t, int32(3), received.Load())
}

func TestBus_FansOutToAllHandlers(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		bus.Subscribe("test.event", func(context.Context, domoutbox.Event) error {
			wg.Done()
			return nil
		})
	}

	bus.Start(ctx)
	require.NoError(t, bus.Publish(ctx, testEvent{name: "test.event"}))
	wg.Wait()
	bus.Stop(ctx)
}

func TestBus_StopDrainsQueue(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var received atomic.Int32
	bus.Subscribe("test.event", func(context.Context, domoutbox.Event) error {
		received.Add(1)
		return nil
	})

	bus.Start(ctx)
	for i := 0; i < 10; i++ {
		require.NoError(t, bus.Publish(ctx, testEvent{name: "test.event"}))
	}
	bus.Stop(ctx)

	assert.Equal(t, int32(10), received.Load(), "events enqueued before Stop are delivered")
}

func TestBus_RecoverFromHandlerPanic(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	delivered := make(chan struct{})
	bus.Subscribe("test.event", func(context.Context, domoutbox.Event) error {
		panic("handler exploded")
	})
	bus.Subscribe("test.event", func(context.Context, domoutbox.Event) error {
		close(delivered)
		return nil
	})

	bus.Start(ctx)
	require.NoError(t, bus.Publish(ctx, testEvent{name: "test.event"}))

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("panic in one handler starved the others")
	}
	bus.Stop(ctx)
}

func TestBus_NoSubscriberIsNotAnError(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	bus.Start(ctx)
	assert.NoError(t, bus.Publish(ctx, testEvent{name: "nobody.listens"}))
	bus.Stop(ctx)
}
