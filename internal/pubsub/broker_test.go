package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return ev
	case <-time.After(time.Second):
		require.Fail(t, "timeout waiting for event")
	}
	return Event[T]{}
}

func TestBroker_PublishReachesEverySubscriber(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	subs := []<-chan Event[string]{broker.Subscribe(ctx), broker.Subscribe(ctx)}
	require.Equal(t, 2, broker.SubscriberCount())

	broker.Publish(ReloadedEvent, "snapshot taken")

	for _, ch := range subs {
		ev := receive(t, ch)
		require.Equal(t, "snapshot taken", ev.Payload)
		require.Equal(t, ReloadedEvent, ev.Type)
		require.Equal(t, uint64(1), ev.Seq)
		require.False(t, ev.Timestamp.IsZero())
	}
}

func TestBroker_SeqIncreases(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := broker.Subscribe(ctx)

	broker.Publish(ReloadedEvent, 1)
	broker.Publish(ReloadedEvent, 2)

	require.Equal(t, uint64(1), receive(t, ch).Seq)
	require.Equal(t, uint64(2), receive(t, ch).Seq)
}

func TestBroker_ContextCancellationUnsubscribes(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	require.Equal(t, 1, broker.SubscriberCount())

	cancel()
	require.Eventually(t, func() bool { return broker.SubscriberCount() == 0 },
		time.Second, 5*time.Millisecond)

	_, ok := <-ch
	require.False(t, ok, "channel should be closed")
}

func TestBroker_FullBufferDropsWithoutBlocking(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1)
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := broker.Subscribe(ctx)

	done := make(chan struct{})
	go func() {
		broker.Publish(ReloadedEvent, 1)
		broker.Publish(ReloadedEvent, 2)
		broker.Publish(ReloadedEvent, 3)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "Publish blocked")
	}

	require.Equal(t, 1, receive(t, ch).Payload)
	require.Equal(t, uint64(2), broker.Dropped())
}

func TestBroker_RetainingReplaysLatestToLateSubscriber(t *testing.T) {
	broker := NewRetainingBroker[string]()
	defer broker.Close()

	broker.Publish(ReloadedEvent, "rev-1")
	broker.Publish(ReloadedEvent, "rev-2")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := broker.Subscribe(ctx)

	ev := receive(t, ch)
	require.Equal(t, "rev-2", ev.Payload)
	require.Equal(t, uint64(2), ev.Seq)
}

func TestBroker_NonRetainingDoesNotReplay(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	broker.Publish(ReloadedEvent, "early")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := broker.Subscribe(ctx)

	select {
	case ev := <-ch:
		require.Failf(t, "unexpected event", "%v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroker_CloseIsIdempotentAndClosesSubscribers(t *testing.T) {
	broker := NewBroker[string]()
	ctx := context.Background()

	ch1 := broker.Subscribe(ctx)
	ch2 := broker.Subscribe(ctx)

	broker.Close()
	broker.Close()

	_, ok1 := <-ch1
	_, ok2 := <-ch2
	require.False(t, ok1)
	require.False(t, ok2)
	require.Equal(t, 0, broker.SubscriberCount())

	late := broker.Subscribe(ctx)
	_, ok := <-late
	require.False(t, ok, "subscribing after close yields a closed channel")

	require.NotPanics(t, func() { broker.Publish(ReloadedEvent, "ignored") })
}
