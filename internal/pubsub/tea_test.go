package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReceivesEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	broker.Publish(SelectionChangedEvent, "select")

	msg := ListenCmd(ctx, ch)()

	event, ok := msg.(Event[string])
	require.True(t, ok, "msg should be Event[string]")
	require.Equal(t, SelectionChangedEvent, event.Type)
	require.Equal(t, "select", event.Payload)
}

func TestListenCmd_ContextCancelled(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()
	time.Sleep(20 * time.Millisecond)

	require.Nil(t, ListenCmd(ctx, ch)(), "cancelled context yields nil msg")
}

func TestListenCmd_ChannelClosed(t *testing.T) {
	ch := make(chan Event[string])
	close(ch)

	require.Nil(t, ListenCmd(context.Background(), ch)(), "closed channel yields nil msg")
}

func TestContinuousListener_DeliversInOrder(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener(ctx, broker)

	broker.Publish(ContentChangedEvent, "insert_text")
	broker.Publish(ContentChangedEvent, "delete_backward")
	broker.Publish(SelectionChangedEvent, "select")

	want := []struct {
		typ     EventType
		payload string
	}{
		{ContentChangedEvent, "insert_text"},
		{ContentChangedEvent, "delete_backward"},
		{SelectionChangedEvent, "select"},
	}
	for i, w := range want {
		msg := listener.Listen()()
		event, ok := msg.(Event[string])
		require.True(t, ok, "event %d", i)
		require.Equal(t, w.typ, event.Type, "event %d", i)
		require.Equal(t, w.payload, event.Payload, "event %d", i)
	}
}
