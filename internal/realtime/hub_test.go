package realtime

import (
	"testing"

	"github.com/google/uuid"

	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewHub(log)
}

func TestBroadcastReachesSubscribedChannel(t *testing.T) {
	hub := newTestHub(t)

	c1 := hub.NewClient(uuid.New())
	c2 := hub.NewClient(uuid.New())
	hub.AddChannel(c1, "suppliers")
	hub.AddChannel(c2, "quotations")

	hub.Broadcast(Message{Channel: "suppliers", Event: EventSupplierRegistered, Data: "ok"})

	select {
	case msg := <-c1.Outbound:
		if msg.Event != EventSupplierRegistered {
			t.Fatalf("unexpected event %q", msg.Event)
		}
	default:
		t.Fatalf("expected message on subscribed client")
	}

	select {
	case msg := <-c2.Outbound:
		t.Fatalf("unexpected message on other channel: %+v", msg)
	default:
	}
}

func TestRemoveChannelStopsDelivery(t *testing.T) {
	hub := newTestHub(t)

	c := hub.NewClient(uuid.New())
	hub.AddChannel(c, "suppliers")
	hub.RemoveChannel(c, "suppliers")

	hub.Broadcast(Message{Channel: "suppliers", Event: EventSupplierStatusChanged})

	select {
	case msg := <-c.Outbound:
		t.Fatalf("unexpected message after unsubscribe: %+v", msg)
	default:
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := newTestHub(t)

	c := hub.NewClient(uuid.New())
	hub.AddChannel(c, "suppliers")

	for i := 0; i < cap(c.Outbound)+5; i++ {
		hub.Broadcast(Message{Channel: "suppliers", Event: EventQualificationSubmitted, Data: i})
	}
	if len(c.Outbound) != cap(c.Outbound) {
		t.Fatalf("expected full buffer, got %d", len(c.Outbound))
	}
}

func TestCloseClientRemovesSubscriptions(t *testing.T) {
	hub := newTestHub(t)

	c := hub.NewClient(uuid.New())
	hub.AddChannel(c, "suppliers")
	hub.CloseClient(c)

	if len(hub.subscriptions) != 0 {
		t.Fatalf("expected empty subscriptions, got %d", len(hub.subscriptions))
	}
}
