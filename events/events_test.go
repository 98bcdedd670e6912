package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEventDelivery tests the flow from TransactionalBus to the main Bus
func TestEventDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan SettingChangedEvent, 1)
	mainBus.Subscribe(EventTypeSettingChanged, func(ctx context.Context, event Event) {
		if changed, ok := event.(SettingChangedEvent); ok {
			eventReceived <- changed
		} else {
			t.Errorf("Expected SettingChangedEvent, got %T", event)
		}
	})

	testEvent := SettingChangedEvent{GuildID: 42, Kind: "LOGCHANNEL", Value: "777"}
	transactionalBus.Publish(testEvent)
	assert.Equal(t, 1, transactionalBus.Pending())

	require.NoError(t, transactionalBus.Flush(context.Background()))
	assert.Equal(t, 0, transactionalBus.Pending())

	select {
	case received := <-eventReceived:
		assert.Equal(t, testEvent, received)
		assert.Equal(t, int64(42), received.Guild())
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

func TestMultipleEventsDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(3)
	roles := make(map[int64]bool)

	mainBus.Subscribe(EventTypePrivilegeGranted, func(ctx context.Context, event Event) {
		defer wg.Done()
		granted := event.(PrivilegeGrantedEvent)
		mu.Lock()
		roles[granted.RoleID] = true
		mu.Unlock()
	})

	for _, roleID := range []int64{1, 2, 3} {
		transactionalBus.Publish(PrivilegeGrantedEvent{GuildID: 100, RoleID: roleID})
	}
	require.NoError(t, transactionalBus.Flush(context.Background()))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Not all events were received")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, roles, 3)
}

func TestTransactionalBusDiscard(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan bool, 1)
	mainBus.Subscribe(EventTypeTenantErased, func(ctx context.Context, event Event) {
		eventReceived <- true
	})

	transactionalBus.Publish(TenantErasedEvent{GuildID: 9, Reason: "guild_removed"})
	transactionalBus.Discard()
	require.NoError(t, transactionalBus.Flush(context.Background()))

	select {
	case <-eventReceived:
		t.Fatal("Event was received despite being discarded")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_HandlerPanicDoesNotAffectOthers(t *testing.T) {
	bus := NewBus()
	received := make(chan struct{}, 1)

	bus.Subscribe(EventTypeTenantProvisioned, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeTenantProvisioned, func(ctx context.Context, event Event) {
		received <- struct{}{}
	})

	bus.Emit(context.Background(), TenantProvisionedEvent{GuildID: 1, Kinds: 8})

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("Healthy handler did not run")
	}
}

func TestBus_FlushContextSurvivesCancellation(t *testing.T) {
	bus := NewBus()
	transactionalBus := NewTransactionalBus(bus)
	ctxErr := make(chan error, 1)

	bus.Subscribe(EventTypeSettingChanged, func(ctx context.Context, event Event) {
		ctxErr <- ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	transactionalBus.Publish(SettingChangedEvent{GuildID: 1, Kind: "LFGROLE", Value: "5"})
	require.NoError(t, transactionalBus.Flush(ctx))
	cancel()

	select {
	case err := <-ctxErr:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Handler did not run")
	}
}
