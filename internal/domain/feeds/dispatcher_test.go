//go:build unit
// +build unit

package feeds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Start owns the dispatch loop and only returns on Stop. Callers must run it
// in its own goroutine; invoking it inline would block forever.
func TestDispatcherStartBlocksUntilStop(t *testing.T) {
	dispatcher := NewDispatcher()

	done := make(chan struct{})
	go func() {
		dispatcher.Start()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Start returned while the dispatcher was still running")
	case <-time.After(100 * time.Millisecond):
	}

	dispatcher.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewDispatcher()
	go dispatcher.Start()
	defer dispatcher.Stop()

	eventCh := dispatcher.Subscribe()
	require.Eventually(t, func() bool {
		return dispatcher.SubCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	published := &Event{Kind: KindNewSample, Title: "New sample 26-TB-1"}
	dispatcher.Publish(published)

	select {
	case received := <-eventCh:
		assert.Equal(t, published, received)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}

	dispatcher.Unsubscribe(eventCh)
	require.Eventually(t, func() bool {
		return dispatcher.SubCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDispatcherDropsOnFullSubscriber(t *testing.T) {
	dispatcher := NewDispatcher()
	go dispatcher.Start()
	defer dispatcher.Stop()

	eventCh := dispatcher.Subscribe()
	require.Eventually(t, func() bool {
		return dispatcher.SubCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Fill the subscriber buffer without draining it.
	for i := 0; i < cap(eventCh)+16; i++ {
		dispatcher.Publish(&Event{Kind: KindNewSample})
	}

	require.Eventually(t, func() bool {
		return dispatcher.DropCount() > 0
	}, 2*time.Second, 10*time.Millisecond)
}
