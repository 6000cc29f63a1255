package feeds

import "sync/atomic"

// Dispatcher decouples event producers from the feed service's fan-out
// worker. A single goroutine owns the subscriber set; subscriber channels
// are buffered and receive with a non-blocking send so one slow consumer
// cannot stall publishing.
type Dispatcher struct {
	subCount  int64  // needs 64-bit alignment
	dropCount uint64 // needs 64-bit alignment

	stopCh    chan struct{}
	publishCh chan *Event
	subCh     chan chan *Event
	unsubCh   chan chan *Event
}

// NewDispatcher creates a Dispatcher. Call Start in a goroutine before
// publishing.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		stopCh:    make(chan struct{}),
		publishCh: make(chan *Event, 1),
		subCh:     make(chan chan *Event, 1),
		unsubCh:   make(chan chan *Event, 1),
	}
}

// Start runs the dispatch loop until Stop is called.
func (d *Dispatcher) Start() {
	subs := map[chan *Event]struct{}{}
	for {
		select {
		case <-d.stopCh:
			return
		case eventCh := <-d.subCh:
			subs[eventCh] = struct{}{}
			atomic.StoreInt64(&d.subCount, int64(len(subs)))
		case eventCh := <-d.unsubCh:
			delete(subs, eventCh)
			atomic.StoreInt64(&d.subCount, int64(len(subs)))
		case event := <-d.publishCh:
			for eventCh := range subs {
				select {
				case eventCh <- event:
				default:
					atomic.AddUint64(&d.dropCount, 1)
				}
			}
		}
	}
}

// Stop terminates the dispatch loop.
func (d *Dispatcher) Stop() {
	close(d.stopCh)
}

// Subscribe registers a new buffered event channel.
func (d *Dispatcher) Subscribe() chan *Event {
	eventCh := make(chan *Event, 256)
	d.subCh <- eventCh
	return eventCh
}

// Unsubscribe removes the channel from the subscriber set.
func (d *Dispatcher) Unsubscribe(eventCh chan *Event) {
	d.unsubCh <- eventCh
}

// Publish hands the event to the dispatch loop.
func (d *Dispatcher) Publish(event *Event) {
	d.publishCh <- event
}

// SubCount returns the current number of subscribers.
func (d *Dispatcher) SubCount() int {
	return int(atomic.LoadInt64(&d.subCount))
}

// DropCount returns how many deliveries were dropped on full channels.
func (d *Dispatcher) DropCount() int {
	return int(atomic.LoadUint64(&d.dropCount))
}
