package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrEngineStopped      = errors.New("scheduler: engine stopped")
)

// ReminderEvent is one pending notification. ChannelID groups every event
// planned for a single task revision so an edit can withdraw them together.
type ReminderEvent struct {
	ID        string
	TaskID    string
	ChannelID string
	Kind      string
	Title     string
	Body      string
	TriggerAt time.Time
}

// eventHeap orders events by trigger time, then ID, and tracks where each
// ID sits so a reschedule can update it in place.
type eventHeap struct {
	items []ReminderEvent
	index map[string]int
}

func (h *eventHeap) Len() int { return len(h.items) }

func (h *eventHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.TriggerAt.Equal(b.TriggerAt) {
		return a.ID < b.ID
	}
	return a.TriggerAt.Before(b.TriggerAt)
}

func (h *eventHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.index[h.items[i].ID] = i
	h.index[h.items[j].ID] = j
}

func (h *eventHeap) Push(x any) {
	ev := x.(ReminderEvent)
	h.index[ev.ID] = len(h.items)
	h.items = append(h.items, ev)
}

func (h *eventHeap) Pop() any {
	last := len(h.items) - 1
	ev := h.items[last]
	h.items[last] = ReminderEvent{}
	h.items = h.items[:last]
	delete(h.index, ev.ID)
	return ev
}

// Engine fires ReminderEvents at their trigger time onto a buffered
// channel. Delivery never blocks: when the buffer is full the event is
// counted in Dropped and discarded.
type Engine struct {
	mu      sync.Mutex
	pending eventHeap
	out     chan ReminderEvent
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped atomic.Uint64
}

func NewEngine(bufferSize int) *Engine {
	return &Engine{
		pending: eventHeap{index: make(map[string]int)},
		out:     make(chan ReminderEvent, max(bufferSize, 1)),
		wakeup:  make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (e *Engine) C() <-chan ReminderEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	go e.run()
}

// Stop halts delivery and closes C. Events still queued are discarded.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule queues ev. An event already queued under the same ID is
// replaced.
func (e *Engine) Schedule(ev ReminderEvent) error {
	if ev.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrEngineStopped
	}

	if i, ok := e.pending.index[ev.ID]; ok {
		e.pending.items[i] = ev
		heap.Fix(&e.pending, i)
	} else {
		heap.Push(&e.pending, ev)
	}
	e.poke()
	return nil
}

// CancelChannel withdraws every queued event carrying channelID and reports
// how many were removed.
func (e *Engine) CancelChannel(channelID string) int {
	if channelID == "" {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := e.pending.items[:0]
	removed := 0
	for _, ev := range e.pending.items {
		if ev.ChannelID == channelID {
			delete(e.pending.index, ev.ID)
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	clear(e.pending.items[len(kept):])
	e.pending.items = kept
	for i, ev := range kept {
		e.pending.index[ev.ID] = i
	}
	heap.Init(&e.pending)
	if removed > 0 {
		e.poke()
	}
	return removed
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending.Len()
}

func (e *Engine) Dropped() uint64 {
	return e.dropped.Load()
}

func (e *Engine) run() {
	defer close(e.doneCh)
	defer close(e.out)

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for {
		var fire <-chan time.Time
		if next, ok := e.next(); ok {
			timer.Reset(max(time.Until(next), 0))
			fire = timer.C
		}

		select {
		case <-fire:
			for _, ev := range e.takeDue(time.Now()) {
				e.deliver(ev)
			}
		case <-e.wakeup:
		case <-e.stopCh:
			return
		}
	}
}

func (e *Engine) deliver(ev ReminderEvent) {
	select {
	case e.out <- ev:
	default:
		e.dropped.Add(1)
	}
}

func (e *Engine) poke() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) next() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending.Len() == 0 {
		return time.Time{}, false
	}
	return e.pending.items[0].TriggerAt, true
}

func (e *Engine) takeDue(now time.Time) []ReminderEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	var due []ReminderEvent
	for e.pending.Len() > 0 && !e.pending.items[0].TriggerAt.After(now) {
		due = append(due, heap.Pop(&e.pending).(ReminderEvent))
	}
	return due
}
