package trace

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// inflight tracks chapter files whose span is open, in opening order.
type inflight struct {
	mu    sync.Mutex
	files map[uint64]string
}

var active = &inflight{files: make(map[uint64]string)}

func (f *inflight) add(id uint64, path string) {
	f.mu.Lock()
	f.files[id] = path
	f.mu.Unlock()
}

func (f *inflight) remove(id uint64) {
	f.mu.Lock()
	delete(f.files, id)
	f.mu.Unlock()
}

// snapshot returns open files, oldest span first.
func (f *inflight) snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]uint64, 0, len(f.files))
	for id := range f.files {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = f.files[id]
	}
	return out
}

// InFlight lists the chapter files being checked right now.
func InFlight() []string {
	return active.snapshot()
}

// Heartbeat periodically names the oldest file still being checked. The
// same path over several beats points at a stuck chapter.
type Heartbeat struct {
	tracer Tracer
	every  time.Duration
	quit   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// StartHeartbeat returns nil when the tracer is off or interval is not
// positive; Stop on a nil Heartbeat is a no-op.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer: tracer,
		every:  interval,
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer close(h.done)
	ticker := time.NewTicker(h.every)
	defer ticker.Stop()
	for beat := 1; ; beat++ {
		select {
		case <-h.quit:
			return
		case <-ticker.C:
			h.tracer.Emit(beatEvent(beat, active.snapshot()))
		}
	}
}

func beatEvent(beat int, files []string) *Event {
	ev := &Event{
		Time:  time.Now(),
		Seq:   seqCounter.Add(1),
		Kind:  KindHeartbeat,
		Scope: ScopeDriver,
		Name:  "heartbeat",
	}
	switch len(files) {
	case 0:
		ev.Detail = fmt.Sprintf("#%d idle", beat)
	case 1:
		ev.Path = files[0]
		ev.Detail = fmt.Sprintf("#%d", beat)
	default:
		ev.Path = files[0]
		ev.Detail = fmt.Sprintf("#%d, %d more in flight", beat, len(files)-1)
	}
	return ev
}

// Stop ends the goroutine and waits for it.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.quit) })
	<-h.done
}
