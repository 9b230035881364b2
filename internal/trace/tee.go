package trace

import "errors"

// teeTracer writes every event live and keeps it in a ring for a panic dump.
type teeTracer struct {
	stream *StreamTracer
	ring   *RingTracer
}

func (t *teeTracer) Emit(ev *Event) {
	t.stream.Emit(ev)
	t.ring.Emit(ev)
}

func (t *teeTracer) Flush() error  { return t.stream.Flush() }
func (t *teeTracer) Close() error  { return errors.Join(t.stream.Close(), t.ring.Close()) }
func (t *teeTracer) Level() Level  { return t.stream.level }
func (t *teeTracer) Enabled() bool { return t.stream.Enabled() }
