package trace

import "context"

type ctxKey struct{}

// ctxState is what a context carries: the tracer and the innermost open
// span, so children can be attached without passing ids around.
type ctxState struct {
	tracer Tracer
	parent uint64
}

func stateOf(ctx context.Context) ctxState {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(ctxState); ok {
			return st
		}
	}
	return ctxState{tracer: Nop}
}

// FromContext returns the tracer on ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return stateOf(ctx).tracer
}

// WithTracer attaches t and keeps any parent span already on ctx.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	st := stateOf(ctx)
	st.tracer = t
	return context.WithValue(ctx, ctxKey{}, st)
}

// Parent is the id of the innermost span recorded with WithParent.
func Parent(ctx context.Context) uint64 {
	return stateOf(ctx).parent
}

// WithParent makes s the parent of spans begun from the returned context.
func WithParent(ctx context.Context, s *Span) context.Context {
	st := stateOf(ctx)
	st.parent = s.ID()
	return context.WithValue(ctx, ctxKey{}, st)
}
