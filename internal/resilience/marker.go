package resilience

import (
	"context"
	"sync/atomic"
)

type markerKey struct{}

// Marker records whether any store call made on behalf of a request was
// served by the fallback store.
type Marker struct {
	degraded atomic.Bool
}

// WithMarker returns a child context carrying a fresh Marker.
func WithMarker(ctx context.Context) (context.Context, *Marker) {
	m := &Marker{}
	return context.WithValue(ctx, markerKey{}, m), m
}

// MarkerFrom returns the Marker stored in ctx, or nil.
func MarkerFrom(ctx context.Context) *Marker {
	m, _ := ctx.Value(markerKey{}).(*Marker)
	return m
}

// Degraded reports whether the fallback store served at least one call.
func (m *Marker) Degraded() bool {
	if m == nil {
		return false
	}
	return m.degraded.Load()
}

func (m *Marker) mark() {
	if m != nil {
		m.degraded.Store(true)
	}
}

// Degraded is a shorthand for MarkerFrom(ctx).Degraded().
func Degraded(ctx context.Context) bool {
	return MarkerFrom(ctx).Degraded()
}
