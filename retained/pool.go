package retained

import "sync"

// ============================================================================
// Render Buffer Pooling
// ============================================================================
//
// Every frame renders each visible control into its own buffer and composes
// it into the parent's. Those buffers only live for one render call, so they
// are pooled to keep a full repaint from allocating per control.
//
// Usage:
//   buf := acquireBuffer(w, h, attr)
//   ... render and compose ...
//   releaseBuffer(buf)

var bufferPool = sync.Pool{
	New: func() any {
		return &Buffer{}
	},
}

// acquireBuffer returns a cleared buffer of the given size.
// Caller must call releaseBuffer when done.
func acquireBuffer(width, height int, attr Attr) *Buffer {
	size := Size{width, height}.clamp()
	b := bufferPool.Get().(*Buffer)
	n := size.Width * size.Height
	if cap(b.cells) < n {
		b.cells = make([]Cell, n)
	}
	b.cells = b.cells[:n]
	b.width, b.height, b.attr = size.Width, size.Height, attr
	b.Clear()
	return b
}

// releaseBuffer returns a buffer to the pool.
// The buffer should not be used after calling this.
func releaseBuffer(b *Buffer) {
	if b == nil {
		return
	}
	// Only pool buffers up to a reasonable size to avoid memory bloat
	if cap(b.cells) <= 64*1024 {
		bufferPool.Put(b)
	}
}

// ============================================================================
// Route Pooling
// ============================================================================

// routePool pools slices used for event routes (root to target).
var routePool = sync.Pool{
	New: func() any {
		s := make([]*Control, 0, 16)
		return &s
	},
}

// acquireRoute gets an empty route slice.
func acquireRoute() *[]*Control {
	return routePool.Get().(*[]*Control)
}

// releaseRoute returns a route slice to the pool.
func releaseRoute(route *[]*Control) {
	if route == nil {
		return
	}
	// Clear to avoid holding references (helps GC)
	s := *route
	for i := range s {
		s[i] = nil
	}
	if cap(s) <= 256 {
		*route = s[:0]
		routePool.Put(route)
	}
}
