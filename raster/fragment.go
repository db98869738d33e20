package raster

import (
	"reflect"
	"sync"
)

// FragmentKey identifies one written fragment's shading job: which
// registered shader produced it, and which slot in that shader's
// payload slab holds its interpolated attributes. Mirrors spec.md §4.4
// / §4.6's deferred write — the rasterize pass stores only this key
// per covered pixel, and the shade pass later looks the payload back
// up through it.
//
// Grounded on original_source/src/render_pipeline/rasterization/
// fragment.go's FragmentKey (shader_id + slab index pair).
type FragmentKey struct {
	ShaderID  int
	SlabIndex int
}

// fragmentBuffer holds one optional FragmentKey per pixel, the Go
// realization of spec.md's Option<FragmentKey> framebuffer. hasKey
// tracks occupancy separately from keys so the zero value of
// FragmentKey (shader 0, slot 0) is never mistaken for "covered".
type fragmentBuffer struct {
	keys    []FragmentKey
	hasKey  []bool
	width   int
	height  int
}

func newFragmentBuffer(width, height int) *fragmentBuffer {
	return &fragmentBuffer{
		keys:   make([]FragmentKey, width*height),
		hasKey: make([]bool, width*height),
		width:  width,
		height: height,
	}
}

// clear empties every pixel, matching the depth/color buffers' clear.
func (f *fragmentBuffer) clear() {
	for i := range f.hasKey {
		f.hasKey[i] = false
	}
}

// resize reallocates the buffer for new dimensions and clears it.
func (f *fragmentBuffer) resize(width, height int) {
	f.width = width
	f.height = height
	f.keys = make([]FragmentKey, width*height)
	f.hasKey = make([]bool, width*height)
}

// set writes a fragment key at the given linear pixel index,
// overwriting whatever key is already there. The rasterizer calls it
// only after the depth test passed, so any key it replaces came from a
// farther fragment earlier in this frame.
func (f *fragmentBuffer) set(index int, key FragmentKey) {
	f.keys[index] = key
	f.hasKey[index] = true
}

// get returns the fragment key at index and whether one is present.
func (f *fragmentBuffer) get(index int) (FragmentKey, bool) {
	if !f.hasKey[index] {
		return FragmentKey{}, false
	}
	return f.keys[index], true
}

// unset clears the fragment key at index, per spec.md §4.6's "set
// fragment_buffer[i] = None" once a fragment has been shaded. A second
// Render call with the same shaderID then finds nothing left to shade
// at index and is a no-op there, rather than re-shading it.
func (f *fragmentBuffer) unset(index int) {
	f.hasKey[index] = false
}

// slab is a flat, append-only arena of one shader's interpolated
// fragment payloads for a single frame. It is reset (not reallocated)
// at the start of each frame via reset, so its backing array is reused
// across frames once it has grown to its steady-state size.
//
// Grounded on original_source's Slab<F>, dropping that type's free-list
// support: nothing in this module ever removes a fragment mid-frame, so
// a grow-only, frame-reset arena is sufficient.
//
// push is called concurrently by every tile worker rasterizing a
// triangle that uses this payload type, since tile-parallel dispatch
// only guarantees disjoint pixel ranges, not disjoint slabs. mu
// serializes those appends; the rest of the slab's API is only ever
// used single-threaded during the shade pass, once rasterization has
// finished.
type slab[F Attrs[F]] struct {
	mu    sync.Mutex
	items []F
}

func newSlab[F Attrs[F]]() *slab[F] {
	return &slab[F]{}
}

// push appends item and returns its index.
func (s *slab[F]) push(item F) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := len(s.items)
	s.items = append(s.items, item)
	return i
}

// at returns the item at index i.
func (s *slab[F]) at(i int) F {
	return s.items[i]
}

// reset empties the slab for reuse next frame, keeping its capacity.
func (s *slab[F]) reset() {
	s.items = s.items[:0]
}

// slabMap holds one slab per distinct payload type F, type-erased
// behind reflect.Type since Go has no way to key a map by a type
// parameter directly. Grounded on original_source's FragmentSlabMap,
// which uses Rust's TypeMap for the same purpose: each registered
// shader's payload type gets its own slab, discovered lazily on first
// use rather than pre-registered.
type slabMap struct {
	slabs map[reflect.Type]any
}

func newSlabMap() *slabMap {
	return &slabMap{slabs: make(map[reflect.Type]any)}
}

// slabFor returns the slab for payload type F, creating it on first
// use for that type.
func slabFor[F Attrs[F]](m *slabMap) *slab[F] {
	var zero F
	t := reflect.TypeOf(zero)
	existing, found := m.slabs[t]
	if !found {
		s := newSlab[F]()
		m.slabs[t] = s
		return s
	}
	return existing.(*slab[F])
}

// resetAll empties every registered slab for the next frame.
func (m *slabMap) resetAll() {
	for _, s := range m.slabs {
		if r, ok := s.(interface{ reset() }); ok {
			r.reset()
		}
	}
}
