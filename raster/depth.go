package raster

// farDepth is the reciprocal-Z "far" sentinel: any real 1/z_view > 0
// wins against it, per spec.md §3 ("Depth cell").
const farDepth = 0

// depthBuffer is a row-major f32 grid using the reciprocal-Z convention
// (higher = nearer). Grounded on the teacher's DepthBuffer
// (hal/software/raster/depth.go), replacing its mutex-guarded
// CompareFunc-driven Test/TestAndSet with the fixed "greater wins"
// contract from spec.md §4.5, and adding the 8-wide TrySet8 path the
// teacher's depth buffer doesn't have but the original Rust source's
// try_set_depth_simd does (original_source/.../rasterizer.rs).
//
// depthBuffer itself holds no lock: spec.md §5 assigns each tile to
// exactly one worker for the duration of rasterization, so writes to a
// tile's pixel range never race with another goroutine's writes to the
// same range. Callers outside that contract must synchronize
// externally.
type depthBuffer struct {
	cells  []float32
	width  int
	height int
}

func newDepthBuffer(width, height int) *depthBuffer {
	d := &depthBuffer{
		cells:  make([]float32, width*height),
		width:  width,
		height: height,
	}
	return d
}

// clear resets every cell to the far sentinel.
func (d *depthBuffer) clear() {
	for i := range d.cells {
		d.cells[i] = farDepth
	}
}

// resize reallocates the buffer for new dimensions and clears it.
func (d *depthBuffer) resize(width, height int) {
	d.width = width
	d.height = height
	d.cells = make([]float32, width*height)
}

// TrySet performs the scalar compare-and-set from spec.md §4.5: if
// depth is nearer (greater) than the stored value, it replaces it and
// TrySet reports true.
func (d *depthBuffer) TrySet(index int, depth float32) bool {
	if depth > d.cells[index] {
		d.cells[index] = depth
		return true
	}
	return false
}

// Get returns the stored depth at the given linear index.
func (d *depthBuffer) Get(index int) float32 {
	return d.cells[index]
}

// stampWidth is the SIMD-style lane count used by the rasterizer's
// inner loop, per spec.md §4.3 ("a horizontal stamp of 8 pixels").
const stampWidth = 8

// lane8 is a software stand-in for an 8-wide SIMD register: a fixed
// array of 8 float32 lanes. The examples retrieved for this module
// carry no portable Go SIMD-intrinsics library (the original Rust
// source used the `wide` crate's real f32x8; nothing equivalent ships
// in the pack), so the 8-wide path here is plain Go arrays processed
// with unrolled loops — it reproduces the spec's masking and lane
// semantics without machine vector instructions.
type lane8 [stampWidth]float32

// mask8 is the per-lane boolean result of an 8-wide comparison.
type mask8 [stampWidth]bool

// any reports whether at least one lane is set.
func (m mask8) any() bool {
	for _, b := range m {
		if b {
			return true
		}
	}
	return false
}

// TrySet8 performs the compare-and-set over lanes contiguous cells
// starting at index, per spec.md §4.5. lanes must be in [0, stampWidth]
// — a stamp straddling the right edge of a row (or the last row of the
// buffer) has a visible run shorter than stampWidth, and indexing past
// it would alias into the next row or past the end of cells entirely.
// depths carries a lane's candidate depth, or any value <= farDepth in
// lanes the caller wants to force a fail (e.g. pixels outside the
// triangle's edge test). The returned mask has a lane set wherever
// that lane both beat the stored depth and has been installed; ok is
// false if no lane passed, mirroring spec.md's Option<mask_8>.
//
// Like TrySet, this is not atomic across threads: safety depends on the
// tile-parallel dispatch contract in SPEC_FULL.md's Concurrency
// Strategy section, under which no two goroutines ever call TrySet8
// with overlapping index ranges in the same frame.
func (d *depthBuffer) TrySet8(index int, depths lane8, lanes int) (mask8, bool) {
	var m mask8
	ok := false
	for lane := 0; lane < lanes; lane++ {
		cell := index + lane
		if depths[lane] > d.cells[cell] {
			d.cells[cell] = depths[lane]
			m[lane] = true
			ok = true
		}
	}
	return m, ok
}
