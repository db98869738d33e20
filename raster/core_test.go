package raster

import "testing"

func newTestCore(t *testing.T, w, h int) *Core {
	t.Helper()
	c, err := New(Config{Width: w, Height: h, Power: PowerPreferenceLowPower})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func colorVS(raw Vertex[RGB]) ([3]float32, RGB) { return raw.Position, raw.Attrs }

func colorFS(attrs RGB, _ Uniforms) Pixel {
	return Pixel{R: uint8(attrs.R * 255), G: uint8(attrs.G * 255), B: uint8(attrs.B * 255), A: 255}
}

// Scenario A: a single opaque triangle filling most of the viewport,
// drawn with one shader, should leave shaded pixels inside it and
// leave the clear color outside it.
func TestSingleTriangleColorBlend(t *testing.T) {
	c := newTestCore(t, 64, 64)
	c.ClearAll()

	mesh := Mesh[RGB]{
		Vertices: []Vertex[RGB]{
			{Position: [3]float32{-0.8, -0.8, 1}, Attrs: RGB{R: 1}},
			{Position: [3]float32{0.8, -0.8, 1}, Attrs: RGB{G: 1}},
			{Position: [3]float32{-0.8, 0.8, 1}, Attrs: RGB{B: 1}},
		},
		Indices: []uint32{0, 1, 2},
	}

	if err := Draw(c, colorVS, 0, mesh); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	Render(c, colorFS, 0)

	stats := c.Stats()
	if stats.Submitted != 1 {
		t.Errorf("Submitted = %d, want 1", stats.Submitted)
	}
	if stats.Culled != 0 || stats.Degenerate != 0 {
		t.Errorf("unexpected culling: %+v", stats)
	}
	if stats.Fragments == 0 {
		t.Fatal("expected at least one covered pixel")
	}

	center := c.ColorAt(24, 40)
	if center == (Pixel{}) {
		t.Error("a pixel inside the triangle should not be the clear color")
	}
	corner := c.ColorAt(63, 0)
	if corner != (Pixel{}) {
		t.Errorf("a pixel outside the triangle should remain the clear color, got %+v", corner)
	}
}

// Scenario B: a far triangle drawn first, then a near triangle
// overlapping it, should leave the near triangle's color on top
// regardless of draw order.
func TestDepthOcclusion(t *testing.T) {
	c := newTestCore(t, 32, 32)
	c.ClearAll()

	far := Mesh[RGB]{
		Vertices: []Vertex[RGB]{
			{Position: [3]float32{-0.9, -0.9, 4}, Attrs: RGB{R: 1}},
			{Position: [3]float32{0.9, -0.9, 4}, Attrs: RGB{R: 1}},
			{Position: [3]float32{-0.9, 0.9, 4}, Attrs: RGB{R: 1}},
		},
		Indices: []uint32{0, 1, 2},
	}
	near := Mesh[RGB]{
		Vertices: []Vertex[RGB]{
			{Position: [3]float32{-0.5, -0.5, 1}, Attrs: RGB{B: 1}},
			{Position: [3]float32{0.5, -0.5, 1}, Attrs: RGB{B: 1}},
			{Position: [3]float32{-0.5, 0.5, 1}, Attrs: RGB{B: 1}},
		},
		Indices: []uint32{0, 1, 2},
	}

	if err := Draw(c, colorVS, 0, far); err != nil {
		t.Fatalf("Draw far: %v", err)
	}
	if err := Draw(c, colorVS, 0, near); err != nil {
		t.Fatalf("Draw near: %v", err)
	}
	Render(c, colorFS, 0)

	got := c.ColorAt(13, 17)
	if got.B == 0 {
		t.Errorf("pixel under both triangles = %+v, want the near (blue) triangle to win", got)
	}
}

// Scenario C: a back-facing triangle contributes nothing to the frame.
func TestBackFaceCullProducesNoFragments(t *testing.T) {
	c := newTestCore(t, 32, 32)
	c.ClearAll()

	mesh := Mesh[RGB]{
		Vertices: []Vertex[RGB]{
			{Position: [3]float32{-0.8, -0.8, 1}, Attrs: RGB{R: 1}},
			{Position: [3]float32{-0.8, 0.8, 1}, Attrs: RGB{G: 1}},
			{Position: [3]float32{0.8, -0.8, 1}, Attrs: RGB{B: 1}},
		},
		Indices: []uint32{0, 1, 2},
	}
	if err := Draw(c, colorVS, 0, mesh); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	stats := c.Stats()
	if stats.Culled != 1 {
		t.Errorf("Culled = %d, want 1", stats.Culled)
	}
	if stats.Fragments != 0 {
		t.Errorf("Fragments = %d, want 0", stats.Fragments)
	}
}

// Scenario D: a degenerate (zero-area) triangle is rejected without
// crashing the rasterizer.
func TestDegenerateTriangleRejected(t *testing.T) {
	c := newTestCore(t, 16, 16)
	c.ClearAll()

	mesh := Mesh[RGB]{
		Vertices: []Vertex[RGB]{
			{Position: [3]float32{-0.5, -0.5, 1}, Attrs: RGB{}},
			{Position: [3]float32{0, 0, 1}, Attrs: RGB{}},
			{Position: [3]float32{0.5, 0.5, 1}, Attrs: RGB{}},
		},
		Indices: []uint32{0, 1, 2},
	}
	if err := Draw(c, colorVS, 0, mesh); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	stats := c.Stats()
	if stats.Degenerate != 1 {
		t.Errorf("Degenerate = %d, want 1", stats.Degenerate)
	}
}

// Scenario F: two draws under two different shader IDs in the same
// frame each shade only their own pixels.
func TestTwoShadersPerFrame(t *testing.T) {
	c := newTestCore(t, 32, 32)
	c.ClearAll()

	left := Mesh[RGB]{
		Vertices: []Vertex[RGB]{
			{Position: [3]float32{-0.9, -0.9, 1}, Attrs: RGB{R: 1}},
			{Position: [3]float32{-0.1, -0.9, 1}, Attrs: RGB{R: 1}},
			{Position: [3]float32{-0.9, 0.9, 1}, Attrs: RGB{R: 1}},
		},
		Indices: []uint32{0, 1, 2},
	}
	right := Mesh[RGB]{
		Vertices: []Vertex[RGB]{
			{Position: [3]float32{0.1, -0.9, 1}, Attrs: RGB{G: 1}},
			{Position: [3]float32{0.9, -0.9, 1}, Attrs: RGB{G: 1}},
			{Position: [3]float32{0.1, 0.9, 1}, Attrs: RGB{G: 1}},
		},
		Indices: []uint32{0, 1, 2},
	}

	if err := Draw(c, colorVS, 0, left); err != nil {
		t.Fatalf("Draw left: %v", err)
	}
	if err := Draw(c, colorVS, 1, right); err != nil {
		t.Fatalf("Draw right: %v", err)
	}

	redFS := func(attrs RGB, _ Uniforms) Pixel { return Pixel{R: 200, A: 255} }
	greenFS := func(attrs RGB, _ Uniforms) Pixel { return Pixel{G: 200, A: 255} }
	Render(c, redFS, 0)
	Render(c, greenFS, 1)

	leftPixel := c.ColorAt(6, 16)
	rightPixel := c.ColorAt(26, 16)
	if leftPixel.R != 200 || leftPixel.G != 0 {
		t.Errorf("left pixel = %+v, want shader 0's red", leftPixel)
	}
	if rightPixel.G != 200 || rightPixel.R != 0 {
		t.Errorf("right pixel = %+v, want shader 1's green", rightPixel)
	}
}

func TestResizeRejectsNonPositive(t *testing.T) {
	c := newTestCore(t, 16, 16)
	if err := c.Resize(0, 10); err != ErrZeroDimension {
		t.Errorf("Resize(0, 10) error = %v, want ErrZeroDimension", err)
	}
}

func TestNewRejectsNonPositive(t *testing.T) {
	if _, err := New(Config{Width: 0, Height: 10}); err != ErrZeroDimension {
		t.Errorf("New error = %v, want ErrZeroDimension", err)
	}
}

func TestLoadTextureValidatesLength(t *testing.T) {
	c := newTestCore(t, 8, 8)
	if _, err := c.LoadTexture(make([]byte, 3), 2, 2); err != ErrIndexOutOfRange {
		t.Errorf("LoadTexture error = %v, want ErrIndexOutOfRange", err)
	}

	h, err := c.LoadTexture(make([]byte, 2*2*4), 2, 2)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if h != 0 {
		t.Errorf("first handle = %d, want 0", h)
	}
}

// TestDrawStampStraddlesBufferEdge reproduces a triangle whose screen-
// space bounding box reaches the viewport's last row with a final
// 8-wide stamp that is only partially covered by the buffer — the
// right edge of row 7 on a 10-wide, 8-tall viewport. Before TrySet8
// was given the stamp's visible lane count, this panicked with an
// out-of-range index because the tail lanes of that last stamp aliased
// past the end of the flat depth buffer.
func TestDrawStampStraddlesBufferEdge(t *testing.T) {
	c := newTestCore(t, 10, 8)
	c.ClearAll()

	mesh := Mesh[RGB]{
		Vertices: []Vertex[RGB]{
			{Position: [3]float32{0.3, 1, 1}, Attrs: RGB{R: 1}},
			{Position: [3]float32{-0.4, -1, 1}, Attrs: RGB{G: 1}},
			{Position: [3]float32{1, -1, 1}, Attrs: RGB{B: 1}},
		},
		Indices: []uint32{0, 1, 2},
	}

	if err := Draw(c, colorVS, 0, mesh); err != nil {
		t.Fatalf("Draw: %v", err)
	}
}

// TestRenderIsIdempotent verifies spec.md §8's "a second render with
// the same id is a no-op": once Render has shaded every fragment for a
// shaderID, a second Render call with the same id must leave the color
// buffer unchanged rather than re-shading (or, for a shader that isn't
// pure, double-shading) the same pixels.
func TestRenderIsIdempotent(t *testing.T) {
	c := newTestCore(t, 16, 16)
	c.ClearAll()

	mesh := Mesh[RGB]{
		Vertices: []Vertex[RGB]{
			{Position: [3]float32{-0.8, -0.8, 1}, Attrs: RGB{R: 1}},
			{Position: [3]float32{0.8, -0.8, 1}, Attrs: RGB{G: 1}},
			{Position: [3]float32{-0.8, 0.8, 1}, Attrs: RGB{B: 1}},
		},
		Indices: []uint32{0, 1, 2},
	}
	if err := Draw(c, colorVS, 0, mesh); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	calls := 0
	countingFS := func(attrs RGB, _ Uniforms) Pixel {
		calls++
		return Pixel{R: 200, A: 255}
	}
	Render(c, countingFS, 0)
	firstCalls := calls
	if firstCalls == 0 {
		t.Fatal("expected the first Render to shade at least one fragment")
	}

	Render(c, countingFS, 0)
	if calls != firstCalls {
		t.Errorf("second Render with the same shaderID called the fragment shader %d more times, want 0 (no-op)", calls-firstCalls)
	}
}

func TestPresentWithoutSurfaceConfigured(t *testing.T) {
	c, err := New(Config{Width: 4, Height: 4, Power: PowerPreferenceLowPower})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// NullSurface is installed by default, so Present should succeed
	// even without an explicit Surface in Config.
	if err := c.Present(); err != nil {
		t.Errorf("Present: %v", err)
	}
}
