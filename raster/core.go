package raster

import (
	"fmt"

	"github.com/fuwa-go/fuwa/raster/scheduler"
)

// PowerPreference hints how many worker goroutines Core should use, a
// supplemented feature carried over from original_source's
// PowerPreference enum (the Rust renderer exposed the same choice when
// picking a GPU adapter; here it only controls CPU parallelism, since
// this module has no GPU backend to choose between).
type PowerPreference int

const (
	// PowerPreferenceDefault lets Core pick GOMAXPROCS(0) workers.
	PowerPreferenceDefault PowerPreference = iota
	// PowerPreferenceLowPower restricts Core to a single worker,
	// useful for deterministic tests and debugging.
	PowerPreferenceLowPower
	// PowerPreferenceHighPerformance lets Core pick GOMAXPROCS(0)
	// workers, the same as PowerPreferenceDefault.
	PowerPreferenceHighPerformance
)

// Config configures a new Core. There is no command-line flag parsing
// in this module (spec.md's Non-goals exclude an application shell);
// a caller embedding this package builds a Config directly.
type Config struct {
	// Width and Height are the initial viewport dimensions, in pixels.
	Width, Height int

	// ThreadCount overrides the worker pool size. Zero means "derive
	// from Power".
	ThreadCount int

	// Power hints the worker pool size when ThreadCount is zero.
	Power PowerPreference

	// Surface receives completed frames from Present. Nil is
	// equivalent to NullSurface{}.
	Surface Surface
}

// FrameStats summarizes one frame's rasterization work, supplemented
// from original_source's per-frame counters (spec.md itself only
// implies these exist via its edge-case language around culling and
// degenerate triangles; the original renderer surfaces them directly
// for profiling).
type FrameStats struct {
	Submitted  int // triangles passed to Draw
	Culled     int // back-face culled
	Degenerate int // zero-area or fully off-screen after culling
	Fragments  int // pixels written to the fragment buffer
}

func (s *FrameStats) addFragments(n int) {
	// Only reached from the goroutine running Draw, after the tile jobs
	// have joined (each job reports its count through its own slot), so
	// a plain add does not race.
	s.Fragments += n
}

// Core is the CPU rasterizer's driver: it owns the color, depth, and
// fragment buffers, the texture store, and the worker pool, and
// implements the Draw/Render/Present cycle.
//
// Grounded on the teacher's Pipeline (hal/software/raster/pipeline.go),
// which owns the same kind of buffer trio; generalized here from a
// single fixed vertex format to the generic Attrs[F] payload and split
// into the deferred rasterize/shade passes spec.md §4 describes instead
// of the teacher's single immediate-shading pass.
type Core struct {
	width, height int

	color     *colorBuffer
	depth     *depthBuffer
	fragments *fragmentBuffer
	slabs     *slabMap
	textures  *textureStore

	pool    *scheduler.Pool
	surface Surface

	rotation    [3][3]float32
	translation [3]float32

	stats FrameStats
}

// New builds a Core for the given configuration.
func New(cfg Config) (*Core, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrZeroDimension
	}

	workers := cfg.ThreadCount
	if workers <= 0 {
		if cfg.Power == PowerPreferenceLowPower {
			workers = 1
		} else {
			workers = 0 // scheduler.New treats <= 0 as GOMAXPROCS(0)
		}
	}

	surface := cfg.Surface
	if surface == nil {
		surface = NullSurface{}
	}

	c := &Core{
		width:       cfg.Width,
		height:      cfg.Height,
		color:       newColorBuffer(cfg.Width, cfg.Height),
		depth:       newDepthBuffer(cfg.Width, cfg.Height),
		fragments:   newFragmentBuffer(cfg.Width, cfg.Height),
		slabs:       newSlabMap(),
		textures:    newTextureStore(),
		pool:        scheduler.New(workers),
		surface:     surface,
		rotation:    identity3(),
		translation: [3]float32{0, 0, 0},
	}
	Logger().Debug("raster: core created", "width", cfg.Width, "height", cfg.Height, "workers", c.pool.Workers())
	return c, nil
}

func identity3() [3][3]float32 {
	return [3][3]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// ClearAll resets the color, depth, and fragment buffers and the
// per-frame stats counters, per spec.md §4's implicit per-frame
// contract: a caller clears once, then issues any number of Draw and
// Render calls before Present.
func (c *Core) ClearAll() {
	c.color.clear()
	c.depth.clear()
	c.fragments.clear()
	c.slabs.resetAll()
	c.stats = FrameStats{}
}

// SetTransform installs the model transform applied to every vertex
// position a subsequent Draw call submits, until changed again. This
// is a supplemented feature: spec.md's Vertex stage takes view-space
// positions directly, but original_source's render pipeline applies a
// rotation+translation model matrix before the view-space transform
// spec.md §4.2 describes, and dropping it would leave every mesh
// pinned at the origin.
func (c *Core) SetTransform(rotation [3][3]float32, translation [3]float32) {
	c.rotation = rotation
	c.translation = translation
}

func (c *Core) applyTransform(p [3]float32) [3]float32 {
	r := c.rotation
	return [3]float32{
		r[0][0]*p[0] + r[0][1]*p[1] + r[0][2]*p[2] + c.translation[0],
		r[1][0]*p[0] + r[1][1]*p[1] + r[1][2]*p[2] + c.translation[1],
		r[2][0]*p[0] + r[2][1]*p[1] + r[2][2]*p[2] + c.translation[2],
	}
}

// Draw rasterizes mesh under shaderID: the model transform from
// SetTransform is applied to each vertex's raw position first, then vs
// decodes the transformed record into its final position and
// interpolated payload, then Draw assembles and culls triangles and
// writes a FragmentKey plus passing depth value for every covered
// pixel. It does not produce color — call Render with a matching
// shaderID afterward to shade what this wrote.
//
// Draw is a free function, not a Core method, because Go methods
// cannot introduce a type parameter beyond the receiver's; F is fixed
// by vs and mesh.
func Draw[F Attrs[F]](c *Core, vs VertexShader[F], shaderID int, mesh Mesh[F]) error {
	transformed := make([]Vertex[F], len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		transformed[i] = Vertex[F]{Position: c.applyTransform(v.Position), Attrs: v.Attrs}
	}
	rasterizeMesh(c, vs, shaderID, Mesh[F]{Vertices: transformed, Indices: mesh.Indices})
	return nil
}

// Present hands the completed color buffer to the configured Surface.
func (c *Core) Present() error {
	Logger().Debug("raster: frame complete",
		"submitted", c.stats.Submitted,
		"culled", c.stats.Culled,
		"degenerate", c.stats.Degenerate,
		"fragments", c.stats.Fragments,
	)
	if c.surface == nil {
		return ErrNoSurface
	}
	if err := c.surface.Present(c.color.bytes(), c.width, c.height); err != nil {
		return fmt.Errorf("%w: %v", ErrPresentRejected, err)
	}
	return nil
}

// LoadTexture decodes no pixel format itself — rgba8 must already be
// tightly packed RGBA8, width*height*4 bytes, row-major from the top
// — and returns a handle a Textured fragment shader can resolve
// through Uniforms.
func (c *Core) LoadTexture(rgba8 []byte, width, height int) (TextureHandle, error) {
	if width <= 0 || height <= 0 {
		return 0, ErrZeroDimension
	}
	if len(rgba8) != width*height*4 {
		return 0, ErrIndexOutOfRange
	}
	cp := make([]byte, len(rgba8))
	copy(cp, rgba8)
	return c.textures.insert(Texture{Width: width, Height: height, Pixels: cp}), nil
}

// Resize changes the viewport dimensions, reallocating every buffer
// and discarding their contents. Existing textures are unaffected.
func (c *Core) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		Logger().Warn("raster: resize to non-positive dimension rejected", "width", width, "height", height)
		return ErrZeroDimension
	}
	c.width, c.height = width, height
	c.color.resize(width, height)
	c.depth.resize(width, height)
	c.fragments.resize(width, height)
	return nil
}

// Stats returns the rasterization counters accumulated since the last
// ClearAll.
func (c *Core) Stats() FrameStats {
	return c.stats
}

// ColorAt returns the color buffer's current pixel at (x, y). It is
// primarily useful for tests and headless callers that don't go
// through a Surface.
func (c *Core) ColorAt(x, y int) Pixel {
	return c.color.Get(x, y)
}
