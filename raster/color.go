package raster

// Pixel is an RGBA8 color. The framebuffer stores these packed as four
// consecutive bytes rather than as a slice of Pixel, to keep the color
// buffer a single contiguous allocation a Surface can consume directly.
type Pixel struct {
	R, G, B, A uint8
}

// colorBuffer is a row-major RGBA8 pixel grid, origin top-left, matching
// spec.md §3 ("Pixel"). Grounded on the teacher's Pipeline.colorBuffer
// (hal/software/raster/pipeline.go), generalized from a fixed Clear
// color to the spec's always-zero clear plus indexed single-pixel
// writes driven by the shade pass.
type colorBuffer struct {
	pixels []byte // RGBA8, width*height*4 bytes
	width  int
	height int
}

func newColorBuffer(width, height int) *colorBuffer {
	return &colorBuffer{
		pixels: make([]byte, width*height*4),
		width:  width,
		height: height,
	}
}

// clear zeroes every pixel.
func (c *colorBuffer) clear() {
	for i := range c.pixels {
		c.pixels[i] = 0
	}
}

// set writes an RGBA8 pixel at the given linear pixel index. The caller
// (the shade pass) is trusted to have already validated the index
// against the fragment buffer's matching length; out-of-range writes
// here are a programming error and panic, per spec.md §7's "Bounds
// violation on set_pixel" taxonomy entry.
func (c *colorBuffer) set(index int, p Pixel) {
	i := index * 4
	c.pixels[i+0] = p.R
	c.pixels[i+1] = p.G
	c.pixels[i+2] = p.B
	c.pixels[i+3] = p.A
}

// at returns the pixel at the given linear index.
func (c *colorBuffer) at(index int) Pixel {
	i := index * 4
	return Pixel{c.pixels[i+0], c.pixels[i+1], c.pixels[i+2], c.pixels[i+3]}
}

// Get returns the RGBA8 color at (x, y). Out-of-bounds coordinates
// return the zero pixel.
func (c *colorBuffer) Get(x, y int) Pixel {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Pixel{}
	}
	return c.at(y*c.width + x)
}

// resize reallocates the buffer for new dimensions, discarding content.
func (c *colorBuffer) resize(width, height int) {
	c.width = width
	c.height = height
	c.pixels = make([]byte, width*height*4)
}

// bytes returns the raw RGBA8 backing slice, for handoff to a Surface.
func (c *colorBuffer) bytes() []byte {
	return c.pixels
}
