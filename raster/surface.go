package raster

// Surface receives a completed frame's RGBA8 color buffer. Presenting
// pixels to a window, encoding video, or writing an image file are all
// out of this module's scope (spec.md's Non-goals exclude an output
// backend); Surface is the seam a caller plugs one in through.
//
// Present is given the buffer's dimensions alongside its bytes because
// a Surface may be asked to display frames across a Resize call and
// needs to know the current frame's shape without reaching back into
// the Core.
type Surface interface {
	Present(rgba8 []byte, width, height int) error
}

// NullSurface discards every frame. It satisfies Surface for tests and
// for headless use of Core where only the color buffer's bytes (read
// back via some other means) matter, not a real presentation target.
type NullSurface struct{}

// Present always succeeds and does nothing.
func (NullSurface) Present([]byte, int, int) error { return nil }
