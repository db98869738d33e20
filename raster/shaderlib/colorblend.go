// Package shaderlib provides the built-in shaders spec.md §4.7 names:
// color blend (ColorVertexShader and ColorFragmentShader, interpolated
// vertex color) and textured (TexturedVertexShader and Textured,
// nearest-neighbor texture sampling). Both are ordinary VertexShader/
// FragmentShader values; nothing about them is privileged over a
// caller's own shaders.
package shaderlib

import "github.com/fuwa-go/fuwa/raster"

// ColorVertexShader passes a vertex's position and RGB color through
// unchanged; the interesting work for this shader happens entirely in
// interpolation and in ColorFragmentShader.
func ColorVertexShader(raw raster.Vertex[raster.RGB]) ([3]float32, raster.RGB) {
	return raw.Position, raw.Attrs
}

// ColorFragmentShader converts an interpolated RGB in [0, 1] per
// channel to an opaque RGBA8 pixel, clamping out-of-range components
// rather than wrapping or panicking — an over-bright interpolated
// vertex color is a common and harmless occurrence, not a programming
// error.
func ColorFragmentShader(attrs raster.RGB, _ raster.Uniforms) raster.Pixel {
	return raster.Pixel{
		R: to8(attrs.R),
		G: to8(attrs.G),
		B: to8(attrs.B),
		A: 255,
	}
}

func to8(c float32) uint8 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return uint8(c * 255)
}
