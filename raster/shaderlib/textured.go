package shaderlib

import "github.com/fuwa-go/fuwa/raster"

// TexturedVertexShader passes a vertex's position and UV attribute
// through unchanged.
func TexturedVertexShader(raw raster.Vertex[raster.UV]) ([3]float32, raster.UV) {
	return raw.Position, raw.Attrs
}

// Textured builds a FragmentShader that nearest-neighbor samples the
// given texture handle. The handle is closed over rather than threaded
// through the interpolated payload, since spec.md's fragment payload
// is attributes only — which texture a draw samples is draw-level
// state, resolved once per Draw call rather than varying per vertex.
//
// Coordinates outside [0, 1] are clamped to the texture edge rather
// than wrapped; callers wanting tiling should fold that into their own
// shader.
func Textured(handle raster.TextureHandle) raster.FragmentShader[raster.UV] {
	return func(attrs raster.UV, u raster.Uniforms) raster.Pixel {
		tex, ok := u.Texture(handle)
		if !ok {
			return raster.Pixel{}
		}
		x := clampf(attrs.U, 0, 1) * float32(tex.Width-1)
		y := clampf(attrs.V, 0, 1) * float32(tex.Height-1)
		return tex.At(int(x+0.5), int(y+0.5))
	}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
