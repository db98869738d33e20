package raster

// VertexShader decodes one raw input record into the post-projection
// position and interpolated payload spec.md §4.1 requires:
// `vs(raw) -> (pos_clip, attrs)`. raw is a Vertex[F] rather than a byte
// record — this module has no separate wire format for vertex data, so
// the "record the caller knows how to decode" is already a typed Go
// struct instead of a flat buffer spec.md's original stride-based mesh
// format describes — but the shader still owns turning it into a final
// pre-screen-space (x, y, z_view) position, not just the attribute
// payload. A shader that only wants spec.md's built-in behavior returns
// raw.Position unchanged, as ColorVertexShader and TexturedVertexShader
// do; a shader doing vertex skinning, displacement, or any other
// per-vertex position computation reads whatever it needs out of raw
// and computes pos itself.
type VertexShader[F Attrs[F]] func(raw Vertex[F]) (pos [3]float32, attrs F)

// FragmentShader resolves one covered pixel's interpolated attribute
// payload, plus the draw's read-only uniforms, into a final color.
// Called once per covered pixel during the shade pass (spec.md §4.6).
type FragmentShader[F Attrs[F]] func(attrs F, u Uniforms) Pixel
