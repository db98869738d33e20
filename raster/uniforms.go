package raster

// Uniforms is the read-only view a fragment shader uses to resolve
// per-draw state that isn't interpolated per-pixel, per spec.md §4.7
// ("Uniforms" input alongside the interpolated payload). Grounded on
// original_source/src/data/uniforms.rs, which wraps the same kind of
// resource-store lookup behind a borrow-only accessor so a shader
// can't mutate shared state while rasterization workers run
// concurrently.
type Uniforms struct {
	textures *textureStore
}

// Texture resolves a handle previously returned by Core.LoadTexture.
// ok is false if the handle is unknown; a fragment shader that ignores
// ok and indexes a nil result will panic, matching spec.md §7's
// "Bounds violation" taxonomy rather than silently sampling garbage.
func (u Uniforms) Texture(h TextureHandle) (tex *Texture, ok bool) {
	tex, ok = u.textures.get(h)
	if !ok {
		Logger().Warn("raster: shader resolved unknown texture handle", "handle", h)
	}
	return tex, ok
}
