package raster

// Render runs the shade pass of spec.md §4.6 for one registered
// shader: every pixel in the fragment buffer whose FragmentKey matches
// shaderID is resolved through fs and written to the color buffer, and
// the fragment buffer entry is then cleared. Pixels belonging to a
// different shader (from another Draw call this frame), with no
// fragment at all, or already shaded by an earlier Render call, are
// left untouched — which is what lets a frame mix multiple shaders
// (each Render call only touches the pixels its own shader actually
// won the depth test for) and makes a second Render call with the same
// shaderID a no-op, per spec.md §8.
//
// Render is a free function rather than a Core method because a Go
// method cannot introduce a type parameter beyond its receiver's; F is
// fixed by fs, not by Core.
func Render[F Attrs[F]](c *Core, fs FragmentShader[F], shaderID int) {
	src := slabFor[F](c.slabs)
	u := Uniforms{textures: c.textures}

	total := c.width * c.height
	c.pool.RunVoid(c.pool.Workers(), func(worker int) {
		for i := worker; i < total; i += c.pool.Workers() {
			key, ok := c.fragments.get(i)
			if !ok || key.ShaderID != shaderID {
				continue
			}
			attr := src.at(key.SlabIndex)
			pixel := fs(attr, u)
			c.color.set(i, pixel)
			c.fragments.unset(i)
		}
	})
}
