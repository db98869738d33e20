package raster

import "github.com/fuwa-go/fuwa/raster/scheduler"

// rasterizeMesh implements spec.md §4.1-§4.5 for one Draw call: run the
// vertex shader to decode each raw vertex into its post-projection
// position and interpolated payload, assemble and cull triangles
// against those shaded positions, bin them against the tile grid, and
// rasterize each tile's triangles in parallel, writing a FragmentKey
// and passing the depth test for every covered pixel. The shade pass
// (Render) consumes what this leaves in the depth and fragment buffers
// later.
func rasterizeMesh[F Attrs[F]](c *Core, vs VertexShader[F], shaderID int, mesh Mesh[F]) {
	width, height := c.width, c.height
	fw, fh := float32(width), float32(height)

	shadedPositions := make([][3]float32, len(mesh.Vertices))
	screenVerts := make([]screenVertex[F], len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		pos, attrs := vs(v)
		shadedPositions[i] = pos
		screenVerts[i] = toScreenVertex(Vertex[F]{Position: pos, Attrs: attrs}, fw, fh)
	}

	triCount := mesh.TriangleCount()
	c.stats.Submitted += triCount

	triangles := make([]*triangle[F], 0, triCount)
	for t := 0; t < triCount; t++ {
		i0 := mesh.Indices[t*3+0]
		i1 := mesh.Indices[t*3+1]
		i2 := mesh.Indices[t*3+2]

		if backFaceCulled(shadedPositions[i0], shadedPositions[i1], shadedPositions[i2]) {
			c.stats.Culled++
			continue
		}

		tri, reason := setupTriangle(screenVerts[i0], screenVerts[i1], screenVerts[i2], width, height)
		if reason == cullDegenerate {
			c.stats.Degenerate++
			continue
		}
		triCopy := tri
		triangles = append(triangles, &triCopy)
	}

	if len(triangles) == 0 {
		return
	}

	grid := scheduler.NewGrid(width, height)
	bins := make([][]*triangle[F], grid.Count())
	for _, tri := range triangles {
		for i := 0; i < grid.Count(); i++ {
			tile := grid.Tile(i)
			if tile.Overlaps(tri.minX, tri.minY, tri.maxX, tri.maxY) {
				bins[i] = append(bins[i], tri)
			}
		}
	}

	dst := slabFor[F](c.slabs)

	written := make([]int, grid.Count())
	c.pool.RunVoid(grid.Count(), func(i int) {
		tris := bins[i]
		if len(tris) == 0 {
			return
		}
		tile := grid.Tile(i)
		written[i] = rasterizeTile(c, tile, tris, shaderID, dst)
	})
	for _, n := range written {
		c.stats.addFragments(n)
	}
}

// rasterizeTile rasterizes every triangle binned to tile, writing a
// FragmentKey and updating the depth buffer for every pixel that both
// lies inside a triangle and passes the depth test. It returns the
// number of pixels written, for FrameStats.
//
// Grounded on original_source's rasterizer.rs stamp loop: pixels are
// walked in stampWidth-wide horizontal runs rather than one at a time,
// though this Go port evaluates each lane with a plain loop rather
// than true SIMD instructions (see depth.go's lane8 doc comment).
func rasterizeTile[F Attrs[F]](c *Core, tile scheduler.Tile, tris []*triangle[F], shaderID int, dst *slab[F]) int {
	written := 0
	for _, tri := range tris {
		minX := max(tile.MinX, tri.minX)
		minY := max(tile.MinY, tri.minY)
		maxX := min(tile.MaxX, tri.maxX)
		maxY := min(tile.MaxY, tri.maxY)

		for y := minY; y < maxY; y++ {
			rowBase := y * c.width
			for x0 := minX; x0 < maxX; x0 += stampWidth {
				lanes := min(stampWidth, maxX-x0)
				var depths lane8
				var covered mask8
				var w0s, w1s, w2s lane8
				for lane := 0; lane < lanes; lane++ {
					px := float32(x0+lane) + 0.5
					py := float32(y) + 0.5
					w0, w1, w2, inside := tri.barycentric(px, py)
					if !inside {
						continue
					}
					_, zInv := tri.interpolate(w0, w1, w2)
					depths[lane] = zInv
					covered[lane] = true
					w0s[lane], w1s[lane], w2s[lane] = w0, w1, w2
				}
				if !covered.any() {
					continue
				}
				// Lanes the barycentric test rejected were left at their
				// zero value, which is farDepth — TrySet8 can never
				// install them, so uncovered and covered lanes share one
				// compare-and-set. lanes is passed through so a stamp
				// straddling the tile's right edge or the buffer's last
				// row never touches cells past the visible run.
				mask, passed := c.depth.TrySet8(rowBase+x0, depths, lanes)
				if !passed {
					continue
				}
				for lane := 0; lane < lanes; lane++ {
					if !mask[lane] {
						continue
					}
					attr, _ := tri.interpolate(w0s[lane], w1s[lane], w2s[lane])
					idx := dst.push(attr)
					c.fragments.set(rowBase+x0+lane, FragmentKey{ShaderID: shaderID, SlabIndex: idx})
					written++
				}
			}
		}
	}
	return written
}
