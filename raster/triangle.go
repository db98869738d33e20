package raster

import "github.com/chewxy/math32"

// screenVertex is a vertex after the fixed-function screen-space
// transform of spec.md §4.2: view-space position projected to pixel
// coordinates, with depth stored as its reciprocal (1/z_view, "higher
// is nearer") and the attribute payload premultiplied by that same
// reciprocal so it can be linearly interpolated in screen space and
// un-premultiplied once per pixel (perspective-correct interpolation).
type screenVertex[F Attrs[F]] struct {
	x, y float32 // pixel coordinates
	zInv float32
	attr F // attrs.Scale(zInv)
}

// toScreenVertex applies spec.md §4.2's transform to a single vertex
// against a viewport of the given width and height:
//
//	z_inv     = 1 / z_view
//	x_screen  = (x_view * z_inv + 1) * (width  / 2)
//	y_screen  = (-y_view * z_inv + 1) * (height / 2)
//	attrs'    = attrs * z_inv
func toScreenVertex[F Attrs[F]](v Vertex[F], width, height float32) screenVertex[F] {
	zInv := 1 / v.Position[2]
	return screenVertex[F]{
		x:    (v.Position[0]*zInv + 1) * (width / 2),
		y:    (-v.Position[1]*zInv + 1) * (height / 2),
		zInv: zInv,
		attr: v.Attrs.Scale(zInv),
	}
}

// edgeFunction is the Pineda (1988) linear edge test, evaluated as
//
//	E(x, y) = a*x + b*y + c
//
// where a, b are the edge's (negated) direction components and c
// places the zero crossing on the edge itself. E is positive on one
// side of the line, negative on the other, and exactly zero on it;
// the rasterizer's top-left fill rule biases c so that shared edges
// between adjacent triangles are each rasterized by exactly one of
// them (spec.md §4.3, "Fill rule").
type edgeFunction struct {
	a, b, c float32
}

// makeEdge builds the edge function for the directed edge from p0 to
// p1, biased by the top-left fill rule: an edge is "top" if it is
// exactly horizontal and points rightward (a == 0 && b > 0), or "left"
// if it points upward (a > 0: in this y-down screen space, an edge
// going from higher to lower y). Top and left edges are left unbiased,
// so points exactly on them test as inside; every other edge gets the
// bias below.
func makeEdge(p0, p1 [2]float32) edgeFunction {
	a := p0[1] - p1[1]
	b := p1[0] - p0[0]
	c := p0[0]*p1[1] - p0[1]*p1[0]

	isTopEdge := a == 0 && b > 0
	isLeftEdge := a > 0
	if isTopEdge || isLeftEdge {
		c += 0
	} else {
		// Push the boundary fractionally outward so points exactly on a
		// non-top-left edge test as outside.
		c -= epsilonBias
	}
	return edgeFunction{a: a, b: b, c: c}
}

// epsilonBias is small enough not to visibly erode a triangle's
// silhouette but large enough to move a boundary sample to the correct
// side of float32 rounding.
const epsilonBias = 1e-5

// eval returns the edge function's value at (x, y). The sign convention
// is such that a point strictly inside a triangle that runs clockwise
// as seen on screen (y down; counter-clockwise in a y-up convention),
// the orientation setupTriangle normalizes every triangle to,
// evaluates >= 0 on all three edges.
func (e edgeFunction) eval(x, y float32) float32 {
	return e.a*x + e.b*y + e.c
}

// triangle is a fully set up triangle ready for rasterization: its
// bounding box, its three edge functions, and the cached interpolation
// deltas spec.md §4.4 describes ("f0'", "f1'-f0'", "f2'-f0'" for
// attributes, and the analogous deltas for 1/z). Caching the deltas
// once per triangle instead of per pixel is the optimization spec.md's
// glossary calls out under "Interpolation deltas".
type triangle[F Attrs[F]] struct {
	e0, e1, e2 edgeFunction
	invArea    float32

	// z0/dz1/dz2: z0 = v0.zInv, dz1 = v1.zInv - v0.zInv, dz2 = v2.zInv - v0.zInv
	z0, dz1, dz2 float32

	// f0/df1/df2: the same deltas for the premultiplied attribute payload.
	f0, df1, df2 F

	minX, minY, maxX, maxY int
}

// backFaceCulled implements spec.md §4.2's explicit back-face test,
// evaluated in post-projection, pre-screen-space (view) coordinates:
// with e1 = p1 - p0 and e2 = p2 - p0, a triangle is culled when
// cross(e1, e2) . p0 < 0 — the scalar triple product [e1, e2, p0].
// This is the standard camera-at-origin back-face test: the face
// normal cross(e1, e2) dotted against the (camera-to-vertex) view
// vector p0 is negative exactly when the triangle faces away from the
// viewer.
func backFaceCulled(p0, p1, p2 [3]float32) bool {
	e1 := sub3(p1, p0)
	e2 := sub3(p2, p0)
	n := cross3(e1, e2)
	return dot3(n, p0) < 0
}

func sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// cullReason distinguishes why setupTriangle rejected a triangle, so
// callers can keep separate FrameStats counters for back-face culling
// versus degenerate geometry (spec.md §4.1 and §7 track these
// separately). setupTriangle itself only ever returns cullDegenerate;
// back-face culling is decided by the caller, which applies
// backFaceCulled to the vertex shader's output positions (before the
// screen-space transform) and counts it without going through
// cullBackFace.
type cullReason int

const (
	cullNone cullReason = iota
	cullBackFace
	cullDegenerate
)

// setupTriangle builds a triangle from three already screen-transformed
// vertices, which the caller must have already passed the back-face
// test. The three vertices may arrive in either winding order in
// screen space (the screen-space transform's y-flip means a
// front-facing triangle's winding isn't fixed ahead of time); setup
// detects a negative signed area and swaps v1/v2 internally so the
// stored edge functions and interpolation deltas always use a
// consistent, positive-area orientation. reason is cullDegenerate if
// the triangle has zero screen-space area or its bounding box doesn't
// intersect the viewport; otherwise cullNone.
func setupTriangle[F Attrs[F]](v0, v1, v2 screenVertex[F], viewportW, viewportH int) (triangle[F], cullReason) {
	p0 := [2]float32{v0.x, v0.y}
	p1 := [2]float32{v1.x, v1.y}
	p2 := [2]float32{v2.x, v2.y}

	area := (p1[0]-p0[0])*(p2[1]-p0[1]) - (p2[0]-p0[0])*(p1[1]-p0[1])
	if area == 0 {
		return triangle[F]{}, cullDegenerate
	}
	if area < 0 {
		v1, v2 = v2, v1
		p1, p2 = p2, p1
		area = -area
	}

	minXf := math32.Min(p0[0], math32.Min(p1[0], p2[0]))
	minYf := math32.Min(p0[1], math32.Min(p1[1], p2[1]))
	maxXf := math32.Max(p0[0], math32.Max(p1[0], p2[0]))
	maxYf := math32.Max(p0[1], math32.Max(p1[1], p2[1]))

	minX := int(math32.Floor(minXf))
	minY := int(math32.Floor(minYf))
	maxX := int(math32.Ceil(maxXf))
	maxY := int(math32.Ceil(maxYf))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > viewportW {
		maxX = viewportW
	}
	if maxY > viewportH {
		maxY = viewportH
	}
	if minX >= maxX || minY >= maxY {
		return triangle[F]{}, cullDegenerate
	}

	t := triangle[F]{
		e0:      makeEdge(p0, p1),
		e1:      makeEdge(p1, p2),
		e2:      makeEdge(p2, p0),
		invArea: 1 / area,
		z0:      v0.zInv,
		dz1:     v1.zInv - v0.zInv,
		dz2:     v2.zInv - v0.zInv,
		f0:      v0.attr,
		df1:     v1.attr.Sub(v0.attr),
		df2:     v2.attr.Sub(v0.attr),
		minX:    minX,
		minY:    minY,
		maxX:    maxX,
		maxY:    maxY,
	}
	return t, cullNone
}

// barycentric evaluates the triangle's three edge functions at (x, y)
// and returns the normalized barycentric weights (w0, w1, w2), along
// with whether the point is inside (all three edge values non-negative,
// per the top-left fill rule baked into makeEdge).
func (t *triangle[F]) barycentric(x, y float32) (w0, w1, w2 float32, inside bool) {
	e0 := t.e0.eval(x, y)
	e1 := t.e1.eval(x, y)
	e2 := t.e2.eval(x, y)
	if e0 < 0 || e1 < 0 || e2 < 0 {
		return 0, 0, 0, false
	}
	// e1, e2, e0 correspond to the edges opposite v0, v1, v2 respectively
	// (edge v0->v1 is zero along that edge, so it carries v2's weight).
	w2 = e0 * t.invArea
	w0 = e1 * t.invArea
	w1 = e2 * t.invArea
	return w0, w1, w2, true
}

// interpolate evaluates the perspective-correct attribute and depth at
// barycentric weights (w0, w1, w2), returning the un-premultiplied
// attribute payload and the interpolated 1/z depth.
func (t *triangle[F]) interpolate(w0, w1, w2 float32) (attr F, zInv float32) {
	zInv = t.z0 + w1*t.dz1 + w2*t.dz2
	f := t.f0.Add(t.df1.Scale(w1)).Add(t.df2.Scale(w2))
	return f.Scale(1 / zInv), zInv
}
