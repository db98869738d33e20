package scheduler

// TileSize is the coarse tile dimension SPEC_FULL.md's Supplemented
// Features section adds on top of spec.md's 8-pixel stamp: a 16x16
// accept/reject pass over a triangle's bounding box lets the inner
// stamp loop skip tiles a triangle doesn't touch at all, without
// needing to evaluate every stamp's edge functions.
const TileSize = 16

// Tile is one cell of the screen-space grid, given in pixel
// coordinates with an exclusive upper bound (matching Go slicing
// conventions, unlike the inclusive bounds a fixed-function rasterizer
// might use internally).
type Tile struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Grid partitions a width x height viewport into TileSize x TileSize
// tiles, with the final row/column of tiles clipped to the viewport
// edge when it doesn't divide evenly.
type Grid struct {
	Width, Height int
	Cols, Rows    int
}

// NewGrid builds a Grid over the given viewport dimensions.
func NewGrid(width, height int) Grid {
	cols := (width + TileSize - 1) / TileSize
	rows := (height + TileSize - 1) / TileSize
	return Grid{Width: width, Height: height, Cols: cols, Rows: rows}
}

// Count returns the total number of tiles in the grid.
func (g Grid) Count() int {
	return g.Cols * g.Rows
}

// Tile returns the pixel-space bounds of tile index i, in row-major
// order (i = row*Cols + col).
func (g Grid) Tile(i int) Tile {
	col := i % g.Cols
	row := i / g.Cols
	minX := col * TileSize
	minY := row * TileSize
	maxX := minX + TileSize
	maxY := minY + TileSize
	if maxX > g.Width {
		maxX = g.Width
	}
	if maxY > g.Height {
		maxY = g.Height
	}
	return Tile{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// Overlaps reports whether a triangle's pixel-space bounding box
// [minX, maxX) x [minY, maxY) intersects the tile at all. Binning a
// triangle against every tile it overlaps (rather than every tile in
// the grid) is what lets the raster package's rasterizeMesh skip tiles a triangle can't
// possibly cover.
func (t Tile) Overlaps(minX, minY, maxX, maxY int) bool {
	return minX < t.MaxX && maxX > t.MinX && minY < t.MaxY && maxY > t.MinY
}
