package tiles

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"math"
)

// InvalidTileId is returned by the coordinate based lookups when the coordinate is outside the grid bounds.
const InvalidTileId = -1

// TileGrid partitions a rectangular extent into square tiles of equal size. Tiles are numbered row-major starting in
// the lower left corner, so the id of a tile is "row * columns + col".
//
// A TileGrid is immutable after construction. All functions are safe for concurrent use.
type TileGrid struct {
	bounds   orb.Bound
	tileSize float64
	columns  int
	rows     int
}

func NewTileGrid(bounds orb.Bound, tileSize float64) (*TileGrid, error) {
	if math.IsNaN(tileSize) || math.IsInf(tileSize, 0) || tileSize <= 0 {
		return nil, errors.Errorf("Invalid tile size %f, it must be a finite number greater than zero", tileSize)
	}
	if bounds.Max.X() < bounds.Min.X() || bounds.Max.Y() < bounds.Min.Y() {
		return nil, errors.Errorf("Invalid grid bounds %v, the max coordinate must not be smaller than the min coordinate", bounds)
	}

	grid := &TileGrid{
		bounds:   bounds,
		tileSize: tileSize,
		columns:  int(math.Ceil((bounds.Max.X() - bounds.Min.X()) / tileSize)),
		rows:     int(math.Ceil((bounds.Max.Y() - bounds.Min.Y()) / tileSize)),
	}

	sigolo.Debugf("Created tile grid with %d columns and %d rows (tile size %f) for bounds %v", grid.columns, grid.rows, tileSize, bounds)

	return grid, nil
}

func (g *TileGrid) TileSize() float64 { return g.tileSize }

func (g *TileGrid) Bounds() orb.Bound { return g.bounds }

func (g *TileGrid) Columns() int { return g.columns }

func (g *TileGrid) Rows() int { return g.rows }

// TileCount returns the number of addressable tiles. The row count is derived from the bounds again instead of using
// the stored value.
func (g *TileGrid) TileCount() int {
	rows := int(math.Ceil((g.bounds.Max.Y() - g.bounds.Min.Y()) / g.tileSize))
	return g.columns * rows
}

// Row returns the row containing the given y coordinate or InvalidTileId when y is outside the grid. A coordinate on
// the upper edge of the grid belongs to the last row.
func (g *TileGrid) Row(y float64) int {
	if y < g.bounds.Min.Y() || y > g.bounds.Max.Y() {
		return InvalidTileId
	}

	if y == g.bounds.Max.Y() {
		return g.rows - 1
	}

	return int((y - g.bounds.Min.Y()) / g.tileSize)
}

// Col returns the column containing the given x coordinate or InvalidTileId when x is outside the grid. A coordinate
// on the right edge of the grid belongs to the last column.
func (g *TileGrid) Col(x float64) int {
	if x < g.bounds.Min.X() || x > g.bounds.Max.X() {
		return InvalidTileId
	}

	if x == g.bounds.Max.X() {
		return g.columns - 1
	}

	return int(math.Floor((x - g.bounds.Min.X()) / g.tileSize))
}

func (g *TileGrid) TileIdForPoint(point orb.Point) int {
	return g.TileIdForCoordinate(point.X(), point.Y())
}

// TileIdForCoordinate returns the id of the tile containing the coordinate or InvalidTileId when the coordinate is
// outside the grid.
func (g *TileGrid) TileIdForCoordinate(x float64, y float64) int {
	if y < g.bounds.Min.Y() || x < g.bounds.Min.X() || y > g.bounds.Max.Y() || x > g.bounds.Max.X() {
		return InvalidTileId
	}

	row := g.Row(y)
	col := g.Col(x)
	if row < 0 || col < 0 {
		// Only possible for degenerated grids without any row or column
		return InvalidTileId
	}

	return row*g.columns + col
}

// TileId composes the id of the given column and row. There's no validation, the caller is responsible for passing a
// column and row within the grid.
func (g *TileGrid) TileId(col int, row int) int {
	return row*g.columns + col
}

// ColRow splits the tile id into its column and row.
func (g *TileGrid) ColRow(tileId int) (int, int) {
	row := tileId / g.columns
	return tileId - row*g.columns, row
}

// IsValidTileId checks whether the id is within [0, TileCount()). The id based functions below don't do this check.
func (g *TileGrid) IsValidTileId(tileId int) bool {
	return tileId >= 0 && tileId < g.TileCount()
}

// BaseCorner returns the lower left corner of the tile.
func (g *TileGrid) BaseCorner(tileId int) orb.Point {
	col, row := g.ColRow(tileId)
	return orb.Point{
		g.bounds.Min.X() + float64(col)*g.tileSize,
		g.bounds.Min.Y() + float64(row)*g.tileSize,
	}
}

func (g *TileGrid) TileBounds(tileId int) orb.Bound {
	base := g.BaseCorner(tileId)
	return orb.Bound{
		Min: base,
		Max: orb.Point{base.X() + g.tileSize, base.Y() + g.tileSize},
	}
}

func (g *TileGrid) TileBoundsForColRow(col int, row int) orb.Bound {
	baseX := float64(col)*g.tileSize + g.bounds.Min.X()
	baseY := float64(row)*g.tileSize + g.bounds.Min.Y()
	return orb.Bound{
		Min: orb.Point{baseX, baseY},
		Max: orb.Point{baseX + g.tileSize, baseY + g.tileSize},
	}
}

func (g *TileGrid) Center(tileId int) orb.Point {
	base := g.BaseCorner(tileId)
	return orb.Point{base.X() + g.tileSize*0.5, base.Y() + g.tileSize*0.5}
}

// RightNeighbor returns the tile right of the given one. The last column wraps around to the first column of the
// same row.
func (g *TileGrid) RightNeighbor(tileId int) int {
	col, _ := g.ColRow(tileId)
	if col < g.columns-1 {
		return tileId + 1
	}
	return tileId - g.columns + 1
}

// LeftNeighbor returns the tile left of the given one. The first column wraps around to the last column of the same
// row.
func (g *TileGrid) LeftNeighbor(tileId int) int {
	col, _ := g.ColRow(tileId)
	if col > 0 {
		return tileId - 1
	}
	return tileId + g.columns - 1
}

// TopNeighbor returns the tile above the given one. Rows don't wrap around, a tile in the last row is its own top
// neighbor.
func (g *TileGrid) TopNeighbor(tileId int) int {
	if tileId < g.TileCount()-g.columns {
		return tileId + g.columns
	}
	return tileId
}

// BottomNeighbor returns the tile below the given one. A tile in the first row is its own bottom neighbor.
func (g *TileGrid) BottomNeighbor(tileId int) int {
	if tileId < g.columns {
		return tileId
	}
	return tileId - g.columns
}

// RelativeTile moves the tile by the given amount of rows and columns. Nothing is checked here, moving by columns
// alone can therefore end up in a different row.
func (g *TileGrid) RelativeTile(tileId int, deltaRows int, deltaCols int) int {
	return tileId + deltaRows*g.columns + deltaCols
}

// TileOffsets returns the row and column delta between the two tiles, so that
// "RelativeTile(fromId, deltaRows, deltaCols) == toId" holds.
func (g *TileGrid) TileOffsets(fromId int, toId int) (int, int) {
	deltaRows := toId/g.columns - fromId/g.columns
	deltaCols := (toId - fromId) - deltaRows*g.columns
	return deltaRows, deltaCols
}
