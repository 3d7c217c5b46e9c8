package tiles

import (
	"github.com/google/hilbert"
	"github.com/pkg/errors"
	"sort"
	"strings"
)

// SortHilbert sorts the tile ids along a hilbert curve covering the grid. Tiles close to each other on the grid are
// therefore close to each other in the result as well. All ids must be valid.
func (g *TileGrid) SortHilbert(tileIds []int) error {
	side := 1
	for side < g.columns || side < g.rows {
		side <<= 1
	}

	h, err := hilbert.NewHilbert(side)
	if err != nil {
		return errors.Wrapf(err, "Unable to create hilbert curve with side length %d", side)
	}

	curvePositions := make(map[int]int, len(tileIds))
	for _, tileId := range tileIds {
		if !g.IsValidTileId(tileId) {
			return errors.Errorf("Tile id %d is not within the grid of %d tiles", tileId, g.TileCount())
		}

		col, row := g.ColRow(tileId)
		position, err := h.MapInverse(col, row)
		if err != nil {
			return errors.Wrapf(err, "Unable to determine hilbert position of tile %d (col=%d, row=%d)", tileId, col, row)
		}
		curvePositions[tileId] = position
	}

	sort.SliceStable(tileIds, func(i, j int) bool {
		return curvePositions[tileIds[i]] < curvePositions[tileIds[j]]
	})

	return nil
}

// Order defines in which order tile ids are returned to the user.
type Order string

const (
	// OrderDiscovery keeps the order in which the tiles were found by TileList.
	OrderDiscovery Order = "bfs"
	OrderHilbert   Order = "hilbert"
	OrderId        Order = "id"
)

func ParseOrder(s string) (Order, error) {
	switch order := Order(strings.ToLower(strings.TrimSpace(s))); order {
	case OrderDiscovery, OrderHilbert, OrderId:
		return order, nil
	case "":
		return OrderDiscovery, nil
	}
	return "", errors.Errorf("Unknown tile order '%s', supported are '%s', '%s' and '%s'", s, OrderDiscovery, OrderHilbert, OrderId)
}

// SortTiles sorts the tile ids in place according to the given order.
func (g *TileGrid) SortTiles(tileIds []int, order Order) error {
	switch order {
	case OrderDiscovery:
		return nil
	case OrderHilbert:
		return g.SortHilbert(tileIds)
	case OrderId:
		sort.Ints(tileIds)
		return nil
	}
	return errors.Errorf("Unknown tile order '%s'", order)
}
