package osm

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/osm"
	"sort"
	"tilegrid/tiles"
	"tilegrid/util"
)

// TileDensityAggregator counts the nodes within each tile of the grid. Nodes outside the grid are only counted in
// total.
type TileDensityAggregator struct {
	TileToNodeCount  map[int]int
	NodesOutsideGrid int
	grid             *tiles.TileGrid
}

func NewTileDensityAggregator(grid *tiles.TileGrid) *TileDensityAggregator {
	return &TileDensityAggregator{
		TileToNodeCount: map[int]int{},
		grid:            grid,
	}
}

func (a *TileDensityAggregator) Name() string {
	return "TileDensityAggregator"
}

func (a *TileDensityAggregator) Init() error {
	a.TileToNodeCount = map[int]int{}
	a.NodesOutsideGrid = 0
	return nil
}

func (a *TileDensityAggregator) HandleNode(node *osm.Node) error {
	tileId := a.grid.TileIdForPoint(node.Point())
	if tileId == tiles.InvalidTileId {
		a.NodesOutsideGrid++
		return nil
	}
	if !a.grid.IsValidTileId(tileId) {
		util.LogFatalBug("Node %d at %v has tile id %d outside of the grid", node.ID, node.Point(), tileId)
	}

	a.TileToNodeCount[tileId]++
	return nil
}

func (a *TileDensityAggregator) HandleWay(way *osm.Way) error {
	return nil
}

func (a *TileDensityAggregator) HandleRelation(relation *osm.Relation) error {
	return nil
}

func (a *TileDensityAggregator) Done() error {
	sigolo.Infof("Counted nodes in %d tiles, %d nodes were outside of the grid", len(a.TileToNodeCount), a.NodesOutsideGrid)
	return nil
}

// TileIds returns the ids of all tiles with at least one node in ascending order.
func (a *TileDensityAggregator) TileIds() []int {
	tileIds := make([]int, 0, len(a.TileToNodeCount))
	for tileId := range a.TileToNodeCount {
		tileIds = append(tileIds, tileId)
	}
	sort.Ints(tileIds)
	return tileIds
}
