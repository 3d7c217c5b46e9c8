package tiles

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
)

// Traversal holds the working state of one tile enumeration. A traversal can be reused for several calls of
// TileListWith to save allocations, but it must not be shared between goroutines. The zero value is ready to use.
type Traversal struct {
	queue     []int
	queueHead int // Index of the next tile to dequeue
	visited   map[int]bool
	result    []int
}

func NewTraversal() *Traversal {
	return &Traversal{
		visited: map[int]bool{},
	}
}

// Reset clears the traversal but keeps the allocated memory.
func (t *Traversal) Reset() {
	t.queue = t.queue[:0]
	t.queueHead = 0
	t.result = t.result[:0]
	if t.visited == nil {
		t.visited = map[int]bool{}
	} else {
		clear(t.visited)
	}
}

// Result returns the tile ids found by the last enumeration. The slice is reused by the next call of TileListWith.
func (t *Traversal) Result() []int {
	return t.result
}

func (t *Traversal) enqueue(tileId int) {
	t.queue = append(t.queue, tileId)
	t.visited[tileId] = true
}

func (t *Traversal) dequeue() int {
	tileId := t.queue[t.queueHead]
	t.queueHead++
	return tileId
}

func (t *Traversal) hasQueuedTiles() bool {
	return t.queueHead < len(t.queue)
}

// TileList returns all tiles intersecting the query bound in the order they have been discovered. Tiles touching the
// bound only on an edge or corner are part of the result as well.
//
// The enumeration starts at the tile containing the center of the query bound and visits the left, right, top and
// bottom neighbors breadth-first. It stops when no further intersecting tile is found or when maxTiles tiles have been
// collected. A maxTiles value of zero or less means no limit. When the center of the query bound is outside the grid,
// the result is empty, even if parts of the bound overlap the grid.
func (g *TileGrid) TileList(query orb.Bound, maxTiles int) []int {
	traversal := NewTraversal()
	return g.TileListWith(traversal, query, maxTiles)
}

// TileListWith works like TileList but uses the given traversal as working state. The returned slice belongs to the
// traversal.
func (g *TileGrid) TileListWith(traversal *Traversal, query orb.Bound, maxTiles int) []int {
	traversal.Reset()

	seed := g.TileIdForPoint(query.Center())
	if seed == InvalidTileId {
		sigolo.Debugf("Center %v of bound %v is outside of the tile grid, no tiles found", query.Center(), query)
		return traversal.result
	}

	traversal.result = append(traversal.result, seed)
	traversal.visited[seed] = true
	g.enqueueNeighbors(traversal, seed)

	for !g.limitReached(traversal, maxTiles) && traversal.hasQueuedTiles() {
		tileId := traversal.dequeue()

		if !query.Intersects(g.TileBounds(tileId)) {
			if sigolo.ShouldLogTrace() {
				sigolo.Tracef("Tile %d does not intersect bound %v", tileId, query)
			}
			continue
		}

		traversal.result = append(traversal.result, tileId)
		g.enqueueNeighbors(traversal, tileId)
	}

	sigolo.Debugf("Found %d tiles for bound %v (max=%d)", len(traversal.result), query, maxTiles)
	return traversal.result
}

func (g *TileGrid) limitReached(traversal *Traversal, maxTiles int) bool {
	return maxTiles > 0 && len(traversal.result) >= maxTiles
}

// enqueueNeighbors adds the unvisited neighbors of the tile in the order left, right, top, bottom. Neighbors are
// marked as visited when enqueued, so that no tile is checked twice. At the upper and lower edge of the grid a tile is
// its own neighbor, which is skipped.
func (g *TileGrid) enqueueNeighbors(traversal *Traversal, tileId int) {
	neighbors := [4]int{
		g.LeftNeighbor(tileId),
		g.RightNeighbor(tileId),
		g.TopNeighbor(tileId),
		g.BottomNeighbor(tileId),
	}

	for _, neighbor := range neighbors {
		if neighbor != tileId && !traversal.visited[neighbor] {
			traversal.enqueue(neighbor)
		}
	}
}
