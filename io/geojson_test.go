package io

import (
	"bytes"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"os"
	"path"
	"testing"
	"tilegrid/tiles"
	"tilegrid/util"
)

func newTestGrid(t *testing.T) *tiles.TileGrid {
	grid, err := tiles.NewTileGrid(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{4, 4}}, 1)
	util.AssertNil(t, err)
	return grid
}

func TestWriteTilesAsGeoJson(t *testing.T) {
	// Arrange
	grid := newTestGrid(t)
	buffer := &bytes.Buffer{}

	// Act
	err := WriteTilesAsGeoJson(grid, []int{5, 15}, map[int]int{5: 3}, buffer)

	// Assert
	util.AssertNil(t, err)

	featureCollection, err := geojson.UnmarshalFeatureCollection(buffer.Bytes())
	util.AssertNil(t, err)
	util.AssertEqual(t, 2, len(featureCollection.Features))

	firstFeature := featureCollection.Features[0]
	util.AssertEqual(t, orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{2, 2}}, firstFeature.Geometry.Bound())
	util.AssertEqual(t, 5.0, firstFeature.Properties.MustFloat64("tile_id"))
	util.AssertEqual(t, 1.0, firstFeature.Properties.MustFloat64("col"))
	util.AssertEqual(t, 1.0, firstFeature.Properties.MustFloat64("row"))
	util.AssertEqual(t, 3.0, firstFeature.Properties.MustFloat64("count"))

	secondFeature := featureCollection.Features[1]
	util.AssertEqual(t, orb.Bound{Min: orb.Point{3, 3}, Max: orb.Point{4, 4}}, secondFeature.Geometry.Bound())
	util.AssertEqual(t, 0.0, secondFeature.Properties.MustFloat64("count"))
}

func TestWriteTilesAsGeoJson_withoutCounts(t *testing.T) {
	// Arrange
	grid := newTestGrid(t)

	// Act
	featureCollection, err := TilesToFeatureCollection(grid, []int{0}, nil)

	// Assert
	util.AssertNil(t, err)
	_, hasCount := featureCollection.Features[0].Properties["count"]
	util.AssertFalse(t, hasCount)
}

func TestWriteTilesAsGeoJson_invalidTileId(t *testing.T) {
	// Arrange
	grid := newTestGrid(t)
	buffer := &bytes.Buffer{}

	// Act
	err := WriteTilesAsGeoJson(grid, []int{16}, nil, buffer)

	// Assert
	util.AssertError(t, "Tile id 16 is not within the grid of 16 tiles", err)
	util.AssertEqual(t, 0, buffer.Len())
}

func TestWriteTilesAsGeoJsonFile(t *testing.T) {
	// Arrange
	grid := newTestGrid(t)
	filename := path.Join(t.TempDir(), "tiles.geojson")

	// Act
	err := WriteTilesAsGeoJsonFile(grid, []int{0, 1}, nil, filename)

	// Assert
	util.AssertNil(t, err)

	data, err := os.ReadFile(filename)
	util.AssertNil(t, err)
	featureCollection, err := geojson.UnmarshalFeatureCollection(data)
	util.AssertNil(t, err)
	util.AssertEqual(t, 2, len(featureCollection.Features))
}
