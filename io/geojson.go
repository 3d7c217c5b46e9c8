package io

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"io"
	"os"
	"tilegrid/tiles"
	"time"
)

func WriteTilesAsGeoJsonFile(grid *tiles.TileGrid, tileIds []int, tileCounts map[int]int, filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Unable to create GeoJSON file %s", filename)
	}

	defer func() {
		closeErr := file.Close()
		if err == nil && closeErr != nil {
			err = errors.Wrapf(closeErr, "Unable to close file handle for GeoJSON file %s", filename)
		}
	}()

	return WriteTilesAsGeoJson(grid, tileIds, tileCounts, file)
}

// WriteTilesAsGeoJson writes one polygon feature per tile. The tile counts are optional, when given, each feature
// gets a "count" property.
func WriteTilesAsGeoJson(grid *tiles.TileGrid, tileIds []int, tileCounts map[int]int, writer io.Writer) error {
	featureCollection, err := TilesToFeatureCollection(grid, tileIds, tileCounts)
	if err != nil {
		return err
	}

	sigolo.Debugf("Write %d tiles as GeoJSON", len(tileIds))
	writeStartTime := time.Now()

	geojsonBytes, err := featureCollection.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Unable to marshal tiles to GeoJSON")
	}

	_, err = writer.Write(geojsonBytes)
	if err != nil {
		return errors.Wrap(err, "Unable to write GeoJSON")
	}

	sigolo.Debugf("Finished writing in %s", time.Since(writeStartTime))
	return nil
}

func TilesToFeatureCollection(grid *tiles.TileGrid, tileIds []int, tileCounts map[int]int) (*geojson.FeatureCollection, error) {
	featureCollection := geojson.NewFeatureCollection()

	for _, tileId := range tileIds {
		if !grid.IsValidTileId(tileId) {
			return nil, errors.Errorf("Tile id %d is not within the grid of %d tiles", tileId, grid.TileCount())
		}

		col, row := grid.ColRow(tileId)

		geoJsonFeature := geojson.NewFeature(grid.TileBounds(tileId).ToPolygon())
		geoJsonFeature.Properties["tile_id"] = tileId
		geoJsonFeature.Properties["col"] = col
		geoJsonFeature.Properties["row"] = row
		if tileCounts != nil {
			geoJsonFeature.Properties["count"] = tileCounts[tileId]
		}

		featureCollection.Append(geoJsonFeature)
	}

	return featureCollection, nil
}
