package web

import (
	"encoding/json"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"net/http"
	"net/http/httptest"
	"testing"
	"tilegrid/tiles"
	"tilegrid/util"
)

func newTestRouter(t *testing.T) http.Handler {
	grid, err := tiles.NewTileGrid(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{4, 4}}, 1)
	util.AssertNil(t, err)
	return initRouter(grid, 100)
}

func serve(handler http.Handler, method string, url string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, url, nil))
	return recorder
}

func tileIdsOf(t *testing.T, recorder *httptest.ResponseRecorder) []int {
	featureCollection, err := geojson.UnmarshalFeatureCollection(recorder.Body.Bytes())
	util.AssertNil(t, err)

	var tileIds []int
	for _, feature := range featureCollection.Features {
		tileIds = append(tileIds, feature.Properties.MustInt("tile_id"))
	}
	return tileIds
}

func TestTilesEndpoint(t *testing.T) {
	// Arrange
	router := newTestRouter(t)

	// Act
	recorder := serve(router, http.MethodGet, "/tiles?bbox=1,1,2,2")

	// Assert
	util.AssertEqual(t, http.StatusOK, recorder.Code)
	util.AssertEqual(t, "application/geo+json", recorder.Header().Get("Content-Type"))
	util.AssertEqual(t, []int{5, 4, 6, 9, 1, 8, 0, 10, 2}, tileIdsOf(t, recorder))
}

func TestTilesEndpoint_maxAndOrder(t *testing.T) {
	// Arrange
	router := newTestRouter(t)

	// Act
	limitedRecorder := serve(router, http.MethodGet, "/tiles?bbox=1,1,2,2&max=3")
	orderedRecorder := serve(router, http.MethodGet, "/tiles?bbox=1,1,2,2&order=id")
	cachedRecorder := serve(router, http.MethodGet, "/tiles?bbox=1,1,2,2&order=id")

	// Assert
	util.AssertEqual(t, []int{5, 4, 6}, tileIdsOf(t, limitedRecorder))
	util.AssertEqual(t, []int{0, 1, 2, 4, 5, 6, 8, 9, 10}, tileIdsOf(t, orderedRecorder))
	util.AssertEqual(t, []int{0, 1, 2, 4, 5, 6, 8, 9, 10}, tileIdsOf(t, cachedRecorder))
}

func TestTilesEndpoint_centerOutsideOfGrid(t *testing.T) {
	// Arrange
	router := newTestRouter(t)

	// Act
	recorder := serve(router, http.MethodGet, "/tiles?bbox=3,3,7,7")

	// Assert
	util.AssertEqual(t, http.StatusOK, recorder.Code)
	util.AssertEqual(t, 0, len(tileIdsOf(t, recorder)))
}

func TestTilesEndpoint_invalidParameters(t *testing.T) {
	// Arrange
	router := newTestRouter(t)

	for _, url := range []string{"/tiles", "/tiles?bbox=1,2,3", "/tiles?bbox=1,1,2,2&max=foo", "/tiles?bbox=1,1,2,2&order=foo"} {
		// Act
		recorder := serve(router, http.MethodGet, url)

		// Assert
		util.AssertEqual(t, http.StatusBadRequest, recorder.Code)

		var response ErrorResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &response)
		util.AssertNil(t, err)
		util.AssertTrue(t, response.Error != "")
		util.AssertTrue(t, response.Details != "")
	}
}

func TestTileEndpoint(t *testing.T) {
	// Arrange
	router := newTestRouter(t)

	// Act
	recorder := serve(router, http.MethodGet, "/tiles/4")

	// Assert
	util.AssertEqual(t, http.StatusOK, recorder.Code)

	var info TileInfo
	err := json.Unmarshal(recorder.Body.Bytes(), &info)
	util.AssertNil(t, err)
	util.AssertEqual(t, TileInfo{
		Id:        4,
		Col:       0,
		Row:       1,
		Bounds:    [4]float64{0, 1, 1, 2},
		Center:    [2]float64{0.5, 1.5},
		Neighbors: TileNeighbors{Left: 7, Right: 5, Top: 8, Bottom: 0},
	}, info)
}

func TestTileEndpoint_unknownTile(t *testing.T) {
	// Arrange
	router := newTestRouter(t)

	// Act
	recorder := serve(router, http.MethodGet, "/tiles/16")
	negativeRecorder := serve(router, http.MethodGet, "/tiles/-1")

	// Assert
	util.AssertEqual(t, http.StatusNotFound, recorder.Code)
	util.AssertEqual(t, http.StatusNotFound, negativeRecorder.Code)

	var response ErrorResponse
	err := json.Unmarshal(recorder.Body.Bytes(), &response)
	util.AssertNil(t, err)
	util.AssertEqual(t, "Tile 16 does not exist, the grid has 16 tiles.", response.Error)
}

func TestTilesEndpoint_requestCannotExceedServerLimit(t *testing.T) {
	// Arrange
	grid, err := tiles.NewTileGrid(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{4, 4}}, 1)
	util.AssertNil(t, err)
	router := initRouter(grid, 2)

	for _, url := range []string{"/tiles?bbox=0,0,4,4", "/tiles?bbox=0,0,4,4&max=0", "/tiles?bbox=0,0,4,4&max=-1", "/tiles?bbox=0,0,4,4&max=100"} {
		// Act
		recorder := serve(router, http.MethodGet, url)

		// Assert
		util.AssertEqual(t, http.StatusOK, recorder.Code)
		util.AssertEqual(t, 2, len(tileIdsOf(t, recorder)))
	}

	util.AssertEqual(t, 1, len(tileIdsOf(t, serve(router, http.MethodGet, "/tiles?bbox=0,0,4,4&max=1"))))
}

func TestLimitMaxTiles(t *testing.T) {
	util.AssertEqual(t, 5, limitMaxTiles(5, 10))
	util.AssertEqual(t, 10, limitMaxTiles(10, 10))
	util.AssertEqual(t, 10, limitMaxTiles(11, 10))
	util.AssertEqual(t, 10, limitMaxTiles(0, 10))
	util.AssertEqual(t, 10, limitMaxTiles(-1, 10))

	// Server without limit
	util.AssertEqual(t, 0, limitMaxTiles(0, 0))
	util.AssertEqual(t, 50, limitMaxTiles(50, -1))
}
