package web

import (
	"encoding/json"
	"fmt"
	"github.com/gorilla/mux"
	"github.com/hauke96/sigolo/v2"
	"net/http"
	"strconv"
	ownIo "tilegrid/io"
	"tilegrid/tiles"
	"tilegrid/util"
)

const tileListCacheSize = 100

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func NewErrorResponse(message string, err error) ErrorResponse {
	response := ErrorResponse{
		Error: message,
	}
	if err != nil {
		response.Details = err.Error()
	}
	return response
}

type TileNeighbors struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

type TileInfo struct {
	Id        int           `json:"id"`
	Col       int           `json:"col"`
	Row       int           `json:"row"`
	Bounds    [4]float64    `json:"bounds"`
	Center    [2]float64    `json:"center"`
	Neighbors TileNeighbors `json:"neighbors"`
}

func NewTileInfo(grid *tiles.TileGrid, tileId int) TileInfo {
	col, row := grid.ColRow(tileId)
	bounds := grid.TileBounds(tileId)
	center := grid.Center(tileId)

	return TileInfo{
		Id:     tileId,
		Col:    col,
		Row:    row,
		Bounds: [4]float64{bounds.Min.X(), bounds.Min.Y(), bounds.Max.X(), bounds.Max.Y()},
		Center: [2]float64{center.X(), center.Y()},
		Neighbors: TileNeighbors{
			Left:   grid.LeftNeighbor(tileId),
			Right:  grid.RightNeighbor(tileId),
			Top:    grid.TopNeighbor(tileId),
			Bottom: grid.BottomNeighbor(tileId),
		},
	}
}

func StartServer(port string, grid *tiles.TileGrid, defaultMaxTiles int) {
	r := initRouter(grid, defaultMaxTiles)
	sigolo.Infof("Start server without TLS support on port %s", port)
	err := http.ListenAndServe(":"+port, r)
	sigolo.FatalCheck(err)
}

func StartServerTls(port string, certFile string, keyFile string, grid *tiles.TileGrid, defaultMaxTiles int) {
	r := initRouter(grid, defaultMaxTiles)
	sigolo.Infof("Start server with TLS support on port %s", port)
	err := http.ListenAndServeTLS(":"+port, certFile, keyFile, r)
	sigolo.FatalCheck(err)
}

func initRouter(grid *tiles.TileGrid, defaultMaxTiles int) *mux.Router {
	cache := newLruTileListCache(tileListCacheSize)

	r := mux.NewRouter()
	r.HandleFunc("/tiles", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Access-Control-Allow-Origin", "*")
		writer.Header().Set("Content-Type", "application/geo+json")

		query := request.URL.Query()

		bbox, err := util.ParseBound(query.Get("bbox"))
		if err != nil {
			writeErrorResponse(writer, http.StatusBadRequest, "Invalid bbox parameter.", err)
			return
		}

		maxTiles := defaultMaxTiles
		if maxTilesString := query.Get("max"); maxTilesString != "" {
			requestedMaxTiles, err := strconv.Atoi(maxTilesString)
			if err != nil {
				writeErrorResponse(writer, http.StatusBadRequest, "Invalid max parameter.", err)
				return
			}
			maxTiles = limitMaxTiles(requestedMaxTiles, defaultMaxTiles)
		}

		order, err := tiles.ParseOrder(query.Get("order"))
		if err != nil {
			writeErrorResponse(writer, http.StatusBadRequest, "Invalid order parameter.", err)
			return
		}

		cacheKey := fmt.Sprintf("%v|%v|%d|%s", bbox.Min, bbox.Max, maxTiles, order)
		tileIds, cached := cache.get(cacheKey)
		if !cached {
			tileIds = grid.TileList(bbox, maxTiles)
			err = grid.SortTiles(tileIds, order)
			if err != nil {
				writeErrorResponse(writer, http.StatusInternalServerError, "Error sorting tiles.", err)
				return
			}
			cache.put(cacheKey, tileIds)
		}
		sigolo.Debugf("Found %d tiles for bbox %v (cached=%t)", len(tileIds), bbox, cached)

		err = ownIo.WriteTilesAsGeoJson(grid, tileIds, nil, writer)
		if err != nil {
			sigolo.Errorf("Error writing tiles: %+v", err)
			writeErrorResponse(writer, http.StatusInternalServerError, "Error writing tiles.", err)
			return
		}
	}).Methods(http.MethodGet)

	r.HandleFunc("/tiles/{id:-?[0-9]+}", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Access-Control-Allow-Origin", "*")
		writer.Header().Set("Content-Type", "application/json")

		tileId, err := strconv.Atoi(mux.Vars(request)["id"])
		if err != nil {
			writeErrorResponse(writer, http.StatusBadRequest, "Invalid tile id.", err)
			return
		}

		if !grid.IsValidTileId(tileId) {
			writeErrorResponse(writer, http.StatusNotFound, fmt.Sprintf("Tile %d does not exist, the grid has %d tiles.", tileId, grid.TileCount()), nil)
			return
		}

		writeJson(writer, http.StatusOK, NewTileInfo(grid, tileId))
	}).Methods(http.MethodGet)

	return r
}

// limitMaxTiles keeps the requested amount of tiles within the server limit. Zero or less means "no limit" for the
// tile list and is therefore replaced by the server limit as well. A server limit of zero or less allows everything.
func limitMaxTiles(requestedMaxTiles int, serverMaxTiles int) int {
	if serverMaxTiles <= 0 {
		return requestedMaxTiles
	}
	if requestedMaxTiles <= 0 || requestedMaxTiles > serverMaxTiles {
		return serverMaxTiles
	}
	return requestedMaxTiles
}

func writeErrorResponse(writer http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		sigolo.Errorf("%s %+v", message, err)
	}
	writer.Header().Set("Content-Type", "application/json")
	writeJson(writer, status, NewErrorResponse(message, err))
}

func writeJson(writer http.ResponseWriter, status int, value any) {
	responseBytes, err := json.Marshal(value)
	if err != nil {
		sigolo.Errorf("Error marshalling response object: %+v", err)
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}

	writer.WriteHeader(status)
	_, err = writer.Write(responseBytes)
	if err != nil {
		sigolo.Errorf("Error writing response: %+v", err)
	}
}
