package main

import (
	"encoding/json"
	"fmt"
	"github.com/alecthomas/kong"
	"github.com/hauke96/sigolo/v2"
	"os"
	"strings"
	ownIo "tilegrid/io"
	"tilegrid/osm"
	"tilegrid/tiles"
	"tilegrid/util"
	"tilegrid/web"
)

const VERSION = "v0.1.0"

var cli struct {
	Logging  string      `help:"Logging verbosity." enum:"info,debug,trace" short:"l" default:"info"`
	Version  VersionFlag `help:"Print version information and quit" name:"version" short:"v"`
	Bounds   string      `help:"Extent of the tile grid as 'minX,minY,maxX,maxY'." short:"b" default:"-180,-90,180,90"`
	TileSize float64     `help:"Edge length of the square tiles in the unit of the bounds." short:"t" default:"0.25"`
	List     struct {
		Bbox   string `help:"The query bbox as 'minX,minY,maxX,maxY'. Use '--' before negative coordinates." placeholder:"<bbox>" arg:""`
		Max    int    `help:"Maximum number of tiles. Zero or less means no limit." short:"m" default:"0"`
		Order  string `help:"Order of the tiles in the output." enum:"bfs,hilbert,id" default:"bfs"`
		Output string `help:"The GeoJSON output file. The tiles are written to stdout if not set." short:"o" placeholder:"<output-file>"`
	} `cmd:"" help:"Lists all tiles intersecting the given bbox as GeoJSON."`
	Info struct {
		TileId int `help:"The ID of the tile." placeholder:"<tile-id>" arg:""`
	} `cmd:"" help:"Prints the location and neighbors of a tile."`
	Density struct {
		Input  string `help:"The input file. Either .osm or .osm.pbf." placeholder:"<input-file>" arg:"" type:"existingfile"`
		Output string `help:"The GeoJSON output file." short:"o" default:"density.geojson"`
	} `cmd:"" help:"Counts the nodes of an OSM file per tile and writes the tiles as GeoJSON."`
	Server struct {
		Port     string `help:"The port this server should listen on." short:"p" default:"8080"`
		TlsCert  string `help:"The certificate file for TLS connections." placeholder:"<cert-file>"`
		TlsKey   string `help:"The key file for TLS connections." placeholder:"<key-file>"`
		MaxTiles int    `help:"Maximum number of tiles per request if the request doesn't specify one." default:"10000"`
	} `cmd:"" help:"Starts an HTTP server answering tile queries."`
}

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("Simple tile grid"),
		kong.Description("A simple tool to find the tiles of a uniform grid covering an area."),
		kong.Vars{
			"version": VERSION,
		},
	)

	if strings.ToLower(cli.Logging) == "debug" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_DEBUG)
	} else if strings.ToLower(cli.Logging) == "trace" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_TRACE)
	} else if strings.ToLower(cli.Logging) == "info" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_INFO)
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
	} else {
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
		sigolo.Fatalf("Unknown logging level '%s'", cli.Logging)
	}

	gridBounds, err := util.ParseBound(cli.Bounds)
	sigolo.FatalCheck(err)
	grid, err := tiles.NewTileGrid(gridBounds, cli.TileSize)
	sigolo.FatalCheck(err)

	switch ctx.Command() {
	case "list <bbox>":
		bbox, err := util.ParseBound(cli.List.Bbox)
		sigolo.FatalCheck(err)

		order, err := tiles.ParseOrder(cli.List.Order)
		sigolo.FatalCheck(err)

		tileIds := grid.TileList(bbox, cli.List.Max)
		err = grid.SortTiles(tileIds, order)
		sigolo.FatalCheck(err)

		sigolo.Infof("Found %d tiles", len(tileIds))

		if cli.List.Output == "" {
			err = ownIo.WriteTilesAsGeoJson(grid, tileIds, nil, os.Stdout)
		} else {
			err = ownIo.WriteTilesAsGeoJsonFile(grid, tileIds, nil, cli.List.Output)
		}
		sigolo.FatalCheck(err)
	case "info <tile-id>":
		if !grid.IsValidTileId(cli.Info.TileId) {
			sigolo.Fatalf("Tile %d does not exist, the grid has %d tiles", cli.Info.TileId, grid.TileCount())
		}

		infoBytes, err := json.MarshalIndent(web.NewTileInfo(grid, cli.Info.TileId), "", "  ")
		sigolo.FatalCheck(err)
		fmt.Println(string(infoBytes))
	case "density <input>":
		aggregator := osm.NewTileDensityAggregator(grid)
		err = osm.NewOsmReader().Read(cli.Density.Input, aggregator)
		sigolo.FatalCheck(err)

		err = ownIo.WriteTilesAsGeoJsonFile(grid, aggregator.TileIds(), aggregator.TileToNodeCount, cli.Density.Output)
		sigolo.FatalCheck(err)
		sigolo.Infof("Wrote %d tiles to %s", len(aggregator.TileToNodeCount), cli.Density.Output)
	case "server":
		if cli.Server.TlsCert != "" || cli.Server.TlsKey != "" {
			web.StartServerTls(cli.Server.Port, cli.Server.TlsCert, cli.Server.TlsKey, grid, cli.Server.MaxTiles)
		} else {
			web.StartServer(cli.Server.Port, grid, cli.Server.MaxTiles)
		}
	default:
		sigolo.Errorf("Unknown command '%s'", ctx.Command())
	}
}
