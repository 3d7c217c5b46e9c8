package osm

import (
	"context"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"io"
	"os"
	"strings"
	"time"
)

type OsmDataHandler interface {
	Name() string
	Init() error
	HandleNode(node *osm.Node) error
	HandleWay(way *osm.Way) error
	HandleRelation(relation *osm.Relation) error
	Done() error
}

type OsmReader struct {
	firstWayHasBeenProcessed      bool
	firstRelationHasBeenProcessed bool
}

func NewOsmReader() *OsmReader {
	return &OsmReader{}
}

// Read processes the given .osm or .osm.pbf file and passes every object to all handlers.
func (r *OsmReader) Read(filename string, handlers ...OsmDataHandler) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "Unable to open OSM input file %s", filename)
	}
	defer file.Close()

	scanner, err := newScanner(filename, file)
	if err != nil {
		return err
	}

	sigolo.Infof("Start processing OSM data file %s", filename)
	readStartTime := time.Now()

	err = r.ReadFromScanner(scanner, handlers...)
	if err != nil {
		return err
	}

	sigolo.Infof("Done processing OSM data in %s", time.Since(readStartTime))
	return nil
}

// ReadFromScanner passes all objects of the scanner to the handlers and closes the scanner afterwards.
func (r *OsmReader) ReadFromScanner(scanner osm.Scanner, handlers ...OsmDataHandler) error {
	r.firstWayHasBeenProcessed = false
	r.firstRelationHasBeenProcessed = false

	for _, handler := range handlers {
		err := handler.Init()
		if err != nil {
			return errors.Wrapf(err, "Initializing OSM data handler '%s' failed", handler.Name())
		}
	}

	sigolo.Debug("Start processing nodes (1/3)")
	for scanner.Scan() {
		var err error
		var handlerName string

		switch osmObj := scanner.Object().(type) {
		case *osm.Node:
			for _, handler := range handlers {
				handlerName = handler.Name()
				if err = handler.HandleNode(osmObj); err != nil {
					err = errors.Wrapf(err, "Handling node %d using handler '%s' failed", osmObj.ID, handlerName)
					break
				}
			}
		case *osm.Way:
			if !r.firstWayHasBeenProcessed {
				sigolo.Debug("Start processing ways (2/3)")
				r.firstWayHasBeenProcessed = true
			}

			for _, handler := range handlers {
				handlerName = handler.Name()
				if err = handler.HandleWay(osmObj); err != nil {
					err = errors.Wrapf(err, "Handling way %d using handler '%s' failed", osmObj.ID, handlerName)
					break
				}
			}
		case *osm.Relation:
			if !r.firstRelationHasBeenProcessed {
				sigolo.Debug("Start processing relations (3/3)")
				r.firstRelationHasBeenProcessed = true
			}

			for _, handler := range handlers {
				handlerName = handler.Name()
				if err = handler.HandleRelation(osmObj); err != nil {
					err = errors.Wrapf(err, "Handling relation %d using handler '%s' failed", osmObj.ID, handlerName)
					break
				}
			}
		}

		if err != nil {
			_ = scanner.Close()
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		_ = scanner.Close()
		return errors.Wrap(err, "Unable to read OSM data")
	}

	for _, handler := range handlers {
		err := handler.Done()
		if err != nil {
			return errors.Wrapf(err, "Calling done function on handler '%s' failed", handler.Name())
		}
	}

	err := scanner.Close()
	if err != nil {
		return errors.Wrapf(err, "Unable to close OSM scanner")
	}

	return nil
}

func newScanner(filename string, reader io.Reader) (osm.Scanner, error) {
	if strings.HasSuffix(filename, ".pbf") {
		return osmpbf.New(context.Background(), reader, 1), nil
	}
	if strings.HasSuffix(filename, ".osm") {
		return osmxml.New(context.Background(), reader), nil
	}
	return nil, errors.Errorf("Input file %s must be an .osm or .pbf file", filename)
}
