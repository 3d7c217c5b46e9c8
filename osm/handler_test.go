package osm

import (
	"fmt"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

type recordingHandler struct {
	calls      []string
	failOnWay  bool
	doneCalled bool
}

func (h *recordingHandler) Name() string { return "recordingHandler" }

func (h *recordingHandler) Init() error {
	h.calls = append(h.calls, "init")
	return nil
}

func (h *recordingHandler) HandleNode(node *osm.Node) error {
	h.calls = append(h.calls, fmt.Sprintf("node %d", node.ID))
	return nil
}

func (h *recordingHandler) HandleWay(way *osm.Way) error {
	if h.failOnWay {
		return errors.New("way not supported")
	}
	h.calls = append(h.calls, fmt.Sprintf("way %d", way.ID))
	return nil
}

func (h *recordingHandler) HandleRelation(relation *osm.Relation) error {
	h.calls = append(h.calls, fmt.Sprintf("relation %d", relation.ID))
	return nil
}

func (h *recordingHandler) Done() error {
	h.doneCalled = true
	h.calls = append(h.calls, "done")
	return nil
}
