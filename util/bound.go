package util

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"strconv"
	"strings"
)

// ParseBound parses a bound given as "minX,minY,maxX,maxY". Whitespace around the numbers is allowed.
func ParseBound(s string) (orb.Bound, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return orb.Bound{}, errors.Errorf("Bound '%s' must consist of exactly four comma separated numbers but has %d parts", s, len(parts))
	}

	var values [4]float64
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return orb.Bound{}, errors.Wrapf(err, "Unable to parse coordinate '%s' of bound '%s'", part, s)
		}
		values[i] = value
	}

	bound := orb.Bound{
		Min: orb.Point{values[0], values[1]},
		Max: orb.Point{values[2], values[3]},
	}
	if bound.Max.X() < bound.Min.X() || bound.Max.Y() < bound.Min.Y() {
		return orb.Bound{}, errors.Errorf("Bound '%s' has a max coordinate smaller than its min coordinate", s)
	}

	return bound, nil
}
