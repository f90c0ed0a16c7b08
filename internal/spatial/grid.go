package spatial

import (
	"fmt"
	"math"

	"github.com/mmcloughlin/geohash"
)

// CellKey identifies a fixed-resolution grid cell. Keys are stable: a
// coordinate always maps to the same cell for a given cell size.
type CellKey struct {
	LatIdx int
	LonIdx int
}

// CellKeyFor discretizes a coordinate into its grid cell
func CellKeyFor(lat, lon, cellSizeDeg float64) CellKey {
	return CellKey{
		LatIdx: int(math.Floor(lat / cellSizeDeg)),
		LonIdx: int(math.Floor(lon / cellSizeDeg)),
	}
}

// Center returns the geographic center of the cell
func (k CellKey) Center(cellSizeDeg float64) (lat, lon float64) {
	lat = (float64(k.LatIdx) + 0.5) * cellSizeDeg
	lon = (float64(k.LonIdx) + 0.5) * cellSizeDeg
	return lat, lon
}

// ZoneNamer derives a human-readable zone label from a cell key. The label
// is computed once at zone creation and never changes.
type ZoneNamer func(key CellKey, cellSizeDeg float64) string

// GridNamer labels a zone by its raw cell indices, e.g. "Zone_4070_-7400"
func GridNamer(key CellKey, _ float64) string {
	return fmt.Sprintf("Zone_%d_%d", key.LatIdx, key.LonIdx)
}

// geohashPrecision of 7 resolves to ~150m cells, finer than the default
// 0.01 degree grid, so labels stay unique per cell.
const geohashPrecision = 7

// GeohashNamer labels a zone by the geohash of its cell center
func GeohashNamer(key CellKey, cellSizeDeg float64) string {
	lat, lon := key.Center(cellSizeDeg)
	return "Zone_" + geohash.EncodeWithPrecision(lat, lon, geohashPrecision)
}

// NamerFor selects a naming scheme by its configured name, defaulting to grid
func NamerFor(scheme string) ZoneNamer {
	if scheme == "geohash" {
		return GeohashNamer
	}
	return GridNamer
}
