package spatial

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellKeyFor(t *testing.T) {
	// Same point always lands in the same cell
	a := CellKeyFor(40.705, -74.005, 0.01)
	b := CellKeyFor(40.705, -74.005, 0.01)
	require.Equal(t, a, b)

	// Nearby points inside one cell share the key
	c := CellKeyFor(40.706, -74.004, 0.01)
	assert.Equal(t, a, c)

	// Two hundredths of a degree away is a different cell
	d := CellKeyFor(40.725, -74.005, 0.01)
	assert.NotEqual(t, a, d)
	assert.Equal(t, a.LonIdx, d.LonIdx)
}

func TestCellKeyCenter(t *testing.T) {
	key := CellKey{LatIdx: 4070, LonIdx: -7400}
	lat, lon := key.Center(0.01)
	assert.InDelta(t, 40.705, lat, 1e-9)
	assert.InDelta(t, -73.995, lon, 1e-9)
}

func TestGridNamer(t *testing.T) {
	key := CellKey{LatIdx: 4070, LonIdx: -7400}
	assert.Equal(t, "Zone_4070_-7400", GridNamer(key, 0.01))
}

func TestGeohashNamer(t *testing.T) {
	key := CellKeyFor(40.70, -74.00, 0.01)
	name := GeohashNamer(key, 0.01)
	require.True(t, strings.HasPrefix(name, "Zone_"))
	assert.Len(t, name, len("Zone_")+geohashPrecision)

	// Deterministic for a fixed key
	assert.Equal(t, name, GeohashNamer(key, 0.01))
}

func TestNamerFor(t *testing.T) {
	key := CellKey{LatIdx: 1, LonIdx: 2}
	assert.Equal(t, GridNamer(key, 0.01), NamerFor("grid")(key, 0.01))
	assert.Equal(t, GridNamer(key, 0.01), NamerFor("")(key, 0.01))
	assert.Equal(t, GeohashNamer(key, 0.01), NamerFor("geohash")(key, 0.01))
}
