package pipeline

import (
	"database/sql"

	"github.com/IH-honnette/urban-mobility-summatives/internal/config"
	"github.com/IH-honnette/urban-mobility-summatives/internal/repository"
	"github.com/IH-honnette/urban-mobility-summatives/internal/spatial"
)

// ZoneAssigner maps coordinates onto the fixed-resolution zone grid. Zones
// are store-owned: assignment happens through the zone repository's atomic
// upsert so concurrent writers converge on one row per cell.
type ZoneAssigner struct {
	cellSizeDeg float64
	namer       spatial.ZoneNamer
	zones       *repository.ZoneRepository
}

// NewZoneAssigner creates an assigner using the configured cell size and
// naming scheme.
func NewZoneAssigner(cfg *config.Config, zones *repository.ZoneRepository) *ZoneAssigner {
	return &ZoneAssigner{
		cellSizeDeg: cfg.ZoneCellSizeDeg,
		namer:       spatial.NamerFor(cfg.ZoneNamer),
		zones:       zones,
	}
}

// Assign resolves the zone for a coordinate, creating it on first sight and
// re-averaging its centroid otherwise. Returns the zone row id and whether
// the zone was newly created. Creation only counts once the enclosing
// transaction commits, so the caller tallies it.
func (a *ZoneAssigner) Assign(tx *sql.Tx, lat, lon float64) (int64, bool, error) {
	key := spatial.CellKeyFor(lat, lon, a.cellSizeDeg)
	return a.zones.Upsert(tx, key, a.namer(key, a.cellSizeDeg), lat, lon)
}
