package repository

import (
	"database/sql"

	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
)

// RejectionRepository handles the append-only rejection log
type RejectionRepository struct {
	db *sql.DB
}

// NewRejectionRepository creates a new rejection repository
func NewRejectionRepository(db *sql.DB) *RejectionRepository {
	return &RejectionRepository{db: db}
}

// Append records one excluded raw record with its rejection reason
func (r *RejectionRepository) Append(tripID, reason, runID string) error {
	_, err := r.db.Exec(
		"INSERT INTO rejections (trip_id, reason, run_id) VALUES (?, ?, ?)",
		tripID, reason, runID,
	)
	if err != nil {
		return storeErr("failed to append rejection", err)
	}
	return nil
}

// GetByRun returns every rejection recorded during one ingestion run
func (r *RejectionRepository) GetByRun(runID string) ([]models.Rejection, error) {
	rows, err := r.db.Query(`
		SELECT id, trip_id, reason, run_id, created_at
		FROM rejections WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, storeErr("failed to query rejections", err)
	}
	defer rows.Close()

	var rejections []models.Rejection
	for rows.Next() {
		var rej models.Rejection
		if err := rows.Scan(&rej.ID, &rej.TripID, &rej.Reason, &rej.RunID, &rej.CreatedAt); err != nil {
			return nil, storeErr("failed to scan rejection", err)
		}
		rejections = append(rejections, rej)
	}
	return rejections, rows.Err()
}

// CountByReason returns per-reason rejection counts for one run
func (r *RejectionRepository) CountByReason(runID string) (map[string]int, error) {
	rows, err := r.db.Query(
		"SELECT reason, COUNT(*) FROM rejections WHERE run_id = ? GROUP BY reason",
		runID)
	if err != nil {
		return nil, storeErr("failed to count rejections", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var reason string
		var n int
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, storeErr("failed to scan rejection count", err)
		}
		counts[reason] = n
	}
	return counts, rows.Err()
}
