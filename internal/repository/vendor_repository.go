package repository

import (
	"database/sql"
)

// VendorRepository handles database operations for vendors
type VendorRepository struct {
	db *sql.DB
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *sql.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// Upsert resolves a vendor by its natural key, creating it on first sight.
// Returns the vendor row id and whether a new vendor was created. When two
// writers race on the same new key, the uniqueness constraint makes one the
// winner and the loser re-resolves to the winner's row.
func (r *VendorRepository) Upsert(tx *sql.Tx, key string) (int64, bool, error) {
	var id int64
	err := tx.QueryRow("SELECT id FROM vendors WHERE vendor_key = ?", key).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, storeErr("failed to resolve vendor", err)
	}

	res, err := tx.Exec(
		"INSERT INTO vendors (vendor_key, vendor_name) VALUES (?, ?)",
		key, "Vendor_"+key,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the creation race; the winner's row is authoritative.
			if serr := tx.QueryRow("SELECT id FROM vendors WHERE vendor_key = ?", key).Scan(&id); serr != nil {
				return 0, false, storeErr("failed to re-resolve vendor", serr)
			}
			return id, false, nil
		}
		return 0, false, storeErr("failed to insert vendor", err)
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, storeErr("failed to read vendor id", err)
	}
	return id, true, nil
}
