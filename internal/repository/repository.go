package repository

import (
	"fmt"
	"strings"

	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
)

// storeErr wraps a driver failure so callers can detect the persistence
// boundary as a distinct, retryable error kind via errors.Is.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, models.ErrStoreUnavailable, err)
}

// isUniqueViolation reports whether err is a sqlite uniqueness-constraint
// failure. The driver exposes this only through the error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
