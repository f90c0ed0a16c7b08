package service

import (
	"strings"
	"time"

	"github.com/IH-honnette/urban-mobility-summatives/internal/config"
	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
	"github.com/IH-honnette/urban-mobility-summatives/internal/repository"
)

// TripService is the query engine for persisted trips: it validates and
// normalizes filter/sort/page parameters, then delegates to the repository.
type TripService struct {
	repo *repository.TripRepository
	cfg  *config.Config
}

// NewTripService creates a new trip service
func NewTripService(repo *repository.TripRepository, cfg *config.Config) *TripService {
	return &TripService{repo: repo, cfg: cfg}
}

// GetTrips retrieves one page of trips matching the filter, plus the total
// count before pagination. A page beyond the last returns an empty row set.
func (s *TripService) GetTrips(filter models.TripFilter) (*models.TripsPage, error) {
	normalized, err := s.normalize(filter)
	if err != nil {
		return nil, err
	}

	trips, total, err := s.repo.FindTrips(normalized)
	if err != nil {
		return nil, err
	}

	return &models.TripsPage{
		Data:     trips,
		Total:    total,
		Page:     normalized.Page,
		PageSize: normalized.PageSize,
	}, nil
}

// CountTrips returns the number of trips matching the filter
func (s *TripService) CountTrips(filter models.TripFilter) (int64, error) {
	normalized, err := s.normalize(filter)
	if err != nil {
		return 0, err
	}
	return s.repo.CountTrips(normalized)
}

// normalize validates the filter parameters. Unknown sort fields, bad
// directions, malformed dates and negative pagination fail loudly; absent
// values get documented defaults, and the page size is clamped to the
// configured maximum.
func (s *TripService) normalize(filter models.TripFilter) (models.TripFilter, error) {
	if filter.SortBy == "" {
		filter.SortBy = models.SortPickupDatetime
		if filter.SortDir == "" {
			filter.SortDir = models.SortDesc
		}
	}
	if !models.SortableTripFields[filter.SortBy] {
		return filter, models.NewValidationError("sort_by", "unknown sort field "+filter.SortBy)
	}

	filter.SortDir = strings.ToLower(filter.SortDir)
	switch filter.SortDir {
	case "":
		filter.SortDir = models.SortDesc
	case models.SortAsc, models.SortDesc:
	default:
		return filter, models.NewValidationError("sort_dir", "must be asc or desc")
	}

	start, err := normalizeDatetime(filter.Start)
	if err != nil {
		return filter, models.NewValidationError("start", "malformed date "+filter.Start)
	}
	filter.Start = start

	end, err := normalizeDatetime(filter.End)
	if err != nil {
		return filter, models.NewValidationError("end", "malformed date "+filter.End)
	}
	filter.End = end

	if filter.Page < 0 {
		return filter, models.NewValidationError("page", "must be >= 1")
	}
	if filter.Page == 0 {
		filter.Page = 1
	}

	if filter.PageSize < 0 {
		return filter, models.NewValidationError("page_size", "must be positive")
	}
	if filter.PageSize == 0 {
		filter.PageSize = s.cfg.DefaultPageSize
	}
	if filter.PageSize > s.cfg.MaxPageSize {
		filter.PageSize = s.cfg.MaxPageSize
	}

	return filter, nil
}

// normalizeDatetime accepts ISO-8601 datetimes in several common layouts and
// rewrites them into the storage layout. Date-only values pass through: they
// compare correctly against stored datetimes as prefixes.
func normalizeDatetime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return s, nil
	}
	if _, err := time.Parse(models.TimeLayout, s); err == nil {
		return s, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.Format(models.TimeLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(models.TimeLayout), nil
	}
	return "", &models.ValidationError{Field: "datetime", Message: "malformed date"}
}
