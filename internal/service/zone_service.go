package service

import (
	"github.com/IH-honnette/urban-mobility-summatives/internal/models"
	"github.com/IH-honnette/urban-mobility-summatives/internal/repository"
)

// ZoneService handles business logic for zones
type ZoneService struct {
	repo *repository.ZoneRepository
}

// NewZoneService creates a new zone service
func NewZoneService(repo *repository.ZoneRepository) *ZoneService {
	return &ZoneService{repo: repo}
}

// GetZones returns all zones ordered by name
func (s *ZoneService) GetZones() ([]models.Zone, error) {
	return s.repo.GetZones()
}

// GetZoneByName returns a single zone, or nil when absent
func (s *ZoneService) GetZoneByName(name string) (*models.Zone, error) {
	return s.repo.GetZoneByName(name)
}
