// Package hospital finds medical facilities near a user and annotates them
// with distance.
package hospital

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"

	domain "github.com/afyabot/afyabot/internal/domain/chat"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/prometheus"
	"github.com/afyabot/afyabot/internal/infrastructure/overpass"
	"github.com/afyabot/afyabot/pkg/errors"
)

// earthRadiusKm is the Haversine sphere radius.
const earthRadiusKm = 6371.0

// FacilityFinder abstracts the Overpass client.
type FacilityFinder interface {
	FindFacilities(ctx context.Context, lat, lng float64) ([]overpass.Facility, error)
}

// Hospital is one nearby facility with its distance from the user.
type Hospital struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	Distance float64 `json:"distance"` // km
}

// Request is one nearby-hospital lookup. EmergencyID ties the lookup back to
// the emergency that triggered it.
type Request struct {
	Latitude    float64
	Longitude   float64
	EmergencyID *uuid.UUID
}

// Service performs nearby-facility lookups.
type Service struct {
	finder      FacilityFinder
	repo        domain.Repository
	metrics     *prometheus.Metrics
	logger      logging.Logger
	resultLimit int
}

// NewService builds a hospital lookup service.
func NewService(finder FacilityFinder, repo domain.Repository, metrics *prometheus.Metrics,
	log logging.Logger, resultLimit int) *Service {
	if resultLimit <= 0 {
		resultLimit = 10
	}
	return &Service{
		finder:      finder,
		repo:        repo,
		metrics:     metrics,
		logger:      log.Named("hospital"),
		resultLimit: resultLimit,
	}
}

// Nearby returns up to the configured number of facilities around the given
// coordinates, nearest first. When the lookup follows an emergency, the
// emergency log is updated with the shared location and the result count;
// those updates are best-effort and never fail the lookup.
func (s *Service) Nearby(ctx context.Context, req Request) ([]Hospital, error) {
	if !validCoordinates(req.Latitude, req.Longitude) {
		return nil, errors.New(errors.ErrCodeLocationRequired, "valid latitude and longitude are required")
	}

	if req.EmergencyID != nil {
		if err := s.repo.SetEmergencyLocation(ctx, *req.EmergencyID,
			req.Latitude, req.Longitude); err != nil {
			s.logger.Warn("failed to record emergency location", logging.Err(err))
		}
	}

	facilities, err := s.finder.FindFacilities(ctx, req.Latitude, req.Longitude)
	if err != nil {
		if s.metrics != nil {
			s.metrics.HospitalLookupsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.HospitalLookupsTotal.WithLabelValues("ok").Inc()
	}

	hospitals := make([]Hospital, 0, len(facilities))
	for _, f := range facilities {
		hospitals = append(hospitals, Hospital{
			Name:     f.Name,
			Lat:      f.Lat,
			Lon:      f.Lon,
			Address:  f.Address,
			Phone:    f.Phone,
			Distance: Haversine(req.Latitude, req.Longitude, f.Lat, f.Lon),
		})
	}

	sort.SliceStable(hospitals, func(i, j int) bool {
		return hospitals[i].Distance < hospitals[j].Distance
	})
	if len(hospitals) > s.resultLimit {
		hospitals = hospitals[:s.resultLimit]
	}

	if req.EmergencyID != nil {
		if err := s.repo.SetEmergencyHospitalCount(ctx, *req.EmergencyID, len(hospitals)); err != nil {
			s.logger.Warn("failed to record hospital count", logging.Err(err))
		}
	}

	return hospitals, nil
}

// Haversine returns the great-circle distance between two points in
// kilometers, rounded to two decimals.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKm*c*100) / 100
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180 && !(lat == 0 && lng == 0)
}
