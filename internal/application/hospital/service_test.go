package hospital

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/afyabot/afyabot/internal/domain/chat"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
	"github.com/afyabot/afyabot/internal/infrastructure/overpass"
	"github.com/afyabot/afyabot/pkg/errors"
)

type stubFinder struct {
	facilities []overpass.Facility
	err        error
}

func (s stubFinder) FindFacilities(context.Context, float64, float64) ([]overpass.Facility, error) {
	return s.facilities, s.err
}

// noopChatRepo satisfies domain.Repository; only the emergency-log update
// methods matter here.
type noopChatRepo struct {
	locationCalls int
	countCalls    int
	lastCount     int
	updateErr     error
}

func (r *noopChatRepo) GetProfileBySessionID(context.Context, string) (*domain.UserProfile, error) {
	return nil, nil
}
func (r *noopChatRepo) CreateProfile(context.Context, *domain.UserProfile) error      { return nil }
func (r *noopChatRepo) TouchProfile(context.Context, uuid.UUID, time.Time) error      { return nil }
func (r *noopChatRepo) GetOrCreateSession(context.Context, string, uuid.UUID) (*domain.Session, error) {
	return nil, nil
}
func (r *noopChatRepo) SaveMessage(context.Context, *domain.Message) error { return nil }
func (r *noopChatRepo) ListMessages(context.Context, uuid.UUID, int) ([]domain.Message, error) {
	return nil, nil
}
func (r *noopChatRepo) SaveSymptomLog(context.Context, *domain.SymptomLog) error { return nil }
func (r *noopChatRepo) LatestSymptomLog(context.Context, uuid.UUID) (*domain.SymptomLog, error) {
	return nil, nil
}
func (r *noopChatRepo) SaveEmergencyLog(context.Context, *domain.EmergencyLog) error { return nil }
func (r *noopChatRepo) SetEmergencyLocation(context.Context, uuid.UUID, float64, float64) error {
	r.locationCalls++
	return r.updateErr
}
func (r *noopChatRepo) SetEmergencyHospitalCount(_ context.Context, _ uuid.UUID, count int) error {
	r.countCalls++
	r.lastCount = count
	return r.updateErr
}
func (r *noopChatRepo) SaveFeedback(context.Context, *domain.Feedback) error { return nil }

// Nairobi CBD and two facilities at known offsets.
var nairobiFacilities = []overpass.Facility{
	{Name: "Far Clinic", Lat: -1.35, Lon: 36.90},
	{Name: "Near Hospital", Lat: -1.2925, Lon: 36.8225},
}

func TestNearby_SortedByDistanceAndCapped(t *testing.T) {
	svc := NewService(stubFinder{facilities: nairobiFacilities}, &noopChatRepo{},
		nil, logging.NewNopLogger(), 1)

	got, err := svc.Nearby(context.Background(), Request{Latitude: -1.2921, Longitude: 36.8219})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Near Hospital", got[0].Name)
	assert.Less(t, got[0].Distance, 1.0)
}

func TestNearby_InvalidCoordinates(t *testing.T) {
	svc := NewService(stubFinder{}, &noopChatRepo{}, nil, logging.NewNopLogger(), 10)

	for _, req := range []Request{
		{Latitude: 91, Longitude: 36},
		{Latitude: -1.29, Longitude: 181},
		{Latitude: 0, Longitude: 0},
	} {
		_, err := svc.Nearby(context.Background(), req)
		assert.True(t, errors.IsCode(err, errors.ErrCodeLocationRequired))
	}
}

func TestNearby_EmergencyLogUpdated(t *testing.T) {
	repo := &noopChatRepo{}
	svc := NewService(stubFinder{facilities: nairobiFacilities}, repo,
		nil, logging.NewNopLogger(), 10)

	id := uuid.New()
	got, err := svc.Nearby(context.Background(),
		Request{Latitude: -1.2921, Longitude: 36.8219, EmergencyID: &id})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.locationCalls)
	assert.Equal(t, 1, repo.countCalls)
	assert.Equal(t, len(got), repo.lastCount)
}

func TestNearby_LogUpdateFailureDoesNotFailLookup(t *testing.T) {
	repo := &noopChatRepo{updateErr: assert.AnError}
	svc := NewService(stubFinder{facilities: nairobiFacilities}, repo,
		nil, logging.NewNopLogger(), 10)

	id := uuid.New()
	got, err := svc.Nearby(context.Background(),
		Request{Latitude: -1.2921, Longitude: 36.8219, EmergencyID: &id})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestNearby_FinderErrorPropagates(t *testing.T) {
	svc := NewService(stubFinder{err: errors.New(errors.ErrCodeLookupUnavailable, "down")},
		&noopChatRepo{}, nil, logging.NewNopLogger(), 10)

	_, err := svc.Nearby(context.Background(), Request{Latitude: -1.29, Longitude: 36.82})
	assert.True(t, errors.IsCode(err, errors.ErrCodeLookupUnavailable))
}

func TestHaversine(t *testing.T) {
	// Nairobi to Mombasa is roughly 440 km.
	d := Haversine(-1.2921, 36.8219, -4.0435, 39.6682)
	assert.InDelta(t, 440, d, 10)

	// Identical points.
	assert.Equal(t, 0.0, Haversine(-1.29, 36.82, -1.29, 36.82))
}
