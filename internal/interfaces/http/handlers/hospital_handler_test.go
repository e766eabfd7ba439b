package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphospital "github.com/afyabot/afyabot/internal/application/hospital"
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

func newHospitalHandler(finder apphospital.FacilityFinder) *HospitalHandler {
	svc := apphospital.NewService(finder, newFakeChatRepo(), nil, logging.NewNopLogger(), 10)
	return NewHospitalHandler(svc, logging.NewNopLogger())
}

func TestNearby(t *testing.T) {
	h := newHospitalHandler(stubFinder{facilities: []overpass.Facility{
		{Name: "Kenyatta National Hospital", Lat: -1.3008, Lon: 36.8070},
		{Name: "Nairobi Hospital", Lat: -1.2958, Lon: 36.8075},
	}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/hospitals/nearby",
		strings.NewReader(`{"latitude": -1.2921, "longitude": 36.8219}`))
	rec := httptest.NewRecorder()
	h.Nearby(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body nearbyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Hospitals, 2)
	assert.LessOrEqual(t, body.Hospitals[0].Distance, body.Hospitals[1].Distance)
}

func TestNearby_InvalidCoordinates(t *testing.T) {
	h := newHospitalHandler(stubFinder{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/hospitals/nearby",
		strings.NewReader(`{"latitude": 0, "longitude": 0}`))
	rec := httptest.NewRecorder()
	h.Nearby(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "HOSP_001", body.Code)
}

func TestNearby_InvalidEmergencyID(t *testing.T) {
	h := newHospitalHandler(stubFinder{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/hospitals/nearby",
		strings.NewReader(`{"latitude": -1.2921, "longitude": 36.8219, "emergency_id": "nope"}`))
	rec := httptest.NewRecorder()
	h.Nearby(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNearby_LookupUnavailable(t *testing.T) {
	h := newHospitalHandler(stubFinder{
		err: errors.New(errors.ErrCodeLookupUnavailable, "overpass timeout"),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/hospitals/nearby",
		strings.NewReader(`{"latitude": -1.2921, "longitude": 36.8219}`))
	rec := httptest.NewRecorder()
	h.Nearby(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
