package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/afyabot/afyabot/internal/application/hospital"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
	"github.com/afyabot/afyabot/pkg/errors"
)

// HospitalHandler exposes the nearby-facility lookup over HTTP.
type HospitalHandler struct {
	service *hospital.Service
	logger  logging.Logger
}

// NewHospitalHandler creates a HospitalHandler.
func NewHospitalHandler(service *hospital.Service, log logging.Logger) *HospitalHandler {
	return &HospitalHandler{service: service, logger: log.Named("http.hospital")}
}

// nearbyRequest is the POST /hospitals/nearby body. EmergencyID is optional
// and links the lookup to an earlier emergency reply.
type nearbyRequest struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	EmergencyID string  `json:"emergency_id,omitempty"`
}

// nearbyResponse is the lookup result, nearest first.
type nearbyResponse struct {
	Hospitals []hospital.Hospital `json:"hospitals"`
	Count     int                 `json:"count"`
}

// Nearby handles POST /api/v1/hospitals/nearby.
func (h *HospitalHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	var body nearbyRequest
	if err := decodeJSON(r, &body); err != nil {
		writeAppError(w, err)
		return
	}

	req := hospital.Request{Latitude: body.Latitude, Longitude: body.Longitude}
	if body.EmergencyID != "" {
		id, err := uuid.Parse(body.EmergencyID)
		if err != nil {
			writeAppError(w, errors.New(errors.ErrCodeBadRequest, "emergency_id is not a valid UUID"))
			return
		}
		req.EmergencyID = &id
	}

	hospitals, err := h.service.Nearby(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nearbyResponse{Hospitals: hospitals, Count: len(hospitals)})
}
