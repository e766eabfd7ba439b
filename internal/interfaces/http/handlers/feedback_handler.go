package handlers

import (
	"net/http"

	"github.com/afyabot/afyabot/internal/application/feedback"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
)

// FeedbackHandler exposes feedback submission over HTTP.
type FeedbackHandler struct {
	service *feedback.Service
	logger  logging.Logger
}

// NewFeedbackHandler creates a FeedbackHandler.
func NewFeedbackHandler(service *feedback.Service, log logging.Logger) *FeedbackHandler {
	return &FeedbackHandler{service: service, logger: log.Named("http.feedback")}
}

// feedbackRequest is the POST /feedback body.
type feedbackRequest struct {
	SessionID     string `json:"session_id"`
	ConditionName string `json:"condition_name"`
	Rating        int    `json:"rating"`
	FeedbackText  string `json:"feedback_text,omitempty"`
}

// feedbackResponse acknowledges a stored submission.
type feedbackResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Submit handles POST /api/v1/feedback.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body feedbackRequest
	if err := decodeJSON(r, &body); err != nil {
		writeAppError(w, err)
		return
	}

	fb, err := h.service.Submit(r.Context(), feedback.Request{
		SessionID:     body.SessionID,
		ConditionName: body.ConditionName,
		Rating:        body.Rating,
		FeedbackText:  body.FeedbackText,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, feedbackResponse{ID: fb.ID.String(), Status: "recorded"})
}
