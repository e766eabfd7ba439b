package handlers

import (
	"net/http"

	"github.com/afyabot/afyabot/internal/application/chat"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
)

// defaultHistoryLimit caps the history page when the client does not ask for
// a specific size.
const defaultHistoryLimit = 50

// ChatHandler exposes message processing over HTTP.
type ChatHandler struct {
	service *chat.Service
	logger  logging.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(service *chat.Service, log logging.Logger) *ChatHandler {
	return &ChatHandler{service: service, logger: log.Named("http.chat")}
}

// messageRequest is the POST /messages body.
type messageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ProcessMessage handles POST /api/v1/messages.
func (h *ChatHandler) ProcessMessage(w http.ResponseWriter, r *http.Request) {
	var body messageRequest
	if err := decodeJSON(r, &body); err != nil {
		writeAppError(w, err)
		return
	}

	reply, err := h.service.ProcessMessage(r.Context(), chat.Request{
		SessionID: body.SessionID,
		Message:   body.Message,
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

// historyResponse wraps the message page returned by History.
type historyResponse struct {
	SessionID string        `json:"session_id"`
	Messages  []messageView `json:"messages"`
}

type messageView struct {
	Role              string `json:"role"`
	Content           string `json:"content"`
	EmergencyDetected bool   `json:"emergency_detected"`
	CreatedAt         string `json:"created_at"`
}

// History handles GET /api/v1/messages/history.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	limit := queryInt(r, "limit", defaultHistoryLimit)

	messages, err := h.service.History(r.Context(), sessionID, limit)
	if err != nil {
		writeAppError(w, err)
		return
	}

	views := make([]messageView, len(messages))
	for i, m := range messages {
		views[i] = messageView{
			Role:              string(m.Role),
			Content:           m.Content,
			EmergencyDetected: m.EmergencyDetected,
			CreatedAt:         m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	writeJSON(w, http.StatusOK, historyResponse{SessionID: sessionID, Messages: views})
}
