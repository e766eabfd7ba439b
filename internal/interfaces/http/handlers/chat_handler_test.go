package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appchat "github.com/afyabot/afyabot/internal/application/chat"
	domain "github.com/afyabot/afyabot/internal/domain/chat"
	"github.com/afyabot/afyabot/internal/domain/lexicon"
	"github.com/afyabot/afyabot/internal/domain/triage"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
	"github.com/afyabot/afyabot/pkg/errors"
)

// fakeChatRepo is an in-memory chat.Repository for handler tests.
type fakeChatRepo struct {
	profiles map[string]*domain.UserProfile
	messages []domain.Message
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{profiles: map[string]*domain.UserProfile{}}
}

func (r *fakeChatRepo) GetProfileBySessionID(_ context.Context, sessionID string) (*domain.UserProfile, error) {
	if p, ok := r.profiles[sessionID]; ok {
		return p, nil
	}
	return nil, errors.New(errors.ErrCodeProfileNotFound, "profile not found")
}

func (r *fakeChatRepo) CreateProfile(_ context.Context, p *domain.UserProfile) error {
	p.ID = uuid.New()
	r.profiles[p.SessionID] = p
	return nil
}

func (r *fakeChatRepo) TouchProfile(context.Context, uuid.UUID, time.Time) error { return nil }

func (r *fakeChatRepo) GetOrCreateSession(_ context.Context, sessionID string, profileID uuid.UUID) (*domain.Session, error) {
	return &domain.Session{ID: uuid.New(), SessionID: sessionID, UserProfileID: profileID}, nil
}

func (r *fakeChatRepo) SaveMessage(_ context.Context, msg *domain.Message) error {
	msg.ID = uuid.New()
	msg.CreatedAt = time.Now().UTC()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeChatRepo) ListMessages(context.Context, uuid.UUID, int) ([]domain.Message, error) {
	return r.messages, nil
}

func (r *fakeChatRepo) SaveSymptomLog(_ context.Context, log *domain.SymptomLog) error {
	log.ID = uuid.New()
	return nil
}

func (r *fakeChatRepo) LatestSymptomLog(context.Context, uuid.UUID) (*domain.SymptomLog, error) {
	return nil, nil
}

func (r *fakeChatRepo) SaveEmergencyLog(_ context.Context, log *domain.EmergencyLog) error {
	log.ID = uuid.New()
	return nil
}

func (r *fakeChatRepo) SetEmergencyLocation(context.Context, uuid.UUID, float64, float64) error {
	return nil
}

func (r *fakeChatRepo) SetEmergencyHospitalCount(context.Context, uuid.UUID, int) error { return nil }

func (r *fakeChatRepo) SaveFeedback(_ context.Context, fb *domain.Feedback) error {
	fb.ID = uuid.New()
	return nil
}

// fixtureLexicon backs a real pipeline with a small corpus.
type fixtureLexicon struct{}

func (fixtureLexicon) ListSymptoms(context.Context) ([]lexicon.Symptom, error) {
	return []lexicon.Symptom{
		{ID: 1, Name: "fever", AlternativeNames: "high temperature, chills"},
		{ID: 2, Name: "headache", AlternativeNames: "head pain"},
	}, nil
}

func (fixtureLexicon) ListEmergencyKeywords(context.Context) ([]lexicon.EmergencyKeyword, error) {
	return []lexicon.EmergencyKeyword{
		{ID: 1, Keyword: "not breathing", Severity: lexicon.SeverityCritical,
			ResponseMessage: "Call 999 immediately."},
	}, nil
}

func (fixtureLexicon) ListConditions(context.Context) ([]lexicon.Condition, error) {
	return []lexicon.Condition{
		{
			ID:             1,
			Name:           "Malaria",
			CommonSymptoms: "fever, chills, headache, sweating",
			FirstAid:       []lexicon.FirstAid{{ID: 1, Title: "Malaria First Aid", Steps: "Rest and hydrate."}},
		},
	}, nil
}

func newTestPipeline() *triage.Pipeline {
	log := logging.NewNopLogger()
	repo := fixtureLexicon{}
	return triage.NewPipeline(
		triage.NewExtractor(repo, log),
		triage.NewDetector(repo, log),
		triage.NewMatcher(repo, log),
		triage.NewFormatter(0.5),
		log,
	)
}

func newChatHandler(repo domain.Repository) *ChatHandler {
	svc := appchat.NewService(repo, newTestPipeline(), nil, nil, logging.NewNopLogger(), 0)
	return NewChatHandler(svc, logging.NewNopLogger())
}

func TestProcessMessage_Matched(t *testing.T) {
	h := newChatHandler(newFakeChatRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages",
		strings.NewReader(`{"session_id": "sess-1", "message": "I have fever and headache"}`))
	rec := httptest.NewRecorder()
	h.ProcessMessage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var reply appchat.Reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, appchat.ReplyNormal, reply.Type)
	assert.Equal(t, "sess-1", reply.SessionID)
	assert.Contains(t, reply.Message, "Malaria")
	assert.ElementsMatch(t, []string{"fever", "headache"}, reply.SymptomsDetected)
}

func TestProcessMessage_Emergency(t *testing.T) {
	h := newChatHandler(newFakeChatRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages",
		strings.NewReader(`{"session_id": "sess-1", "message": "my brother is not breathing"}`))
	rec := httptest.NewRecorder()
	h.ProcessMessage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var reply appchat.Reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, appchat.ReplyEmergency, reply.Type)
	assert.Equal(t, "CRITICAL", reply.Severity)
	assert.Equal(t, appchat.ActionRequestLocation, reply.Action)
	require.NotNil(t, reply.EmergencyID)
}

func TestProcessMessage_EmptyMessage(t *testing.T) {
	h := newChatHandler(newFakeChatRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages",
		strings.NewReader(`{"session_id": "sess-1", "message": "   "}`))
	rec := httptest.NewRecorder()
	h.ProcessMessage(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "CHAT_001", body.Code)
}

func TestProcessMessage_InvalidBody(t *testing.T) {
	h := newChatHandler(newFakeChatRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	h.ProcessMessage(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistory(t *testing.T) {
	repo := newFakeChatRepo()
	h := newChatHandler(repo)

	// Seed a conversation through the normal path.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages",
		strings.NewReader(`{"session_id": "sess-1", "message": "I have fever"}`))
	h.ProcessMessage(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/messages/history?session_id=sess-1", nil)
	rec := httptest.NewRecorder()
	h.History(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body historyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "sess-1", body.SessionID)
	require.Len(t, body.Messages, 2)
	assert.Equal(t, "user", body.Messages[0].Role)
	assert.Equal(t, "bot", body.Messages[1].Role)
}

func TestHistory_MissingSession(t *testing.T) {
	h := newChatHandler(newFakeChatRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/messages/history", nil)
	rec := httptest.NewRecorder()
	h.History(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
