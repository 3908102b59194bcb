package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenelab/wellspring/internal/agents/diet"
	"github.com/serenelab/wellspring/internal/agents/mentalhealth"
	"github.com/serenelab/wellspring/internal/agents/physician"
	"github.com/serenelab/wellspring/internal/booking"
	"github.com/serenelab/wellspring/pkg/adapters/memory"
	"github.com/serenelab/wellspring/pkg/domain"
)

type scriptedCompleter struct {
	response string
}

func (s *scriptedCompleter) Complete(context.Context, []domain.Message) (string, error) {
	return s.response, nil
}

func newTestHandler(t *testing.T, llmResponse string) (http.Handler, *memory.Store) {
	t.Helper()
	llm := &scriptedCompleter{response: llmResponse}
	store := memory.NewStore()
	srv := &Server{
		Diet:      diet.New(llm),
		Physician: physician.New(llm, nil),
		Companion: mentalhealth.New(llm, store),
		Checkins:  mentalhealth.NewCheckinTracker(),
		Bookings:  booking.New(filepath.Join(t.TempDir(), "bookings.json")),
		Store:     store,
	}
	return NewHandler(srv, prometheus.NewRegistry()), store
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_DietPlan(t *testing.T) {
	planJSON := `{
		"daily_plan": [
			{"day": "Day 1", "meals": [{"meal": "Breakfast", "description": "Oats", "calories": 400}],
			 "total_calories": 2000, "macros": {"protein_g": 120, "carbs_g": 220, "fats_g": 60}}
		],
		"grocery_list": ["oats"]
	}`
	h, _ := newTestHandler(t, planJSON)

	rec := doJSON(t, h, http.MethodPost, "/v1/diet/plan", map[string]any{
		"age": 30, "gender": "Male", "height_cm": 175, "weight_kg": 70,
		"activity": "moderate", "goal": "Maintain Weight", "preference": "vegetarian",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var plan diet.Plan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	require.Len(t, plan.DailyPlan, 1)
	assert.Equal(t, 2000, plan.DailyPlan[0].TotalCalories)
	assert.Equal(t, []string{"oats"}, plan.GroceryList)
	assert.Empty(t, plan.Note)
}

func TestHandler_DietPlan_InvalidInput(t *testing.T) {
	h, _ := newTestHandler(t, "{}")

	rec := doJSON(t, h, http.MethodPost, "/v1/diet/plan", map[string]any{
		"age": 200, "gender": "Male", "height_cm": 175, "weight_kg": 70,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Triage(t *testing.T) {
	triageJSON := `{"probable_condition": "tension headache", "specialist_doctor": "Neurologist", "self_care_tips": ["rest"], "see_doctor": false}`
	h, _ := newTestHandler(t, triageJSON)

	rec := doJSON(t, h, http.MethodPost, "/v1/physician/triage", map[string]any{
		"symptoms": "headache", "duration": "2 days", "chronic": "none",
		"medication": "none", "severity": 3, "location": "Porto",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var triage physician.Triage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &triage))
	assert.Equal(t, "Neurologist", triage.SpecialistDoctor)
}

func TestHandler_Triage_UnparseableModelOutputStillOK(t *testing.T) {
	h, _ := newTestHandler(t, "sorry, no JSON today")

	rec := doJSON(t, h, http.MethodPost, "/v1/physician/triage", map[string]any{
		"symptoms": "headache", "severity": 3,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var triage physician.Triage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &triage))
	assert.True(t, triage.SeeDoctor)
}

func TestHandler_Bookings(t *testing.T) {
	h, _ := newTestHandler(t, "{}")

	rec := doJSON(t, h, http.MethodPost, "/v1/physician/bookings", map[string]any{
		"name": "Ana", "contact": "ana@example.com", "clinic": "City Clinic",
		"date": "2026-09-10", "time": "14:30",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/v1/physician/bookings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var bookings []domain.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookings))
	require.Len(t, bookings, 1)
	assert.Equal(t, "Ana", bookings[0].Name)
	assert.False(t, bookings[0].Timestamp.IsZero())
	assert.WithinDuration(t, time.Now().UTC(), bookings[0].Timestamp, time.Minute)
}

func TestHandler_Booking_MissingFields(t *testing.T) {
	h, _ := newTestHandler(t, "{}")

	rec := doJSON(t, h, http.MethodPost, "/v1/physician/bookings", map[string]any{
		"contact": "ana@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GAD7(t *testing.T) {
	h, _ := newTestHandler(t, "{}")

	rec := doJSON(t, h, http.MethodPost, "/v1/mentalhealth/gad7", map[string]any{
		"answers": []int{2, 2, 2, 2, 1, 1, 0},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result mentalhealth.GAD7Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 10, result.Score)
	assert.Equal(t, mentalhealth.AnxietyModerate, result.Band)
}

func TestHandler_Checkin(t *testing.T) {
	h, _ := newTestHandler(t, "{}")

	rec := doJSON(t, h, http.MethodPost, "/v1/mentalhealth/checkin", map[string]any{
		"mood": 7, "emoji": "happy", "note": "good day",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result mentalhealth.CheckinResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Streak)
	assert.NotEmpty(t, result.Affirmation)
}

func TestHandler_ChatRoundTrip(t *testing.T) {
	h, store := newTestHandler(t, "Take a deep breath; that sounds hard.")

	rec := doJSON(t, h, http.MethodPost, "/v1/chat/t1", map[string]any{"message": "rough day"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ThreadID string `json:"thread_id"`
		Reply    string `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "t1", resp.ThreadID)
	assert.NotEmpty(t, resp.Reply)

	// History is visible via GET and via the store.
	rec = doJSON(t, h, http.MethodGet, "/v1/chat/t1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []domain.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Len(t, history, 2)

	stored, err := store.Load(context.Background(), "t1")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestHandler_ChatHistory_UnknownThreadIsEmpty(t *testing.T) {
	h, _ := newTestHandler(t, "{}")

	rec := doJSON(t, h, http.MethodGet, "/v1/chat/nope", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHandler_Threads(t *testing.T) {
	h, store := newTestHandler(t, "hi")

	require.NoError(t, store.Append(context.Background(), "a", domain.User("x")))

	rec := doJSON(t, h, http.MethodGet, "/v1/threads", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var threads []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &threads))
	assert.Contains(t, threads, "a")
}

func TestHandler_DeleteThread(t *testing.T) {
	h, store := newTestHandler(t, "hi")

	require.NoError(t, store.Append(context.Background(), "gone", domain.User("x")))

	rec := doJSON(t, h, http.MethodDelete, "/v1/threads/gone", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	loaded, err := store.Load(context.Background(), "gone")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestHandler_Metrics(t *testing.T) {
	h, _ := newTestHandler(t, "{}")

	rec := doJSON(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_Healthz(t *testing.T) {
	h, _ := newTestHandler(t, "{}")

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
