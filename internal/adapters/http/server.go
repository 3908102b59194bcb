// Package http exposes the wellness agents over a JSON HTTP API.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/serenelab/wellspring/internal/agents/diet"
	"github.com/serenelab/wellspring/internal/agents/mentalhealth"
	"github.com/serenelab/wellspring/internal/agents/physician"
	"github.com/serenelab/wellspring/internal/booking"
	"github.com/serenelab/wellspring/pkg/domain"
	"github.com/serenelab/wellspring/pkg/ports"
)

// Server routes HTTP requests to the agents. Collaborator failures inside
// the agents are absorbed: the response body always conforms to the agent's
// result schema, with a notice when a fallback was served.
type Server struct {
	Diet      *diet.Agent
	Physician *physician.Agent
	Companion *mentalhealth.Companion
	Checkins  *mentalhealth.CheckinTracker
	Bookings  *booking.Ledger
	Store     ports.ConversationStore
	Log       *slog.Logger
}

// NewHandler builds the chi router for the server. registry may be nil to
// skip the /metrics endpoint.
func NewHandler(s *Server, registry *prometheus.Registry) http.Handler {
	if s.Log == nil {
		s.Log = slog.New(slog.DiscardHandler)
	}
	if s.Checkins == nil {
		s.Checkins = mentalhealth.NewCheckinTracker()
	}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/diet/plan", s.handleDietPlan)
		r.Post("/physician/triage", s.handleTriage)
		r.Post("/physician/clinics", s.handleClinics)
		r.Get("/physician/bookings", s.handleListBookings)
		r.Post("/physician/bookings", s.handleCreateBooking)
		r.Post("/mentalhealth/gad7", s.handleGAD7)
		r.Post("/mentalhealth/checkin", s.handleCheckin)
		r.Get("/chat/{threadID}", s.handleChatHistory)
		r.Post("/chat/{threadID}", s.handleChatTurn)
		r.Get("/threads", s.handleThreads)
		r.Delete("/threads/{threadID}", s.handleDeleteThread)
	})

	return r
}

// errorResponse is the shape of every non-2xx body.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Warn("encoding response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (s *Server) handleDietPlan(w http.ResponseWriter, r *http.Request) {
	var req diet.Request
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	plan, err := s.Diet.Plan(r.Context(), req)
	if err != nil {
		s.Log.Warn("diet plan degraded", "err", err)
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleTriage(w http.ResponseWriter, r *http.Request) {
	var intake physician.Intake
	if !decodeBody(w, r, &intake) {
		return
	}
	if err := intake.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	triage, err := s.Physician.Triage(r.Context(), intake)
	if err != nil {
		s.Log.Warn("triage degraded", "err", err)
	}
	writeJSON(w, http.StatusOK, triage)
}

func (s *Server) handleClinics(w http.ResponseWriter, r *http.Request) {
	var intake physician.Intake
	if !decodeBody(w, r, &intake) {
		return
	}
	if err := intake.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	list, err := s.Physician.FindClinics(r.Context(), intake)
	if err != nil {
		s.Log.Warn("clinic lookup degraded", "err", err)
	}
	writeJSON(w, http.StatusOK, list)
}

// bookingRequest carries the appointment fields; the timestamp is assigned
// server side.
type bookingRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Clinic  string `json:"clinic"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Clinic == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name and clinic are required"})
		return
	}

	b := domain.Booking{
		Timestamp: time.Now().UTC(),
		Name:      req.Name,
		Contact:   req.Contact,
		Clinic:    req.Clinic,
		Date:      req.Date,
		Time:      req.Time,
	}
	if err := s.Bookings.Append(b); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Bookings.All())
}

type gad7Request struct {
	Answers []int `json:"answers"`
}

func (s *Server) handleGAD7(w http.ResponseWriter, r *http.Request) {
	var req gad7Request
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := mentalhealth.ScoreGAD7(req.Answers)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type checkinRequest struct {
	Mood  int    `json:"mood"`
	Emoji string `json:"emoji"`
	Note  string `json:"note"`
}

func (s *Server) handleCheckin(w http.ResponseWriter, r *http.Request) {
	var req checkinRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := s.Checkins.CheckIn(req.Mood, req.Emoji, req.Note)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	ThreadID string `json:"thread_id"`
	Reply    string `json:"reply"`
}

func (s *Server) handleChatTurn(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")

	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	reply, err := s.Companion.Chat(r.Context(), threadID, req.Message)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{ThreadID: threadID, Reply: reply})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")

	history, err := s.Store.Load(r.Context(), threadID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if history == nil {
		history = []domain.Message{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleDeleteThread(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")
	if err := s.Store.Delete(r.Context(), threadID); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := s.Store.Threads(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if threads == nil {
		threads = []string{}
	}
	writeJSON(w, http.StatusOK, threads)
}
