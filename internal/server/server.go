// Package server exposes the pipeline over HTTP: player lookup, insight
// generation, the year-end report and mastery standings.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"lol-insights/internal/middleware"
	"lol-insights/internal/riot"
	"lol-insights/internal/service"
)

type Server struct {
	svc    *service.InsightsService
	logger zerolog.Logger
}

func NewServer(svc *service.InsightsService, logger zerolog.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}

// Handler builds the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(s.logger))
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Recover)

	r.Get("/api/health", s.handleHealth)
	r.Route("/api/player", func(r chi.Router) {
		r.Post("/lookup", s.handleLookup)
		r.Post("/{puuid}/insights", s.handleInsights)
		r.Post("/{puuid}/report", s.handleReport)
		r.Get("/{puuid}/masteries", s.handleMasteries)
	})

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}).Handler(r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

type lookupRequest struct {
	GameName string `json:"game_name"`
	TagLine  string `json:"tag_line"`
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.GameName == "" || req.TagLine == "" {
		writeError(w, http.StatusBadRequest, "game_name and tag_line are required")
		return
	}

	identity, err := s.svc.Lookup(r.Context(), req.GameName, req.TagLine)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, identity)
}

type insightsRequest struct {
	PlayerName string `json:"player_name"`
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	puuid := chi.URLParam(r, "puuid")
	req := decodeOptional[insightsRequest](r)

	bundle, err := s.svc.GenerateInsights(r.Context(), puuid, req.PlayerName)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	puuid := chi.URLParam(r, "puuid")
	req := decodeOptional[insightsRequest](r)

	report, err := s.svc.GenerateReport(r.Context(), puuid, req.PlayerName)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleMasteries(w http.ResponseWriter, r *http.Request) {
	puuid := chi.URLParam(r, "puuid")

	entries, err := s.svc.Masteries(r.Context(), puuid)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// writeServiceError maps pipeline errors to HTTP statuses: missing players
// and empty histories are 404, upstream credential or availability problems
// are 502, the rest 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	switch {
	case errors.Is(err, service.ErrNoHistory):
		writeError(w, http.StatusNotFound, "no match history found")
	case riot.IsNotFound(err):
		writeError(w, http.StatusNotFound, "player not found")
	case riot.IsAuthInvalid(err):
		logger.Error().Err(err).Msg("upstream credential rejected")
		writeError(w, http.StatusBadGateway, "upstream authentication failed")
	case riot.IsRateLimited(err):
		writeError(w, http.StatusBadGateway, "upstream rate limit exceeded")
	default:
		var apiErr *riot.APIError
		if errors.As(err, &apiErr) {
			logger.Error().Err(err).Msg("upstream request failed")
			writeError(w, http.StatusBadGateway, "upstream request failed")
			return
		}
		logger.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeOptional tolerates an empty or absent body; optional request fields
// fall back to their zero values.
func decodeOptional[T any](r *http.Request) T {
	var req T
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	return req
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
