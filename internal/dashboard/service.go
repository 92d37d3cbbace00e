// Package dashboard provides the HTTP handlers behind the live dashboard:
// simulated match state, standings, schedule, cache revalidation, scraped
// live scores and the recent event feed.
package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/pitchside/live-engine/internal/completion"
	"github.com/pitchside/live-engine/internal/events"
	"github.com/pitchside/live-engine/internal/metrics"
	"github.com/pitchside/live-engine/internal/model"
	"github.com/pitchside/live-engine/internal/scrape"
	"github.com/pitchside/live-engine/internal/simulator"
	"github.com/pitchside/live-engine/internal/standings"
	"github.com/pitchside/live-engine/internal/store"
)

// Reference is the reference data the dashboard serves and invalidates.
type Reference interface {
	store.ReferenceStore
	store.TagInvalidator
}

// Scraper fetches third-party live scores.
type Scraper interface {
	ESPN(ctx context.Context) ([]model.ScrapedMatch, error)
	NDTV(ctx context.Context) ([]model.ScrapedMatch, error)
	All(ctx context.Context) scrape.Combined
}

// Deps are the collaborators of a Service. Notifier, Scraper and History
// may be nil; the routes depending on them then report the feature as
// unavailable.
type Deps struct {
	Simulator     *simulator.Simulator
	Notifier      *completion.Notifier
	Reference     Reference
	Scraper       Scraper
	History       *events.History
	RevalidateTag string
	Now           func() time.Time
}

// Service serves the dashboard API.
type Service struct {
	sim      *simulator.Simulator
	notifier *completion.Notifier
	ref      Reference
	scraper  Scraper
	history  *events.History
	tag      string
	now      func() time.Time
}

// NewService creates a dashboard service.
func NewService(d Deps) *Service {
	if d.RevalidateTag == "" {
		d.RevalidateTag = store.TagPointsTable
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Service{
		sim:      d.Simulator,
		notifier: d.Notifier,
		ref:      d.Reference,
		scraper:  d.Scraper,
		history:  d.History,
		tag:      d.RevalidateTag,
		now:      d.Now,
	}
}

// --- Response types ---

// Envelope wraps every dashboard data response.
type Envelope struct {
	Success     bool      `json:"success"`
	Data        any       `json:"data,omitempty"`
	LastUpdated time.Time `json:"lastUpdated,omitzero"`
	Error       string    `json:"error,omitempty"`
}

// RevalidateResponse is returned by POST /api/revalidate-points.
type RevalidateResponse struct {
	Revalidated bool   `json:"revalidated"`
	Now         int64  `json:"now"`
	Error       string `json:"error,omitempty"`
}

// ScrapeResponse is returned by the single-source live-data routes.
type ScrapeResponse struct {
	Matches []model.ScrapedMatch `json:"matches,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// --- Match progression ---

// Tick advances the simulator and feeds the snapshot to the completion
// notifier. It backs GET /api/matches and the in-process event poller.
func (s *Service) Tick() []model.Match {
	matches := s.sim.Advance(s.now())
	if s.notifier != nil {
		s.notifier.OnSnapshot(matches)
	}
	return matches
}

// Source exposes Tick as an events.Source.
func (s *Service) Source() events.Source {
	return events.SourceFunc(func(context.Context) ([]model.Match, error) {
		return s.Tick(), nil
	})
}

// --- HTTP Handlers ---

// GetMatches handles GET /api/matches
func (s *Service) GetMatches(w http.ResponseWriter, r *http.Request) {
	matches := s.Tick()
	writeData(w, matches, s.now())
}

// GetPointsTable handles GET /api/points-table
func (s *Service) GetPointsTable(w http.ResponseWriter, r *http.Request) {
	entries, err := s.ref.PointsTable(r.Context())
	if err != nil {
		slog.Error("points table read failed", "err", err)
		writeError(w, "Failed to fetch points table", http.StatusInternalServerError)
		return
	}
	writeData(w, standings.Rank(entries), s.now())
}

// GetSchedule handles GET /api/schedule
func (s *Service) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := s.ref.Schedule(r.Context())
	if err != nil {
		slog.Error("schedule read failed", "err", err)
		writeError(w, "Failed to fetch schedule", http.StatusInternalServerError)
		return
	}
	writeData(w, schedule, s.now())
}

// RevalidatePoints handles POST /api/revalidate-points
func (s *Service) RevalidatePoints(w http.ResponseWriter, r *http.Request) {
	now := s.now().UnixMilli()
	if err := s.ref.InvalidateTag(r.Context(), s.tag); err != nil {
		slog.Error("tag invalidation failed", "tag", s.tag, "err", err)
		metrics.Revalidations.WithLabelValues("invalidate_error").Inc()
		writeJSON(w, http.StatusInternalServerError, RevalidateResponse{Now: now, Error: err.Error()})
		return
	}
	slog.Info("cache tag revalidated", "tag", s.tag)
	writeJSON(w, http.StatusOK, RevalidateResponse{Revalidated: true, Now: now})
}

// LiveData handles GET /api/live-data
func (s *Service) LiveData(w http.ResponseWriter, r *http.Request) {
	s.scrapeOne(w, r, (Scraper).ESPN)
}

// LiveDataV2 handles GET /api/live-data-v2
func (s *Service) LiveDataV2(w http.ResponseWriter, r *http.Request) {
	s.scrapeOne(w, r, (Scraper).NDTV)
}

func (s *Service) scrapeOne(w http.ResponseWriter, r *http.Request, fn func(Scraper, context.Context) ([]model.ScrapedMatch, error)) {
	if s.scraper == nil {
		writeJSON(w, http.StatusServiceUnavailable, ScrapeResponse{Error: "scraping is disabled"})
		return
	}
	matches, err := fn(s.scraper, r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, ScrapeResponse{Error: err.Error()})
		return
	}
	if matches == nil {
		matches = []model.ScrapedMatch{}
	}
	writeJSON(w, http.StatusOK, ScrapeResponse{Matches: matches})
}

// LiveDataAll handles GET /api/live-data/all
func (s *Service) LiveDataAll(w http.ResponseWriter, r *http.Request) {
	if s.scraper == nil {
		writeJSON(w, http.StatusServiceUnavailable, ScrapeResponse{Error: "scraping is disabled"})
		return
	}
	writeJSON(w, http.StatusOK, s.scraper.All(r.Context()))
}

// RecentEvents handles GET /api/events?limit=n
func (s *Service) RecentEvents(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, "event history is disabled", http.StatusServiceUnavailable)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	writeData(w, s.history.Recent(limit), s.now())
}

// --- Helpers ---

func writeData(w http.ResponseWriter, data any, at time.Time) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data, LastUpdated: at.UTC()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, Envelope{Success: false, Error: message})
}
