// Package scrape extracts live scores from third-party cricket pages.
//
// Scrapers are best effort. Missing DOM nodes become empty strings and
// unparseable scores leave ScrapedTeam.Parsed nil; only transport failures
// and unexpected HTTP statuses are reported as errors.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/pitchside/live-engine/internal/metrics"
	"github.com/pitchside/live-engine/internal/model"
	"github.com/pitchside/live-engine/internal/scoreline"
)

const (
	DefaultESPNURL = "https://www.espncricinfo.com/live-cricket-score"
	DefaultNDTVURL = "https://sports.ndtv.com/cricket/live-scores"
	DefaultTimeout = 30 * time.Second

	SourceESPN = "espn"
	SourceNDTV = "ndtv"

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

var (
	// ErrUnexpectedStatus is returned when a page responds with a non-2xx status.
	ErrUnexpectedStatus = errors.New("scrape: unexpected status")
	// ErrNoFrame is returned when the NDTV page carries no score iframe.
	ErrNoFrame = errors.New("scrape: score iframe not found")
)

// Config points the scrapers at their pages.
type Config struct {
	ESPNURL string
	NDTVURL string
	Timeout time.Duration
}

// Scraper fetches and parses live-score pages.
type Scraper struct {
	espnURL string
	ndtvURL string
	client  *http.Client
}

// New returns a Scraper. Empty fields in cfg take the package defaults.
func New(cfg Config) *Scraper {
	if cfg.ESPNURL == "" {
		cfg.ESPNURL = DefaultESPNURL
	}
	if cfg.NDTVURL == "" {
		cfg.NDTVURL = DefaultNDTVURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Scraper{
		espnURL: cfg.ESPNURL,
		ndtvURL: cfg.NDTVURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Combined is the result of scraping every source at once. A failing
// source contributes an Errors entry instead of failing the whole result.
type Combined struct {
	ESPN   []model.ScrapedMatch `json:"espn"`
	NDTV   []model.ScrapedMatch `json:"ndtv"`
	Errors map[string]string    `json:"errors,omitempty"`
}

// All scrapes both sources concurrently.
func (s *Scraper) All(ctx context.Context) Combined {
	var (
		out              Combined
		espnErr, ndtvErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.ESPN, espnErr = s.ESPN(gctx)
		return nil
	})
	g.Go(func() error {
		out.NDTV, ndtvErr = s.NDTV(gctx)
		return nil
	})
	g.Wait()

	if espnErr != nil || ndtvErr != nil {
		out.Errors = make(map[string]string, 2)
		if espnErr != nil {
			out.Errors[SourceESPN] = espnErr.Error()
		}
		if ndtvErr != nil {
			out.Errors[SourceNDTV] = ndtvErr.Error()
		}
	}
	if out.ESPN == nil {
		out.ESPN = []model.ScrapedMatch{}
	}
	if out.NDTV == nil {
		out.NDTV = []model.ScrapedMatch{}
	}
	return out
}

func (s *Scraper) fetch(ctx context.Context, source, url string) (*goquery.Document, error) {
	doc, err := s.get(ctx, url)
	result := "ok"
	if err != nil {
		result = "error"
		slog.Warn("scrape fetch failed", "source", source, "url", url, "err", err)
	}
	metrics.ScrapeRequests.WithLabelValues(source, result).Inc()
	return doc, err
}

func (s *Scraper) get(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

// text returns the trimmed text of the first match of sel, or "".
func text(s *goquery.Selection, sel string) string {
	return strings.TrimSpace(s.Find(sel).First().Text())
}

// parsed reads score and overs strings into a MatchScore when it can.
func parsed(score, overs string) *model.MatchScore {
	if score == "" {
		return nil
	}
	ms, err := scoreline.ParseTeamScore(score, overs)
	if err != nil {
		return nil
	}
	return ms
}
