package scrape_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/live-engine/internal/model"
	"github.com/pitchside/live-engine/internal/scrape"
)

const espnPage = `<html><body>
<div class="ds-mb-4">
  <h2><a href="/series/ipl"><span>Indian Premier League</span></a></h2>
  <div class="ds-no-tap-higlight">
    <div class="ci-team-score ds-flex">
      <p>Chennai Super Kings</p><span>(20 ov, T:187)</span><strong>186/6</strong>
    </div>
    <div class="ci-team-score ds-flex ds-opacity-50">
      <p>Mumbai Indians</p><span>(19.2/20 ov)</span><strong>172</strong>
    </div>
    <p class="ds-text-tight-s"><span>CSK won by 14 runs</span></p>
  </div>
  <div class="ds-no-tap-higlight">
    <div class="ci-team-score"><p>Delhi Capitals</p></div>
    <div class="ci-team-score"><p>Rajasthan Royals</p></div>
    <p class="ds-text-tight-s"><span>Match starts at 19:30</span></p>
  </div>
</div>
<div class="ds-mb-4">
  <div class="ds-no-tap-higlight">
    <div class="ci-team-score"><p>England</p><strong>245 &amp; 180/3</strong><span>(52.4 ov)</span></div>
  </div>
</div>
</body></html>`

const ndtvPage = `<html><body><h1>Live Scores</h1><iframe src="/widget/scores.html?v=2"></iframe></body></html>`

const ndtvFrame = `<html><body>
<div class="sp-scr_wrp">
  <div class="description">2nd Match, Indian Premier League 2026</div>
  <div class="scr_tm-wrp"><span class="scr_tm-nm">RCB</span><span class="scr_tm-run">201/4 (20)</span></div>
  <div class="scr_tm-wrp"><span class="scr_tm-nm">KKR</span><span class="scr_tm-run">46/1 (4.5)</span></div>
</div>
<div class="sp-scr_wrp">
  <div class="scr_tm-wrp"><span class="scr_tm-nm">SRH</span><span class="scr_tm-run">Yet to bat</span></div>
</div>
</body></html>`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/live-cricket-score", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(espnPage))
	})
	mux.HandleFunc("/cricket/live-scores", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ndtvPage))
	})
	mux.HandleFunc("/widget/scores.html", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("v"))
		w.Write([]byte(ndtvFrame))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/no-frame", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>nothing here</body></html>`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newScraper(srv *httptest.Server, espnPath, ndtvPath string) *scrape.Scraper {
	return scrape.New(scrape.Config{
		ESPNURL: srv.URL + espnPath,
		NDTVURL: srv.URL + ndtvPath,
		Timeout: 2 * time.Second,
	})
}

func TestESPN(t *testing.T) {
	srv := newServer(t)
	got, err := newScraper(srv, "/live-cricket-score", "/cricket/live-scores").ESPN(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	first := got[0]
	assert.Equal(t, "Indian Premier League", first.Series)
	assert.Equal(t, "CSK won by 14 runs", first.Result)
	require.Len(t, first.Teams, 2)

	csk, mi := first.Teams[0], first.Teams[1]
	assert.Equal(t, "Chennai Super Kings", csk.TeamName)
	assert.Equal(t, "186/6", csk.Score)
	assert.Equal(t, "(20 ov, T:187)", csk.Overs)
	assert.True(t, csk.IsWinner)
	assert.Equal(t, &model.MatchScore{Runs: 186, Wickets: 6, Overs: 20}, csk.Parsed)

	assert.False(t, mi.IsWinner)
	assert.Equal(t, &model.MatchScore{Runs: 172, Wickets: 10, Overs: 19.2}, mi.Parsed)

	upcoming := got[1]
	assert.Equal(t, "Match starts at 19:30", upcoming.Result)
	assert.Equal(t, "", upcoming.Teams[0].Score)
	assert.Nil(t, upcoming.Teams[0].Parsed)

	test := got[2]
	assert.Equal(t, "", test.Series)
	assert.Equal(t, &model.MatchScore{Runs: 180, Wickets: 3, Overs: 52.4}, test.Teams[0].Parsed)
}

func TestNDTV_FollowsFrame(t *testing.T) {
	srv := newServer(t)
	got, err := newScraper(srv, "/live-cricket-score", "/cricket/live-scores").NDTV(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "2nd Match, Indian Premier League 2026", got[0].Description)
	require.Len(t, got[0].Teams, 2)
	assert.Equal(t, "RCB", got[0].Teams[0].TeamName)
	assert.Equal(t, "201/4 (20)", got[0].Teams[0].Score)
	assert.Equal(t, &model.MatchScore{Runs: 201, Wickets: 4, Overs: 20}, got[0].Teams[0].Parsed)
	assert.Equal(t, &model.MatchScore{Runs: 46, Wickets: 1, Overs: 4.5}, got[0].Teams[1].Parsed)

	assert.Equal(t, "", got[1].Description)
	assert.Nil(t, got[1].Teams[0].Parsed)
}

func TestNDTV_NoFrame(t *testing.T) {
	srv := newServer(t)
	_, err := newScraper(srv, "/live-cricket-score", "/no-frame").NDTV(context.Background())
	assert.ErrorIs(t, err, scrape.ErrNoFrame)
}

func TestUnexpectedStatus(t *testing.T) {
	srv := newServer(t)
	_, err := newScraper(srv, "/broken", "/broken").ESPN(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, scrape.ErrUnexpectedStatus))
	assert.Contains(t, err.Error(), "503")
}

func TestEmptyPage(t *testing.T) {
	srv := newServer(t)
	got, err := newScraper(srv, "/no-frame", "/no-frame").ESPN(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAll_PartialFailure(t *testing.T) {
	srv := newServer(t)
	res := newScraper(srv, "/live-cricket-score", "/broken").All(context.Background())

	assert.Len(t, res.ESPN, 3)
	assert.NotNil(t, res.NDTV)
	assert.Empty(t, res.NDTV)
	require.Contains(t, res.Errors, scrape.SourceNDTV)
	assert.NotContains(t, res.Errors, scrape.SourceESPN)
}

func TestAll_Success(t *testing.T) {
	srv := newServer(t)
	res := newScraper(srv, "/live-cricket-score", "/cricket/live-scores").All(context.Background())
	assert.Len(t, res.ESPN, 3)
	assert.Len(t, res.NDTV, 2)
	assert.Nil(t, res.Errors)
}
