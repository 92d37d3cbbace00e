package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pitchside/live-engine/internal/model"
)

// HTTPSource reads snapshots from a remote matches endpoint.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource polls url, which must serve the matches envelope.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{url: url, client: &http.Client{Timeout: timeout}}
}

type matchesEnvelope struct {
	Success bool          `json:"success"`
	Data    []model.Match `json:"data"`
	Error   string        `json:"error"`
}

func (s *HTTPSource) Matches(ctx context.Context) ([]model.Match, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	var env matchesEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode matches (status %d): %w", resp.StatusCode, err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, errors.New("matches endpoint reported failure: " + msg)
	}
	return env.Data, nil
}
