package completion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RevalidatePath is the endpoint that invalidates the points-table tag.
const RevalidatePath = "/api/revalidate-points"

// HTTPRevalidator POSTs to a remote revalidate-points endpoint.
type HTTPRevalidator struct {
	url    string
	client *http.Client
}

// NewHTTPRevalidator targets baseURL + RevalidatePath.
func NewHTTPRevalidator(baseURL string) *HTTPRevalidator {
	return &HTTPRevalidator{
		url:    strings.TrimRight(baseURL, "/") + RevalidatePath,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *HTTPRevalidator) Revalidate(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, nil)
	if err != nil {
		return fmt.Errorf("build revalidate request: %w", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("send revalidate request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revalidate: unexpected status code: %d", resp.StatusCode)
	}
	return nil
}
