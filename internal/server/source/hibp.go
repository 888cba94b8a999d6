package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sentinelx/breachwatch/internal/breach"
	"github.com/sentinelx/breachwatch/internal/common"
)

const (
	defaultBaseURL = "https://haveibeenpwned.com/api/v3"

	// hibpMinInterval is the minimum spacing between requests; the public
	// API rate-limits keys well below one request per second.
	hibpMinInterval = 1500 * time.Millisecond
)

// HIBPClient queries the Have I Been Pwned v3 breachedaccount endpoint.
// Requests are spaced at least hibpMinInterval apart across goroutines.
type HIBPClient struct {
	apiKey      string
	userAgent   string
	baseURL     string
	httpClient  *http.Client
	minInterval time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

func NewHIBPClient(apiKey string, userAgent string, timeout time.Duration) *HIBPClient {
	return &HIBPClient{
		apiKey:      apiKey,
		userAgent:   userAgent,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: timeout},
		minInterval: hibpMinInterval,
	}
}

// throttle blocks until the minimum spacing since the previous request has
// elapsed or the context is cancelled.
func (c *HIBPClient) throttle(ctx context.Context) error {
	c.mu.Lock()
	now := time.Now()
	wait := c.lastRequest.Add(c.minInterval).Sub(now)
	if wait < 0 {
		wait = 0
	}
	// reserve this request's slot before unlocking
	c.lastRequest = now.Add(wait)
	c.mu.Unlock()

	if wait == 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Lookup fetches the full (non-truncated) breach list for the address.
// A 404 means the address is clean and is not an error. Auth failures,
// rate limiting, server errors, and transport failures all map to
// common.ErrSourceUnavailable so the caller can fall back.
func (c *HIBPClient) Lookup(ctx context.Context, email string) ([]breach.RawEntry, error) {

	if err := c.throttle(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnavailable, err)
	}

	endpoint := c.baseURL + "/breachedaccount/" + url.PathEscape(email) + "?truncateResponse=false"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnavailable, err)
	}
	req.Header.Set("hibp-api-key", c.apiKey)
	req.Header.Set("user-agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var entries []breach.RawEntry
		if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
			return nil, fmt.Errorf("%w: decoding response: %v", common.ErrSourceUnavailable, err)
		}
		return entries, nil
	case http.StatusNotFound:
		// not found in any breach
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", common.ErrSourceUnavailable, resp.StatusCode)
	}
}
