package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/platform/obs"
	"trip-route-service/internal/ports"

	"github.com/rs/zerolog/log"
)

const planRoutePath = "/api/plan-route/"

// Client implements ports.TripPlanner against the external plan-route
// (routing + HOS simulation) service.
//
// It coordinates:
//   - Request encoding ([lat, lng] pairs, ISO start time)
//   - Optional plan caching keyed by request fingerprint
//   - External API calls with retry/backoff
//   - Response parsing into typed domain values
//
// The client is safe for concurrent use.
type Client struct {
	session        *http.Client
	baseURL        string
	cache          ports.PlanCache
	maxAttempts    int
	initialBackoff time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.session = hc }
}

// WithRetry sets the attempt budget and first backoff delay.
func WithRetry(maxAttempts int, initialBackoff time.Duration) Option {
	return func(c *Client) {
		if maxAttempts > 0 {
			c.maxAttempts = maxAttempts
		}
		if initialBackoff > 0 {
			c.initialBackoff = initialBackoff
		}
	}
}

// NewClient builds a client for the service at baseURL. cache may be nil.
func NewClient(
	baseURL string,
	timeout time.Duration,
	cache ports.PlanCache,
	opts ...Option,
) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("plan-route base url %q must be absolute", baseURL)
	}

	c := &Client{
		session:        &http.Client{Timeout: timeout},
		baseURL:        strings.TrimRight(u.String(), "/"),
		cache:          cache,
		maxAttempts:    4,
		initialBackoff: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// PlanTrip returns the route and HOS schedule for req.
// Upstream 4xx responses other than 429 are returned as *ports.PlannerRejectedError.
func (c *Client) PlanTrip(ctx context.Context, req domain.TripRequest) (_ *domain.TripPlan, err error) {
	defer obs.Time(ctx, "planner.PlanTrip")(&err)

	key, err := Fingerprint(req)
	if err != nil {
		return nil, err
	}

	// Check the plan cache before calling the simulation service.
	if c.cache != nil {
		plan, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("plan cache read failed")
		} else if ok {
			return plan, nil
		}
	}

	plan, err := c.fetchPlan(ctx, newPlanRequest(req))
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, plan); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("plan cache write failed")
		}
	}

	return plan, nil
}

func (c *Client) fetchPlan(ctx context.Context, pr planRequest) (*domain.TripPlan, error) {
	payload, err := json.Marshal(pr)
	if err != nil {
		return nil, fmt.Errorf("marshal plan request: %w", err)
	}

	endpoint := c.baseURL + planRoutePath

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code >= 400 && se.Code < 500 && se.Code != http.StatusTooManyRequests {
			return nil, &ports.PlannerRejectedError{Message: se.Message()}
		}
		return nil, fmt.Errorf("plan-route request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read plan response: %w", err)
	}

	plan, err := DecodePlan(body)
	if err != nil {
		return nil, err
	}

	return plan, nil
}
