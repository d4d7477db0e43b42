package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"visit-routing-service/internal/domain"
	"visit-routing-service/internal/metrics"
	"visit-routing-service/internal/platform/obs"
	"visit-routing-service/internal/ports"
)

// GoogleDistanceProvider implements DistanceProvider against the Google
// Directions API.
//
// It coordinates:
//   - Persistent travel-time caching (optional)
//   - External API calls with retry/backoff and rate limiting
//   - Per-pair degradation to a geodesic estimate, never a failed lookup
//
// The provider is safe for concurrent use.
type GoogleDistanceProvider struct {
	session  *http.Client
	apiKey   string
	baseURL  string
	limiter  *rate.Limiter
	fallback ports.DistanceProvider
	cache    ports.TravelTimeCache
}

func NewGoogleDistanceProvider(
	apiKey string,
	fallback ports.DistanceProvider,
	cache ports.TravelTimeCache,
) (*GoogleDistanceProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google api key is empty")
	}
	if fallback == nil {
		return nil, errors.New("google provider requires a fallback estimator")
	}

	return &GoogleDistanceProvider{
		session:  &http.Client{Timeout: 10 * time.Second},
		apiKey:   apiKey,
		baseURL:  "https://maps.googleapis.com/maps/api/directions/json",
		limiter:  rate.NewLimiter(rate.Limit(40), 10),
		fallback: fallback,
		cache:    cache,
	}, nil
}

// TravelTime returns driving minutes for one coordinate pair. Any external
// failure (network error, non-OK API status, malformed payload) degrades to
// the fallback estimator for this pair only.
func (g *GoogleDistanceProvider) TravelTime(ctx context.Context, origin, destination domain.Coordinates) (_ float64, err error) {
	defer obs.Time(ctx, "google.TravelTime")(&err)

	if g.cache != nil {
		minutes, hit, cacheErr := g.cache.Get(ctx, origin, destination)
		if cacheErr != nil {
			log.Printf("op=google.TravelTime cache_get_err=%v", cacheErr)
		} else if hit {
			return minutes, nil
		}
	}

	minutes, fetchErr := g.fetchDuration(ctx, origin, destination)
	if fetchErr != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		log.Printf("op=google.TravelTime fallback=geodesic from=%s to=%s err=%v", origin.Key(), destination.Key(), fetchErr)
		metrics.DistanceFallbacks.Inc()
		return g.fallback.TravelTime(ctx, origin, destination)
	}

	if g.cache != nil {
		if cacheErr := g.cache.Put(ctx, origin, destination, minutes); cacheErr != nil {
			log.Printf("op=google.TravelTime cache_put_err=%v", cacheErr)
		}
	}

	return minutes, nil
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

func (g *GoogleDistanceProvider) fetchDuration(ctx context.Context, origin, destination domain.Coordinates) (float64, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	endpoint := g.baseURL + "?" + url.Values{
		"origin":      {origin.Key()},
		"destination": {destination.Key()},
		"mode":        {"driving"},
		"key":         {g.apiKey},
	}.Encode()

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return 0, fmt.Errorf("decode directions response: %w", err)
	}

	if dr.Status != "OK" {
		return 0, fmt.Errorf("directions status %q", dr.Status)
	}
	if len(dr.Routes) == 0 || len(dr.Routes[0].Legs) == 0 {
		return 0, errors.New("directions response has no route legs")
	}

	// First route, first leg; duration arrives in seconds.
	return float64(dr.Routes[0].Legs[0].Duration.Value) / 60.0, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (g *GoogleDistanceProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := g.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx responses)
// using exponential backoff while respecting context cancellation.
func (g *GoogleDistanceProvider) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := g.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
