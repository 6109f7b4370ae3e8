// Package travelpayouts implements the city directory and fare search ports
// against the Travelpayouts data API and the Aviasales prices endpoint.
package travelpayouts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/askarpov/farebot/internal/logging"
	"github.com/askarpov/farebot/internal/metrics"
	"github.com/askarpov/farebot/pkg/domain"
)

const (
	defaultBaseURL = "https://api.travelpayouts.com"

	citiesPath = "/data/en/cities.json"
	pricesPath = "/aviasales/v3/prices_for_dates"
)

// Client talks to the Travelpayouts API. It implements both ports.CityResolver
// and ports.FareSearch; the two concerns share one access token and one HTTP
// client, mirroring how the provider exposes them.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	logger  *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API host, used by tests to point at a local server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient substitutes the HTTP client (and with it the timeout).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger configures the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client authenticated with the given access token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: defaultBaseURL,
		token:   token,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type cityEntry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Resolve looks the city up in the provider directory by exact name,
// case-insensitively. Returns domain.ErrCityNotFound when nothing matches.
func (c *Client) Resolve(ctx context.Context, cityName string) (string, error) {
	timer := time.Now()
	defer func() {
		metrics.UpstreamSeconds.WithLabelValues("resolve").Observe(time.Since(timer).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+citiesPath, nil)
	if err != nil {
		return "", fmt.Errorf("build cities request: %w", err)
	}
	req.Header.Set("X-Access-Token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch city directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("city directory: unexpected status %d", resp.StatusCode)
	}

	var cities []cityEntry
	if err := json.NewDecoder(resp.Body).Decode(&cities); err != nil {
		return "", fmt.Errorf("decode city directory: %w", err)
	}

	for _, city := range cities {
		if strings.EqualFold(city.Name, strings.TrimSpace(cityName)) {
			return city.Code, nil
		}
	}
	return "", fmt.Errorf("%q: %w", cityName, domain.ErrCityNotFound)
}

type pricesResponse struct {
	Success bool `json:"success"`
	Data    []struct {
		Airline      string  `json:"airline"`
		FlightNumber string  `json:"flight_number"`
		DepartureAt  string  `json:"departure_at"`
		ReturnAt     string  `json:"return_at"`
		DurationTo   int     `json:"duration_to"`
		DurationBack int     `json:"duration_back"`
		Price        float64 `json:"price"`
		Link         string  `json:"link"`
	} `json:"data"`
}

// Search queries prices_for_dates for round-trip, direct-only itineraries
// sorted by ascending price. An empty result list is returned as-is.
func (c *Client) Search(ctx context.Context, q domain.FareQuery) ([]domain.ItineraryCandidate, error) {
	timer := time.Now()
	defer func() {
		metrics.UpstreamSeconds.WithLabelValues("search").Observe(time.Since(timer).Seconds())
	}()

	params := url.Values{
		"origin":       {q.Origin},
		"destination":  {q.Destination},
		"departure_at": {q.DepartDate.Format(time.DateOnly)},
		"return_at":    {q.ReturnDate.Format(time.DateOnly)},
		"currency":     {q.Currency},
		"sorting":      {"price"},
		"one_way":      {"false"},
		"direct":       {"true"},
		"limit":        {strconv.Itoa(q.Limit)},
		"token":        {c.token},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pricesPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build prices request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("prices: unexpected status %d", resp.StatusCode)
	}

	var body pricesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode prices: %w", err)
	}

	candidates := make([]domain.ItineraryCandidate, 0, len(body.Data))
	for _, f := range body.Data {
		candidates = append(candidates, domain.ItineraryCandidate{
			Airline:      f.Airline,
			FlightNumber: f.FlightNumber,
			DepartureAt:  f.DepartureAt,
			ReturnAt:     f.ReturnAt,
			DurationTo:   f.DurationTo,
			DurationBack: f.DurationBack,
			Price:        f.Price,
			Link:         f.Link,
		})
	}
	return candidates, nil
}
