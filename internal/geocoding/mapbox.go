package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/localmart/localmart-backend/pkg/errors"
	"github.com/localmart/localmart-backend/pkg/geo"
	"github.com/localmart/localmart-backend/pkg/metrics"
)

const (
	defaultBaseURL             = "https://api.mapbox.com/geocoding/v5/mapbox.places"
	providerName               = "mapbox"
	errorBodyReadLimit   int64 = 1024
	defaultClientTimeout       = 10 * time.Second
)

var (
	errTokenRequired = errors.New("mapbox access token is required")
)

// Mapbox calls the Mapbox forward-geocoding API. It resolves an address to the
// provider's most relevant candidate.
type Mapbox struct {
	httpClient *http.Client
	baseURL    string
	token      string
	metrics    *metrics.GeocodeMetrics
}

// Option configures optional client behavior.
type Option func(*Mapbox)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Mapbox) {
		if client != nil {
			m.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured geocoding base URL.
func WithBaseURL(baseURL string) Option {
	return func(m *Mapbox) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			m.baseURL = trimmed
		}
	}
}

// WithMetrics attaches geocoder metrics to the client.
func WithMetrics(gm *metrics.GeocodeMetrics) Option {
	return func(m *Mapbox) {
		m.metrics = gm
	}
}

// NewMapbox builds the Mapbox geocoder given an access token.
func NewMapbox(token string, opts ...Option) (*Mapbox, error) {
	trimmedToken := strings.TrimSpace(token)
	if trimmedToken == "" {
		return nil, errTokenRequired
	}

	client := &Mapbox{
		token:      trimmedToken,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client, nil
}

// Geocode resolves the address to the provider's first candidate. The first
// candidate is the provider's relevance winner; no further ranking happens here.
func (m *Mapbox) Geocode(ctx context.Context, address string) (Location, error) {
	if m == nil {
		return Location{}, pkgerrors.New(pkgerrors.CodeGeocode, "geocoder not configured")
	}
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return Location{}, pkgerrors.New(pkgerrors.CodeGeocode, "address could not be geocoded")
	}

	start := time.Now()
	loc, err := m.geocode(ctx, trimmed)
	m.metrics.ObserveDuration(providerName, time.Since(start))
	if err != nil {
		m.metrics.IncFailure(providerName)
		return Location{}, err
	}
	m.metrics.IncSuccess(providerName)
	return loc, nil
}

func (m *Mapbox) geocode(ctx context.Context, address string) (Location, error) {
	requestURL := fmt.Sprintf("%s/%s.json?access_token=%s&limit=1",
		strings.TrimRight(m.baseURL, "/"),
		url.PathEscape(address),
		url.QueryEscape(m.token),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return Location{}, pkgerrors.Wrap(pkgerrors.CodeGeocode, err, "build geocoding request")
	}

	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		return Location{}, pkgerrors.Wrap(pkgerrors.CodeGeocode, err, "execute geocoding request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return Location{}, pkgerrors.Wrap(pkgerrors.CodeGeocode, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "geocoding request failed")
	}

	var apiResp struct {
		Features []struct {
			Center    []float64 `json:"center"`
			PlaceName string    `json:"place_name"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return Location{}, pkgerrors.Wrap(pkgerrors.CodeGeocode, err, "decode geocoding response")
	}

	if len(apiResp.Features) == 0 {
		return Location{}, pkgerrors.New(pkgerrors.CodeGeocode, "address could not be geocoded")
	}

	center := apiResp.Features[0].Center
	if len(center) < 2 {
		return Location{}, pkgerrors.New(pkgerrors.CodeGeocode, "geocoding response missing coordinates")
	}

	// Mapbox centers are [longitude, latitude].
	loc := Location{Longitude: center[0], Latitude: center[1]}
	if !geo.ValidCoordinates(loc.Latitude, loc.Longitude) {
		return Location{}, pkgerrors.New(pkgerrors.CodeGeocode, "geocoding response out of range")
	}
	return loc, nil
}
