// Package overpass queries the OpenStreetMap Overpass API for medical
// facilities near a coordinate.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/afyabot/afyabot/internal/config"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
	"github.com/afyabot/afyabot/pkg/errors"
)

// Facility is one medical facility returned by the lookup.
type Facility struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
}

// Client calls the Overpass interpreter endpoint.
type Client struct {
	endpoint     string
	searchRadius int
	httpClient   *http.Client
	logger       logging.Logger
}

// NewClient builds a Client from config.
func NewClient(cfg config.OverpassConfig, log logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:     cfg.Endpoint,
		searchRadius: cfg.SearchRadius,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       log.Named("overpass"),
	}
}

// overpassResponse mirrors the Overpass JSON envelope.
type overpassResponse struct {
	Elements []struct {
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// FindFacilities returns hospitals, clinics, and healthcare nodes within the
// configured radius of (lat, lng). Nodes without coordinates are skipped;
// nodes without a name get a generic one.
func (c *Client) FindFacilities(ctx context.Context, lat, lng float64) ([]Facility, error) {
	query := fmt.Sprintf(`[out:json];
(
  node["amenity"="hospital"](around:%d,%f,%f);
  node["amenity"="clinic"](around:%d,%f,%f);
  node["healthcare"](around:%d,%f,%f);
);
out body;`,
		c.searchRadius, lat, lng,
		c.searchRadius, lat, lng,
		c.searchRadius, lat, lng)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
		strings.NewReader(query))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeLookupUnavailable, "failed to build overpass request")
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeLookupUnavailable, "overpass request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("overpass returned non-200",
			logging.Int("status", resp.StatusCode),
			logging.String("body", string(body)))
		return nil, errors.New(errors.ErrCodeLookupUnavailable,
			fmt.Sprintf("overpass returned status %d", resp.StatusCode))
	}

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeLookupUnavailable, "failed to decode overpass response")
	}

	facilities := make([]Facility, 0, len(parsed.Elements))
	for _, el := range parsed.Elements {
		if el.Lat == 0 && el.Lon == 0 {
			continue
		}
		f := Facility{
			Name:    el.Tags["name"],
			Lat:     el.Lat,
			Lon:     el.Lon,
			Address: el.Tags["addr:street"],
			Phone:   el.Tags["phone"],
		}
		if f.Name == "" {
			f.Name = "Medical Facility"
		}
		if f.Address == "" {
			f.Address = "Address unavailable"
		}
		facilities = append(facilities, f)
	}
	return facilities, nil
}
