// Package geocoder resolves textual addresses into geographic coordinates
// using a Nominatim-compatible HTTP API.
//
// Failures are returned as *models.HTTPError values carrying the exact
// status the HTTP layer must answer with, so callers pass them through
// without remapping.
package geocoder

import (
	"context"
	"net/http"
	"strconv"

	"github.com/placerhq/placer-server/internal/config"
	"github.com/placerhq/placer-server/internal/logger"
	"github.com/placerhq/placer-server/internal/utils"
	"github.com/placerhq/placer-server/models"
)

//go:generate mockgen -source=geocoder.go -destination=../mock/geocoder_mock.go -package=mock

// Geocoder resolves a free-text address into coordinates.
type Geocoder interface {
	GeocodeAddress(ctx context.Context, address string) (models.Location, error)
}

// searchResult is a single entry of the Nominatim /search response.
// Coordinates arrive as strings.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type nominatimGeocoder struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewNominatimGeocoder constructs a [Geocoder] backed by the Nominatim API
// configured in cfg.
func NewNominatimGeocoder(cfg config.Geocoder, log *logger.Logger) Geocoder {
	return &nominatimGeocoder{
		client: utils.NewOutboundHTTPClient(cfg.BaseURL, cfg.UserAgent, cfg.RequestTimeout),
		logger: log,
	}
}

// GeocodeAddress queries the /search endpoint and returns the coordinates
// of the best match.
//
// Returns *models.HTTPError with status 422 when the address resolves to
// nothing, and with status 500 when the service cannot be reached or
// answers with garbage.
func (g *nominatimGeocoder) GeocodeAddress(ctx context.Context, address string) (models.Location, error) {
	log := logger.FromContext(ctx)

	var results []searchResult
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":      address,
			"format": "json",
			"limit":  "1",
		}).
		SetResult(&results).
		Get("/search")
	if err != nil {
		log.Err(err).Str("func", "nominatimGeocoder.GeocodeAddress").Msg("geocoding request failed")
		return models.Location{}, models.NewHTTPError("Fetching coordinates failed, please try again", http.StatusInternalServerError)
	}

	if !resp.IsSuccess() {
		log.Error().
			Str("func", "nominatimGeocoder.GeocodeAddress").
			Int("status", resp.StatusCode()).
			Msg("geocoding service returned non-success status")
		return models.Location{}, models.NewHTTPError("Fetching coordinates failed, please try again", http.StatusInternalServerError)
	}

	if len(results) == 0 {
		return models.Location{}, models.NewHTTPError("Could not find location for the specified address", http.StatusUnprocessableEntity)
	}

	latitude, latErr := strconv.ParseFloat(results[0].Lat, 64)
	longitude, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		log.Error().
			Str("func", "nominatimGeocoder.GeocodeAddress").
			Str("lat", results[0].Lat).
			Str("lon", results[0].Lon).
			Msg("geocoding service returned unparsable coordinates")
		return models.Location{}, models.NewHTTPError("Fetching coordinates failed, please try again", http.StatusInternalServerError)
	}

	return models.Location{Latitude: latitude, Longitude: longitude}, nil
}
