// Package geocode resolves GPS coordinates to addresses and measures
// distances for the punch location fences.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/ademilsodream/tcponto-app-sub002/retry"
)

// Address is a reverse-geocoded place description.
type Address struct {
	DisplayName string `json:"display_name"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

// Geocoder resolves coordinates to an address.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (Address, error)
}

// HTTPGeocoder talks to a Nominatim-style reverse geocoding endpoint.
type HTTPGeocoder struct {
	endpoint string
	client   *http.Client
	policy   retry.Policy
}

func NewHTTPGeocoder(endpoint string) *HTTPGeocoder {
	return &HTTPGeocoder{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
		policy:   retry.Default(),
	}
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		Country string `json:"country"`
	} `json:"address"`
}

func (g *HTTPGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (Address, error) {
	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	query.Set("lon", strconv.FormatFloat(lng, 'f', 6, 64))

	var addr Address
	err := g.policy.Do(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+query.Encode(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := g.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("geocoding endpoint returned %d", resp.StatusCode)
		}

		var body nominatimResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return fmt.Errorf("decoding geocoding response: %w", err)
		}

		city := body.Address.City
		if city == "" {
			city = body.Address.Town
		}
		if city == "" {
			city = body.Address.Village
		}
		addr = Address{DisplayName: body.DisplayName, City: city, Country: body.Address.Country}
		return nil
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Float64("lat", lat).Float64("lng", lng).
			Msg("reverse geocoding failed")
		return Address{}, err
	}
	return addr, nil
}
