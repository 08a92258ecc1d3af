package geocoding

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Shaloh69/autohub-be/internal/util"
	"resty.dev/v3"
)

// Address is the resolved location of a coordinate pair, using the
// Philippine address hierarchy.
type Address struct {
	City     string
	Province string
	Region   string
	Barangay string
}

type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (Address, error)
	ForwardGeocode(ctx context.Context, query string) (lat, lng float64, err error)
}

// NominatimGeocoder resolves addresses against an OpenStreetMap Nominatim
// endpoint. Nominatim's usage policy requires an identifying User-Agent.
type NominatimGeocoder struct {
	client  *resty.Client
	baseURL string
}

func NewNominatimGeocoder(config util.Config) *NominatimGeocoder {
	client := resty.New().
		SetHeader("User-Agent", config.GeocodingUserAgent)

	return &NominatimGeocoder{
		client:  client,
		baseURL: config.GeocodingBaseURL,
	}
}

type nominatimReverseResponse struct {
	Address struct {
		Suburb  string `json:"suburb"`
		Village string `json:"village"`
		City    string `json:"city"`
		Town    string `json:"town"`
		State   string `json:"state"`
		Region  string `json:"region"`
	} `json:"address"`
}

func (g *NominatimGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (Address, error) {
	var result nominatimReverseResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":    strconv.FormatFloat(lat, 'f', -1, 64),
			"lon":    strconv.FormatFloat(lng, 'f', -1, 64),
			"format": "jsonv2",
		}).
		SetResult(&result).
		Get(g.baseURL + "/reverse")
	if err != nil {
		return Address{}, fmt.Errorf("failed to reverse geocode: %w", err)
	}
	if resp.IsError() {
		return Address{}, fmt.Errorf("reverse geocoding returned status %d", resp.StatusCode())
	}

	city := result.Address.City
	if city == "" {
		city = result.Address.Town
	}
	barangay := result.Address.Suburb
	if barangay == "" {
		barangay = result.Address.Village
	}

	return Address{
		City:     city,
		Province: result.Address.State,
		Region:   result.Address.Region,
		Barangay: barangay,
	}, nil
}

type nominatimSearchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *NominatimGeocoder) ForwardGeocode(ctx context.Context, query string) (float64, float64, error) {
	var results []nominatimSearchResult

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":            query,
			"countrycodes": "ph",
			"format":       "jsonv2",
			"limit":        "1",
		}).
		SetResult(&results).
		Get(g.baseURL + "/search")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to geocode %q: %w", query, err)
	}
	if resp.IsError() {
		return 0, 0, fmt.Errorf("geocoding returned status %d", resp.StatusCode())
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no location found for %q", query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude in geocoding response: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude in geocoding response: %w", err)
	}

	return lat, lng, nil
}
