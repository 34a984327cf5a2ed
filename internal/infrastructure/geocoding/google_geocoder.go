package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/masterdata"
	"github.com/jhoicas/Taller-api/internal/domain"
)

// Verificar en tiempo de compilación que GoogleGeocoder implementa masterdata.Geocoder.
var _ masterdata.Geocoder = (*GoogleGeocoder)(nil)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleGeocoder adaptador sobre la API REST de Google Geocoding.
type GoogleGeocoder struct {
	apiKey     string
	baseURL    string
	region     string
	httpClient *http.Client
}

// NewGoogleGeocoder construye el adaptador. region sesga los resultados (ej. "cl").
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de consultar la API.
func NewGoogleGeocoder(apiKey, region string, timeout time.Duration) *GoogleGeocoder {
	return &GoogleGeocoder{
		apiKey:     apiKey,
		baseURL:    googleGeocodeURL,
		region:     region,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Resolve consulta la API y devuelve el primer resultado.
// ZERO_RESULTS y cualquier estado distinto de OK se reportan como domain.ErrGeocodingFailed.
func (g *GoogleGeocoder) Resolve(ctx context.Context, address string) (*masterdata.GeocodeResult, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("%w: GOOGLE_MAPS_API_KEY no configurada", domain.ErrGeocodingFailed)
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", g.apiKey)
	if g.region != "" {
		q.Set("region", g.region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocoding: construir request: %w", err)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding: llamada HTTP: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("geocoding: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding: status %d: %s", resp.StatusCode, string(body))
	}

	var out geocodeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("geocoding: decodificar respuesta: %w", err)
	}
	if out.Status != "OK" || len(out.Results) == 0 {
		if out.ErrorMessage != "" {
			return nil, fmt.Errorf("%w: %s (%s)", domain.ErrGeocodingFailed, out.Status, out.ErrorMessage)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrGeocodingFailed, out.Status)
	}

	first := out.Results[0]
	return &masterdata.GeocodeResult{
		Latitude:         first.Geometry.Location.Lat,
		Longitude:        first.Geometry.Location.Lng,
		FormattedAddress: first.FormattedAddress,
	}, nil
}
