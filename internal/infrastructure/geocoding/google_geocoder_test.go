package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) *GoogleGeocoder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g := NewGoogleGeocoder("test-key", "cl", 2*time.Second)
	g.baseURL = srv.URL
	return g
}

func TestGoogleGeocoder_Resolve_OK(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Av. Libertador 100, Santiago, Santiago", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "cl", r.URL.Query().Get("region"))
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"Av. Libertador Bernardo O'Higgins 100, Santiago, Chile","geometry":{"location":{"lat":-33.44,"lng":-70.65}}}]}`))
	})

	res, err := g.Resolve(context.Background(), "Av. Libertador 100, Santiago, Santiago")

	require.NoError(t, err)
	assert.InDelta(t, -33.44, res.Latitude, 1e-9)
	assert.InDelta(t, -70.65, res.Longitude, 1e-9)
	assert.Contains(t, res.FormattedAddress, "Santiago, Chile")
}

func TestGoogleGeocoder_Resolve_SinResultados(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})

	_, err := g.Resolve(context.Background(), "Calle Inexistente 0")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGeocodingFailed)
}

func TestGoogleGeocoder_Resolve_StatusHTTP(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	})

	_, err := g.Resolve(context.Background(), "Av. Libertador 100")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestGoogleGeocoder_Resolve_SinAPIKey(t *testing.T) {
	g := NewGoogleGeocoder("", "", time.Second)

	_, err := g.Resolve(context.Background(), "Av. Libertador 100")

	assert.ErrorIs(t, err, domain.ErrGeocodingFailed)
}

func TestCacheKey_NormalizaEspaciosYMayusculas(t *testing.T) {
	assert.Equal(t, cacheKey("Av. Libertador  100, Santiago"), cacheKey("  av. libertador 100,   SANTIAGO "))
}
