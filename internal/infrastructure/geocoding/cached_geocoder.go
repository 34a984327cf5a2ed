package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/masterdata"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var _ masterdata.Geocoder = (*CachedGeocoder)(nil)

const cacheKeyPrefix = "taller:geocode:"

// CachedGeocoder guarda en Redis las direcciones ya resueltas para que las reimportaciones no consuman cuota.
// Un fallo de Redis no bloquea la geocodificación.
type CachedGeocoder struct {
	next   masterdata.Geocoder
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCachedGeocoder envuelve next con la caché.
func NewCachedGeocoder(next masterdata.Geocoder, client *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedGeocoder {
	return &CachedGeocoder{next: next, client: client, ttl: ttl, log: log}
}

func cacheKey(address string) string {
	return cacheKeyPrefix + strings.ToLower(strings.Join(strings.Fields(address), " "))
}

// Resolve consulta la caché y, si no hay entrada, delega y guarda el resultado.
func (g *CachedGeocoder) Resolve(ctx context.Context, address string) (*masterdata.GeocodeResult, error) {
	key := cacheKey(address)
	raw, err := g.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached masterdata.GeocodeResult
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return &cached, nil
		}
	case !errors.Is(err, redis.Nil):
		g.log.Warn().Err(err).Msg("caché de geocodificación no disponible")
	}

	res, err := g.next.Resolve(ctx, address)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(res); err == nil {
		if err := g.client.Set(ctx, key, data, g.ttl).Err(); err != nil {
			g.log.Warn().Err(err).Msg("no se pudo guardar la geocodificación en caché")
		}
	}
	return res, nil
}
