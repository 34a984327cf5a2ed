package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Taller-api/internal/application/masterdata"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var _ masterdata.ImportLock = (*RedisLock)(nil)

const keyPrefix = "taller:lock:"

// releaseScript borra la llave solo si aún pertenece al token que la tomó.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// extendScript renueva el TTL solo si la llave aún pertenece al token.
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)

// RedisLock lock distribuido para serializar importaciones entre instancias de la API y la CLI.
type RedisLock struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisLock construye el lock. ttl acota cuánto vive una llave huérfana si el proceso muere;
// mientras el dueño sigue vivo el TTL se renueva cada ttl/3.
func NewRedisLock(client *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisLock {
	return &RedisLock{client: client, ttl: ttl, log: log}
}

// Acquire devuelve domain.ErrImportInProgress si otra invocación tiene el lock.
func (l *RedisLock) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.New().String()
	ok, err := l.client.SetNX(ctx, keyPrefix+key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lock %s: %w", key, err)
	}
	if !ok {
		return nil, domain.ErrImportInProgress
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		keepAlive(l.ttl/3, stop, func() (bool, error) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			n, err := extendScript.Run(ctx, l.client, []string{keyPrefix + key}, token, l.ttl.Milliseconds()).Int()
			return n == 1, err
		}, l.log.With().Str("key", key).Logger())
	}()

	var once sync.Once
	release := func() {
		once.Do(func() {
			close(stop)
			<-done
			// El contexto de la petición puede estar cancelado al liberar.
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, l.client, []string{keyPrefix + key}, token).Err(); err != nil {
				l.log.Warn().Err(err).Str("key", key).Msg("no se pudo liberar el lock de importación")
			}
		})
	}
	return release, nil
}

// keepAlive llama a extend cada interval hasta que se cierre stop o el lock se pierda.
// Un error de red se registra y se reintenta en el siguiente tick.
func keepAlive(interval time.Duration, stop <-chan struct{}, extend func() (bool, error), log zerolog.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ok, err := extend()
			if err != nil {
				log.Warn().Err(err).Msg("no se pudo renovar el lock de importación")
				continue
			}
			if !ok {
				log.Error().Msg("lock de importación perdido antes de terminar")
				return
			}
		}
	}
}

// NewRedisClient crea el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}
