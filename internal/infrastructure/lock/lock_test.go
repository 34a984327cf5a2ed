package lock

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLock_SegundaAdquisicionFalla(t *testing.T) {
	l := NewMemoryLock()
	ctx := context.Background()

	release, err := l.Acquire(ctx, "master-data")
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "master-data")
	assert.ErrorIs(t, err, domain.ErrImportInProgress)

	_, err = l.Acquire(ctx, "otra-llave")
	assert.NoError(t, err)

	release()
	release()

	again, err := l.Acquire(ctx, "master-data")
	require.NoError(t, err)
	again()
}

func TestKeepAlive_RenuevaHastaDetener(t *testing.T) {
	var calls atomic.Int32
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		keepAlive(5*time.Millisecond, stop, func() (bool, error) {
			calls.Add(1)
			return true, nil
		}, zerolog.Nop())
	}()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	close(stop)
	<-done
	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "no renueva después de detener")
}

func TestKeepAlive_TerminaSiSePierdeElLock(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		keepAlive(time.Millisecond, make(chan struct{}), func() (bool, error) {
			if calls.Add(1) == 1 {
				return false, errors.New("redis: connection reset")
			}
			return false, nil
		}, zerolog.Nop())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("keepAlive debe terminar cuando el lock ya no pertenece al token")
	}
	assert.Equal(t, int32(2), calls.Load(), "un error de red se reintenta")
}

func TestRedisLock_Integracion(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no definido; se omite la prueba de integración con Redis")
	}
	ctx := context.Background()
	client, err := NewRedisClient(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLock(client, 5*time.Second, zerolog.Nop())
	key := "test-" + time.Now().Format("150405.000000")

	release, err := l.Acquire(ctx, key)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, key)
	assert.ErrorIs(t, err, domain.ErrImportInProgress)

	release()

	again, err := l.Acquire(ctx, key)
	require.NoError(t, err)
	again()
}

func TestRedisLock_RenuevaTTLMientrasSeUsa(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no definido; se omite la prueba de integración con Redis")
	}
	ctx := context.Background()
	client, err := NewRedisClient(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLock(client, 300*time.Millisecond, zerolog.Nop())
	key := "renew-" + time.Now().Format("150405.000000")

	release, err := l.Acquire(ctx, key)
	require.NoError(t, err)
	time.Sleep(time.Second)

	_, err = l.Acquire(ctx, key)
	assert.ErrorIs(t, err, domain.ErrImportInProgress, "el lock sigue tomado después de varios TTL")

	release()
	release()
	again, err := l.Acquire(ctx, key)
	require.NoError(t, err)
	again()
}
