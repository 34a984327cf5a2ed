package lock

import (
	"context"
	"sync"

	"github.com/jhoicas/Taller-api/internal/application/masterdata"
	"github.com/jhoicas/Taller-api/internal/domain"
)

var _ masterdata.ImportLock = (*MemoryLock)(nil)

// MemoryLock lock de proceso; se usa cuando no hay Redis configurado.
type MemoryLock struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewMemoryLock construye un lock vacío.
func NewMemoryLock() *MemoryLock {
	return &MemoryLock{held: make(map[string]bool)}
}

// Acquire devuelve domain.ErrImportInProgress si la llave ya está tomada.
func (l *MemoryLock) Acquire(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, domain.ErrImportInProgress
	}
	l.held[key] = true

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}
