package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kk-code-lab/mdlens/internal/config"
)

// ErrNotFound is returned for unknown or expired documents.
var ErrNotFound = errors.New("document not found")

// Document is one stored markup document. Version starts at 1 and grows by
// one on every update.
type Document struct {
	ID        string    `json:"id"`
	Version   uint64    `json:"version"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store keeps documents by id.
type Store interface {
	Create(ctx context.Context, text string) (Document, error)
	Update(ctx context.Context, id string, text string) (Document, error)
	Get(ctx context.Context, id string) (Document, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// New builds the store selected by the configuration.
func New(cfg config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return NewMemoryStore(cfg.DocumentTTL), nil
	case config.BackendRedis:
		return NewRedisStore(cfg.RedisAddress, cfg.DocumentTTL), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
