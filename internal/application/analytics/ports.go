package analytics

import (
	"context"
	"time"
)

// StatsCache puerto de caché para resultados de solo lectura.
// Get devuelve false cuando la clave no existe o expiró.
type StatsCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}
