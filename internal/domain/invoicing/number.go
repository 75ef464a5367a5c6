package invoicing

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jhoicas/smart-inventory-api/internal/domain"
)

// DefaultPrefix prefijo de numeración cuando no se configura otro.
const DefaultPrefix = "INV"

// MaxNumberAttempts máximo de candidatos antes de fallar con ErrInvoiceNumberExhausted.
const MaxNumberAttempts = 100

// ExistsFunc indica si un número de factura ya está asignado.
type ExistsFunc func(ctx context.Context, number string) (bool, error)

// NumberGenerator produce números {PREFIX}-{YYYY}-{6 dígitos}.
// La unicidad es probabilística y se verifica contra el almacén antes de asignar.
type NumberGenerator struct {
	prefix      string
	now         func() time.Time
	maxAttempts int

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewNumberGenerator construye el generador. src nil usa una fuente aleatoria del proceso.
func NewNumberGenerator(prefix string, src rand.Source) *NumberGenerator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &NumberGenerator{
		prefix:      prefix,
		now:         time.Now,
		maxAttempts: MaxNumberAttempts,
		rnd:         rand.New(src),
	}
}

// WithClock reemplaza el reloj (útil en pruebas para fijar el año).
func (g *NumberGenerator) WithClock(now func() time.Time) *NumberGenerator {
	g.now = now
	return g
}

// Candidate genera un número sin verificar existencia.
func (g *NumberGenerator) Candidate() string {
	g.mu.Lock()
	n := g.rnd.IntN(1_000_000)
	g.mu.Unlock()
	return fmt.Sprintf("%s-%d-%06d", g.prefix, g.now().Year(), n)
}

// Next genera candidatos hasta encontrar uno libre o agotar los intentos.
func (g *NumberGenerator) Next(ctx context.Context, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		number := g.Candidate()
		taken, err := exists(ctx, number)
		if err != nil {
			return "", fmt.Errorf("verificar número de factura: %w", err)
		}
		if !taken {
			return number, nil
		}
	}
	return "", fmt.Errorf("%w tras %d intentos", domain.ErrInvoiceNumberExhausted, g.maxAttempts)
}
