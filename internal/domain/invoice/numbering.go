package invoice

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/BruksfildServices01/freelance-desk/internal/identifier"
)

const NumberAttempts = 10

var ErrNumberExhausted = errors.New("could not generate a unique invoice number")

// FormatNumber renders "INV-DDMMYYYY###".
func FormatNumber(date time.Time, suffix int) string {
	return fmt.Sprintf("INV-%s%03d", date.Format("02012006"), suffix)
}

func RandomSuffix() int {
	return 100 + rand.IntN(900)
}

// NumberGenerator draws numbers until Exists reports a free one. Uniqueness
// is global, across all workspaces.
type NumberGenerator struct {
	Exists   identifier.ExistsFunc
	Suffix   func() int
	Attempts int
}

func (g NumberGenerator) Generate(ctx context.Context, date time.Time) (string, error) {
	suffix := g.Suffix
	if suffix == nil {
		suffix = RandomSuffix
	}
	attempts := g.Attempts
	if attempts <= 0 {
		attempts = NumberAttempts
	}

	n, err := identifier.Unique(ctx, attempts, func() string {
		return FormatNumber(date, suffix())
	}, g.Exists)
	if errors.Is(err, identifier.ErrExhausted) {
		return "", ErrNumberExhausted
	}
	return n, err
}

func NormalizeNumber(s string) string {
	return strings.TrimSpace(s)
}
