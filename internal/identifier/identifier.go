// Package identifier generates human-facing ids that must not collide with
// ones already stored.
package identifier

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

const DefaultAttempts = 10

var ErrExhausted = errors.New("identifier: could not generate a unique value")

// ExistsFunc reports whether a candidate is already taken.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Unique draws candidates from next until one is free, at most attempts times.
func Unique(ctx context.Context, attempts int, next func() string, exists ExistsFunc) (string, error) {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	for i := 0; i < attempts; i++ {
		candidate := next()
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrExhausted
}

// Digits returns n random decimal digits with no leading zero.
func Digits(n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte(byte('1' + rand.IntN(9)))
	for i := 1; i < n; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}

// Prefixed returns a generator for values like "CL-48213".
func Prefixed(prefix string, digits int) func() string {
	return func() string {
		return fmt.Sprintf("%s-%s", prefix, Digits(digits))
	}
}
