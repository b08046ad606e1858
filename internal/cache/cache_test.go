package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok := m.Get(ctx, PortfolioKey("jane"))
	assert.False(t, ok)

	m.Set(ctx, PortfolioKey("jane"), []byte(`{"slug":"jane"}`))
	b, ok := m.Get(ctx, PortfolioKey("jane"))
	assert.True(t, ok)
	assert.JSONEq(t, `{"slug":"jane"}`, string(b))

	m.Delete(ctx, PortfolioKey("jane"), InvoiceKey("INV-1"))
	_, ok = m.Get(ctx, PortfolioKey("jane"))
	assert.False(t, ok)
}

func TestNopCache(t *testing.T) {
	var c Cache = Nop{}
	c.Set(context.Background(), "k", []byte("v"))
	_, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "public:portfolio:jane-doe", PortfolioKey("jane-doe"))
	assert.Equal(t, "public:invoice:INV-01012025123", InvoiceKey("INV-01012025123"))
}
