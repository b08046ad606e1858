// Package validators holds checks that need the network.
package validators

import (
	"context"
	"net"
	"strings"
)

// Resolver is the subset of *net.Resolver used here.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// EmailDomain reports whether the domain of email has an MX record or, as a
// fallback, any address.
type EmailDomain struct {
	resolver Resolver
}

func NewEmailDomain(r Resolver) *EmailDomain {
	if r == nil {
		r = net.DefaultResolver
	}
	return &EmailDomain{resolver: r}
}

func (v *EmailDomain) Resolves(ctx context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := v.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := v.resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
