package validators

import (
	"context"
	"net"
	"strings"
)

// Resolver is the subset of *net.Resolver used for domain checks.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

type EmailChecker interface {
	Valid(ctx context.Context, email string) bool
}

// EmailDomain accepts an address when its domain has an MX record or at
// least resolves to a host.
type EmailDomain struct {
	resolver Resolver
}

func NewEmailDomain(r Resolver) *EmailDomain {
	if r == nil {
		r = net.DefaultResolver
	}
	return &EmailDomain{resolver: r}
}

func (v *EmailDomain) Valid(ctx context.Context, email string) bool {
	domain, ok := Domain(email)
	if !ok {
		return false
	}

	if mx, err := v.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if hosts, err := v.resolver.LookupHost(ctx, domain); err == nil && len(hosts) > 0 {
		return true
	}

	return false
}

// Domain returns the part after the last '@'.
func Domain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	return email[at+1:], true
}
