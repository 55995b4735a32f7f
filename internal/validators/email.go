package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// EmailDomainCheck reports whether an address can plausibly receive mail.
type EmailDomainCheck func(email string) bool

const lookupTimeout = 3 * time.Second

// IsEmailDomainValid accepts the address when its domain has an MX record
// or, failing that, resolves to an IP.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(email[at+1:])

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	if mx, err := net.DefaultResolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.DefaultResolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
