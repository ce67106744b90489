package validators

import (
	"net"
	"net/mail"
	"strings"
)

// NormalizeEmail lower-cases a bare address and reports whether it is
// syntactically valid. Display-name forms ("Ana <a@b.co>") are rejected.
func NormalizeEmail(raw string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return email, false
	}
	return email, true
}

// IsEmailDomainValid looks the domain up in DNS. Used at sign-up when
// CHECK_EMAIL_DOMAIN is on.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
