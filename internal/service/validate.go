package service

import (
	"net/mail"
	"net/url"
	"strings"
)

// validEmail reports whether s is a plain, well-formed email address.
// The strict equality check rejects display-name forms like "A <a@x.com>",
// which net/mail would otherwise accept.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// validHTTPURL reports whether s parses as an absolute http or https URL.
func validHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// tooShort reports whether s, after trimming whitespace, is shorter than min.
func tooShort(s string, min int) bool {
	return len(strings.TrimSpace(s)) < min
}
