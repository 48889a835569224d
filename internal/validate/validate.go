package validate

import (
	"net"
	"strings"
)

// Address reports whether s is a textual IPv4 dotted-quad or IPv6 address
// (standard forms, including compressed "::" notation). Hostnames, zone
// suffixes and malformed octets are rejected. No network access.
//
// An invalid address is a normal caller mistake, so this is a gate rather
// than an error source: callers short-circuit to a negative result.
func Address(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return net.ParseIP(s) != nil
}
