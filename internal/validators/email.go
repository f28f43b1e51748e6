package validators

import (
	"net/mail"
	"strings"
)

// IsEmailValid checks the address syntactically. No DNS lookups: handlers
// must not do network I/O per request.
func IsEmailValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}

	at := strings.LastIndex(addr.Address, "@")
	if at < 0 || at == len(addr.Address)-1 {
		return false
	}

	return strings.Contains(addr.Address[at+1:], ".")
}
