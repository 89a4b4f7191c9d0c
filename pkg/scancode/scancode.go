// Package scancode generates the opaque scanner codes assigned to vendors
// at registration.
package scancode

import (
	"crypto/rand"
	"fmt"
)

const (
	prefix   = "SCAN-"
	codeLen  = 8
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// New returns a fresh code of the form SCAN-XXXXXXXX, drawn from
// crypto/rand. Generation is stateless; uniqueness is enforced at the
// persistence boundary with a retry loop.
func New() string {
	buf := make([]byte, codeLen)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("scancode: reading random bytes: %v", err))
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return prefix + string(buf)
}
