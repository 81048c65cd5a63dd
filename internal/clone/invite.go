// internal/clone/invite.go
package clone

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// inviteAlphabet deliberately leaves out 0/O, I/1/l and similar
// lookalikes so codes can be read out loud or copied from a screenshot.
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

const inviteLength = 24

// InviteCode generates a 24-character invite code from a
// cryptographically secure source, uniform over the alphabet.
func InviteCode() (string, error) {
	max := big.NewInt(int64(len(inviteAlphabet)))
	code := make([]byte, inviteLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random source: %w", err)
		}
		code[i] = inviteAlphabet[n.Int64()]
	}
	return string(code), nil
}
