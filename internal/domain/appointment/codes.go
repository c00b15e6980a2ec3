package appointment

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

var codeSpace = big.NewInt(1_000_000)

// NewVerificationCode returns a random 6-digit code. Codes are scoped to one
// appointment, so collisions with other live codes are not checked.
func NewVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// NewQRToken returns an opaque public booking reference.
func NewQRToken() string {
	return uuid.NewString()
}
