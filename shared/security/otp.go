package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTPLength is the number of digits in a generated one-time passcode.
const OTPLength = 6

var otpBound = big.NewInt(1_000_000)

// GenerateOTP returns a fixed-width numeric code drawn from crypto/rand.
// These codes gate account verification and password resets, so a
// statistical generator is not acceptable here.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpBound)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", OTPLength, n.Int64()), nil
}
