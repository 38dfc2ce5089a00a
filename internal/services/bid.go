package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

const bidLength = 6

var (
	bidSpace   = big.NewInt(1_000_000)
	bidPattern = regexp.MustCompile(`^[0-9]{6}$`)
)

// GenerateBID draws a uniformly random 6-digit BID, leading zeros allowed.
func GenerateBID() (string, error) {
	n, err := rand.Int(rand.Reader, bidSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", bidLength, n.Int64()), nil
}

// ValidBID reports whether s has the shape of a BID.
func ValidBID(s string) bool {
	return bidPattern.MatchString(s)
}
