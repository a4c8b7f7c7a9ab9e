package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	orderIDLen  = 6
	base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// GenerateOrderID returns 6 random base-36 characters, upper-cased.
// Collisions are not checked; the id only has to be readable at the counter.
func GenerateOrderID() (string, error) {
	result := make([]byte, orderIDLen)
	max := big.NewInt(int64(len(base36Chars)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("order id: %w", err)
		}
		result[i] = base36Chars[n.Int64()]
	}
	return strings.ToUpper(string(result)), nil
}
