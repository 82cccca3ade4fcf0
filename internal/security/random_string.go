package security

import (
	"crypto/rand"
	"errors"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of the
// requested length drawn from alphabet. Bias is avoided by rejection
// sampling over the largest multiple of the alphabet size below 256.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 || len(alphabet) > 256 {
		return "", errEmptyAlphabet
	}

	limit := byte(256 - (256 % len(alphabet)))
	value := make([]byte, 0, length)
	buffer := make([]byte, length)
	for len(value) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, sample := range buffer {
			if limit != 0 && sample >= limit {
				continue
			}
			value = append(value, alphabet[int(sample)%len(alphabet)])
			if len(value) == length {
				break
			}
		}
	}

	return string(value), nil
}
