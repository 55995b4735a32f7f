package coaching

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"regexp"
)

// MaxCodeAttempts bounds how many times registration regenerates an
// onboarding code after a unique-index collision.
const MaxCodeAttempts = 5

var codePattern = regexp.MustCompile(`^#[0-9]{6}$`)

var codeSpace = big.NewInt(1_000_000)

// CodeGenerator produces onboarding codes.
type CodeGenerator func() (string, error)

// NewCodeGenerator returns a generator reading randomness from r.
func NewCodeGenerator(r io.Reader) CodeGenerator {
	return func() (string, error) {
		n, err := rand.Int(r, codeSpace)
		if err != nil {
			return "", fmt.Errorf("generate onboarding code: %w", err)
		}
		return fmt.Sprintf("#%06d", n.Int64()), nil
	}
}

// GenerateOnboardingCode draws a code from crypto/rand.
func GenerateOnboardingCode() (string, error) {
	return NewCodeGenerator(rand.Reader)()
}

func IsValidCode(code string) bool {
	return codePattern.MatchString(code)
}
