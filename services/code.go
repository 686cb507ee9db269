// services/code.go - Session join-code generation
package services

import (
	"crypto/rand"
	"math/big"
	"strings"

	"pickleball/apperr"
)

// 32 symbols; visually ambiguous characters excluded (no 0/O/1/I).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// codeMaxAttempts bounds the collision-retry loop. With over a billion
// possible codes this only trips on a generator or storage fault.
const codeMaxAttempts = 20

// CodeGenerator produces randomized human-readable join codes in the form
// XXXX-XXXX, e.g. PCKL-7B2Q. The existence pre-check is advisory: two
// concurrent creations can still pick the same code, and the unique index on
// sessions.code is what actually guarantees uniqueness.
type CodeGenerator struct {
	alphabet string
	exists   func(code string) (bool, error)
}

func NewCodeGenerator(exists func(code string) (bool, error)) *CodeGenerator {
	return &CodeGenerator{alphabet: codeAlphabet, exists: exists}
}

// Generate returns a code not currently in use, or an exhaustion error once
// the attempt budget is spent.
func (g *CodeGenerator) Generate() (string, error) {
	for attempt := 0; attempt < codeMaxAttempts; attempt++ {
		code, err := g.randomCode()
		if err != nil {
			return "", err
		}

		taken, err := g.exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}

	return "", apperr.Exhausted("could not generate a unique session code")
}

func (g *CodeGenerator) randomCode() (string, error) {
	var sb strings.Builder
	sb.Grow(9)

	for i := 0; i < 8; i++ {
		if i == 4 {
			sb.WriteByte('-')
		}
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(g.alphabet))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(g.alphabet[n.Int64()])
	}

	return sb.String(), nil
}
