// services/code_test.go
package services

import (
	"strings"
	"testing"

	"pickleball/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neverExists(string) (bool, error) {
	return false, nil
}

func TestGenerateCodeFormat(t *testing.T) {
	gen := NewCodeGenerator(neverExists)

	for i := 0; i < 200; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)

		require.Len(t, code, 9)
		assert.Equal(t, byte('-'), code[4])

		for pos, ch := range code {
			if pos == 4 {
				continue
			}
			assert.Containsf(t, codeAlphabet, string(ch),
				"code %q has character %q outside the alphabet", code, string(ch))
		}

		// Ambiguous characters are excluded from the alphabet.
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
	}
}

func TestGenerateRetriesOnCollision(t *testing.T) {
	calls := 0
	gen := NewCodeGenerator(func(code string) (bool, error) {
		calls++
		// First three candidates are "taken".
		return calls <= 3, nil
	})

	code, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
	assert.Len(t, code, 9)
}

func TestGenerateAgainstSeededStore(t *testing.T) {
	taken := make(map[string]bool)
	gen := NewCodeGenerator(func(code string) (bool, error) {
		return taken[code], nil
	})

	// Every generated code is seeded into the store; none may repeat.
	for i := 0; i < 500; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)
		require.False(t, taken[code], "code %q was returned twice", code)
		taken[code] = true
	}
}

func TestGenerateExhaustion(t *testing.T) {
	// Collapse the alphabet to a single symbol so only one code exists,
	// and mark it as already stored.
	calls := 0
	gen := &CodeGenerator{
		alphabet: "A",
		exists: func(code string) (bool, error) {
			calls++
			return code == "AAAA-AAAA", nil
		},
	}

	code, err := gen.Generate()
	require.Error(t, err)
	assert.Empty(t, code)
	assert.Equal(t, codeMaxAttempts, calls)
	assert.True(t, apperr.IsKind(err, apperr.KindExhausted))
}

func TestGenerateUppercaseOnly(t *testing.T) {
	gen := NewCodeGenerator(neverExists)

	code, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, strings.ToUpper(code), code)
}
