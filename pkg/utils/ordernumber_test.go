package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var orderNumberPattern = regexp.MustCompile(`^[0-9A-F]{8}$`)

func TestGenerateOrderNumberShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		number := GenerateOrderNumber()
		assert.True(t, orderNumberPattern.MatchString(number), number)
	}
}

func TestGenerateOrderNumberSpread(t *testing.T) {
	seen := make(map[string]struct{})
	const n = 1000

	for i := 0; i < n; i++ {
		seen[GenerateOrderNumber()] = struct{}{}
	}

	// 8 hex chars give 4 billion codes; a thousand draws colliding more
	// than a handful of times would indicate broken randomness.
	assert.Greater(t, len(seen), n-5)
}
