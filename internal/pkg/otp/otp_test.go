package otp

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumeric_Generate(t *testing.T) {
	g := NewNumeric()

	for range 1000 {
		code, err := g.Generate()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, MinCode)
		assert.LessOrEqual(t, n, MaxCode)
	}
}
