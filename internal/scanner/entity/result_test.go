package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerdictFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Verdict
	}{
		{0, VerdictSafe},
		{0.499999, VerdictSafe},
		{0.5, VerdictPhishing},
		{0.97, VerdictPhishing},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, VerdictFromScore(tt.score), "score %v", tt.score)
	}

	assert.Equal(t, "phishing", VerdictPhishing.String())
	assert.Equal(t, "Safe URL", VerdictSafe.Label())
}
