package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c := Fixed(at)

	assert.Equal(t, at, c.Now())
	assert.Equal(t, at, c.Now())
}

func TestTimeClocker_Now(t *testing.T) {
	before := time.Now()
	got := New().Now()

	assert.False(t, got.Before(before))
}
