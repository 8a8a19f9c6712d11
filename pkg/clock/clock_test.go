package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake_SetAndAdvance(t *testing.T) {
	start := time.Date(2026, 3, 15, 14, 37, 0, 0, time.UTC)
	c := NewFake(start)

	assert.Equal(t, start, c.Now())

	got := c.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), got)
	assert.Equal(t, got, c.Now())

	later := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	c.Set(later)
	assert.Equal(t, later, c.Now())
}

func TestReal_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	c := NewReal(loc)

	assert.Equal(t, loc, c.Now().Location())
}
