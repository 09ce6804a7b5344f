package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectEdges(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	assert.Equal(t, 10.0, r.MinX())
	assert.Equal(t, 40.0, r.MaxX())
	assert.Equal(t, 20.0, r.MinY())
	assert.Equal(t, 60.0, r.MaxY())
}

func TestRectOverlapsHalfOpen(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	assert.True(t, a.Overlaps(Rect{X: 5, Y: 5, Width: 10, Height: 10}))
	assert.True(t, a.Overlaps(Rect{X: 2, Y: 2, Width: 2, Height: 2}), "contained")
	// 只接触边不算重叠
	assert.False(t, a.Overlaps(Rect{X: 10, Y: 0, Width: 5, Height: 5}))
	assert.False(t, a.Overlaps(Rect{X: 0, Y: 10, Width: 5, Height: 5}))
	assert.False(t, a.Overlaps(Rect{X: -5, Y: -5, Width: 5, Height: 20}))
	assert.False(t, a.Overlaps(Rect{X: 20, Y: 20, Width: 1, Height: 1}))
}
