package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelVelocityUsesUpPositiveAngles(t *testing.T) {
	assert.Equal(t, Point{X: 60}, Channel{Speed: 60, Angle: 0, Active: true}.Velocity())
	assert.Equal(t, Point{X: -60}, Channel{Speed: 60, Angle: 180, Active: true}.Velocity())
	assert.Equal(t, Point{Y: -140}, Channel{Speed: 140, Angle: 90, Active: true}.Velocity())
	assert.Equal(t, Point{X: -12}, Channel{Speed: 12, Angle: -180, Active: true}.Velocity())
	assert.Equal(t, Point{}, Channel{Speed: 60, Angle: 0}.Velocity(), "inactive channel")
}

func TestMotionChannelsAreIndependent(t *testing.T) {
	var m Motion
	m.SetMovement(60, 0)
	m.SetInfluence(40, 180)

	d := m.Displacement(false, 1)
	assert.InDelta(t, 20, d.X, 1e-9)
	assert.Equal(t, 0.0, d.Y)

	m.StopInfluence()
	assert.False(t, m.Influence().Active)
	assert.True(t, m.Forced().Active)
	assert.InDelta(t, 60, m.Displacement(false, 1).X, 1e-9)

	m.StopMovement()
	assert.Equal(t, Point{}, m.Displacement(false, 1))
}

func TestSetMovementReplacesChannel(t *testing.T) {
	var m Motion
	m.SetMovement(60, 0)
	m.SetMovement(10, 180)
	assert.Equal(t, Channel{Speed: 10, Angle: 180, Active: true}, m.Forced())
}

func TestGravityOnlyWhileAirborne(t *testing.T) {
	var m Motion
	dt := 1.0 / DefaultTickRate

	assert.Equal(t, Point{}, m.Displacement(false, dt))

	first := m.Displacement(true, dt)
	second := m.Displacement(true, dt)
	assert.Greater(t, first.Y, 0.0)
	assert.Greater(t, second.Y, first.Y, "fall speed accumulates")

	// 落地后下坠速度清零
	m.Displacement(false, dt)
	assert.Equal(t, first, m.Displacement(true, dt))
}

func TestFallSpeedIsCapped(t *testing.T) {
	var m Motion
	for i := 0; i < 1000; i++ {
		m.Displacement(true, 1.0/DefaultTickRate)
	}
	assert.InDelta(t, MaxFallSpeed/DefaultTickRate, m.Displacement(true, 1.0/DefaultTickRate).Y, 1e-9)
}

func TestBodyBoundingBoxFromBottomCenter(t *testing.T) {
	b := Body{loc: Point{X: 100, Y: 299}, size: Size{Width: 24, Height: 32}}
	assert.Equal(t, Rect{X: 88, Y: 267, Width: 24, Height: 32}, b.BoundingBox())
	assert.Equal(t, Point{X: 100, Y: 283}, b.Center())
}
