package game

import "math"

// Channel 一条运动通道：速度 + 角度（度）。角度 0 指向 +x，90 指向上方（-y）
type Channel struct {
	Speed  float64
	Angle  float64
	Active bool
}

// Velocity 返回通道对应的每秒位移
func (c Channel) Velocity() Point {
	if !c.Active || c.Speed == 0 {
		return Point{}
	}
	ux, uy := unitVector(c.Angle)
	return Point{X: c.Speed * ux, Y: -c.Speed * uy}
}

// unitVector 对 90 的整数倍角度返回精确值，避免 sin(180°) 之类的浮点残差破坏站立判定
func unitVector(deg float64) (float64, float64) {
	if deg == math.Trunc(deg) {
		switch ((int(deg) % 360) + 360) % 360 {
		case 0:
			return 1, 0
		case 90:
			return 0, 1
		case 180:
			return -1, 0
		case 270:
			return 0, -1
		}
	}
	rad := deg * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}

// Motion 物理体的运动模型：forced（外力，如击飞、起跳）与 influence（空中操控）
// 两条通道互相独立；通道不会自行衰减，只能被替换或停止
type Motion struct {
	forced    Channel
	influence Channel
	fall      float64 // 累计下坠速度，仅空中生效
}

// SetMovement 原子替换 forced 通道并激活
func (m *Motion) SetMovement(speed, angle float64) {
	m.forced = Channel{Speed: speed, Angle: angle, Active: true}
}

func (m *Motion) StopMovement() {
	m.forced = Channel{}
}

// SetInfluence 原子替换 influence 通道并激活
func (m *Motion) SetInfluence(speed, angle float64) {
	m.influence = Channel{Speed: speed, Angle: angle, Active: true}
}

func (m *Motion) StopInfluence() {
	m.influence = Channel{}
}

func (m *Motion) Forced() Channel { return m.forced }
func (m *Motion) Influence() Channel { return m.influence }

// Displacement 计算本帧位移：各激活通道的向量和，空中时叠加重力
func (m *Motion) Displacement(airborne bool, dt float64) Point {
	v := m.forced.Velocity().Add(m.influence.Velocity())
	if airborne {
		m.fall = math.Min(m.fall+Gravity*dt, MaxFallSpeed)
		v.Y += m.fall
	} else {
		m.fall = 0
	}
	return Point{X: v.X * dt, Y: v.Y * dt}
}

// Body 物理体：以包围盒底边中点作为 location
type Body struct {
	Motion
	loc  Point
	size Size
}

func (b *Body) Location() Point { return b.loc }

func (b *Body) SetLocation(p Point) { b.loc = p }

func (b *Body) Size() Size { return b.size }

// BoundingBox 由当前 location 推导出的主包围盒
func (b *Body) BoundingBox() Rect {
	return Rect{
		X:      b.loc.X - b.size.Width/2,
		Y:      b.loc.Y - b.size.Height,
		Width:  b.size.Width,
		Height: b.size.Height,
	}
}

// Center 包围盒中心
func (b *Body) Center() Point {
	return Point{X: b.loc.X, Y: b.loc.Y - b.size.Height/2}
}

// advance 按运动模型推进一帧
func (b *Body) advance(airborne bool, dt float64) {
	b.loc = b.loc.Add(b.Displacement(airborne, dt))
}
