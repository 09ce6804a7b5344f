package game

// PhysicalBody 可被平台碰撞修正的物体
type PhysicalBody interface {
	BoundingBox() Rect
	SetLocation(Point)
}

// RectifyPlatformCollision 修正物体与平台的穿透：
// 物体顶边低于平台顶边时视为侧面碰撞，沿 x 以单位步长向外推出；
// 否则视为上下碰撞，以单位步长向上推出，再把底边对齐到平台顶边上方 StandingGap 处。
// 未重叠时不做任何修改。
func RectifyPlatformCollision(body PhysicalBody, platform Rect) {
	b := body.BoundingBox()
	if !b.Overlaps(platform) {
		return
	}
	switch {
	case b.MinX() < platform.MinX() && b.MinY() > platform.MinY():
		// 撞到平台左侧
		for b.Overlaps(platform) {
			b.X -= 1
		}
	case b.MaxX() > platform.MaxX() && b.MinY() > platform.MinY():
		// 撞到平台右侧
		for b.Overlaps(platform) {
			b.X += 1
		}
	default:
		for b.Overlaps(platform) {
			b.Y -= 1
		}
		b.Y = platform.MinY() - StandingGap - b.Height
	}
	body.SetLocation(Point{X: b.X + b.Width/2, Y: b.MaxY()})
}

// StandingOnPlatform 底边恰好比平台顶边高 StandingGap 且水平方向有交叠（精确相等）
func StandingOnPlatform(body PhysicalBody, platform Rect) bool {
	b := body.BoundingBox()
	return b.MaxY()+StandingGap == platform.MinY() &&
		b.MaxX() >= platform.MinX() && b.MinX() <= platform.MaxX()
}
