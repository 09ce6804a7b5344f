package game

// HitPhase 伤害判定体的生命周期阶段
type HitPhase int

const (
	HitSpawned HitPhase = iota
	HitArmed            // 已定位，下一帧开始参与接触检测
	HitActive
	HitExpired
)

// Locator 按 id 查询持有者中心位置（非持有引用，持有者被移除后查询失败）
type Locator interface {
	Locate(id ObjectID) (Point, bool)
}

// HitObject 攻击产生的临时伤害判定体，跟随持有者移动
type HitObject struct {
	id        ObjectID
	owner     ObjectID
	locator   Locator
	size      Size
	direction int
	damage    int
	lifetime  int
	singleUse bool

	loc           Point
	offset        Point // 相对持有者中心的固定偏移
	offsetApplied bool
	used          bool
	phase         HitPhase
	ticks         int
}

// NewHitObject 创建判定体，初始位置为持有者中心
func NewHitObject(owner ObjectID, locator Locator, size Size, direction, damage, lifetime int) *HitObject {
	h := &HitObject{
		owner:     owner,
		locator:   locator,
		size:      size,
		direction: direction,
		damage:    damage,
		lifetime:  lifetime,
	}
	h.AttachToOwner()
	return h
}

func (h *HitObject) ID() ObjectID { return h.id }
func (h *HitObject) Owner() ObjectID { return h.owner }
func (h *HitObject) Direction() int { return h.direction }
func (h *HitObject) Lifetime() int { return h.lifetime }
func (h *HitObject) Phase() HitPhase { return h.phase }
func (h *HitObject) Location() Point { return h.loc }
func (h *HitObject) Offset() Point { return h.offset }

// SetSingleUse 首次命中后立即从世界移除
func (h *HitObject) SetSingleUse(v bool) { h.singleUse = v }

func (h *HitObject) SingleUse() bool { return h.singleUse }

// CauseDamage 纯查询
func (h *HitObject) CauseDamage() int { return h.damage }

// MarkUsed 首次接触时由 Tick 调用一次，之后不再造成伤害
func (h *HitObject) MarkUsed() { h.used = true }

func (h *HitObject) Used() bool { return h.used }

// CanHit 仅 active 且未使用的判定体参与伤害结算
func (h *HitObject) CanHit() bool {
	return h.phase == HitActive && !h.used
}

// Expired 寿命耗尽，或单次判定体已命中
func (h *HitObject) Expired() bool {
	return h.phase == HitExpired || (h.singleUse && h.used)
}

// AttachToOwner 将位置同步到持有者中心 + 已施加的偏移
func (h *HitObject) AttachToOwner() bool {
	anchor, ok := h.locator.Locate(h.owner)
	if !ok {
		return false
	}
	h.loc = anchor.Add(h.offset)
	return true
}

// ApplyOffset 按罗盘方向把判定体向外推出半个宽/高，只生效一次
func (h *HitObject) ApplyOffset() {
	if h.offsetApplied {
		return
	}
	h.offsetApplied = true
	h.offset = directionOffset(h.direction, h.size)
	h.loc = h.loc.Add(h.offset)
}

func directionOffset(direction int, s Size) Point {
	hw, hh := s.Width/2, s.Height/2
	switch ((direction % 360) + 360) % 360 {
	case 0:
		return Point{X: hw}
	case 45:
		return Point{X: hw, Y: hh}
	case 90:
		return Point{Y: hh}
	case 135:
		return Point{X: -hw, Y: hh}
	case 180:
		return Point{X: -hw}
	case 225:
		return Point{X: -hw, Y: -hh}
	case 270:
		return Point{Y: -hh}
	case 315:
		return Point{X: hw, Y: -hh}
	}
	return Point{}
}

// Step 跟随持有者、推进阶段并倒计时；持有者不存在时直接过期
func (h *HitObject) Step() {
	h.ticks++
	if h.phase == HitExpired {
		return
	}
	if !h.AttachToOwner() {
		h.phase = HitExpired
		return
	}
	switch h.phase {
	case HitSpawned:
		h.phase = HitArmed
	case HitArmed:
		h.phase = HitActive
	}
	h.lifetime--
	if h.lifetime <= 0 {
		h.phase = HitExpired
	}
}

// BoundingBox 以 location 为中心
func (h *HitObject) BoundingBox() Rect {
	return Rect{
		X:      h.loc.X - h.size.Width/2,
		Y:      h.loc.Y - h.size.Height/2,
		Width:  h.size.Width,
		Height: h.size.Height,
	}
}

func (h *HitObject) BoundingBoxes() []Rect { return []Rect{h.BoundingBox()} }

func (h *HitObject) Sprite() Sprite {
	return Sprite{ID: h.id, Kind: KindHitObject, Pose: "hit", Frame: h.ticks, X: h.loc.X, Y: h.loc.Y, Rotation: h.direction}
}
