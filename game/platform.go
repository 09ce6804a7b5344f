package game

// Map 本局的静态平台集合
type Map struct {
	id        ObjectID
	Name      string
	Platforms []Rect
	Spawns    []Point // 出生平台中心位置，按 x 排序
	BlastZone Rect    // 包围盒离开该区域即死亡
}

// TestMap 内置地图：一块主平台与两块浮空平台
func TestMap() *Map {
	return &Map{
		Name: "testmap",
		Platforms: []Rect{
			{X: 80, Y: 300, Width: 480, Height: 40},
			{X: 140, Y: 220, Width: 100, Height: 10},
			{X: 400, Y: 220, Width: 100, Height: 10},
		},
		Spawns: []Point{
			{X: 190, Y: 140},
			{X: 320, Y: 120},
			{X: 450, Y: 140},
		},
		BlastZone: Rect{X: -200, Y: -300, Width: 1040, Height: 900},
	}
}

func (m *Map) ID() ObjectID { return m.id }

func (m *Map) Step() {}

func (m *Map) BoundingBoxes() []Rect { return m.Platforms }

func (m *Map) Sprite() Sprite {
	return Sprite{ID: m.id, Kind: KindMap, Pose: m.Name}
}

// SpawnPoint 第 n 个玩家的出生位置，超出时循环使用
func (m *Map) SpawnPoint(n int) Point {
	if len(m.Spawns) == 0 {
		b := m.BlastZone
		return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/4}
	}
	return m.Spawns[n%len(m.Spawns)]
}

// SpawnPlatform 角色出生时脚下的临时平台，首次移动后释放
type SpawnPlatform struct {
	id        ObjectID
	character ObjectID
	rect      Rect
	released  bool
	fade      int
	ticks     int
}

// NewSpawnPlatform 以 center 为顶边中点创建平台
func NewSpawnPlatform(center Point) *SpawnPlatform {
	return &SpawnPlatform{
		rect: Rect{
			X:      center.X - SpawnPlatformWidth/2,
			Y:      center.Y,
			Width:  SpawnPlatformWidth,
			Height: SpawnPlatformHeight,
		},
	}
}

func (s *SpawnPlatform) ID() ObjectID { return s.id }
func (s *SpawnPlatform) Character() ObjectID { return s.character }
func (s *SpawnPlatform) Rect() Rect { return s.rect }
func (s *SpawnPlatform) Released() bool { return s.released }

// StandPoint 角色站立于平台上时的 location（底边中点，留 1 单位间隙）
func (s *SpawnPlatform) StandPoint() Point {
	return Point{X: s.rect.X + s.rect.Width/2, Y: s.rect.MinY() - StandingGap}
}

// Supporting 未释放的平台参与碰撞与站立判定
func (s *SpawnPlatform) Supporting() bool { return !s.released }

// Drop 释放角色，平台淡出后被移除
func (s *SpawnPlatform) Drop() {
	if s.released {
		return
	}
	s.released = true
	s.fade = SpawnPlatformFadeTicks
}

// Gone 淡出完成
func (s *SpawnPlatform) Gone() bool { return s.released && s.fade <= 0 }

func (s *SpawnPlatform) Step() {
	s.ticks++
	if s.released && s.fade > 0 {
		s.fade--
	}
}

func (s *SpawnPlatform) BoundingBoxes() []Rect { return []Rect{s.rect} }

func (s *SpawnPlatform) Sprite() Sprite {
	pose := "hold"
	if s.released {
		pose = "drop"
	}
	return Sprite{ID: s.id, Kind: KindSpawnPlatform, Pose: pose, Frame: s.ticks, X: s.rect.X + s.rect.Width/2, Y: s.rect.Y}
}
