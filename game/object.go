package game

// ObjectID 世界对象的标识，跨对象引用一律用 id 而非指针
type ObjectID uint64

// SessionID 网络连接身份
type SessionID string

// Kind 渲染实体的类型
type Kind string

const (
	KindMap           Kind = "map"
	KindCharacter     Kind = "character"
	KindHitObject     Kind = "hit"
	KindSpawnPlatform Kind = "spawn"
)

// Object 被 Tick 推进并渲染的世界对象
type Object interface {
	ID() ObjectID
	Step()
	BoundingBoxes() []Rect
	Sprite() Sprite
}

// Damager 能对角色造成伤害的对象
type Damager interface {
	CauseDamage() int
	Direction() int
}

// Sprite 渲染快照（由客户端根据 Pose/Frame 选帧绘制）
type Sprite struct {
	ID       ObjectID `json:"id" msgpack:"id"`
	Kind     Kind     `json:"kind" msgpack:"kind"`
	Pose     string   `json:"pose,omitempty" msgpack:"pose,omitempty"`
	Frame    int      `json:"frame" msgpack:"frame"`
	X        float64  `json:"x" msgpack:"x"`
	Y        float64  `json:"y" msgpack:"y"`
	Rotation int      `json:"rot,omitempty" msgpack:"rot,omitempty"`
	Flipped  bool     `json:"flip,omitempty" msgpack:"flip,omitempty"`
}

// Label HUD 覆盖层文本
type Label struct {
	ID   ObjectID `json:"id" msgpack:"id"`
	Text string   `json:"text" msgpack:"text"`
	X    float64  `json:"x" msgpack:"x"`
	Y    float64  `json:"y" msgpack:"y"`
}
