package game

// 速度单位均为 单位/秒，由 World 按 Tick 时长换算成每帧位移
const (
	DefaultTickRate = 30

	Gravity      = 300.0 // 空中下坠加速度
	MaxFallSpeed = 360.0

	WalkSpeed      = 60.0
	AirControl     = 40.0 // 空中 influence 速度
	JumpSpeed      = 140.0
	JumpAngle      = 90
	KnockbackScale = 0.4 // 击飞速度 = 累计伤害 × KnockbackScale
	KnockbackSkew  = 50  // 击飞角度偏移 = 累计伤害 / KnockbackSkew（整除）

	MaxJumps = 2

	AttackDamage   = 30
	AttackLifetime = 20 // Tick
	AttackWidth    = 28.0
	AttackHeight   = 28.0

	CharacterWidth  = 24.0
	CharacterHeight = 32.0

	// StandingGap 站立判定：包围盒底边恰好比平台顶边高 1 个单位
	StandingGap = 1.0

	SpawnPlatformWidth     = 40.0
	SpawnPlatformHeight    = 6.0
	SpawnPlatformFadeTicks = 10

	// 血量标签布局（HUD 覆盖层）
	LabelRowWidth = 640.0
	LabelRowY     = 450.0
)

// Facing 角色朝向
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// Neutral 方向键松开时客户端发送的角度
const Neutral = -1
