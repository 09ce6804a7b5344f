package game

import "fmt"

// Env 角色可见的世界能力：定位对象、生成判定体、释放出生平台
type Env interface {
	Locator
	SpawnHitObject(h *HitObject) ObjectID
	ReleaseSpawn(id ObjectID)
}

// Character 玩家控制的角色（服务端权威状态）
//
// 状态空间为 {地面, 空中} × {中立, 向左, 向右}，由 Move/Jump/Aerial 驱动转换，
// 每次转换后通过 reevaluate 重新计算两条运动通道。
type Character struct {
	Body

	id      ObjectID
	session SessionID
	number  int
	env     Env
	dt      float64

	angle       int
	facing      Facing
	neutral     bool
	grounded    bool
	maxJumps    int
	jumps       int
	damageTaken int
	justSpawned bool
	launched    bool
	spawn       ObjectID // 出生平台
	hit         ObjectID // 当前持有的判定体，0 表示无

	pose      string
	poseTicks int
}

// NewCharacter 在出生平台上创建角色，初始站立、中立、朝右
func NewCharacter(session SessionID, number int, spawn ObjectID, loc Point, env Env, tickRate int) *Character {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	c := &Character{
		Body:        Body{loc: loc, size: Size{Width: CharacterWidth, Height: CharacterHeight}},
		session:     session,
		number:      number,
		env:         env,
		dt:          1 / float64(tickRate),
		angle:       Neutral,
		facing:      FacingRight,
		neutral:     true,
		grounded:    true,
		maxJumps:    MaxJumps,
		justSpawned: true,
		spawn:       spawn,
		pose:        "idle",
	}
	return c
}

func (c *Character) ID() ObjectID { return c.id }
func (c *Character) Session() SessionID { return c.session }
func (c *Character) Number() int { return c.number }
func (c *Character) Facing() Facing { return c.facing }
func (c *Character) Neutral() bool { return c.neutral }
func (c *Character) Grounded() bool { return c.grounded }
func (c *Character) Jumps() int { return c.jumps }
func (c *Character) MaxJumps() int { return c.maxJumps }
func (c *Character) DamageTaken() int { return c.damageTaken }
func (c *Character) JustSpawned() bool { return c.justSpawned }
func (c *Character) SpawnPlatform() ObjectID { return c.spawn }
func (c *Character) HitObject() ObjectID { return c.hit }
func (c *Character) Pose() string { return c.pose }

// Move 方向键变化。90/270/-1 为中立；(270,360)∪[0,90) 朝右；(90,270) 朝左
func (c *Character) Move(angle int) {
	c.angle = angle
	switch {
	case angle == Neutral:
		c.neutral = true
	default:
		a := ((angle % 360) + 360) % 360
		switch {
		case a == 90 || a == 270:
			c.neutral = true
		case a < 90 || a > 270:
			c.facing = FacingRight
			c.neutral = false
		default:
			c.facing = FacingLeft
			c.neutral = false
		}
	}
	if c.justSpawned {
		c.justSpawned = false
		c.env.ReleaseSpawn(c.spawn)
	}
	c.reevaluate()
}

// Attack 仅在地面且没有持有判定体时生成一次普通攻击，否则静默忽略
func (c *Character) Attack() {
	if c.hit != 0 || !c.grounded {
		return
	}
	dir := 0
	if c.facing == FacingLeft {
		dir = 180
	}
	h := NewHitObject(c.id, c.env, Size{Width: AttackWidth, Height: AttackHeight}, dir, AttackDamage, AttackLifetime)
	h.ApplyOffset()
	c.hit = c.env.SpawnHitObject(h)
	h.Step()
	c.setPose("punch")
}

// Jump 起跳（含空中多段跳），受 maxJumps 限制
func (c *Character) Jump() {
	if c.jumps >= c.maxJumps {
		return
	}
	c.setPose("jump")
	c.SetMovement(JumpSpeed, JumpAngle)
	c.jumps++
	if c.grounded {
		// 离地立即生效，保证地面角色 jumps 恒为 0
		c.grounded = false
		c.reevaluate()
	}
}

// Special/Dodge/Shield 协议已保留，当前角色无对应动作
func (c *Character) Special() {}
func (c *Character) Dodge() {}
func (c *Character) Shield() {}

// Damage 累计伤害并施加击飞：速度随累计伤害线性增长，角度按朝向镜像并随伤害偏斜
func (c *Character) Damage(d Damager) {
	c.damageTaken += d.CauseDamage()
	speed := float64(c.damageTaken) * KnockbackScale
	skew := c.damageTaken / KnockbackSkew
	var angle int
	if c.facing == FacingRight {
		angle = d.Direction() - 180 - skew
	} else {
		angle = 180 - d.Direction() + skew
	}
	c.SetMovement(speed, float64(angle))
	c.launched = true
}

// Death 出界：清除运动并把累计伤害归零
func (c *Character) Death() {
	c.StopMovement()
	c.StopInfluence()
	c.damageTaken = 0
	c.launched = false
}

// Aerial 每帧由 Tick 以支撑判定结果调用
func (c *Character) Aerial(airborne bool) {
	before := !c.grounded
	c.grounded = !airborne

	if before && !airborne {
		// 落地
		c.StopMovement()
		c.StopInfluence()
		c.jumps = 0
	}
	if before != airborne {
		c.reevaluate()
	}
}

// reevaluate 根据地面/空中状态与朝向重新计算运动通道，launched 标记在此被消费
func (c *Character) reevaluate() {
	if !c.grounded {
		// 不是跳起来的（走出平台边缘），扣除一次跳跃，防止边缘反复刷新跳跃次数
		if c.jumps == 0 && !c.launched {
			c.StopMovement()
			c.jumps++
		}
		if c.neutral {
			c.StopInfluence()
		} else {
			c.SetInfluence(AirControl, c.facingAngle())
		}
	} else {
		switch {
		case c.neutral:
			c.StopMovement()
			c.setPose("idle")
		default:
			c.SetMovement(WalkSpeed, c.facingAngle())
			c.setPose("shortWalk")
		}
	}
	c.launched = false
}

func (c *Character) facingAngle() float64 {
	if c.facing == FacingLeft {
		return 180
	}
	return 0
}

// setPose 只影响渲染，不参与模拟
func (c *Character) setPose(name string) {
	if c.pose == name {
		return
	}
	c.pose = name
	c.poseTicks = 0
}

// respawn 死亡后回到新的出生平台
func (c *Character) respawn(spawn ObjectID, loc Point) {
	c.Death()
	c.SetLocation(loc)
	c.spawn = spawn
	c.justSpawned = true
	c.grounded = true
	c.jumps = 0
	c.neutral = true
	c.setPose("idle")
}

// clearHitObject 判定体被移除时由世界回调
func (c *Character) clearHitObject(id ObjectID) {
	if c.hit == id {
		c.hit = 0
	}
}

func (c *Character) Step() {
	c.poseTicks++
	c.advance(!c.grounded, c.dt)
}

func (c *Character) BoundingBoxes() []Rect { return []Rect{c.BoundingBox()} }

func (c *Character) Sprite() Sprite {
	return Sprite{
		ID:      c.id,
		Kind:    KindCharacter,
		Pose:    c.pose,
		Frame:   c.poseTicks,
		X:       c.loc.X,
		Y:       c.loc.Y,
		Flipped: c.facing == FacingLeft,
	}
}

// DamageLabel 血量百分比文本
func (c *Character) DamageLabel() string {
	return fmt.Sprintf("%d%%", c.damageTaken)
}
