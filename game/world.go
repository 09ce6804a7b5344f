package game

// HitEvent 一次命中
type HitEvent struct {
	HitObject ObjectID
	Owner     ObjectID
	Target    ObjectID
	Damage    int
	Total     int
}

// TickReport 一帧模拟的结果，供网络层广播与记录
type TickReport struct {
	Tick   int
	Debug  []Rect
	Hits   []HitEvent
	Deaths []ObjectID
}

// World 权威世界状态。所有修改只发生在房间的 Tick 线程中，本身不加锁
type World struct {
	tickRate   int
	selfDamage bool

	nextID     ObjectID
	nextNumber int
	tick       int

	gameMap    *Map
	objects    []Object // 渲染顺序
	byID       map[ObjectID]Object
	characters []*Character
	hits       []*HitObject
	spawns     []*SpawnPlatform
	players    map[SessionID]*Character
}

// NewWorld 创建世界并放入地图
func NewWorld(m *Map, tickRate int) *World {
	if m == nil {
		m = TestMap()
	}
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	w := &World{
		tickRate: tickRate,
		gameMap:  m,
		byID:     make(map[ObjectID]Object),
		players:  make(map[SessionID]*Character),
	}
	w.SpawnWorldObject(m)
	return w
}

func (w *World) Map() *Map { return w.gameMap }
func (w *World) Tick() int { return w.tick }
func (w *World) Characters() []*Character { return w.characters }
func (w *World) HitObjects() []*HitObject { return w.hits }
func (w *World) SpawnPlatforms() []*SpawnPlatform { return w.spawns }
func (w *World) Objects() []Object { return w.objects }
func (w *World) NumPlayers() int { return len(w.players) }

// SetSelfDamage 判定体是否能伤害自己的持有者
func (w *World) SetSelfDamage(v bool) { w.selfDamage = v }

func (w *World) SelfDamage() bool { return w.selfDamage }

// Player 按连接身份查角色
func (w *World) Player(session SessionID) (*Character, bool) {
	c, ok := w.players[session]
	return c, ok
}

// Object 按 id 查对象
func (w *World) Object(id ObjectID) (Object, bool) {
	o, ok := w.byID[id]
	return o, ok
}

// SpawnWorldObject 把对象放入世界并分配 id；角色、判定体、出生平台同时登记到各自集合
func (w *World) SpawnWorldObject(obj Object) ObjectID {
	w.nextID++
	id := w.nextID
	switch o := obj.(type) {
	case *Map:
		o.id = id
	case *Character:
		o.id = id
		w.characters = append(w.characters, o)
	case *HitObject:
		o.id = id
		w.hits = append(w.hits, o)
	case *SpawnPlatform:
		o.id = id
		w.spawns = append(w.spawns, o)
	}
	w.objects = append(w.objects, obj)
	w.byID[id] = obj
	return id
}

// RemoveWorldObject 从世界及其所属集合中移除对象；不存在时无操作
func (w *World) RemoveWorldObject(obj Object) {
	id := obj.ID()
	if _, ok := w.byID[id]; !ok {
		return
	}
	delete(w.byID, id)
	w.objects = removeObject(w.objects, id)
	switch o := obj.(type) {
	case *Character:
		w.characters = removeWhere(w.characters, func(c *Character) bool { return c.id == id })
	case *HitObject:
		w.hits = removeWhere(w.hits, func(h *HitObject) bool { return h.id == id })
		if owner, ok := w.byID[o.owner].(*Character); ok {
			owner.clearHitObject(id)
		}
	case *SpawnPlatform:
		w.spawns = removeWhere(w.spawns, func(s *SpawnPlatform) bool { return s.id == id })
	}
}

// Connect 为新连接生成角色与出生平台；身份已存在时返回已有角色
func (w *World) Connect(session SessionID) (*Character, bool) {
	if c, ok := w.players[session]; ok {
		return c, false
	}
	number := w.nextNumber
	w.nextNumber++

	platform := NewSpawnPlatform(w.gameMap.SpawnPoint(number))
	c := NewCharacter(session, number, 0, platform.StandPoint(), w, w.tickRate)
	w.SpawnWorldObject(c)
	c.spawn = w.SpawnWorldObject(platform)
	platform.character = c.id
	w.players[session] = c
	return c, true
}

// Disconnect 移除该身份的角色及其判定体、出生平台；未注册时无操作
func (w *World) Disconnect(session SessionID) bool {
	c, ok := w.players[session]
	if !ok {
		return false
	}
	delete(w.players, session)
	if h, ok := w.byID[c.hit]; ok {
		w.RemoveWorldObject(h)
	}
	if sp, ok := w.byID[c.spawn]; ok {
		w.RemoveWorldObject(sp)
	}
	w.RemoveWorldObject(c)
	return true
}

// Locate 返回角色中心位置
func (w *World) Locate(id ObjectID) (Point, bool) {
	c, ok := w.byID[id].(*Character)
	if !ok {
		return Point{}, false
	}
	return c.Center(), true
}

// SpawnHitObject 角色攻击时登记判定体
func (w *World) SpawnHitObject(h *HitObject) ObjectID {
	return w.SpawnWorldObject(h)
}

// ReleaseSpawn 出生平台放开角色
func (w *World) ReleaseSpawn(id ObjectID) {
	if sp, ok := w.byID[id].(*SpawnPlatform); ok {
		sp.Drop()
	}
}

// platformRects 本帧参与碰撞的平台：地图平台 + 未释放的出生平台
func (w *World) platformRects() []Rect {
	rects := make([]Rect, 0, len(w.gameMap.Platforms)+len(w.spawns))
	rects = append(rects, w.gameMap.Platforms...)
	for _, sp := range w.spawns {
		if sp.Supporting() {
			rects = append(rects, sp.Rect())
		}
	}
	return rects
}

// Step 推进一帧：
// 1. 推进所有对象（动画、位移、寿命）并清理过期对象
// 2. 每个角色对每块平台做穿透修正，首块判定站立的平台即为支撑
// 3. 判定体与角色的接触：命中则施加伤害，判定体只标记一次 used
// 4. 以支撑结果调用角色的 Aerial，并处理出界死亡
// 5. 收集全部包围盒用于调试绘制
func (w *World) Step() TickReport {
	w.tick++
	report := TickReport{Tick: w.tick}

	for _, o := range w.objects {
		o.Step()
	}
	w.sweep()

	platforms := w.platformRects()
	supported := make([]bool, len(w.characters))
	for i, c := range w.characters {
		for _, p := range platforms {
			RectifyPlatformCollision(c, p)
			if StandingOnPlatform(c, p) {
				supported[i] = true
				break
			}
		}
	}

	for _, h := range w.hits {
		if !h.CanHit() {
			continue
		}
		box := h.BoundingBox()
		landed := false
		for _, c := range w.characters {
			if c.id == h.owner && !w.selfDamage {
				continue
			}
			if !c.BoundingBox().Overlaps(box) {
				continue
			}
			c.Damage(h)
			landed = true
			report.Hits = append(report.Hits, HitEvent{
				HitObject: h.id,
				Owner:     h.owner,
				Target:    c.id,
				Damage:    h.CauseDamage(),
				Total:     c.damageTaken,
			})
		}
		if landed {
			h.MarkUsed()
		}
	}
	w.sweep()

	for i, c := range w.characters {
		c.Aerial(!supported[i])
	}
	for _, c := range w.characters {
		if !w.gameMap.BlastZone.Overlaps(c.BoundingBox()) {
			w.kill(c)
			report.Deaths = append(report.Deaths, c.id)
		}
	}

	for _, o := range w.objects {
		report.Debug = append(report.Debug, o.BoundingBoxes()...)
	}
	return report
}

// sweep 移除过期判定体与淡出完成的出生平台
func (w *World) sweep() {
	var dead []Object
	for _, h := range w.hits {
		if h.Expired() {
			dead = append(dead, h)
		}
	}
	for _, sp := range w.spawns {
		if sp.Gone() {
			dead = append(dead, sp)
		}
	}
	for _, o := range dead {
		w.RemoveWorldObject(o)
	}
}

// kill 出界死亡：清空伤害并在新的出生平台上复活
func (w *World) kill(c *Character) {
	if old, ok := w.byID[c.spawn]; ok {
		w.RemoveWorldObject(old)
	}
	platform := NewSpawnPlatform(w.gameMap.SpawnPoint(c.number))
	id := w.SpawnWorldObject(platform)
	platform.character = c.id
	c.respawn(id, platform.StandPoint())
}

// Scene 按顺序返回渲染实体与覆盖层
func (w *World) Scene() ([]Sprite, []Label) {
	sprites := make([]Sprite, 0, len(w.objects))
	for _, o := range w.objects {
		sprites = append(sprites, o.Sprite())
	}
	labels := make([]Label, 0, len(w.characters))
	slot := LabelRowWidth / float64(len(w.characters)+2)
	for _, c := range w.characters {
		labels = append(labels, Label{
			ID:   c.id,
			Text: c.DamageLabel(),
			X:    slot * float64(c.number+1),
			Y:    LabelRowY,
		})
	}
	return sprites, labels
}

func removeObject(objs []Object, id ObjectID) []Object {
	out := objs[:0]
	for _, o := range objs {
		if o.ID() != id {
			out = append(out, o)
		}
	}
	return out
}

func removeWhere[T any](s []T, match func(T) bool) []T {
	out := s[:0]
	for _, v := range s {
		if !match(v) {
			out = append(out, v)
		}
	}
	return out
}
