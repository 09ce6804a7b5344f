package server

import (
	"sync"
	"sync/atomic"

	"riotarena/game"
	"riotarena/protocol"
)

// Settings 运行期可调的房间规则，在下一帧开始时生效
type Settings struct {
	MaxMessagesPerTick int  `json:"maxMessagesPerTick"`
	SelfDamage         bool `json:"selfDamage"`
	DebugRects         bool `json:"debugRects"`
}

// RoomOptions 创建房间所需的参数
type RoomOptions struct {
	Name     string
	TickRate int
	Codec    protocol.Codec
	Settings Settings
}

// Room 房间世界：权威状态维护在内存，单线程 Tick 推进
type Room struct {
	ID string

	name     string
	tickRate int
	codec    protocol.Codec
	world    *game.World
	clients  map[game.SessionID]Conn
	inbox    chan Message
	done     chan struct{}
	metrics  *RoomMetrics
	tickSeq  int64

	settingsMu sync.Mutex
	settings   Settings

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewRoom 创建房间，初始化数据结构
func NewRoom(id string, m *game.Map, opts RoomOptions) *Room {
	if opts.TickRate <= 0 {
		opts.TickRate = game.DefaultTickRate
	}
	if opts.Codec == nil {
		opts.Codec, _ = protocol.NewCodec("json")
	}
	if opts.Settings.MaxMessagesPerTick < 1 {
		opts.Settings.MaxMessagesPerTick = 1
	}
	return &Room{
		ID:       id,
		name:     opts.Name,
		tickRate: opts.TickRate,
		codec:    opts.Codec,
		world:    game.NewWorld(m, opts.TickRate),
		clients:  make(map[game.SessionID]Conn),
		inbox:    make(chan Message, 256), // 足够缓冲，避免网络读阻塞影响 Tick
		done:     make(chan struct{}),
		metrics:  &RoomMetrics{},
		settings: opts.Settings,
	}
}

func (r *Room) Metrics() *RoomMetrics { return r.metrics }

// World 仅供 Tick 线程与测试使用
func (r *Room) World() *game.World { return r.world }

// TickSeq 已完成的帧数
func (r *Room) TickSeq() int64 { return atomic.LoadInt64(&r.tickSeq) }

func (r *Room) Codec() protocol.Codec { return r.codec }

func (r *Room) Settings() Settings {
	r.settingsMu.Lock()
	defer r.settingsMu.Unlock()
	return r.settings
}

// UpdateSettings 由管理接口调用，下一帧生效
func (r *Room) UpdateSettings(fn func(*Settings)) Settings {
	r.settingsMu.Lock()
	defer r.settingsMu.Unlock()
	fn(&r.settings)
	if r.settings.MaxMessagesPerTick < 1 {
		r.settings.MaxMessagesPerTick = 1
	}
	return r.settings
}

// Submit 入站消息（不立即改变世界），仅排队等 Tick 处理；收件箱满时丢弃
func (r *Room) Submit(m Message) bool {
	select {
	case r.inbox <- m:
		r.metrics.IncAccepted()
		return true
	default:
		r.metrics.IncDropped()
		return false
	}
}

// Join 连接建立：以 Connect 命令排队
func (r *Room) Join(session game.SessionID, conn Conn) bool {
	return r.Submit(Message{Sender: session, Conn: conn, Data: protocol.Encode(protocol.Command{Op: protocol.OpConnect})})
}

// RequestLeave 请求在 Tick 线程中移除玩家，避免并发改动房间状态
func (r *Room) RequestLeave(session game.SessionID) {
	m := Message{Sender: session, Data: protocol.Encode(protocol.Command{Op: protocol.OpDisconnect})}
	// 断开必须送达，这里阻塞写入；房间停止后放弃
	select {
	case r.inbox <- m:
		r.metrics.IncAccepted()
	case <-r.done:
	}
}

// Tick 推进一帧：世界模拟 → 处理至多 MaxMessagesPerTick 条消息 → 广播快照
func (r *Room) Tick() {
	s := r.Settings()
	r.world.SetSelfDamage(s.SelfDamage)

	report := r.world.Step()
	r.observe(report)

drain:
	for i := 0; i < s.MaxMessagesPerTick; i++ {
		select {
		case m := <-r.inbox:
			r.handleMessage(m)
		default:
			break drain
		}
	}

	var debug []game.Rect
	if s.DebugRects {
		debug = report.Debug
	}
	r.Broadcast(debug)
	r.metrics.SetPlayers(r.world.NumPlayers())
	atomic.AddInt64(&r.tickSeq, 1)
}

func (r *Room) observe(report game.TickReport) {
	for _, h := range report.Hits {
		Log.Debugw("hit landed", "room", r.ID, "hit", h.HitObject, "owner", h.Owner, "target", h.Target, "damage", h.Damage, "total", h.Total)
	}
	for _, id := range report.Deaths {
		Log.Infow("character died", "room", r.ID, "character", id)
	}
	r.metrics.AddHits(len(report.Hits))
	r.metrics.AddDeaths(len(report.Deaths))
}

// handleMessage 解码并分发一条消息；解码失败记录后丢弃，未知操作码静默忽略
func (r *Room) handleMessage(m Message) {
	cmd, err := protocol.Decode(m.Data)
	if err != nil {
		r.metrics.IncDecodeErrors()
		Log.Warnw("couldn't decode client message", "room", r.ID, "session", m.Sender, "err", err)
		return
	}

	switch cmd.Op {
	case protocol.OpConnect:
		c, created := r.world.Connect(m.Sender)
		if m.Conn != nil {
			r.clients[m.Sender] = m.Conn
		}
		if created {
			Log.Infow("player joined", "room", r.ID, "session", m.Sender, "character", c.ID(), "players", r.world.NumPlayers())
		}
		return
	case protocol.OpDisconnect:
		if r.world.Disconnect(m.Sender) {
			Log.Infow("player left", "room", r.ID, "session", m.Sender, "players", r.world.NumPlayers())
		}
		if conn, ok := r.clients[m.Sender]; ok {
			conn.Close()
			delete(r.clients, m.Sender)
		}
		return
	}

	c, ok := r.world.Player(m.Sender)
	if !ok {
		return
	}
	switch cmd.Op {
	case protocol.OpDirection:
		c.Move(int(cmd.Angle))
	case protocol.OpAttack:
		c.Attack()
	case protocol.OpDodge:
		c.Dodge()
	case protocol.OpJump:
		c.Jump()
	case protocol.OpSpecial:
		c.Special()
	case protocol.OpShield:
		c.Shield()
	}
}

// Broadcast 将当前场景编码后推送给所有连接
func (r *Room) Broadcast(debug []game.Rect) {
	if len(r.clients) == 0 {
		return
	}
	sprites, overlay := r.world.Scene()
	scene := &protocol.Scene{
		Name:    r.name,
		Tick:    r.world.Tick(),
		Sprites: sprites,
		Overlay: overlay,
		Debug:   debug,
	}
	b, err := r.codec.Marshal(scene)
	if err != nil {
		Log.Errorw("encode scene", "room", r.ID, "err", err)
		return
	}
	for _, c := range r.clients {
		c.Enqueue(b)
	}
}
