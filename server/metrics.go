package server

import (
	"sync/atomic"
)

// RoomMetrics 记录房间运行期的关键指标（用于监控与调试）
type RoomMetrics struct {
	TickCount        int64 // 统计的 Tick 次数
	TotalTickNs      int64 // Tick 累计耗时（纳秒）
	Overruns         int64 // 超出帧预算的 Tick 数
	MessagesAccepted int64 // 进入收件箱的消息数
	MessagesDropped  int64 // 因收件箱满被丢弃的消息数
	DecodeErrors     int64 // 解码失败的消息数
	HitsLanded       int64
	Deaths           int64
	Players          int64 // 当前在线角色数
}

func (m *RoomMetrics) IncAccepted() { atomic.AddInt64(&m.MessagesAccepted, 1) }
func (m *RoomMetrics) IncDropped() { atomic.AddInt64(&m.MessagesDropped, 1) }
func (m *RoomMetrics) IncDecodeErrors() { atomic.AddInt64(&m.DecodeErrors, 1) }
func (m *RoomMetrics) IncOverrun() { atomic.AddInt64(&m.Overruns, 1) }
func (m *RoomMetrics) AddHits(n int) { atomic.AddInt64(&m.HitsLanded, int64(n)) }
func (m *RoomMetrics) AddDeaths(n int) { atomic.AddInt64(&m.Deaths, int64(n)) }
func (m *RoomMetrics) SetPlayers(n int) { atomic.StoreInt64(&m.Players, int64(n)) }
func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":        tick,
		"overruns":          atomic.LoadInt64(&m.Overruns),
		"messages_accepted": atomic.LoadInt64(&m.MessagesAccepted),
		"messages_dropped":  atomic.LoadInt64(&m.MessagesDropped),
		"decode_errors":     atomic.LoadInt64(&m.DecodeErrors),
		"hits_landed":       atomic.LoadInt64(&m.HitsLanded),
		"deaths":            atomic.LoadInt64(&m.Deaths),
		"players":           atomic.LoadInt64(&m.Players),
		"avg_tick_ms":       avgMs,
	}
}
