package server

import (
	"encoding/json"
	"net/http"
)

// HandleAdminConfig 提供房间规则的读取与更新（热更新，下一帧生效）
// GET /admin/config?room=room-1  返回当前配置
// POST /admin/config?room=room-1 以 JSON 载荷更新部分字段
func (m *RoomManager) HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	room, ok := m.Room(roomID)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	type cfg struct {
		MaxMessagesPerTick *int  `json:"maxMessagesPerTick,omitempty"`
		SelfDamage         *bool `json:"selfDamage,omitempty"`
		DebugRects         *bool `json:"debugRects,omitempty"`
	}

	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(room.Settings())
		return
	case http.MethodPost:
		var body cfg
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.MaxMessagesPerTick != nil && *body.MaxMessagesPerTick < 1 {
			http.Error(w, "maxMessagesPerTick must be >= 1", http.StatusBadRequest)
			return
		}
		s := room.UpdateSettings(func(s *Settings) {
			if body.MaxMessagesPerTick != nil {
				s.MaxMessagesPerTick = *body.MaxMessagesPerTick
			}
			if body.SelfDamage != nil {
				s.SelfDamage = *body.SelfDamage
			}
			if body.DebugRects != nil {
				s.DebugRects = *body.DebugRects
			}
		})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s)
		Log.Infof("config updated: room=%s maxMessagesPerTick=%d selfDamage=%t debugRects=%t",
			room.ID, s.MaxMessagesPerTick, s.SelfDamage, s.DebugRects)
		return
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=room-1
func (m *RoomManager) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	room, ok := m.Room(r.URL.Query().Get("room"))
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	payload := map[string]any{
		"room":    room.ID,
		"tick":    room.TickSeq(),
		"metrics": room.Metrics().Snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
