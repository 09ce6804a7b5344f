package server

import (
	"fmt"
	"sync"

	"riotarena/game"
	"riotarena/protocol"
)

// DefaultRoom 未指定 room 参数时使用的房间
const DefaultRoom = "room-1"

// MapLoader 每个房间加载一份独立的地图
type MapLoader func() (*game.Map, error)

// RoomManager 管理多个房间的生命周期
type RoomManager struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	cfg     Config
	codec   protocol.Codec
	loadMap MapLoader
}

func NewRoomManager(cfg Config, loadMap MapLoader) (*RoomManager, error) {
	codec, err := protocol.NewCodec(cfg.SnapshotCodec)
	if err != nil {
		return nil, err
	}
	if loadMap == nil {
		loadMap = func() (*game.Map, error) { return game.TestMap(), nil }
	}
	return &RoomManager{
		rooms:   make(map[string]*Room),
		cfg:     cfg,
		codec:   codec,
		loadMap: loadMap,
	}, nil
}

// GetOrCreateRoom 获取或创建房间，并确保开始 Tick
func (m *RoomManager) GetOrCreateRoom(id string) (*Room, error) {
	if id == "" {
		id = DefaultRoom
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	gm, err := m.loadMap()
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", id, err)
	}
	r := NewRoom(id, gm, RoomOptions{
		Name:     m.cfg.ServerName,
		TickRate: m.cfg.TickRate,
		Codec:    m.codec,
		Settings: Settings{
			MaxMessagesPerTick: m.cfg.MaxMessagesPerTick,
			SelfDamage:         m.cfg.SelfDamage,
			DebugRects:         m.cfg.DebugRects,
		},
	})
	m.rooms[id] = r
	r.StartTicker()
	Log.Infow("room created", "room", id, "map", gm.Name, "platforms", len(gm.Platforms), "tickRate", m.cfg.TickRate)
	return r, nil
}

// Room 只查询，不创建
func (m *RoomManager) Room(id string) (*Room, bool) {
	if id == "" {
		id = DefaultRoom
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// StopAll 停止所有房间的 Tick
func (m *RoomManager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		r.Stop()
	}
}
