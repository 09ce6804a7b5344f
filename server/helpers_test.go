package server

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"riotarena/game"
	"riotarena/protocol"
)

// fakeConn 记录房间推送的帧
type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func (f *fakeConn) Enqueue(b []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, b)
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeConn) Frames() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func (f *fakeConn) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// lastScene 解码最近一帧 JSON 快照
func (f *fakeConn) lastScene(t *testing.T) protocol.Scene {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.frames)
	var s protocol.Scene
	require.NoError(t, json.Unmarshal(f.frames[len(f.frames)-1], &s))
	return s
}

func newTestRoom(t *testing.T, settings Settings) *Room {
	t.Helper()
	r := NewRoom("test", game.TestMap(), RoomOptions{
		Name:     "Test Server",
		TickRate: game.DefaultTickRate,
		Settings: settings,
	})
	t.Cleanup(r.Stop)
	return r
}

func cmd(op protocol.Opcode) []byte {
	return protocol.Encode(protocol.Command{Op: op})
}

func direction(angle int32) []byte {
	return protocol.Encode(protocol.Command{Op: protocol.OpDirection, Angle: angle})
}
