package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riotarena/game"
)

func newTestManager(t *testing.T) *RoomManager {
	t.Helper()
	cfg := DefaultConfig()
	cfg.TickRate = 100
	rm, err := NewRoomManager(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(rm.StopAll)
	return rm
}

func TestGetOrCreateRoom(t *testing.T) {
	rm := newTestManager(t)
	r1, err := rm.GetOrCreateRoom("r1")
	require.NoError(t, err)
	again, err := rm.GetOrCreateRoom("r1")
	require.NoError(t, err)
	assert.Same(t, r1, again)

	def, err := rm.GetOrCreateRoom("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRoom, def.ID)

	_, ok := rm.Room("missing")
	assert.False(t, ok)
	got, ok := rm.Room("")
	require.True(t, ok)
	assert.Same(t, def, got)
}

func TestRoomsHaveIndependentMaps(t *testing.T) {
	rm := newTestManager(t)
	a, err := rm.GetOrCreateRoom("a")
	require.NoError(t, err)
	b, err := rm.GetOrCreateRoom("b")
	require.NoError(t, err)
	assert.NotSame(t, a.World().Map(), b.World().Map())
}

func TestMapLoaderError(t *testing.T) {
	boom := errors.New("no such map")
	rm, err := NewRoomManager(DefaultConfig(), func() (*game.Map, error) { return nil, boom })
	require.NoError(t, err)
	_, err = rm.GetOrCreateRoom("r")
	assert.ErrorIs(t, err, boom)
	_, ok := rm.Room("r")
	assert.False(t, ok)
}

func TestManagerRejectsCodec(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SnapshotCodec = "xml"
	_, err := NewRoomManager(cfg, nil)
	assert.Error(t, err)
}

func TestAdminConfigGet(t *testing.T) {
	rm := newTestManager(t)
	_, err := rm.GetOrCreateRoom("r1")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	rm.HandleAdminConfig(rec, httptest.NewRequest(http.MethodGet, "/admin/config?room=r1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var s Settings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, Settings{MaxMessagesPerTick: 1, DebugRects: true}, s)
}

func TestAdminConfigPost(t *testing.T) {
	rm := newTestManager(t)
	room, err := rm.GetOrCreateRoom("r1")
	require.NoError(t, err)

	body := strings.NewReader(`{"maxMessagesPerTick":3,"selfDamage":true}`)
	rec := httptest.NewRecorder()
	rm.HandleAdminConfig(rec, httptest.NewRequest(http.MethodPost, "/admin/config?room=r1", body))
	require.Equal(t, http.StatusOK, rec.Code)

	// 未提交的字段保持不变
	assert.Equal(t, Settings{MaxMessagesPerTick: 3, SelfDamage: true, DebugRects: true}, room.Settings())
}

func TestAdminConfigErrors(t *testing.T) {
	rm := newTestManager(t)
	_, err := rm.GetOrCreateRoom("r1")
	require.NoError(t, err)

	cases := []struct {
		name   string
		method string
		url    string
		body   string
		code   int
	}{
		{"unknown room", http.MethodGet, "/admin/config?room=nope", "", http.StatusNotFound},
		{"bad json", http.MethodPost, "/admin/config?room=r1", "{", http.StatusBadRequest},
		{"zero messages", http.MethodPost, "/admin/config?room=r1", `{"maxMessagesPerTick":0}`, http.StatusBadRequest},
		{"method", http.MethodPut, "/admin/config?room=r1", "", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rm.HandleAdminConfig(rec, httptest.NewRequest(tc.method, tc.url, strings.NewReader(tc.body)))
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestMetricsHandler(t *testing.T) {
	rm := newTestManager(t)
	_, err := rm.GetOrCreateRoom("r1")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	rm.HandleMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics?room=r1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Room    string         `json:"room"`
		Tick    int64          `json:"tick"`
		Metrics map[string]any `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "r1", payload.Room)
	assert.Contains(t, payload.Metrics, "tick_count")
	assert.Contains(t, payload.Metrics, "messages_dropped")

	rec = httptest.NewRecorder()
	rm.HandleMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics?room=nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
