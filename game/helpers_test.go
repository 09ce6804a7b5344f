package game

import "testing"

// 主平台顶边 y=300，站立时 location.Y = 299
const groundY = 299.0

func newTestWorld(t *testing.T) *World {
	t.Helper()
	return NewWorld(TestMap(), DefaultTickRate)
}

// connectOnGround 连接并把角色放到主平台上（出生平台已释放）
func connectOnGround(t *testing.T, w *World, session SessionID, x float64) *Character {
	t.Helper()
	c, ok := w.Connect(session)
	if !ok {
		t.Fatalf("connect %s: already registered", session)
	}
	w.ReleaseSpawn(c.SpawnPlatform())
	c.justSpawned = false
	c.SetLocation(Point{X: x, Y: groundY})
	return c
}

func stepN(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Step()
	}
}
