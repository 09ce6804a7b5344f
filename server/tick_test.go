package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riotarena/game"
)

func TestStartTickerAdvances(t *testing.T) {
	r := NewRoom("run", game.TestMap(), RoomOptions{TickRate: 100})
	conn := &fakeConn{}
	require.True(t, r.Join("a", conn))

	r.StartTicker()
	r.StartTicker()
	require.Eventually(t, func() bool { return r.TickSeq() >= 5 }, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return r.Metrics().Snapshot()["players"] == int64(1) }, time.Second, 5*time.Millisecond)
	assert.Positive(t, conn.Frames())

	r.Stop()
	r.Stop()
	time.Sleep(30 * time.Millisecond)
	seq := r.TickSeq()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, seq, r.TickSeq())
	assert.GreaterOrEqual(t, r.Metrics().Snapshot()["tick_count"], int64(5))
}

func TestRunStopsOnContext(t *testing.T) {
	r := NewRoom("ctx", game.TestMap(), RoomOptions{TickRate: 200})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	require.Eventually(t, func() bool { return r.TickSeq() > 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRequestLeaveAfterStop(t *testing.T) {
	r := NewRoom("stopped", game.TestMap(), RoomOptions{})
	for r.Submit(Message{Sender: "a", Data: cmd(0)}) {
	}
	r.Stop()

	done := make(chan struct{})
	go func() {
		r.RequestLeave("a")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RequestLeave blocked on a stopped room")
	}
}
