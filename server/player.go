package server

import (
	"fmt"
	"sync/atomic"

	"riotarena/game"
)

// Conn 房间向客户端推送快照的发送端
type Conn interface {
	Enqueue(b []byte)
	Close()
}

var sessionSeq int64

// NewSessionID 每个连接一个唯一身份；name 只作为可读前缀
func NewSessionID(name string) game.SessionID {
	n := atomic.AddInt64(&sessionSeq, 1)
	if name == "" {
		name = "p"
	}
	return game.SessionID(fmt.Sprintf("%s-%d", name, n))
}
