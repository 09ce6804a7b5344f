package server

import "riotarena/game"

// Message 客户端入站消息（原始字节），由 Tick 线程解码并分发
type Message struct {
	Sender game.SessionID
	Conn   Conn // 仅连接建立时携带，用于登记广播目标
	Data   []byte
}
