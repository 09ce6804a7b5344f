package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"riotarena/game"
	"riotarena/protocol"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// ClientConn 负责发送（写）数据到客户端的轻量包装
type ClientConn struct {
	ws      *websocket.Conn
	send    chan []byte
	msgType int
}

func NewClientConn(ws *websocket.Conn, binary bool) *ClientConn {
	msgType := websocket.TextMessage
	if binary {
		msgType = websocket.BinaryMessage
	}
	return &ClientConn{
		ws:      ws,
		send:    make(chan []byte, 64),
		msgType: msgType,
	}
}

// Enqueue 将要发送的消息压入队列（非阻塞，满则丢弃）
func (c *ClientConn) Enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
		// 为了实时性，丢弃新快照（防止阻塞 Tick）
	}
}

// Close 关闭发送队列，写协程随之关闭底层连接；只在 Tick 线程调用
func (c *ClientConn) Close() {
	if c.send != nil {
		close(c.send)
		c.send = nil
	}
}

// writePump 独立协程，负责从 send 队列写出到 WS，并定期发送 ping
func (c *ClientConn) writePump(send <-chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case msg, ok := <-send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(c.msgType, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 读取客户端命令，原样排入房间收件箱（解码在 Tick 线程完成）
func (c *ClientConn) readPump(room *Room, session game.SessionID) {
	defer c.ws.Close()
	// 读泵退出时，通知房间在 Tick 线程中移除该玩家
	defer room.RequestLeave(session)
	c.ws.SetReadLimit(1 << 10)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		kind, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				Log.Infow("client read error", "room", room.ID, "session", session, "err", err)
			}
			return
		}
		if kind == websocket.TextMessage {
			if payload, err = protocol.FromText(payload); err != nil {
				Log.Debugw("ignore text frame", "session", session, "err", err)
				continue
			}
		}
		room.Submit(Message{Sender: session, Data: payload})
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 演示环境：允许所有来源（生产环境需严格限制）
		return true
	},
}

// HandleWS WebSocket 接入：?room=room-1&player=alice
func (m *RoomManager) HandleWS(w http.ResponseWriter, r *http.Request) {
	room, err := m.GetOrCreateRoom(r.URL.Query().Get("room"))
	if err != nil {
		Log.Errorw("open room", "err", err)
		http.Error(w, "room unavailable", http.StatusServiceUnavailable)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnw("upgrade error", "err", err)
		return
	}

	session := NewSessionID(r.URL.Query().Get("player"))
	client := NewClientConn(ws, room.Codec().Binary())
	if !room.Join(session, client) {
		Log.Warnw("room inbox full, rejecting connection", "room", room.ID, "session", session)
		_ = ws.Close()
		return
	}

	go client.writePump(client.send)
	go client.readPump(room, session)
}
