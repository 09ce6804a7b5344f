package protocol

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyMessage = errors.New("empty message")
	ErrShortPayload = errors.New("short payload")
)

// Command 解码后的一条客户端命令
type Command struct {
	Op    Opcode
	Angle int32 // 仅 OpDirection
}

// Decode 解析二进制帧：首字节为操作码，Direction 后跟大端 int32 角度。
// 未知操作码不是错误，返回的 Command.Op.Known() 为 false。
func Decode(b []byte) (Command, error) {
	if len(b) == 0 {
		return Command{}, ErrEmptyMessage
	}
	cmd := Command{Op: Opcode(b[0])}
	if cmd.Op == OpDirection {
		if len(b) < 5 {
			return Command{}, fmt.Errorf("direction: %w (%d bytes)", ErrShortPayload, len(b))
		}
		cmd.Angle = int32(binary.BigEndian.Uint32(b[1:5]))
	}
	return cmd, nil
}

// Encode 与 Decode 对应，测试与客户端工具使用
func Encode(cmd Command) []byte {
	if cmd.Op == OpDirection {
		b := make([]byte, 5)
		b[0] = byte(cmd.Op)
		binary.BigEndian.PutUint32(b[1:], uint32(cmd.Angle))
		return b
	}
	return []byte{byte(cmd.Op)}
}

// TextCommand WebSocket 文本帧的 JSON 形式
// 示例：{"op":"direction","angle":0}
type TextCommand struct {
	Op    string `json:"op"`
	Angle int32  `json:"angle,omitempty"`
}

// FromText 把 JSON 文本帧转换为等价的二进制帧
func FromText(payload []byte) ([]byte, error) {
	var tc TextCommand
	if err := json.Unmarshal(payload, &tc); err != nil {
		return nil, fmt.Errorf("text command: %w", err)
	}
	op, ok := ParseOpcode(strings.ToLower(tc.Op))
	if !ok {
		return nil, fmt.Errorf("text command: unknown op %q", tc.Op)
	}
	return Encode(Command{Op: op, Angle: tc.Angle}), nil
}
