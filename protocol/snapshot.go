package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"riotarena/game"
)

// Scene 每帧广播给客户端的场景快照
type Scene struct {
	Name    string        `json:"name" msgpack:"name"`
	Tick    int           `json:"tick" msgpack:"tick"`
	Sprites []game.Sprite `json:"sprites" msgpack:"sprites"`
	Overlay []game.Label  `json:"overlay" msgpack:"overlay"`
	Debug   []game.Rect   `json:"debug,omitempty" msgpack:"debug,omitempty"`
}

// Codec 快照序列化方式
type Codec interface {
	Name() string
	Marshal(s *Scene) ([]byte, error)
	Binary() bool // true 时以二进制帧发送
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }
func (jsonCodec) Binary() bool { return false }
func (jsonCodec) Marshal(s *Scene) ([]byte, error) {
	return json.Marshal(s)
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string { return "msgpack" }
func (msgpackCodec) Binary() bool { return true }
func (msgpackCodec) Marshal(s *Scene) ([]byte, error) {
	return msgpack.Marshal(s)
}

// NewCodec 按名称选择编码器，空字符串默认为 json
func NewCodec(name string) (Codec, error) {
	switch name {
	case "", "json":
		return jsonCodec{}, nil
	case "msgpack":
		return msgpackCodec{}, nil
	}
	return nil, fmt.Errorf("unknown snapshot codec %q", name)
}
