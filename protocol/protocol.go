package protocol

// Opcode 入站命令的第一个字节
type Opcode byte

const (
	OpConnect Opcode = iota
	OpDisconnect
	OpDirection
	OpAttack
	OpDodge
	OpJump
	OpSpecial
	OpShield
)

var opNames = map[Opcode]string{
	OpConnect:    "connect",
	OpDisconnect: "disconnect",
	OpDirection:  "direction",
	OpAttack:     "attack",
	OpDodge:      "dodge",
	OpJump:       "jump",
	OpSpecial:    "special",
	OpShield:     "shield",
}

func (o Opcode) String() string {
	if n, ok := opNames[o]; ok {
		return n
	}
	return "unknown"
}

// Known 未知操作码由调用方静默忽略
func (o Opcode) Known() bool {
	_, ok := opNames[o]
	return ok
}

// ParseOpcode 文本名称到操作码（JSON 文本帧使用）
func ParseOpcode(name string) (Opcode, bool) {
	for op, n := range opNames {
		if n == name {
			return op, true
		}
	}
	return 0, false
}
