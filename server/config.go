package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"riotarena/protocol"
)

// Config 进程配置：.env 文件 → ARENA_* 环境变量 → 命令行参数（main 中覆盖）
type Config struct {
	Addr      string
	LogFile   string
	LogLevel  string
	LogStdout bool

	ServerName         string
	TickRate           int
	MaxMessagesPerTick int
	SnapshotCodec      string
	MapDir             string
	Map                string
	SelfDamage         bool
	DebugRects         bool
}

func DefaultConfig() Config {
	return Config{
		Addr:               ":8080",
		LogFile:            "app.log",
		LogLevel:           "info",
		ServerName:         "Test Server",
		TickRate:           30,
		MaxMessagesPerTick: 1,
		SnapshotCodec:      "json",
		Map:                "testmap",
		DebugRects:         true,
	}
}

// LoadConfig 读取 .env（不存在时忽略）与环境变量
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := DefaultConfig()
	var err error
	cfg.Addr = envString("ARENA_ADDR", cfg.Addr)
	cfg.LogFile = envString("ARENA_LOG_FILE", cfg.LogFile)
	cfg.LogLevel = envString("ARENA_LOG_LEVEL", cfg.LogLevel)
	cfg.ServerName = envString("ARENA_SERVER_NAME", cfg.ServerName)
	cfg.SnapshotCodec = envString("ARENA_SNAPSHOT_CODEC", cfg.SnapshotCodec)
	cfg.MapDir = envString("ARENA_MAP_DIR", cfg.MapDir)
	cfg.Map = envString("ARENA_MAP", cfg.Map)
	if cfg.LogStdout, err = envBool("ARENA_LOG_STDOUT", cfg.LogStdout); err != nil {
		return Config{}, err
	}
	if cfg.TickRate, err = envInt("ARENA_TICK_RATE", cfg.TickRate); err != nil {
		return Config{}, err
	}
	if cfg.MaxMessagesPerTick, err = envInt("ARENA_MAX_MESSAGES_PER_TICK", cfg.MaxMessagesPerTick); err != nil {
		return Config{}, err
	}
	if cfg.SelfDamage, err = envBool("ARENA_SELF_DAMAGE", cfg.SelfDamage); err != nil {
		return Config{}, err
	}
	if cfg.DebugRects, err = envBool("ARENA_DEBUG_RECTS", cfg.DebugRects); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate 检查取值范围
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick rate must be > 0, got %d", c.TickRate)
	}
	if c.MaxMessagesPerTick < 1 {
		return fmt.Errorf("max messages per tick must be >= 1, got %d", c.MaxMessagesPerTick)
	}
	if _, err := protocol.NewCodec(c.SnapshotCodec); err != nil {
		return err
	}
	return nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
