package main

import (
	"context"
	"flag"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riotarena/game"
	"riotarena/level"
	"riotarena/server"
)

// RiotArena 入口：读取配置，启动 HTTP + WebSocket 服务，并初始化房间管理器
func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		panic(err)
	}

	// 命令行参数覆盖 .env / 环境变量
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "server listen address, e.g. :8080")
	flag.IntVar(&cfg.TickRate, "tickrate", cfg.TickRate, "simulation ticks per second")
	flag.IntVar(&cfg.MaxMessagesPerTick, "max-messages", cfg.MaxMessagesPerTick, "client messages handled per tick")
	flag.StringVar(&cfg.SnapshotCodec, "codec", cfg.SnapshotCodec, "snapshot codec: json or msgpack")
	flag.StringVar(&cfg.MapDir, "mapdir", cfg.MapDir, "directory containing TMX maps")
	flag.StringVar(&cfg.Map, "map", cfg.Map, "map name (without .tmx)")
	flag.StringVar(&cfg.LogLevel, "loglevel", cfg.LogLevel, "debug, info, warn or error")
	flag.BoolVar(&cfg.LogStdout, "stdout", cfg.LogStdout, "also write logs to stderr")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	// 使用第三方 zap 日志库写入日志文件（带滚动）
	if err := server.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	var maps fs.FS
	if cfg.MapDir != "" {
		maps = os.DirFS(cfg.MapDir)
	}
	loadMap := func() (*game.Map, error) { return level.Load(maps, cfg.Map) }

	rm, err := server.NewRoomManager(cfg, loadMap)
	if err != nil {
		server.Log.Fatalf("room manager: %v", err)
	}
	// 先预创建一个默认房间，便于快速试跑
	if _, err := rm.GetOrCreateRoom(server.DefaultRoom); err != nil {
		server.Log.Fatalf("default room: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", rm.HandleWS)
	// 前后端分离：将 / 映射到 web 目录的静态资源
	mux.Handle("/", http.FileServer(http.Dir("web")))
	// 管理与监控接口
	mux.HandleFunc("/admin/config", rm.HandleAdminConfig)
	mux.HandleFunc("/metrics", rm.HandleMetrics)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		server.Log.Infof("%s listening on %s; tickRate=%d codec=%s map=%s",
			cfg.ServerName, cfg.Addr, cfg.TickRate, cfg.SnapshotCodec, cfg.Map)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		server.Log.Warnw("shutdown", "err", err)
	}
	rm.StopAll()
}
