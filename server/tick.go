package server

import (
	"context"
	"time"
)

// Run 固定步长循环（单线程推进世界）：每帧结束后睡到帧预算用完；
// 超出预算时立即开始下一帧，既不跳帧也不合并。ctx 只在帧与帧之间检查。
func (r *Room) Run(ctx context.Context) {
	period := time.Second / time.Duration(r.tickRate)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		start := time.Now()
		r.Tick()
		elapsed := time.Since(start)
		r.metrics.AddTick(elapsed.Nanoseconds())

		remain := period - elapsed
		if remain <= 0 {
			r.metrics.IncOverrun()
			Log.Debugw("tick overrun", "room", r.ID, "elapsed", elapsed, "budget", period)
			continue
		}
		timer := time.NewTimer(remain)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// StartTicker 启动房间的 Tick 循环，重复调用无效
func (r *Room) StartTicker() {
	r.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			<-r.done
			cancel()
		}()
		go r.Run(ctx)
	})
}

// Stop 停止 Tick 循环并放弃尚未送达的断开请求
func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}
