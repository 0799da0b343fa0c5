package systems

import "time"

// FrameClock 把墙钟时间换算为有界的帧间隔
//
// 用于不由 ebiten 驱动的宿主（终端渲染器等）。
// 窗口挂起后恢复时单帧步长被截断为 maxStep，避免一帧跳完整段动画。
type FrameClock struct {
	now     func() time.Time
	last    time.Time
	started bool
	maxStep float64
}

// NewFrameClock 创建帧时钟；now 为 nil 时使用 time.Now
func NewFrameClock(maxStep float64, now func() time.Time) *FrameClock {
	if now == nil {
		now = time.Now
	}
	return &FrameClock{now: now, maxStep: maxStep}
}

// Tick 返回距上一次 Tick 的秒数（第一次调用返回 0）
func (c *FrameClock) Tick() float64 {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return 0
	}
	dt := t.Sub(c.last).Seconds()
	c.last = t
	if dt < 0 {
		return 0
	}
	if c.maxStep > 0 && dt > c.maxStep {
		dt = c.maxStep
	}
	return dt
}

// Reset 下一次 Tick 重新从 0 开始
func (c *FrameClock) Reset() {
	c.started = false
}
