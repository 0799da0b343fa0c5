// Package engine 把锚点注册表、事件翻译、时间线调度、命中特效和回收组装成一个动画引擎
//
// 宿主（ebiten 场景、终端渲染器）只通过 Engine 交互：
//   - Submit 提交游戏事件
//   - Update 每帧推进一次
//   - Snapshot 取只读快照绘制
//   - ReportAnchor / RefreshAnchors 上报布局变化
//   - CancelAll 在视图销毁或大厅重置时调用
//
// 引擎是单线程的：所有方法必须在同一个帧循环 goroutine 中调用。
package engine

import (
	"log"

	"github.com/decker502/cardtable/pkg/config"
	"github.com/decker502/cardtable/pkg/ecs"
	"github.com/decker502/cardtable/pkg/events"
	"github.com/decker502/cardtable/pkg/game"
	"github.com/decker502/cardtable/pkg/systems"
	"github.com/decker502/cardtable/pkg/types"
)

// Options 引擎创建参数
type Options struct {
	// Profiles 类别物理参数；nil 时使用内置默认值
	Profiles *config.ProfileTable

	// Choreography 编排配置；nil 时使用内置默认值
	Choreography *config.ChoreographyConfig

	// LocalPlayerID 本地玩家，只有发给他的牌显示牌面
	LocalPlayerID string

	// Settings 用户动画设置；nil 时使用默认设置
	Settings *game.AnimationSettings
}

// Engine 动画编排引擎
type Engine struct {
	entityManager *ecs.EntityManager
	anchors       *game.AnchorRegistry
	translator    *systems.EventTranslator
	scheduler     *systems.TimelineScheduler
	spawner       *systems.ImpactEffectSpawner
	reaper        *systems.CleanupReaper

	profiles *config.ProfileTable
	cfg      *config.ChoreographyConfig
	settings game.AnimationSettings
}

// New 创建动画引擎
func New(opts Options) *Engine {
	profiles := opts.Profiles
	if profiles == nil {
		profiles = config.DefaultPhysicsProfiles()
	}
	cfg := opts.Choreography
	if cfg == nil {
		cfg = config.DefaultChoreographyConfig()
	}
	settings := *game.DefaultSettings()
	if opts.Settings != nil {
		settings = *opts.Settings
	}

	em := ecs.NewEntityManager()
	anchors := game.NewAnchorRegistry()
	spawner := systems.NewImpactEffectSpawner(em, cfg.Effects, cfg.Limits.MaxLiveEffects)
	scheduler := systems.NewTimelineScheduler(em, anchors, spawner, cfg.Limits.MaxLiveInstances)

	e := &Engine{
		entityManager: em,
		anchors:       anchors,
		translator:    systems.NewEventTranslator(anchors, profiles, cfg),
		scheduler:     scheduler,
		spawner:       spawner,
		reaper:        systems.NewCleanupReaper(em, scheduler),
		profiles:      profiles,
		cfg:           cfg,
	}
	e.translator.SetLocalPlayer(opts.LocalPlayerID)
	e.ApplySettings(settings)
	return e
}

// ApplySettings 应用用户动画设置
func (e *Engine) ApplySettings(s game.AnimationSettings) {
	if s.SpeedScale <= 0 {
		s.SpeedScale = 1
	}
	e.settings = s
	e.translator.SetReducedMotion(s.ReducedMotion)
	if !s.AnimationsEnabled {
		e.CancelAll()
	}
}

// Settings 返回当前动画设置
func (e *Engine) Settings() game.AnimationSettings {
	return e.settings
}

// SetLocalPlayer 设置本地玩家ID
func (e *Engine) SetLocalPlayer(playerID string) {
	e.translator.SetLocalPlayer(playerID)
}

// TPS 返回期望的每秒 tick 数（减弱动态效果时降为 30）
func (e *Engine) TPS() int {
	if e.settings.ReducedMotion {
		return e.cfg.Frame.ReducedMotionTPS
	}
	return e.cfg.Frame.TPS
}

// Submit 提交一个游戏事件，返回新生成的动画实例数
//
// 座位事件更新注册表中的玩家座位；重置事件取消全部动画。
// 动画关闭时发牌/传牌/表情事件直接丢弃。从不返回错误。
func (e *Engine) Submit(ev events.Event) int {
	switch v := ev.(type) {
	case nil:
		return 0
	case *events.SeatEvent:
		if err := v.Validate(); err != nil {
			log.Printf("[Engine] 丢弃座位事件: %v", err)
			return 0
		}
		if v.Seat < 0 {
			e.anchors.ClearSeat(v.PlayerID)
		} else {
			e.anchors.SetSeat(v.PlayerID, v.Seat)
		}
		return 0
	case *events.ResetEvent:
		e.CancelAll()
		if v.ClearSeats {
			e.anchors.ResetSeats()
		}
		return 0
	case *events.DealEvent:
		if e.settings.AnimationsEnabled {
			// 新的一局，上一局的手牌标记作废
			e.scheduler.ClearHands()
		}
	}

	if !e.settings.AnimationsEnabled {
		return 0
	}
	instances := e.translator.Translate(ev)
	if len(instances) == 0 {
		return 0
	}
	return len(e.scheduler.Spawn(instances))
}

// Update 推进一帧
// deltaTime 为真实经过的秒数，内部再乘以速度倍率
func (e *Engine) Update(deltaTime float64) {
	dt := deltaTime * e.settings.SpeedScale
	e.scheduler.Update(dt)
	e.reaper.Update(dt)
}

// Snapshot 返回当前帧的只读快照
func (e *Engine) Snapshot() systems.Snapshot {
	return systems.BuildSnapshot(e.entityManager, e.scheduler.Now(), e.cfg.Pass.FanSpread)
}

// CancelAll 立即取消全部动画、特效和手牌标记
func (e *Engine) CancelAll() {
	e.reaper.CancelAll()
	e.scheduler.ClearHands()
}

// ClearHands 只清除手牌标记（新一局开始）
func (e *Engine) ClearHands() {
	e.scheduler.ClearHands()
	e.entityManager.RemoveMarkedEntities()
}

// Now 返回引擎时钟（秒）
func (e *Engine) Now() float64 {
	return e.scheduler.Now()
}

// ReportAnchor 渲染层上报锚点几何信息（下一次 RefreshAnchors 生效）
func (e *Engine) ReportAnchor(report game.AnchorReport) {
	e.anchors.Report(report)
}

// ForgetAnchor 座位视图销毁
func (e *Engine) ForgetAnchor(id types.AnchorID) {
	e.anchors.Forget(id)
}

// AddAnchorProvider 注册一个会在 RefreshAnchors 时被扫描的锚点来源
func (e *Engine) AddAnchorProvider(p game.AnchorProvider) {
	e.anchors.AddProvider(p)
}

// SetViewport 设置视口尺寸（锚点的最终兜底坐标）
func (e *Engine) SetViewport(w, h float64) {
	e.anchors.SetViewport(w, h)
}

// RefreshAnchors 重新扫描锚点；在 resize / 可见性恢复等布局信号时调用
func (e *Engine) RefreshAnchors() bool {
	return e.anchors.Refresh()
}

// ResolveAnchor 返回锚点当前坐标（带兜底）
func (e *Engine) ResolveAnchor(id types.AnchorID) types.Point {
	return e.anchors.Resolve(id)
}

// PlayerAt 返回座位上的玩家ID
func (e *Engine) PlayerAt(seat int) string {
	return e.anchors.PlayerAt(seat)
}

// LiveCount 返回当前实体数（实例 + 特效 + 手牌标记）
func (e *Engine) LiveCount() int {
	return e.entityManager.EntityCount()
}
