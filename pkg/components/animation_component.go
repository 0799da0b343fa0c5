package components

import (
	"github.com/decker502/cardtable/pkg/config"
	"github.com/decker502/cardtable/pkg/types"
)

// Payload 飞行物携带的内容
type Payload struct {
	// Cards 卡牌（传牌时为整组，发牌时为单张或空）
	Cards []types.Card

	// FaceDown 卡牌是否背面朝上
	FaceDown bool

	// Emoji 表情字形
	Emoji string
}

// AnimationComponent 一个飞行中的视觉单元（AnimationInstance）
//
// 工作流程：
//  1. EventTranslator 根据事件生成（此时 ID 为 0、StartTime 未定）
//  2. TimelineScheduler.Spawn 分配 ID、写入 StartTime = 当前时钟 + Delay
//  3. TimelineScheduler.Update 每帧推进 Phase（flying → impact → done）
//  4. CleanupReaper 回收 done 的实例
//
// 位置只由经过时间和起止锚点算出，从不直接修改。
type AnimationComponent struct {
	// ID 实例唯一标识（等于实体ID）
	ID uint64

	// Category 动画类别
	Category types.Category

	// Profile 生成时解析好的物理参数（只读快照）
	Profile config.PhysicsProfile

	// Origin, Destination 起止锚点（每帧重新解析，跟随布局移动）
	Origin      types.AnchorID
	Destination types.AnchorID

	// Delay 相对事件提交时刻的启动延迟（秒）
	Delay float64

	// StartTime 开始飞行的时钟时刻（秒）
	StartTime float64

	// Duration 飞行时长（秒）
	Duration float64

	// Phase 当前阶段，只能单调推进
	Phase types.Phase

	// Effect 命中时生成的特效类型
	Effect types.EffectType

	// ArcScale 弧高倍率（减弱动态效果时为 0.5）
	ArcScale float64

	// DisableZigZag 关闭横向摆动
	DisableZigZag bool

	// Payload 携带内容
	Payload Payload

	// Deal 发牌实例的来源条目；落地后转换为手牌标记
	Deal *DealSequenceItem
}

// Elapsed 返回相对 StartTime 的经过时间（可为负，表示尚未出发）
func (a *AnimationComponent) Elapsed(now float64) float64 {
	return now - a.StartTime
}

// Started 是否已出发
func (a *AnimationComponent) Started(now float64) bool {
	return now >= a.StartTime
}
