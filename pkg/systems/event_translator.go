package systems

import (
	"log"

	"github.com/decker502/cardtable/pkg/components"
	"github.com/decker502/cardtable/pkg/config"
	"github.com/decker502/cardtable/pkg/events"
	"github.com/decker502/cardtable/pkg/game"
	"github.com/decker502/cardtable/pkg/types"
)

// reducedMotionArcScale 减弱动态效果时的弧高倍率
const reducedMotionArcScale = 0.5

// EventTranslator 把游戏事件转换为动画实例
//
// 只读取锚点注册表（必要时触发一次强制 Refresh），不持有任何实例。
// 无法解析端点或事件字段不全时，事件被丢弃：返回空列表，只记日志。
type EventTranslator struct {
	anchors  *game.AnchorRegistry
	profiles *config.ProfileTable
	cfg      *config.ChoreographyConfig

	// localPlayerID 本地玩家，只有发给他的牌才显示牌面
	localPlayerID string
	reducedMotion bool
}

// NewEventTranslator 创建事件翻译器
func NewEventTranslator(anchors *game.AnchorRegistry, profiles *config.ProfileTable, cfg *config.ChoreographyConfig) *EventTranslator {
	if cfg == nil {
		cfg = config.DefaultChoreographyConfig()
	}
	return &EventTranslator{
		anchors:  anchors,
		profiles: profiles,
		cfg:      cfg,
	}
}

// SetLocalPlayer 设置本地玩家ID
func (t *EventTranslator) SetLocalPlayer(playerID string) {
	t.localPlayerID = playerID
}

// SetReducedMotion 开关减弱动态效果（弧高减半、关闭摆动）
func (t *EventTranslator) SetReducedMotion(enabled bool) {
	t.reducedMotion = enabled
}

// Translate 把一个事件转换为零个或多个动画实例
//
// 返回的实例尚未分配 ID 和开始时刻，交给 TimelineScheduler.Spawn 处理。
func (t *EventTranslator) Translate(ev events.Event) []*components.AnimationComponent {
	if ev == nil {
		return nil
	}
	if err := ev.Validate(); err != nil {
		log.Printf("[EventTranslator] 丢弃事件 %s: %v", ev.Kind(), err)
		return nil
	}

	switch e := ev.(type) {
	case *events.DealEvent:
		return t.translateDeal(e)
	case *events.CardPassEvent:
		return t.translatePass(e)
	case *events.EmojiThrowEvent:
		return t.translateEmoji(e)
	default:
		// 座位/重置事件不产生动画
		return nil
	}
}

func (t *EventTranslator) translateDeal(e *events.DealEvent) []*components.AnimationComponent {
	items := BuildDealSequence(e, t.anchors.ActiveSeats(), t.anchors.PlayerAt, t.cfg.Deal, t.localPlayerID)
	prof := t.profiles.Lookup(types.CategoryDeal)

	out := make([]*components.AnimationComponent, 0, len(items))
	for i := range items {
		item := items[i]
		anim := t.newInstance(types.CategoryDeal, prof, item.Source, types.SeatAnchor(item.Seat))
		anim.Duration = t.cfg.Deal.FlightDuration
		anim.Delay = item.Delay
		anim.Payload.FaceDown = item.Card == nil
		if item.Card != nil {
			anim.Payload.Cards = []types.Card{*item.Card}
		}
		anim.Deal = &item
		out = append(out, anim)
	}
	log.Printf("[EventTranslator] 发牌: 庄家=%d, 服务端条目=%d, 补齐后=%d", e.DealerSeat, len(e.Sequence), len(out))
	return out
}

func (t *EventTranslator) translatePass(e *events.CardPassEvent) []*components.AnimationComponent {
	from, to, ok := t.resolveEndpoints(e.FromPlayerID, e.ToPlayerID)
	if !ok {
		return nil
	}

	prof := t.profiles.Lookup(types.CategoryPass)
	anim := t.newInstance(types.CategoryPass, prof, from, to)
	anim.Duration = t.cfg.Pass.DurationFor(len(e.Cards))
	anim.Payload.Cards = append([]types.Card(nil), e.Cards...)
	anim.Payload.FaceDown = !t.involvesLocal(e.FromPlayerID, e.ToPlayerID)
	return []*components.AnimationComponent{anim}
}

func (t *EventTranslator) translateEmoji(e *events.EmojiThrowEvent) []*components.AnimationComponent {
	from, to, ok := t.resolveEndpoints(e.FromPlayerID, e.ToPlayerID)
	if !ok {
		return nil
	}

	category, effect := t.classifyGlyph(e.Emoji, e.Category)
	prof := t.profiles.Lookup(category)
	anim := t.newInstance(category, prof, from, to)
	if effect != "" {
		anim.Effect = effect
	}
	anim.Payload.Emoji = e.Emoji
	return []*components.AnimationComponent{anim}
}

// classifyGlyph 决定表情的类别和命中特效
// 顺序：事件自带的合法类别 → 字形表 → default
// 特效只来自字形表；为空时由调用方沿用类别参数中的特效
func (t *EventTranslator) classifyGlyph(glyph, declared string) (types.Category, types.EffectType) {
	entry, known := t.cfg.Glyph(glyph)

	if c, ok := types.ParseCategory(declared); ok && !c.IsCard() {
		if known && entry.Category == c {
			return c, entry.Effect
		}
		return c, ""
	}
	if known {
		return entry.Category, entry.Effect
	}
	return types.CategoryDefault, ""
}

func (t *EventTranslator) newInstance(category types.Category, prof config.PhysicsProfile, from, to types.AnchorID) *components.AnimationComponent {
	anim := &components.AnimationComponent{
		Category:    category,
		Profile:     prof,
		Origin:      from,
		Destination: to,
		Duration:    prof.Duration,
		Phase:       types.PhaseFlying,
		Effect:      prof.ImpactEffect,
		ArcScale:    1,
	}
	if t.reducedMotion {
		anim.ArcScale = reducedMotionArcScale
		anim.DisableZigZag = true
	}
	return anim
}

// resolveEndpoints 解析起止玩家所在座位
// 第一次解析失败时强制刷新注册表再试一次，仍失败则放弃
func (t *EventTranslator) resolveEndpoints(fromID, toID string) (types.AnchorID, types.AnchorID, bool) {
	from, to := t.anchors.ResolvePlayer(fromID), t.anchors.ResolvePlayer(toID)
	if from == types.NoSeat || to == types.NoSeat {
		t.anchors.Refresh()
		from, to = t.anchors.ResolvePlayer(fromID), t.anchors.ResolvePlayer(toID)
	}
	if from == types.NoSeat || to == types.NoSeat {
		log.Printf("[EventTranslator] 无法解析端点 %q(%s) -> %q(%s)，丢弃事件", fromID, from, toID, to)
		return 0, 0, false
	}
	return from, to, true
}

func (t *EventTranslator) involvesLocal(ids ...string) bool {
	if t.localPlayerID == "" {
		return false
	}
	for _, id := range ids {
		if id == t.localPlayerID {
			return true
		}
	}
	return false
}
