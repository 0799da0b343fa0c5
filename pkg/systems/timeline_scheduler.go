package systems

import (
	"log"

	"github.com/decker502/cardtable/pkg/components"
	"github.com/decker502/cardtable/pkg/ecs"
	"github.com/decker502/cardtable/pkg/types"
)

// lifetimeGrace 实例硬性存活上限在飞行结束之后的余量（秒）
const lifetimeGrace = 0.5

// AnchorResolver 把锚点标识解析为当前坐标（永不失败）
type AnchorResolver interface {
	Resolve(id types.AnchorID) types.Point
}

// TimelineScheduler 持有全部活跃动画实例，每帧推进一次
//
// 每个实例独立计时：StartTime = Spawn 时的时钟 + Delay。
// 发牌的 52 张牌因此是 52 个互不相干的实例，按各自延迟出发。
//
// 阶段推进规则:
//   - 进度首次达到 ImpactAt：flying → impact，通知特效生成器（每个实例只触发一次）
//   - 进度达到 1：impact → done；发牌实例转换为座位上的手牌标记
//
// 阶段只会向前推进，回收由 CleanupReaper 负责。
type TimelineScheduler struct {
	entityManager *ecs.EntityManager
	anchors       AnchorResolver
	impacts       ImpactSink

	// maxLive 同屏实例上限（0 = 不限），超出时淘汰最旧的非发牌实例
	maxLive int

	now float64

	// 每个座位已落地的牌数，用于手牌标记的横向错开
	handCounts map[int]int
}

// NewTimelineScheduler 创建时间线调度器
func NewTimelineScheduler(em *ecs.EntityManager, anchors AnchorResolver, impacts ImpactSink, maxLive int) *TimelineScheduler {
	return &TimelineScheduler{
		entityManager: em,
		anchors:       anchors,
		impacts:       impacts,
		maxLive:       maxLive,
		handCounts:    make(map[int]int),
	}
}

// Now 返回调度器时钟（秒）
func (s *TimelineScheduler) Now() float64 {
	return s.now
}

// Spawn 接管一批新实例，返回分配的实例ID
func (s *TimelineScheduler) Spawn(instances []*components.AnimationComponent) []uint64 {
	ids := make([]uint64, 0, len(instances))
	for _, anim := range instances {
		if anim == nil {
			continue
		}
		if anim.Duration <= 0 {
			anim.Duration = anim.Profile.Duration
		}
		if anim.Delay < 0 {
			anim.Delay = 0
		}

		id := s.entityManager.CreateEntity()
		anim.ID = uint64(id)
		anim.StartTime = s.now + anim.Delay
		anim.Phase = types.PhaseFlying

		origin := s.anchors.Resolve(anim.Origin)
		ecs.AddComponent(s.entityManager, id, anim)
		ecs.AddComponent(s.entityManager, id, &components.TransformComponent{
			X:       origin.X,
			Y:       origin.Y,
			Scale:   anim.Profile.ScaleStart,
			Opacity: 1,
			Visible: false,
		})
		ecs.AddComponent(s.entityManager, id, &components.LifetimeComponent{
			MaxLifetime: anim.Delay + anim.Duration + lifetimeGrace,
		})
		ids = append(ids, anim.ID)
	}
	s.enforceLimit()

	// 同一批里被上限淘汰的不再返回
	live := ids[:0]
	for _, id := range ids {
		if !s.entityManager.IsMarkedForDestroy(ecs.EntityID(id)) {
			live = append(live, id)
		}
	}
	return live
}

// Update 推进时钟并更新所有实例
func (s *TimelineScheduler) Update(deltaTime float64) {
	if deltaTime > 0 {
		s.now += deltaTime
	}

	entities := ecs.GetEntitiesWith2[*components.AnimationComponent, *components.TransformComponent](s.entityManager)
	for _, id := range entities {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		if anim.Phase == types.PhaseDone {
			continue
		}
		if !anim.Started(s.now) {
			transform.Visible = false
			continue
		}

		// 起止点每帧重新解析，锚点移动时飞行物跟随
		origin := s.anchors.Resolve(anim.Origin)
		dest := s.anchors.Resolve(anim.Destination)
		sample := SampleMotion(anim, origin, dest, anim.Elapsed(s.now))

		transform.X, transform.Y = sample.X, sample.Y
		transform.Rotation = sample.Rotation
		transform.Scale = sample.Scale
		transform.Opacity = sample.Opacity
		transform.Visible = true

		if anim.Phase == types.PhaseFlying && sample.Progress >= anim.Profile.ImpactAt {
			anim.Phase = types.PhaseImpact
			s.fireImpact(anim, dest)
		}
		if anim.Phase == types.PhaseImpact && sample.Progress >= 1 {
			anim.Phase = types.PhaseDone
			if anim.Deal != nil {
				s.placeHandMarker(anim)
			}
		}
	}
}

func (s *TimelineScheduler) fireImpact(anim *components.AnimationComponent, dest types.Point) {
	if s.impacts == nil {
		return
	}
	s.impacts.Spawn(ImpactRequest{
		ParentID:    anim.ID,
		Category:    anim.Category,
		Effect:      anim.Effect,
		Position:    dest,
		ImpactScale: anim.Profile.ImpactScale,
		Glyph:       anim.Payload.Emoji,
		Time:        s.now,
	})
}

// placeHandMarker 发牌落地，在座位上留下手牌标记
func (s *TimelineScheduler) placeHandMarker(anim *components.AnimationComponent) {
	item := anim.Deal
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.HandMarkerComponent{
		Seat:        item.Seat,
		Recipient:   item.Recipient,
		IndexInSeat: s.handCounts[item.Seat],
		Card:        item.Card,
		Phantom:     item.Phantom,
	})
	s.handCounts[item.Seat]++
}

// ClearHands 移除全部手牌标记（新一局开始）
// 上一局还在飞行的发牌实例一并取消，不会落进新一局的手牌
func (s *TimelineScheduler) ClearHands() {
	for _, id := range ecs.GetEntitiesWith1[*components.HandMarkerComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.AnimationComponent](s.entityManager) {
		if anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id); anim.Deal != nil {
			s.entityManager.DestroyEntity(id)
		}
	}
	s.handCounts = make(map[int]int)
}

// enforceLimit 同屏实例超过上限时淘汰最旧的非发牌实例
// 发牌实例从不被淘汰，全是发牌实例时允许暂时超出上限
func (s *TimelineScheduler) enforceLimit() {
	if s.maxLive <= 0 {
		return
	}
	var live, evictable []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith1[*components.AnimationComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		live = append(live, id)
		if anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id); anim.Deal == nil {
			evictable = append(evictable, id)
		}
	}

	excess := len(live) - s.maxLive
	if excess <= 0 {
		return
	}
	if excess > len(evictable) {
		excess = len(evictable)
	}
	for _, id := range evictable[:excess] {
		s.entityManager.DestroyEntity(id)
	}
	if excess > 0 {
		log.Printf("[TimelineScheduler] 实例数超过上限 %d，淘汰最旧的 %d 个", s.maxLive, excess)
	}
}
