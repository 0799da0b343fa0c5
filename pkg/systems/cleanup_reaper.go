package systems

import (
	"log"

	"github.com/decker502/cardtable/pkg/components"
	"github.com/decker502/cardtable/pkg/ecs"
	"github.com/decker502/cardtable/pkg/types"
)

// Clock 提供调度器时钟
type Clock interface {
	Now() float64
}

// CleanupReaper 回收已完成的动画实例和过期的命中特效
//
// 每帧在 TimelineScheduler.Update 之后调用。
// 回收条件（任一满足即销毁）:
//   - 生命周期组件到达硬性上限
//   - 动画实例进入 done 阶段
//   - 命中特效存活时间已到
//
// 手牌标记没有生命周期组件，只由 ClearHands / CancelAll 移除。
type CleanupReaper struct {
	entityManager *ecs.EntityManager
	clock         Clock
}

// NewCleanupReaper 创建回收器
func NewCleanupReaper(em *ecs.EntityManager, clock Clock) *CleanupReaper {
	return &CleanupReaper{
		entityManager: em,
		clock:         clock,
	}
}

// Update 累加生命周期并销毁到期实体
// 返回本帧实际删除的实体数
func (r *CleanupReaper) Update(deltaTime float64) int {
	em := r.entityManager

	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](em) {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
		if !ok {
			continue
		}
		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}
		if lifetime.IsExpired {
			em.DestroyEntity(id)
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.AnimationComponent](em) {
		if anim, _ := ecs.GetComponent[*components.AnimationComponent](em, id); anim.Phase == types.PhaseDone {
			em.DestroyEntity(id)
		}
	}

	now := r.clock.Now()
	for _, id := range ecs.GetEntitiesWith1[*components.ImpactEffectComponent](em) {
		if effect, _ := ecs.GetComponent[*components.ImpactEffectComponent](em, id); effect.Expired(now) {
			em.DestroyEntity(id)
		}
	}

	return em.RemoveMarkedEntities()
}

// CancelAll 立即销毁全部实例、特效和手牌标记
// 进行中的飞行直接消失，不补完到终点
func (r *CleanupReaper) CancelAll() {
	n := r.entityManager.EntityCount()
	r.entityManager.DestroyAll()
	removed := r.entityManager.RemoveMarkedEntities()
	if n > 0 {
		log.Printf("[CleanupReaper] 取消全部动画: 移除 %d 个实体", removed)
	}
}
