package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/cardtable/pkg/components"
	"github.com/decker502/cardtable/pkg/config"
	"github.com/decker502/cardtable/pkg/ecs"
	"github.com/decker502/cardtable/pkg/types"
)

// ImpactRequest 动画实例进入 impact 阶段时发给特效生成器的请求
type ImpactRequest struct {
	ParentID    uint64
	Category    types.Category
	Effect      types.EffectType
	Position    types.Point
	ImpactScale float64
	Glyph       string
	// Time 命中时刻（调度器时钟）
	Time float64
}

// ImpactSink 接收命中通知
type ImpactSink interface {
	Spawn(req ImpactRequest) *components.ImpactEffectComponent
}

// ImpactEffectSpawner 根据命中请求创建短生命周期特效实体
//
// 特效存活时间只由特效类型决定，与父实例无关；
// 父实例被提前回收不影响已生成的特效。
type ImpactEffectSpawner struct {
	entityManager *ecs.EntityManager
	cfg           config.EffectConfig
	maxLive       int
}

// NewImpactEffectSpawner 创建特效生成器
// maxLive 为同屏特效上限，0 表示不限
func NewImpactEffectSpawner(em *ecs.EntityManager, cfg config.EffectConfig, maxLive int) *ImpactEffectSpawner {
	return &ImpactEffectSpawner{
		entityManager: em,
		cfg:           cfg,
		maxLive:       maxLive,
	}
}

// Spawn 生成一个命中特效；特效类型为 none 时返回 nil
// 从不阻塞，超过上限时淘汰最旧的特效
func (s *ImpactEffectSpawner) Spawn(req ImpactRequest) *components.ImpactEffectComponent {
	if req.Effect == "" || req.Effect == types.EffectNone {
		return nil
	}

	scale := req.ImpactScale
	if scale <= 0 {
		scale = 1
	}

	id := s.entityManager.CreateEntity()
	effect := &components.ImpactEffectComponent{
		ID:        uint64(id),
		ParentID:  req.ParentID,
		Type:      req.Effect,
		Category:  req.Category,
		X:         req.Position.X,
		Y:         req.Position.Y,
		SpawnTime: req.Time,
		TTL:       s.cfg.TTLFor(req.Effect),
		Radius:    s.cfg.Radius * scale,
		Glyph:     req.Glyph,
	}
	effect.Particles = buildParticles(uint64(id), req.Effect, s.cfg.ParticleCount(req.Effect), effect.Radius, effect.TTL)

	ecs.AddComponent(s.entityManager, id, effect)
	ecs.AddComponent(s.entityManager, id, &components.LifetimeComponent{MaxLifetime: effect.TTL})

	s.enforceLimit()
	return effect
}

// enforceLimit 同屏特效超过上限时按 ID 从小到大（最旧优先）淘汰
func (s *ImpactEffectSpawner) enforceLimit() {
	if s.maxLive <= 0 {
		return
	}
	live := make([]ecs.EntityID, 0)
	for _, id := range ecs.GetEntitiesWith1[*components.ImpactEffectComponent](s.entityManager) {
		if !s.entityManager.IsMarkedForDestroy(id) {
			live = append(live, id)
		}
	}
	excess := len(live) - s.maxLive
	for i := 0; i < excess; i++ {
		s.entityManager.DestroyEntity(live[i])
	}
	if excess > 0 {
		log.Printf("[ImpactEffectSpawner] 特效数超过上限 %d，淘汰 %d 个", s.maxLive, excess)
	}
}

// buildParticles 生成粒子场
// 以特效 ID 为随机种子，同一特效每次生成的粒子完全相同
func buildParticles(seed uint64, effect types.EffectType, count int, radius, ttl float64) []components.Particle {
	if count <= 0 {
		return nil
	}
	if ttl <= 0 {
		ttl = 0.5
	}
	rng := rand.New(rand.NewSource(int64(seed)))
	particles := make([]components.Particle, count)

	for i := range particles {
		p := &particles[i]
		p.RotationSpeed = (rng.Float64()*2 - 1) * 360
		p.Size = 3 + rng.Float64()*3

		switch effect {
		case types.EffectRising:
			// 缓慢上浮，轻微左右漂移
			p.VelocityX = (rng.Float64()*2 - 1) * radius * 0.5 / ttl
			p.VelocityY = -(1 + rng.Float64()) * radius / ttl
			p.Gravity = 0
		default:
			// 径向均匀散开，带少量随机抖动
			angle := 2*math.Pi*float64(i)/float64(count) + (rng.Float64()-0.5)*0.4
			speed := (1 + rng.Float64()) * radius / ttl
			p.VelocityX = math.Cos(angle) * speed
			p.VelocityY = math.Sin(angle) * speed
			p.Gravity = 2 * radius / (ttl * ttl)
		}
	}
	return particles
}

// ParticlePosition 返回粒子在特效年龄 age 时的位置
func ParticlePosition(e *components.ImpactEffectComponent, p components.Particle, age float64) types.Point {
	if age < 0 {
		age = 0
	}
	return types.Point{
		X: e.X + p.VelocityX*age,
		Y: e.Y + p.VelocityY*age + 0.5*p.Gravity*age*age,
	}
}
