package systems

import (
	"github.com/decker502/cardtable/pkg/components"
	"github.com/decker502/cardtable/pkg/ecs"
	"github.com/decker502/cardtable/pkg/types"
)

// InstanceView 渲染层看到的一个动画实例
type InstanceView struct {
	ID       uint64
	Category types.Category
	Phase    types.Phase
	Progress float64

	X, Y     float64
	Rotation float64
	Scale    float64
	Opacity  float64
	// Visible 发牌中尚未出发的牌为 false
	Visible bool

	Destination types.AnchorID
	Payload     components.Payload
	// FanAngles 多张牌扇形展开时每张的附加旋转（度）
	FanAngles []float64
}

// ParticleView 粒子当前位置
type ParticleView struct {
	X, Y     float64
	Rotation float64
	Size     float64
}

// EffectView 渲染层看到的一个命中特效
type EffectView struct {
	ID       uint64
	ParentID uint64
	Type     types.EffectType
	Category types.Category
	X, Y     float64
	Radius   float64
	Progress float64
	Glyph    string

	Particles []ParticleView
}

// HandView 座位上的一张手牌
type HandView struct {
	Seat        int
	Recipient   string
	IndexInSeat int
	Card        *types.Card
	Phantom     bool
}

// Snapshot 某一帧的只读快照
// 渲染层每帧取一次，不能通过它修改引擎状态
type Snapshot struct {
	Time      float64
	Instances []InstanceView
	Effects   []EffectView
	Hands     []HandView
}

// BuildSnapshot 从实体管理器生成快照（按实体ID升序）
// 已标记删除的实体不会出现在快照中
func BuildSnapshot(em *ecs.EntityManager, now, fanSpread float64) Snapshot {
	snap := Snapshot{Time: now}

	for _, id := range ecs.GetEntitiesWith2[*components.AnimationComponent, *components.TransformComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		anim, _ := ecs.GetComponent[*components.AnimationComponent](em, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)

		view := InstanceView{
			ID:          anim.ID,
			Category:    anim.Category,
			Phase:       anim.Phase,
			Progress:    Progress(anim.Elapsed(now), anim.Duration),
			X:           tr.X,
			Y:           tr.Y,
			Rotation:    tr.Rotation,
			Scale:       tr.Scale,
			Opacity:     tr.Opacity,
			Visible:     tr.Visible,
			Destination: anim.Destination,
			Payload:     anim.Payload,
		}
		if n := len(anim.Payload.Cards); n > 1 {
			view.FanAngles = make([]float64, n)
			for i := range view.FanAngles {
				view.FanAngles[i] = FanAngle(i, n, fanSpread)
			}
		}
		snap.Instances = append(snap.Instances, view)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ImpactEffectComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		e, _ := ecs.GetComponent[*components.ImpactEffectComponent](em, id)
		age := now - e.SpawnTime
		view := EffectView{
			ID:       e.ID,
			ParentID: e.ParentID,
			Type:     e.Type,
			Category: e.Category,
			X:        e.X,
			Y:        e.Y,
			Radius:   e.Radius,
			Progress: e.Progress(now),
			Glyph:    e.Glyph,
		}
		for _, p := range e.Particles {
			pos := ParticlePosition(e, p, age)
			view.Particles = append(view.Particles, ParticleView{
				X:        pos.X,
				Y:        pos.Y,
				Rotation: p.RotationSpeed * age,
				Size:     p.Size,
			})
		}
		snap.Effects = append(snap.Effects, view)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.HandMarkerComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		h, _ := ecs.GetComponent[*components.HandMarkerComponent](em, id)
		snap.Hands = append(snap.Hands, HandView{
			Seat:        h.Seat,
			Recipient:   h.Recipient,
			IndexInSeat: h.IndexInSeat,
			Card:        h.Card,
			Phantom:     h.Phantom,
		})
	}

	return snap
}
