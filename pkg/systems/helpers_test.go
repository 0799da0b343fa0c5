package systems

import (
	"math"

	"github.com/decker502/cardtable/pkg/components"
	"github.com/decker502/cardtable/pkg/config"
	"github.com/decker502/cardtable/pkg/types"
)

const tolerance = 1e-6

func near(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

// fakeAnchors 测试用的锚点解析器，未知锚点返回原点
type fakeAnchors map[types.AnchorID]types.Point

func (f fakeAnchors) Resolve(id types.AnchorID) types.Point {
	return f[id]
}

// recordingSink 记录所有命中请求
type recordingSink struct {
	requests []ImpactRequest
}

func (r *recordingSink) Spawn(req ImpactRequest) *components.ImpactEffectComponent {
	r.requests = append(r.requests, req)
	return nil
}

func testAnchors() fakeAnchors {
	return fakeAnchors{
		types.TableCenter:   {X: 400, Y: 300},
		types.SeatAnchor(0): {X: 400, Y: 550},
		types.SeatAnchor(1): {X: 100, Y: 400},
		types.SeatAnchor(2): {X: 100, Y: 150},
		types.SeatAnchor(3): {X: 400, Y: 50},
		types.SeatAnchor(4): {X: 700, Y: 150},
		types.SeatAnchor(5): {X: 700, Y: 400},
	}
}

// newTestInstance 按类别默认参数构造一个未调度的实例
func newTestInstance(category types.Category, from, to types.AnchorID) *components.AnimationComponent {
	prof := config.DefaultPhysicsProfiles().Lookup(category)
	return &components.AnimationComponent{
		Category:    category,
		Profile:     prof,
		Origin:      from,
		Destination: to,
		Duration:    prof.Duration,
		Effect:      prof.ImpactEffect,
		ArcScale:    1,
	}
}
