package components

// TransformComponent 动画实例当前帧的插值结果
// 由 TimelineScheduler 每帧重新计算，渲染层只读
type TransformComponent struct {
	X, Y     float64
	Rotation float64 // 度
	Scale    float64
	Opacity  float64 // 0-1

	// Visible 是否已出发（发牌中尚未轮到的牌不显示）
	Visible bool
}
