package components

// LifetimeComponent 实体的硬性存活上限
// 每个动画实例和命中特效都携带一个，保证事件洪泛时也不会无限堆积
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)，从实体创建时起算
	CurrentLifetime float64 // 当前已存在时间(秒)
	IsExpired       bool    // 是否已过期
}
