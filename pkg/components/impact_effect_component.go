package components

import "github.com/decker502/cardtable/pkg/types"

// Particle 命中特效中的单个粒子
// 粒子位置 = 特效生成点 + 速度 × 年龄 + ½ 重力 × 年龄²（纯函数，不逐帧积分）
type Particle struct {
	// VelocityX, VelocityY 初速度（像素/秒）
	VelocityX float64
	VelocityY float64

	// Gravity 竖直加速度（像素/秒²，正值向下）
	Gravity float64

	// RotationSpeed 旋转速度（度/秒）
	RotationSpeed float64

	// Size 粒子尺寸（像素）
	Size float64
}

// ImpactEffectComponent 短生命周期的命中特效（圆环、爆发、污渍、闪光、上升字形）
//
// 由 ImpactEffectSpawner 在父实例进入 impact 阶段时创建，
// 存活时间到期后无条件销毁，与父实例状态无关。
type ImpactEffectComponent struct {
	// ID 特效唯一标识（等于实体ID）
	ID uint64

	// ParentID 触发该特效的动画实例ID
	ParentID uint64

	// Type 特效类型
	Type types.EffectType

	// Category 父实例的类别
	Category types.Category

	// X, Y 生成位置
	X, Y float64

	// SpawnTime 生成时刻（调度器时钟，秒）
	SpawnTime float64

	// TTL 存活时间（秒）
	TTL float64

	// Radius 最大半径（像素，已乘 ImpactScale）
	Radius float64

	// Glyph 上升字形特效使用的字符
	Glyph string

	// Particles 粒子场（仅 burst / rising）
	Particles []Particle
}

// Progress 返回归一化进度 [0, 1]
func (e *ImpactEffectComponent) Progress(now float64) float64 {
	if e.TTL <= 0 {
		return 1
	}
	p := (now - e.SpawnTime) / e.TTL
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Expired 存活时间是否已到
func (e *ImpactEffectComponent) Expired(now float64) bool {
	return now-e.SpawnTime >= e.TTL
}
