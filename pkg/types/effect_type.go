package types

// EffectType 命中特效类型
type EffectType string

const (
	// EffectNone 不产生命中特效（发牌）
	EffectNone EffectType = "none"
	// EffectRing 扩散圆环
	EffectRing EffectType = "ring"
	// EffectBurst 径向粒子爆发
	EffectBurst EffectType = "burst"
	// EffectDecal 贴花污渍（番茄拍脸）
	EffectDecal EffectType = "decal"
	// EffectFlash 短暂闪光
	EffectFlash EffectType = "flash"
	// EffectRising 上升字形（爱心、笑脸飘起）
	EffectRising EffectType = "rising"
	// EffectBounce 弹跳回弹
	EffectBounce EffectType = "bounce"
)

// HasParticles 该特效是否携带粒子场
func (e EffectType) HasParticles() bool {
	return e == EffectBurst || e == EffectRising
}

// Valid 检查特效类型是否合法
func (e EffectType) Valid() bool {
	switch e {
	case EffectNone, EffectRing, EffectBurst, EffectDecal, EffectFlash, EffectRising, EffectBounce:
		return true
	}
	return false
}
