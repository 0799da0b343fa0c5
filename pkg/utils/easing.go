package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制飞行动画的速度曲线。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值，并满足 f(0)=0, f(1)=1。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数签名
type EasingFunc func(t float64) float64

// 缓动函数名称（用于配置文件）
const (
	EasingLinear    = "linear"
	EasingOutCubic  = "outCubic"
	EasingOutQuart  = "outQuart"
	EasingOutBounce = "outBounce"
)

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（普通飞行物默认曲线）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseOutQuart 四次方缓出
// 特点：比 Cubic 更猛的起步，适合"砸过去"的攻击类
// 公式：f(t) = 1 - (1-t)⁴
func EaseOutQuart(t float64) float64 {
	return 1 - math.Pow(1-t, 4)
}

// EaseOutBounce 弹跳缓出
// 分段抛物线，末端有三次逐渐减弱的回弹（庆祝类）
func EaseOutBounce(t float64) float64 {
	const (
		n1 = 7.5625
		d1 = 2.75
	)
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// EaseInQuad 二次方缓入
// 用于飞行末段的淡出：先慢后快
func EaseInQuad(t float64) float64 {
	return t * t
}

// EasingByName 根据名称返回缓动函数
// 未知名称返回 EaseOutCubic，第二个返回值表示名称是否被识别
func EasingByName(name string) (EasingFunc, bool) {
	switch name {
	case EasingLinear:
		return EaseLinear, true
	case EasingOutCubic, "":
		return EaseOutCubic, name != ""
	case EasingOutQuart:
		return EaseOutQuart, true
	case EasingOutBounce:
		return EaseOutBounce, true
	default:
		return EaseOutCubic, false
	}
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp 将值限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
