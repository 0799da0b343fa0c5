package systems

import (
	"math"

	"github.com/decker502/cardtable/pkg/components"
	"github.com/decker502/cardtable/pkg/types"
	"github.com/decker502/cardtable/pkg/utils"
)

// steepArcFactor 陡弧模式下额外竖直调制相对弧高的比例
const steepArcFactor = 0.5

// MotionSample 某一时刻动画实例的插值结果
type MotionSample struct {
	X, Y     float64
	Rotation float64 // 度
	Scale    float64
	Opacity  float64
	Progress float64 // 未缓动的归一化进度 [0, 1]
}

// Progress 返回实例在给定经过时间下的归一化进度
// 未出发（elapsed < 0）为 0；时长非正时直接视为 1
func Progress(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return utils.Clamp01(elapsed / duration)
}

// SampleMotion 计算动画实例在经过时间 elapsed 时的位置、旋转、缩放和透明度
//
// 纯函数：结果只取决于经过时间和当前起止点坐标。
// 起止点由调用方每帧重新解析，因此布局变化时飞行物会跟随锚点移动。
//
// 组成:
//   - 基础位置：起点到终点按缓动进度线性插值
//   - 弧线：竖直方向 sin(p·π)·弧高（向上为负 Y）
//   - 陡弧：额外叠加 sin²(p·π) 项
//   - 摆动：沿飞行方向的法线 sin(p·π·波数)·振幅
func SampleMotion(anim *components.AnimationComponent, origin, dest types.Point, elapsed float64) MotionSample {
	prof := anim.Profile
	p := Progress(elapsed, anim.Duration)
	eased := prof.EasingFunc()(p)

	x := utils.Lerp(origin.X, dest.X, eased)
	y := utils.Lerp(origin.Y, dest.Y, eased)

	arcScale := anim.ArcScale
	if arcScale <= 0 {
		arcScale = 1
	}
	s := math.Sin(p * math.Pi)
	y -= s * prof.ArcHeight * arcScale
	if prof.SteepArc {
		y -= s * s * prof.ArcHeight * arcScale * steepArcFactor
	}

	if prof.ZigZag && !anim.DisableZigZag && prof.ZigZagAmplitude != 0 {
		nx, ny := perpendicular(origin, dest)
		waves := float64(prof.ZigZagWaves)
		if waves < 1 {
			waves = 1
		}
		off := math.Sin(p*math.Pi*waves) * prof.ZigZagAmplitude
		x += nx * off
		y += ny * off
	}

	return MotionSample{
		X:        x,
		Y:        y,
		Rotation: p * prof.SpinSpeed * 360,
		Scale:    utils.Lerp(prof.ScaleStart, prof.ScaleEnd, eased),
		Opacity:  fadeOpacity(p, prof.FadeStart),
		Progress: p,
	}
}

// fadeOpacity 在 fadeStart 之后按二次方缓入淡出，到 p=1 时为 0
// fadeStart >= 1 表示不淡出
func fadeOpacity(p, fadeStart float64) float64 {
	if fadeStart >= 1 || p <= fadeStart {
		return 1
	}
	return 1 - utils.EaseInQuad(utils.Clamp01((p-fadeStart)/(1-fadeStart)))
}

// perpendicular 返回飞行方向的单位法向量；起止点重合时取水平方向
func perpendicular(origin, dest types.Point) (float64, float64) {
	dx, dy := dest.X-origin.X, dest.Y-origin.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 1, 0
	}
	return -dy / l, dx / l
}

// FanAngle 返回扇形展开的一组牌中第 index 张的旋转角（度）
// 整组以 0 度为中心对称展开，相邻两张相差 spread 度
func FanAngle(index, count int, spread float64) float64 {
	if count <= 1 {
		return 0
	}
	return (float64(index) - float64(count-1)/2) * spread
}
