package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个可绘制的场景（牌桌、回放、调试视图）
type Scene interface {
	// Update 推进场景逻辑，deltaTime 为本帧经过的秒数
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Resizable 可选接口：场景需要知道视口尺寸（布局锚点）
type Resizable interface {
	SetLayout(width, height int)
}

// Saveable 可选接口：场景在程序退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 窗口关闭
//   - 移动端进入后台
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}
