package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager 管理当前活动场景
// 同一时刻只有一个场景的 Update 和 Draw 会被调用
type SceneManager struct {
	currentScene Scene

	// 最近一次的视口尺寸，切换场景时同步给新场景
	width, height int
}

// NewSceneManager 创建场景管理器（初始没有活动场景）
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo 切换活动场景
// 已知视口尺寸时立即通知实现了 Resizable 的新场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	if r, ok := scene.(Resizable); ok && sm.width > 0 && sm.height > 0 {
		r.SetLayout(sm.width, sm.height)
	}
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Layout 记录视口尺寸并转发给当前场景
func (sm *SceneManager) Layout(width, height int) {
	if width == sm.width && height == sm.height {
		return
	}
	sm.width, sm.height = width, height
	if r, ok := sm.currentScene.(Resizable); ok {
		r.SetLayout(width, height)
	}
}

// SaveOnExit 让当前场景保存状态（如果它实现了 Saveable）
func (sm *SceneManager) SaveOnExit() bool {
	s, ok := sm.currentScene.(Saveable)
	if !ok {
		return true
	}
	if !s.SaveOnExit() {
		log.Printf("[SceneManager] 场景退出保存失败")
		return false
	}
	return true
}

// Update 推进当前场景；没有活动场景时什么都不做
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景；没有活动场景时什么都不做
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
