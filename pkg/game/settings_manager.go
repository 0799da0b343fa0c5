package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/cardtable/pkg/utils"
)

// AnimationSettings 动画相关的用户设置
// 设置是全局的，不绑定到特定房间
type AnimationSettings struct {
	// AnimationsEnabled 关闭后所有事件都不产生动画
	AnimationsEnabled bool `yaml:"animationsEnabled"`

	// ReducedMotion 减弱动态效果：30Hz、弧线减半、关闭横向摆动
	ReducedMotion bool `yaml:"reducedMotion"`

	// SpeedScale 时间倍率（0.25 ~ 4.0），调试用
	SpeedScale float64 `yaml:"speedScale"`
}

// 速度倍率范围
const (
	MinSpeedScale = 0.25
	MaxSpeedScale = 4.0
)

// DefaultSettings 返回默认设置
func DefaultSettings() *AnimationSettings {
	return &AnimationSettings{
		AnimationsEnabled: true,
		ReducedMotion:     false,
		SpeedScale:        1.0,
	}
}

// SettingsManager 设置管理器
// 负责动画设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager     // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *AnimationSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "animation"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，只覆盖文件中出现的字段
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SpeedScale = clampSpeed(loaded.SpeedScale)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded: %+v", *loaded)
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved")
	return nil
}

// GetSettings 获取当前设置（副本）
func (sm *SettingsManager) GetSettings() AnimationSettings {
	return *sm.settings
}

// SetAnimationsEnabled 设置动画总开关
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetAnimationsEnabled(enabled bool) {
	sm.settings.AnimationsEnabled = enabled
}

// SetReducedMotion 设置减弱动态效果
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetReducedMotion(enabled bool) {
	sm.settings.ReducedMotion = enabled
}

// SetSpeedScale 设置时间倍率，限制在 [MinSpeedScale, MaxSpeedScale]
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSpeedScale(scale float64) {
	sm.settings.SpeedScale = clampSpeed(scale)
}

// clampSpeed 限制时间倍率；非正值视为 1.0
func clampSpeed(scale float64) float64 {
	if scale <= 0 {
		return 1.0
	}
	return utils.Clamp(scale, MinSpeedScale, MaxSpeedScale)
}
