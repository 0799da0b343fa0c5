package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下创建 gdata manager
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认值
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if !s.AnimationsEnabled {
		t.Error("AnimationsEnabled: got false, want true")
	}
	if s.ReducedMotion {
		t.Error("ReducedMotion: got true, want false")
	}
	if s.SpeedScale != 1.0 {
		t.Errorf("SpeedScale: got %v, want 1.0", s.SpeedScale)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.GetSettings() != *DefaultSettings() {
		t.Errorf("degraded mode should use defaults, got %+v", sm.GetSettings())
	}
	sm.SetReducedMotion(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
}

// TestSettingsLoadSave 测试持久化往返
func TestSettingsLoadSave(t *testing.T) {
	m := openTestGdata(t, "cardtable_test_settings")

	sm1 := NewSettingsManager(m)
	sm1.SetReducedMotion(true)
	sm1.SetAnimationsEnabled(false)
	sm1.SetSpeedScale(2.0)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(m)
	s := sm2.GetSettings()
	if !s.ReducedMotion {
		t.Error("Loaded ReducedMotion: got false, want true")
	}
	if s.AnimationsEnabled {
		t.Error("Loaded AnimationsEnabled: got true, want false")
	}
	if s.SpeedScale != 2.0 {
		t.Errorf("Loaded SpeedScale: got %v, want 2.0", s.SpeedScale)
	}
}

// TestLoadPartialSettings 旧版本数据缺字段时沿用默认值
func TestLoadPartialSettings(t *testing.T) {
	m := openTestGdata(t, "cardtable_test_partial")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("reducedMotion: true\n")); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	s := NewSettingsManager(m).GetSettings()
	if !s.ReducedMotion {
		t.Error("ReducedMotion should be loaded")
	}
	if !s.AnimationsEnabled || s.SpeedScale != 1.0 {
		t.Errorf("missing fields should keep defaults, got %+v", s)
	}
}

// TestLoadCorruptSettings 数据损坏时回退默认设置
func TestLoadCorruptSettings(t *testing.T) {
	m := openTestGdata(t, "cardtable_test_corrupt")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("speedScale: [oops")); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	sm := NewSettingsManager(m)
	if sm.GetSettings() != *DefaultSettings() {
		t.Errorf("corrupt data should fall back to defaults, got %+v", sm.GetSettings())
	}
}

// TestSetSpeedScaleClamp 测试时间倍率范围校验
func TestSetSpeedScaleClamp(t *testing.T) {
	sm := NewSettingsManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{1.5, 1.5},
		{0.25, 0.25},
		{4.0, 4.0},
		{0.1, 0.25},
		{10, 4.0},
		{0, 1.0},
		{-2, 1.0},
	}

	for _, tt := range tests {
		sm.SetSpeedScale(tt.input)
		if got := sm.GetSettings().SpeedScale; got != tt.expected {
			t.Errorf("SetSpeedScale(%v): got %v, want %v", tt.input, got, tt.expected)
		}
	}
}
