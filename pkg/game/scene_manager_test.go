package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// mockScene 记录调用情况的测试场景
type mockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64

	layouts [][2]int
	saveOK  bool
	saved   int
}

func (m *mockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *mockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func (m *mockScene) SetLayout(w, h int) {
	m.layouts = append(m.layouts, [2]int{w, h})
}

func (m *mockScene) SaveOnExit() bool {
	m.saved++
	return m.saveOK
}

// plainScene 不实现任何可选接口
type plainScene struct{}

func (plainScene) Update(float64) {}
func (plainScene) Draw(*ebiten.Image) {}

func TestSceneManagerUpdateAndDraw(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Fatal("new manager should have no scene")
	}
	// 没有场景时不 panic
	sm.Update(0.016)
	sm.Draw(ebiten.NewImage(10, 10))

	scene := &mockScene{}
	sm.SwitchTo(scene)
	sm.Update(1.0 / 30.0)
	sm.Draw(ebiten.NewImage(10, 10))

	if !scene.updateCalled || scene.deltaTime != 1.0/30.0 {
		t.Errorf("update called=%v dt=%v", scene.updateCalled, scene.deltaTime)
	}
	if !scene.drawCalled {
		t.Error("Draw not forwarded")
	}
}

func TestSceneManagerLayout(t *testing.T) {
	sm := NewSceneManager()
	first := &mockScene{}
	sm.SwitchTo(first)
	if len(first.layouts) != 0 {
		t.Fatal("layout should not be sent before the size is known")
	}

	sm.Layout(800, 600)
	sm.Layout(800, 600) // 尺寸不变不重复通知
	sm.Layout(1024, 720)
	if len(first.layouts) != 2 || first.layouts[1] != [2]int{1024, 720} {
		t.Errorf("layouts = %v", first.layouts)
	}

	// 新场景切入时立即拿到当前尺寸
	second := &mockScene{}
	sm.SwitchTo(second)
	if len(second.layouts) != 1 || second.layouts[0] != [2]int{1024, 720} {
		t.Errorf("switched scene layouts = %v", second.layouts)
	}

	// 不需要布局的场景也能切换
	sm.SwitchTo(plainScene{})
	sm.Layout(640, 480)
}

func TestSceneManagerSaveOnExit(t *testing.T) {
	tests := []struct {
		name  string
		scene Scene
		want  bool
	}{
		{"no scene", nil, true},
		{"not saveable", plainScene{}, true},
		{"save ok", &mockScene{saveOK: true}, true},
		{"save failed", &mockScene{saveOK: false}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSceneManager()
			if tt.scene != nil {
				sm.SwitchTo(tt.scene)
			}
			if got := sm.SaveOnExit(); got != tt.want {
				t.Errorf("SaveOnExit() = %v, want %v", got, tt.want)
			}
		})
	}
}
