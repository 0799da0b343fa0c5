package utils

import (
	"math"
	"testing"
)

const epsilon = 1e-9

// TestEasingEndpoints 所有缓动函数必须满足 f(0)=0, f(1)=1
func TestEasingEndpoints(t *testing.T) {
	tests := []struct {
		name string
		fn   EasingFunc
	}{
		{"linear", EaseLinear},
		{"outCubic", EaseOutCubic},
		{"outQuart", EaseOutQuart},
		{"outBounce", EaseOutBounce},
		{"inQuad", EaseInQuad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v := tt.fn(0); math.Abs(v) > epsilon {
				t.Errorf("%s(0) = %v, 期望 0", tt.name, v)
			}
			if v := tt.fn(1); math.Abs(v-1) > epsilon {
				t.Errorf("%s(1) = %v, 期望 1", tt.name, v)
			}
		})
	}
}

// TestEaseOutQuart 测试四次方缓出
func TestEaseOutQuart(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"中点", 0.5, 0.9375}, // 1 - 0.5^4
		{"四分之一", 0.25, 1 - math.Pow(0.75, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := EaseOutQuart(tt.input); math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutQuart(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}

	// 四次方起步比三次方更快
	for p := 0.1; p < 1.0; p += 0.1 {
		if EaseOutQuart(p) < EaseOutCubic(p) {
			t.Errorf("EaseOutQuart(%v) 应不小于 EaseOutCubic", p)
		}
	}
}

// TestEaseOutBounce 弹跳曲线在 [0,1] 内不越界，且分段处连续
func TestEaseOutBounce(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		p := float64(i) / 1000
		v := EaseOutBounce(p)
		if v < -epsilon || v > 1+epsilon {
			t.Fatalf("EaseOutBounce(%v) = %v 越界", p, v)
		}
	}

	// 分段边界两侧数值接近（连续）
	for _, edge := range []float64{1 / 2.75, 2 / 2.75, 2.5 / 2.75} {
		left := EaseOutBounce(edge - 1e-7)
		right := EaseOutBounce(edge + 1e-7)
		if math.Abs(left-right) > 1e-4 {
			t.Errorf("EaseOutBounce 在 %v 处不连续: %v vs %v", edge, left, right)
		}
	}
}

// TestEasingByName 测试按名称查找缓动函数
func TestEasingByName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		at        float64
		expected  float64
		recognize bool
	}{
		{"linear", EasingLinear, 0.5, 0.5, true},
		{"outQuart", EasingOutQuart, 0.5, 0.9375, true},
		{"outCubic", EasingOutCubic, 0.5, 0.875, true},
		{"空名称回退 cubic", "", 0.5, 0.875, false},
		{"未知名称回退 cubic", "elastic", 0.5, 0.875, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, ok := EasingByName(tt.input)
			if ok != tt.recognize {
				t.Errorf("EasingByName(%q) ok = %v, 期望 %v", tt.input, ok, tt.recognize)
			}
			if v := fn(tt.at); math.Abs(v-tt.expected) > 0.001 {
				t.Errorf("EasingByName(%q)(%v) = %v, 期望 %v", tt.input, tt.at, v, tt.expected)
			}
		})
	}
}

// TestLerp 测试线性插值函数
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"起点", 0, 100, 0, 0},
		{"中点", 0, 100, 0.5, 50},
		{"终点", 0, 100, 1, 100},
		{"逆向范围", 100, 0, 0.5, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Lerp(tt.a, tt.b, tt.t); math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

// TestClamp01 测试进度裁剪
func TestClamp01(t *testing.T) {
	if Clamp01(-0.5) != 0 || Clamp01(1.5) != 1 || Clamp01(0.3) != 0.3 {
		t.Error("Clamp01 结果不正确")
	}
	if Clamp(5, 0.25, 4) != 4 || Clamp(0.1, 0.25, 4) != 0.25 {
		t.Error("Clamp 结果不正确")
	}
}
