package config

import (
	"fmt"
	"strings"

	"github.com/decker502/cardtable/pkg/types"
	"gopkg.in/yaml.v3"
)

// ChoreographyConfig 动画编排配置
//
// 配置文件位置: data/choreography.yaml
// 文件中缺省的字段沿用 DefaultChoreographyConfig 的值。
type ChoreographyConfig struct {
	Deal    DealConfig             `yaml:"deal"`
	Pass    PassConfig             `yaml:"pass"`
	Effects EffectConfig           `yaml:"effects"`
	Glyphs  map[string]GlyphConfig `yaml:"glyphs"`
	Limits  LimitConfig            `yaml:"limits"`
	Frame   FrameConfig            `yaml:"frame"`
}

// DealConfig 整副牌发牌的节奏
type DealConfig struct {
	// TotalCards 发牌序列补齐后的总张数
	TotalCards int `yaml:"totalCards"`

	// TotalDuration 整个发牌动画时长（秒），最后一张牌恰好在此刻落地
	TotalDuration float64 `yaml:"totalDuration"`

	// FlightDuration 单张牌的飞行时长（秒）
	FlightDuration float64 `yaml:"flightDuration"`
}

// SpreadDuration 第一张牌出发到最后一张牌出发之间的时长
func (d DealConfig) SpreadDuration() float64 {
	return d.TotalDuration - d.FlightDuration
}

// PassConfig 传牌动画参数
type PassConfig struct {
	// SingleDuration 单张传牌时长（秒）
	SingleDuration float64 `yaml:"singleDuration"`

	// MultiDuration 多张传牌时长（秒）
	MultiDuration float64 `yaml:"multiDuration"`

	// FanSpread 扇形展开时相邻两张牌的夹角（度）
	FanSpread float64 `yaml:"fanSpread"`
}

// DurationFor 根据张数返回传牌时长
func (p PassConfig) DurationFor(cardCount int) float64 {
	if cardCount <= 1 {
		return p.SingleDuration
	}
	return p.MultiDuration
}

// EffectConfig 命中特效参数
type EffectConfig struct {
	// TTL 各特效类型的存活时间（秒），与父动画无关
	TTL map[types.EffectType]float64 `yaml:"ttl"`

	// Particles 各粒子特效的粒子数量
	Particles map[types.EffectType]int `yaml:"particles"`

	// Radius 特效基础半径（像素），实际半径再乘以类别的 ImpactScale
	Radius float64 `yaml:"radius"`
}

// TTLFor 返回特效存活时间；未配置时返回 0.5 秒
func (e EffectConfig) TTLFor(effect types.EffectType) float64 {
	if ttl, ok := e.TTL[effect]; ok && ttl > 0 {
		return ttl
	}
	return 0.5
}

// ParticleCount 返回粒子数量；非粒子特效返回 0
func (e EffectConfig) ParticleCount(effect types.EffectType) int {
	if !effect.HasParticles() {
		return 0
	}
	return e.Particles[effect]
}

// GlyphConfig 表情字形到类别/特效的映射
type GlyphConfig struct {
	Category types.Category   `yaml:"category"`
	Effect   types.EffectType `yaml:"effect"`
}

// LimitConfig 同屏数量上限（最旧优先淘汰），0 表示不限
type LimitConfig struct {
	MaxLiveInstances int `yaml:"maxLiveInstances"`
	MaxLiveEffects   int `yaml:"maxLiveEffects"`
}

// FrameConfig 帧驱动参数
type FrameConfig struct {
	// TPS 正常模式每秒 tick 数
	TPS int `yaml:"tps"`

	// ReducedMotionTPS 减弱动态效果模式下的 tick 数
	ReducedMotionTPS int `yaml:"reducedMotionTPS"`

	// MaxStep 单帧最大时间步长（秒），防止窗口挂起后一次跳完整段动画
	MaxStep float64 `yaml:"maxStep"`
}

// DefaultChoreographyConfig 返回内置配置
func DefaultChoreographyConfig() *ChoreographyConfig {
	return &ChoreographyConfig{
		Deal: DealConfig{
			TotalCards:     52,
			TotalDuration:  27.0,
			FlightDuration: 0.6,
		},
		Pass: PassConfig{
			SingleDuration: 0.8,
			MultiDuration:  1.2,
			FanSpread:      12,
		},
		Effects: EffectConfig{
			TTL: map[types.EffectType]float64{
				types.EffectRing:   0.6,
				types.EffectBurst:  0.8,
				types.EffectDecal:  1.5,
				types.EffectFlash:  0.2,
				types.EffectRising: 1.2,
				types.EffectBounce: 0.5,
			},
			Particles: map[types.EffectType]int{
				types.EffectBurst:  14,
				types.EffectRising: 6,
			},
			Radius: 36,
		},
		Glyphs: map[string]GlyphConfig{
			"🍅": {Category: types.CategoryAttack, Effect: types.EffectDecal},
			"💣": {Category: types.CategoryAttack, Effect: types.EffectBurst},
			"🥚": {Category: types.CategoryAttack, Effect: types.EffectDecal},
			"🎉": {Category: types.CategoryCelebration, Effect: types.EffectBurst},
			"🏆": {Category: types.CategoryCelebration, Effect: types.EffectRising},
			"😂": {Category: types.CategoryReaction, Effect: types.EffectRing},
			"😮": {Category: types.CategoryReaction, Effect: types.EffectRing},
			"👍": {Category: types.CategoryGesture, Effect: types.EffectFlash},
			"👋": {Category: types.CategoryGesture, Effect: types.EffectFlash},
			"❤️": {Category: types.CategoryHeart, Effect: types.EffectRising},
		},
		Limits: LimitConfig{
			MaxLiveInstances: 64,
			MaxLiveEffects:   128,
		},
		Frame: FrameConfig{
			TPS:              60,
			ReducedMotionTPS: 30,
			MaxStep:          0.1,
		},
	}
}

// ParseChoreographyConfig 解析 YAML 编排配置（以内置配置为底）
func ParseChoreographyConfig(data []byte) (*ChoreographyConfig, error) {
	cfg := DefaultChoreographyConfig()
	// glyphs 以文件为准：出现时整体替换
	var fileGlyphs struct {
		Glyphs map[string]GlyphConfig `yaml:"glyphs"`
	}
	if err := yaml.Unmarshal(data, &fileGlyphs); err != nil {
		return nil, fmt.Errorf("failed to parse choreography config: %w", err)
	}
	if fileGlyphs.Glyphs != nil {
		cfg.Glyphs = nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse choreography config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid choreography config: %w", err)
	}
	return cfg, nil
}

// LoadChoreographyConfig 加载编排配置
//
// 参数:
//   - path: 配置文件路径（如 "data/choreography.yaml"）
func LoadChoreographyConfig(path string) (*ChoreographyConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read choreography config: %w", err)
	}
	return ParseChoreographyConfig(data)
}

// Validate 验证配置有效性
//
// 检查:
//   - 发牌总张数 >= 1，单张飞行时长 > 0 且不超过总时长
//   - 传牌时长为正
//   - 特效存活时间在 [0.2, 1.5] 秒之间
//   - 字形映射的类别与特效合法
func (c *ChoreographyConfig) Validate() error {
	if c.Deal.TotalCards < 1 {
		return fmt.Errorf("deal.totalCards must be >= 1, got %d", c.Deal.TotalCards)
	}
	if c.Deal.FlightDuration <= 0 {
		return fmt.Errorf("deal.flightDuration must be > 0, got %.3f", c.Deal.FlightDuration)
	}
	if c.Deal.TotalDuration < c.Deal.FlightDuration {
		return fmt.Errorf("deal.totalDuration(%.3f) < deal.flightDuration(%.3f)",
			c.Deal.TotalDuration, c.Deal.FlightDuration)
	}
	if c.Pass.SingleDuration <= 0 || c.Pass.MultiDuration <= 0 {
		return fmt.Errorf("pass durations must be > 0")
	}
	for effect, ttl := range c.Effects.TTL {
		if !effect.Valid() {
			return fmt.Errorf("effects.ttl: unknown effect %q", effect)
		}
		if ttl < 0.2 || ttl > 1.5 {
			return fmt.Errorf("effects.ttl[%s] must be in [0.2, 1.5], got %.3f", effect, ttl)
		}
	}
	for glyph, g := range c.Glyphs {
		if _, ok := types.ParseCategory(string(g.Category)); !ok {
			return fmt.Errorf("glyph %q: unknown category %q", glyph, g.Category)
		}
		if g.Effect != "" && !g.Effect.Valid() {
			return fmt.Errorf("glyph %q: unknown effect %q", glyph, g.Effect)
		}
	}
	if c.Limits.MaxLiveInstances < 0 || c.Limits.MaxLiveEffects < 0 {
		return fmt.Errorf("limits must be >= 0")
	}
	if c.Frame.TPS <= 0 || c.Frame.ReducedMotionTPS <= 0 {
		return fmt.Errorf("frame tps must be > 0")
	}
	if c.Frame.MaxStep <= 0 {
		return fmt.Errorf("frame.maxStep must be > 0, got %.3f", c.Frame.MaxStep)
	}
	return nil
}

// Glyph 查找表情字形映射
// 比较时忽略变体选择符 U+FE0F，"❤" 与 "❤️" 视为同一字形
func (c *ChoreographyConfig) Glyph(glyph string) (GlyphConfig, bool) {
	if g, ok := c.Glyphs[glyph]; ok {
		return g, true
	}
	want := stripVariation(glyph)
	for key, g := range c.Glyphs {
		if stripVariation(key) == want {
			return g, true
		}
	}
	return GlyphConfig{}, false
}

// variationSelector16 emoji 呈现变体选择符
const variationSelector16 = "\uFE0F"

func stripVariation(s string) string {
	return strings.ReplaceAll(s, variationSelector16, "")
}
