package config

import (
	"fmt"
	"sort"

	"github.com/decker502/cardtable/pkg/types"
	"github.com/decker502/cardtable/pkg/utils"
	"gopkg.in/yaml.v3"
)

// PhysicsProfile 单个类别的运动参数
//
// 配置文件位置: data/physics_profiles.yaml
// 未在文件中出现的字段沿用内置默认值（见 DefaultPhysicsProfiles）。
type PhysicsProfile struct {
	// Category 所属类别（由表的 key 决定，文件中无需填写）
	Category types.Category `yaml:"-"`

	// Duration 飞行总时长（秒）
	Duration float64 `yaml:"duration"`

	// ArcHeight 抛物线最高点相对直线的抬升量（像素）
	ArcHeight float64 `yaml:"arcHeight"`

	// SpinSpeed 整段飞行的旋转圈数（1.0 = 360°）
	SpinSpeed float64 `yaml:"spinSpeed"`

	// ImpactScale 命中特效的缩放倍数
	ImpactScale float64 `yaml:"impactScale"`

	// Easing 缓动函数名称（linear / outCubic / outQuart / outBounce）
	Easing string `yaml:"easing"`

	// ImpactEffect 命中时生成的特效类型
	ImpactEffect types.EffectType `yaml:"impactEffect"`

	// ImpactAt 触发命中的进度阈值（0, 1]
	ImpactAt float64 `yaml:"impactAt"`

	// ScaleStart, ScaleEnd 飞行过程中的缩放区间
	ScaleStart float64 `yaml:"scaleStart"`
	ScaleEnd   float64 `yaml:"scaleEnd"`

	// FadeStart 从该进度开始淡出；1.0 表示不淡出（卡牌落地后保留）
	FadeStart float64 `yaml:"fadeStart"`

	// ZigZag 是否叠加横向摆动
	ZigZag bool `yaml:"zigZag"`
	// ZigZagAmplitude 横向摆动幅度（像素）
	ZigZagAmplitude float64 `yaml:"zigZagAmplitude"`
	// ZigZagWaves 整段飞行的摆动次数（整数，保证起止点偏移为 0）
	ZigZagWaves int `yaml:"zigZagWaves"`

	// SteepArc 是否叠加二次垂直调制（更陡的弧线）
	SteepArc bool `yaml:"steepArc"`
}

// EasingFunc 返回该类别的缓动函数
func (p PhysicsProfile) EasingFunc() utils.EasingFunc {
	fn, _ := utils.EasingByName(p.Easing)
	return fn
}

// Validate 验证参数合法性
func (p PhysicsProfile) Validate() error {
	if p.Duration <= 0 {
		return fmt.Errorf("profile %s: duration must be > 0, got %.3f", p.Category, p.Duration)
	}
	if p.ImpactAt <= 0 || p.ImpactAt > 1 {
		return fmt.Errorf("profile %s: impactAt must be in (0, 1], got %.3f", p.Category, p.ImpactAt)
	}
	if p.FadeStart < 0 || p.FadeStart > 1 {
		return fmt.Errorf("profile %s: fadeStart must be in [0, 1], got %.3f", p.Category, p.FadeStart)
	}
	if p.ScaleStart <= 0 || p.ScaleEnd <= 0 {
		return fmt.Errorf("profile %s: scale range must be positive", p.Category)
	}
	if !p.ImpactEffect.Valid() {
		return fmt.Errorf("profile %s: unknown impact effect %q", p.Category, p.ImpactEffect)
	}
	if _, ok := utils.EasingByName(p.Easing); !ok {
		return fmt.Errorf("profile %s: unknown easing %q", p.Category, p.Easing)
	}
	if p.ZigZag && p.ZigZagWaves <= 0 {
		return fmt.Errorf("profile %s: zigZagWaves must be > 0 when zigZag is enabled", p.Category)
	}
	return nil
}

// ProfileTable 按类别查找物理参数
// 加载后只读
type ProfileTable struct {
	profiles map[types.Category]PhysicsProfile
}

// DefaultPhysicsProfiles 返回内置参数表
func DefaultPhysicsProfiles() *ProfileTable {
	base := PhysicsProfile{
		Duration:     1.0,
		ArcHeight:    70,
		SpinSpeed:    1.0,
		ImpactScale:  1.0,
		Easing:       utils.EasingOutCubic,
		ImpactEffect: types.EffectBounce,
		ImpactAt:     0.8,
		ScaleStart:   0.3,
		ScaleEnd:     1.5,
		FadeStart:    0.85,
	}

	with := func(c types.Category, mod func(p *PhysicsProfile)) PhysicsProfile {
		p := base
		p.Category = c
		mod(&p)
		return p
	}

	t := &ProfileTable{profiles: make(map[types.Category]PhysicsProfile)}
	t.profiles[types.CategoryDefault] = with(types.CategoryDefault, func(p *PhysicsProfile) {})
	t.profiles[types.CategoryAttack] = with(types.CategoryAttack, func(p *PhysicsProfile) {
		p.Duration = 0.9
		p.ArcHeight = 40
		p.SpinSpeed = 3.0
		p.ImpactScale = 1.6
		p.Easing = utils.EasingOutQuart
		p.ImpactEffect = types.EffectBurst
	})
	t.profiles[types.CategoryCelebration] = with(types.CategoryCelebration, func(p *PhysicsProfile) {
		p.Duration = 1.4
		p.ArcHeight = 120
		p.SpinSpeed = 2.0
		p.ImpactScale = 1.4
		p.Easing = utils.EasingOutBounce
		p.ImpactEffect = types.EffectBurst
		p.SteepArc = true
	})
	t.profiles[types.CategoryReaction] = with(types.CategoryReaction, func(p *PhysicsProfile) {
		p.Duration = 1.1
		p.ArcHeight = 80
		p.SpinSpeed = 1.5
		p.ImpactScale = 1.2
		p.ImpactEffect = types.EffectRing
		p.ZigZag = true
		p.ZigZagAmplitude = 18
		p.ZigZagWaves = 3
	})
	t.profiles[types.CategoryGesture] = with(types.CategoryGesture, func(p *PhysicsProfile) {
		p.ArcHeight = 60
		p.SpinSpeed = 0.5
		p.ImpactEffect = types.EffectFlash
		p.FadeStart = 0.9
	})
	t.profiles[types.CategoryHeart] = with(types.CategoryHeart, func(p *PhysicsProfile) {
		p.Duration = 1.2
		p.ArcHeight = 100
		p.SpinSpeed = 0.75
		p.ImpactScale = 1.3
		p.ImpactEffect = types.EffectRising
		p.FadeStart = 0.8
	})
	t.profiles[types.CategoryDeal] = with(types.CategoryDeal, func(p *PhysicsProfile) {
		p.Duration = 0.6
		p.ArcHeight = 20
		p.SpinSpeed = 1.0
		p.ImpactEffect = types.EffectNone
		p.ScaleStart = 0.6
		p.ScaleEnd = 1.0
		p.FadeStart = 1.0
	})
	t.profiles[types.CategoryPass] = with(types.CategoryPass, func(p *PhysicsProfile) {
		p.Duration = 0.8
		p.ArcHeight = 50
		p.SpinSpeed = 0
		p.ImpactEffect = types.EffectFlash
		p.ScaleStart = 1.0
		p.ScaleEnd = 1.0
		p.FadeStart = 0.9
	})
	return t
}

// ParsePhysicsProfiles 解析 YAML 参数表
//
// 文件格式:
//
//	profiles:
//	  attack:
//	    duration: 0.9
//	    easing: outQuart
//
// 文件中的每个类别以内置同名参数为底（未知类别以 default 为底），只覆盖出现的字段。
func ParsePhysicsProfiles(data []byte) (*ProfileTable, error) {
	var doc struct {
		Profiles map[string]yaml.Node `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse physics profiles: %w", err)
	}

	table := DefaultPhysicsProfiles()
	for name, node := range doc.Profiles {
		category, known := types.ParseCategory(name)
		if !known {
			return nil, fmt.Errorf("unknown physics profile category %q", name)
		}
		profile := table.Lookup(category)
		if err := node.Decode(&profile); err != nil {
			return nil, fmt.Errorf("failed to decode profile %q: %w", name, err)
		}
		profile.Category = category
		table.profiles[category] = profile
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid physics profiles: %w", err)
	}
	return table, nil
}

// LoadPhysicsProfiles 加载物理参数表
//
// 参数:
//   - path: 配置文件路径（如 "data/physics_profiles.yaml"）
//
// 返回:
//   - *ProfileTable: 加载成功后的参数表
//   - error: 读取或校验失败
func LoadPhysicsProfiles(path string) (*ProfileTable, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read physics profiles: %w", err)
	}
	return ParsePhysicsProfiles(data)
}

// Validate 校验所有类别
func (t *ProfileTable) Validate() error {
	for _, c := range t.Categories() {
		if err := t.profiles[c].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Lookup 查找类别对应的参数
// 总是返回一个参数集：未知类别返回 default
func (t *ProfileTable) Lookup(category types.Category) PhysicsProfile {
	if t != nil {
		if p, ok := t.profiles[category]; ok {
			return p
		}
		if p, ok := t.profiles[types.CategoryDefault]; ok {
			return p
		}
	}
	return DefaultPhysicsProfiles().profiles[types.CategoryDefault]
}

// Categories 返回已配置的类别（按名称排序）
func (t *ProfileTable) Categories() []types.Category {
	out := make([]types.Category, 0, len(t.profiles))
	for c := range t.profiles {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
