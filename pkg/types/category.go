// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "strings"

// Category 动画类别
// 决定使用哪一套物理参数（PhysicsProfile）
type Category string

const (
	// CategoryAttack 攻击类（番茄、炸弹等）
	CategoryAttack Category = "attack"
	// CategoryCelebration 庆祝类（礼花、奖杯等）
	CategoryCelebration Category = "celebration"
	// CategoryReaction 反应类（大笑、惊讶等）
	CategoryReaction Category = "reaction"
	// CategoryGesture 手势类（点赞、挥手等）
	CategoryGesture Category = "gesture"
	// CategoryHeart 爱心类
	CategoryHeart Category = "heart"
	// CategoryDefault 默认类别（无法识别时使用）
	CategoryDefault Category = "default"

	// CategoryDeal 发牌飞行
	CategoryDeal Category = "deal"
	// CategoryPass 传牌飞行
	CategoryPass Category = "pass"
)

// ParseCategory 将字符串解析为类别
// 大小写不敏感；无法识别时返回 CategoryDefault 和 false
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryAttack, CategoryCelebration, CategoryReaction,
		CategoryGesture, CategoryHeart, CategoryDefault,
		CategoryDeal, CategoryPass:
		return c, true
	}
	return CategoryDefault, false
}

// IsCard 是否为卡牌飞行类别（发牌/传牌）
func (c Category) IsCard() bool {
	return c == CategoryDeal || c == CategoryPass
}

// String 返回类别的字符串表示
func (c Category) String() string {
	if c == "" {
		return string(CategoryDefault)
	}
	return string(c)
}
