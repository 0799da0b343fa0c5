package types

import "fmt"

// Card 一张扑克牌（只用于显示，不参与规则判定）
type Card struct {
	Suit string `json:"suit" yaml:"suit"`
	Rank string `json:"rank" yaml:"rank"`
}

// String 返回牌面文字，如 "Q♠"
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, suitSymbol(c.Suit))
}

// IsZero 是否为空牌
func (c Card) IsZero() bool {
	return c.Suit == "" && c.Rank == ""
}

func suitSymbol(suit string) string {
	switch suit {
	case "spades", "S", "s":
		return "♠"
	case "hearts", "H", "h":
		return "♥"
	case "diamonds", "D", "d":
		return "♦"
	case "clubs", "C", "c":
		return "♣"
	default:
		return suit
	}
}

// Phase 动画实例阶段
// 只能单调推进：flying → impact → done
type Phase int

const (
	// PhaseFlying 飞行中
	PhaseFlying Phase = iota
	// PhaseImpact 已到达命中阈值，特效已触发
	PhaseImpact
	// PhaseDone 飞行与淡出均完成，可被回收
	PhaseDone
)

// String 返回阶段名称
func (p Phase) String() string {
	switch p {
	case PhaseFlying:
		return "flying"
	case PhaseImpact:
		return "impact"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}
