package components

import "github.com/decker502/cardtable/pkg/types"

// DealSequenceItem 整副发牌中的一步
//
// 每个发牌事件生成一次，按 Index 顺序交给 TimelineScheduler，落地后丢弃。
type DealSequenceItem struct {
	// Index 在补齐后序列中的位置（0 起）
	Index int

	// Seat 目标座位
	Seat int

	// Recipient 收牌玩家ID；为空表示占位（"还没有人"）
	Recipient string

	// Round 轮次
	Round int

	// Source 出牌锚点（牌桌中心或某个座位）
	Source types.AnchorID

	// Card 明牌；只对本地玩家非空
	Card *types.Card

	// Delay 相对发牌开始的启动延迟（秒）
	Delay float64

	// Phantom 是否为补齐用的占位条目
	Phantom bool
}

// HandMarkerComponent 发牌落地后留在座位上的手牌标记
// 由 TimelineScheduler 在发牌实例完成时创建，直到 ClearHands / CancelAll 才移除
type HandMarkerComponent struct {
	// Seat 所在座位
	Seat int

	// Recipient 收牌玩家ID（占位牌为空）
	Recipient string

	// IndexInSeat 该座位上的第几张（渲染层据此横向错开）
	IndexInSeat int

	// Card 明牌；nil 表示背面
	Card *types.Card

	// Phantom 是否来自占位条目
	Phantom bool
}

// Revealed 是否为明牌
func (h *HandMarkerComponent) Revealed() bool {
	return h.Card != nil
}
