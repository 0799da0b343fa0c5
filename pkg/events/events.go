// Package events 定义动画引擎消费的游戏事件
//
// 事件由上层的游戏状态/传输层产生，引擎只关心三种形状：
// 整副发牌、传牌、表情投掷。座位与重置事件用于驱动锚点注册表和取消动画。
package events

import (
	"errors"
	"fmt"

	"github.com/decker502/cardtable/pkg/types"
)

// Kind 事件类型
type Kind string

const (
	KindDeal       Kind = "deal"
	KindCardPass   Kind = "card_pass"
	KindEmojiThrow Kind = "emoji_throw"
	KindSeat       Kind = "seat"
	KindReset      Kind = "reset"
)

var (
	// ErrUnknownMessageType 未知的消息类型
	ErrUnknownMessageType = errors.New("unknown message type")
	// ErrMalformedEvent 缺少必填字段或字段越界
	ErrMalformedEvent = errors.New("malformed event")
)

// Event 所有事件的公共接口
type Event interface {
	Kind() Kind
	// Validate 检查必填字段，失败时返回包装了 ErrMalformedEvent 的错误
	Validate() error
}

// DealStep 服务端下发的一步发牌
type DealStep struct {
	Seat     int         `json:"seat" yaml:"seat"`
	PlayerID string      `json:"player_id" yaml:"player_id"`
	Round    int         `json:"round" yaml:"round"`
	Card     *types.Card `json:"card,omitempty" yaml:"card,omitempty"`
	FromSeat *int        `json:"from_seat,omitempty" yaml:"from_seat,omitempty"`
}

// DealEvent 整副牌发牌
// Sequence 为空时由引擎按庄家座位合成默认顺序
type DealEvent struct {
	DealerSeat int        `json:"dealer_seat" yaml:"dealer_seat"`
	Sequence   []DealStep `json:"sequence" yaml:"sequence"`
}

// Kind 实现 Event
func (e *DealEvent) Kind() Kind { return KindDeal }

// Validate 实现 Event
func (e *DealEvent) Validate() error {
	if !validSeat(e.DealerSeat) {
		return fmt.Errorf("%w: deal dealer_seat %d out of range", ErrMalformedEvent, e.DealerSeat)
	}
	for i, s := range e.Sequence {
		if !validSeat(s.Seat) {
			return fmt.Errorf("%w: deal sequence[%d] seat %d out of range", ErrMalformedEvent, i, s.Seat)
		}
		if s.FromSeat != nil && !validSeat(*s.FromSeat) {
			return fmt.Errorf("%w: deal sequence[%d] from_seat %d out of range", ErrMalformedEvent, i, *s.FromSeat)
		}
	}
	return nil
}

// CardPassEvent 一名玩家把若干张牌传给另一名玩家
type CardPassEvent struct {
	FromPlayerID string       `json:"from_player_id" yaml:"from_player_id"`
	ToPlayerID   string       `json:"to_player_id" yaml:"to_player_id"`
	Cards        []types.Card `json:"cards" yaml:"cards"`
}

// Kind 实现 Event
func (e *CardPassEvent) Kind() Kind { return KindCardPass }

// Validate 实现 Event
func (e *CardPassEvent) Validate() error {
	if e.FromPlayerID == "" || e.ToPlayerID == "" {
		return fmt.Errorf("%w: card_pass requires from_player_id and to_player_id", ErrMalformedEvent)
	}
	if len(e.Cards) == 0 {
		return fmt.Errorf("%w: card_pass has no cards", ErrMalformedEvent)
	}
	return nil
}

// EmojiThrowEvent 表情投掷
type EmojiThrowEvent struct {
	FromPlayerID string `json:"from_player_id" yaml:"from_player_id"`
	ToPlayerID   string `json:"to_player_id" yaml:"to_player_id"`
	Emoji        string `json:"emoji" yaml:"emoji"`
	Category     string `json:"category,omitempty" yaml:"category,omitempty"`
}

// Kind 实现 Event
func (e *EmojiThrowEvent) Kind() Kind { return KindEmojiThrow }

// Validate 实现 Event
func (e *EmojiThrowEvent) Validate() error {
	if e.FromPlayerID == "" || e.ToPlayerID == "" {
		return fmt.Errorf("%w: emoji_throw requires from_player_id and to_player_id", ErrMalformedEvent)
	}
	if e.Emoji == "" {
		return fmt.Errorf("%w: emoji_throw has no emoji", ErrMalformedEvent)
	}
	return nil
}

// SeatEvent 玩家入座/离座（Seat < 0 表示离座）
type SeatEvent struct {
	PlayerID string `json:"player_id" yaml:"player_id"`
	Seat     int    `json:"seat" yaml:"seat"`
}

// Kind 实现 Event
func (e *SeatEvent) Kind() Kind { return KindSeat }

// Validate 实现 Event
func (e *SeatEvent) Validate() error {
	if e.PlayerID == "" {
		return fmt.Errorf("%w: seat requires player_id", ErrMalformedEvent)
	}
	if e.Seat >= types.MaxSeats {
		return fmt.Errorf("%w: seat %d out of range", ErrMalformedEvent, e.Seat)
	}
	return nil
}

// ResetEvent 大厅重置，所有进行中的动画失效
type ResetEvent struct {
	ClearSeats bool `json:"clear_seats" yaml:"clear_seats"`
}

// Kind 实现 Event
func (e *ResetEvent) Kind() Kind { return KindReset }

// Validate 实现 Event
func (e *ResetEvent) Validate() error { return nil }

func validSeat(seat int) bool {
	return seat >= 0 && seat < types.MaxSeats
}
