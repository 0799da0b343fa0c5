package events

import (
	"encoding/json"
	"fmt"
)

// Envelope 传输层消息信封
//
//	{"type": "card_pass", "data": {"from_player_id": "a", ...}}
type Envelope struct {
	Type Kind            `json:"type"`
	Data json.RawMessage `json:"data"`
}

// NewEvent 根据类型创建空事件，供各种格式的解码器填充
func NewEvent(kind Kind) (Event, error) {
	switch kind {
	case KindDeal:
		return &DealEvent{}, nil
	case KindCardPass:
		return &CardPassEvent{}, nil
	case KindEmojiThrow:
		return &EmojiThrowEvent{}, nil
	case KindSeat:
		return &SeatEvent{}, nil
	case KindReset:
		return &ResetEvent{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, kind)
	}
}

// Decode 解析一条 JSON 消息并校验
//
// 返回的错误可用 errors.Is 与 ErrUnknownMessageType / ErrMalformedEvent 比较。
func Decode(data []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: invalid envelope: %v", ErrMalformedEvent, err)
	}

	ev, err := NewEvent(env.Type)
	if err != nil {
		return nil, err
	}

	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, ev); err != nil {
			return nil, fmt.Errorf("%w: invalid %s payload: %v", ErrMalformedEvent, env.Type, err)
		}
	}

	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return ev, nil
}

// Encode 将事件编码为 JSON 消息
func Encode(ev Event) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", ev.Kind(), err)
	}
	return json.Marshal(Envelope{Type: ev.Kind(), Data: data})
}
