// Package feed 提供动画引擎的事件来源
//
// 事件来源只负责把外部消息解码成 events.Event 并投递到通道；
// 引擎本身不做任何网络或存储 I/O。宿主在帧循环中非阻塞地读取通道并调用 Engine.Submit。
package feed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"nhooyr.io/websocket"

	"github.com/decker502/cardtable/pkg/events"
)

// Source 事件来源
type Source interface {
	// Run 持续读取事件直到 ctx 取消或来源结束
	Run(ctx context.Context, out chan<- events.Event) error
}

// maxMessageBytes 单条消息上限（一次发牌事件最多 52 步）
const maxMessageBytes = 64 << 10

// WebSocketFeed 从游戏服务器的 websocket 读取事件
//
// 消息格式为 JSON 信封 {"type": "...", "data": {...}}。
// 解码失败的消息只记日志并跳过，不会中断连接。
type WebSocketFeed struct {
	URL string

	// DialOptions 可选的握手参数（请求头、子协议等）
	DialOptions *websocket.DialOptions
}

// NewWebSocketFeed 创建 websocket 事件来源
func NewWebSocketFeed(url string) *WebSocketFeed {
	return &WebSocketFeed{URL: url}
}

// Run 连接服务器并持续读取事件
//
// ctx 取消时返回 nil；服务器正常关闭连接时返回 nil；其余情况返回包装后的错误。
func (f *WebSocketFeed) Run(ctx context.Context, out chan<- events.Event) error {
	conn, _, err := websocket.Dial(ctx, f.URL, f.DialOptions)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to dial %s: %w", f.URL, err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")
	conn.SetReadLimit(maxMessageBytes)
	log.Printf("[WebSocketFeed] 已连接: %s", f.URL)

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				log.Printf("[WebSocketFeed] 服务器关闭连接")
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}
		if typ != websocket.MessageText {
			continue
		}

		ev, err := events.Decode(data)
		if err != nil {
			if errors.Is(err, events.ErrUnknownMessageType) {
				// 非动画相关的消息（聊天、计分等）
				continue
			}
			log.Printf("[WebSocketFeed] 跳过无法解码的消息: %v", err)
			continue
		}

		select {
		case out <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}
