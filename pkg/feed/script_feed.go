package feed

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/decker502/cardtable/pkg/embedded"
	"github.com/decker502/cardtable/pkg/events"
)

// ScriptEntry 脚本中的一条事件
type ScriptEntry struct {
	// At 相对脚本开始的时刻（秒）
	At    float64
	Event events.Event
}

// scriptFile 脚本文件格式
//
//	events:
//	  - at: 0.5
//	    type: emoji_throw
//	    data: {from_player_id: alice, to_player_id: bob, emoji: "🍅"}
type scriptFile struct {
	Events []struct {
		At   float64     `yaml:"at"`
		Type events.Kind `yaml:"type"`
		Data yaml.Node   `yaml:"data"`
	} `yaml:"events"`
}

// ScriptFeed 按时间表回放的事件来源（演示和测试用）
//
// 两种用法:
//   - Due(now)：由宿主按引擎时钟拉取到期事件，回放结果与帧率无关
//   - Run(ctx, out)：按墙钟时间推送，实现 Source
type ScriptFeed struct {
	entries []ScriptEntry
	next    int
}

// NewScriptFeed 由条目创建脚本（按时刻稳定排序）
func NewScriptFeed(entries []ScriptEntry) *ScriptFeed {
	sorted := append([]ScriptEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &ScriptFeed{entries: sorted}
}

// ParseScript 解析 YAML 脚本
// 任何一条事件类型未知或字段不全都视为脚本错误
func ParseScript(data []byte) (*ScriptFeed, error) {
	var file scriptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	entries := make([]ScriptEntry, 0, len(file.Events))
	for i, raw := range file.Events {
		if raw.At < 0 {
			return nil, fmt.Errorf("script event %d: negative time %.3f", i, raw.At)
		}
		ev, err := events.NewEvent(raw.Type)
		if err != nil {
			return nil, fmt.Errorf("script event %d: %w", i, err)
		}
		if !raw.Data.IsZero() {
			if err := raw.Data.Decode(ev); err != nil {
				return nil, fmt.Errorf("script event %d: invalid %s data: %w", i, raw.Type, err)
			}
		}
		if err := ev.Validate(); err != nil {
			return nil, fmt.Errorf("script event %d: %w", i, err)
		}
		entries = append(entries, ScriptEntry{At: raw.At, Event: ev})
	}
	return NewScriptFeed(entries), nil
}

// LoadScript 加载脚本文件
// data/ 下的路径优先从嵌入资源读取
func LoadScript(path string) (*ScriptFeed, error) {
	var (
		data []byte
		err  error
	)
	if embedded.IsInitialized() && strings.HasPrefix(path, "data/") {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	feed, err := ParseScript(data)
	if err != nil {
		return nil, err
	}
	log.Printf("[ScriptFeed] 加载脚本 %s: %d 条事件, 时长 %.1fs", path, len(feed.entries), feed.Duration())
	return feed, nil
}

// Len 返回事件条数
func (s *ScriptFeed) Len() int {
	return len(s.entries)
}

// Duration 返回最后一条事件的时刻
func (s *ScriptFeed) Duration() float64 {
	if len(s.entries) == 0 {
		return 0
	}
	return s.entries[len(s.entries)-1].At
}

// Due 返回 At <= now 且尚未取出的事件
func (s *ScriptFeed) Due(now float64) []events.Event {
	var out []events.Event
	for s.next < len(s.entries) && s.entries[s.next].At <= now {
		out = append(out, s.entries[s.next].Event)
		s.next++
	}
	return out
}

// Done 是否已全部取出
func (s *ScriptFeed) Done() bool {
	return s.next >= len(s.entries)
}

// Rewind 回到脚本开头
func (s *ScriptFeed) Rewind() {
	s.next = 0
}

// Run 按墙钟时间推送剩余事件，全部推送完毕后返回 nil
func (s *ScriptFeed) Run(ctx context.Context, out chan<- events.Event) error {
	start := time.Now()
	for !s.Done() {
		entry := s.entries[s.next]
		wait := time.Duration(entry.At*float64(time.Second)) - time.Since(start)
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return nil
			}
		}
		select {
		case out <- entry.Event:
			s.next++
		case <-ctx.Done():
			return nil
		}
	}
	return nil
}
