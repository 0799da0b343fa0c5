package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/decker502/cardtable/pkg/events"
)

const testScript = `
events:
  - at: 1.0
    type: emoji_throw
    data: {from_player_id: a, to_player_id: b, emoji: "👍"}
  - at: 0
    type: seat
    data: {player_id: a, seat: 0}
  - at: 0
    type: seat
    data: {player_id: b, seat: 2}
  - at: 2.5
    type: reset
`

func TestParseScriptSortsByTime(t *testing.T) {
	feed, err := ParseScript([]byte(testScript))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if feed.Len() != 4 || feed.Duration() != 2.5 {
		t.Errorf("len=%d duration=%v, want 4 / 2.5", feed.Len(), feed.Duration())
	}

	tests := []struct {
		now  float64
		want []events.Kind
	}{
		{0, []events.Kind{events.KindSeat, events.KindSeat}},
		{0.9, nil},
		{2.0, []events.Kind{events.KindEmojiThrow}},
		{3.0, []events.Kind{events.KindReset}},
		{10, nil},
	}
	for _, tt := range tests {
		got := feed.Due(tt.now)
		if len(got) != len(tt.want) {
			t.Fatalf("Due(%v) = %d events, want %d", tt.now, len(got), len(tt.want))
		}
		for i := range got {
			if got[i].Kind() != tt.want[i] {
				t.Errorf("Due(%v)[%d] = %s, want %s", tt.now, i, got[i].Kind(), tt.want[i])
			}
		}
	}
	if !feed.Done() {
		t.Error("feed should be done")
	}

	// 同一时刻的事件保持文件中的顺序
	feed.Rewind()
	first := feed.Due(0)
	if first[0].(*events.SeatEvent).PlayerID != "a" || first[1].(*events.SeatEvent).PlayerID != "b" {
		t.Error("stable order broken for simultaneous events")
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		target error
	}{
		{"unknown type", "events:\n  - {at: 0, type: teleport}\n", events.ErrUnknownMessageType},
		{"malformed event", "events:\n  - {at: 0, type: card_pass, data: {from_player_id: a}}\n", events.ErrMalformedEvent},
		{"negative time", "events:\n  - {at: -1, type: reset}\n", nil},
		{"bad yaml", "events: [\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.script))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error %v is not %v", err, tt.target)
			}
		})
	}
}

func TestLoadDemoScript(t *testing.T) {
	feed, err := LoadScript("../../data/demo_script.yaml")
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if feed.Len() == 0 {
		t.Fatal("demo script is empty")
	}

	kinds := map[events.Kind]int{}
	for _, ev := range feed.Due(feed.Duration()) {
		kinds[ev.Kind()]++
	}
	for _, k := range []events.Kind{events.KindSeat, events.KindDeal, events.KindCardPass, events.KindEmojiThrow} {
		if kinds[k] == 0 {
			t.Errorf("demo script has no %s event", k)
		}
	}
}

func TestScriptFeedRun(t *testing.T) {
	feed := NewScriptFeed([]ScriptEntry{
		{At: 0.02, Event: &events.ResetEvent{}},
		{At: 0, Event: &events.SeatEvent{PlayerID: "a", Seat: 1}},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out := make(chan events.Event, 2)
	if err := feed.Run(ctx, out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("pushed %d events, want 2", len(out))
	}
	if (<-out).Kind() != events.KindSeat || (<-out).Kind() != events.KindReset {
		t.Error("events pushed out of order")
	}
}
