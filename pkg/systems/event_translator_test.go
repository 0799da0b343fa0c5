package systems

import (
	"testing"

	"github.com/decker502/cardtable/pkg/config"
	"github.com/decker502/cardtable/pkg/ecs"
	"github.com/decker502/cardtable/pkg/events"
	"github.com/decker502/cardtable/pkg/game"
	"github.com/decker502/cardtable/pkg/types"
)

func newTestTranslator() (*EventTranslator, *game.AnchorRegistry) {
	reg := game.NewAnchorRegistry()
	reg.SetViewport(800, 600)
	for seat := 0; seat < types.MaxSeats; seat++ {
		reg.Report(game.AnchorReport{ID: types.SeatAnchor(seat), X: float64(seat * 100), Y: 10, W: 80, H: 40, Visible: true})
	}
	reg.Report(game.AnchorReport{ID: types.TableCenter, X: 300, Y: 200, W: 200, H: 200, Visible: true})
	reg.Refresh()
	reg.SetSeat("alice", 0)
	reg.SetSeat("bob", 3)

	tr := NewEventTranslator(reg, config.DefaultPhysicsProfiles(), config.DefaultChoreographyConfig())
	return tr, reg
}

func testCards(n int) []types.Card {
	ranks := []string{"2", "7", "K", "A"}
	cards := make([]types.Card, n)
	for i := range cards {
		cards[i] = types.Card{Suit: "hearts", Rank: ranks[i%len(ranks)]}
	}
	return cards
}

// TestCardPassSingleInstance 3 张传牌只生成一个实例，携带全部 3 张
func TestCardPassSingleInstance(t *testing.T) {
	tr, _ := newTestTranslator()

	out := tr.Translate(&events.CardPassEvent{FromPlayerID: "alice", ToPlayerID: "bob", Cards: testCards(3)})
	if len(out) != 1 {
		t.Fatalf("instances = %d, want 1", len(out))
	}
	anim := out[0]
	if len(anim.Payload.Cards) != 3 {
		t.Errorf("payload cards = %d, want 3", len(anim.Payload.Cards))
	}
	if anim.Origin != types.SeatAnchor(0) || anim.Destination != types.SeatAnchor(3) {
		t.Errorf("endpoints = %v -> %v, want seat-0 -> seat-3", anim.Origin, anim.Destination)
	}
	if anim.Category != types.CategoryPass || anim.Duration != 1.2 {
		t.Errorf("category/duration = %s/%v, want pass/1.2", anim.Category, anim.Duration)
	}

	single := tr.Translate(&events.CardPassEvent{FromPlayerID: "bob", ToPlayerID: "alice", Cards: testCards(1)})
	if len(single) != 1 || single[0].Duration != 0.8 {
		t.Errorf("single-card pass should be one 0.8s instance, got %+v", single)
	}
}

func TestPassFaceDownUnlessLocal(t *testing.T) {
	tr, _ := newTestTranslator()
	ev := &events.CardPassEvent{FromPlayerID: "alice", ToPlayerID: "bob", Cards: testCards(2)}

	if out := tr.Translate(ev); !out[0].Payload.FaceDown {
		t.Error("pass between other players should be face down")
	}
	tr.SetLocalPlayer("bob")
	if out := tr.Translate(ev); out[0].Payload.FaceDown {
		t.Error("pass to local player should be face up")
	}
}

// TestUnresolvableDestinationDropped 终点无法解析时返回空列表
func TestUnresolvableDestinationDropped(t *testing.T) {
	tr, _ := newTestTranslator()

	tests := []struct {
		name string
		ev   events.Event
	}{
		{"pass to unseated", &events.CardPassEvent{FromPlayerID: "alice", ToPlayerID: "zed", Cards: testCards(1)}},
		{"throw from unseated", &events.EmojiThrowEvent{FromPlayerID: "zed", ToPlayerID: "bob", Emoji: "🍅"}},
		{"pass without cards", &events.CardPassEvent{FromPlayerID: "alice", ToPlayerID: "bob"}},
		{"throw without emoji", &events.EmojiThrowEvent{FromPlayerID: "alice", ToPlayerID: "bob"}},
		{"nil event", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if out := tr.Translate(tt.ev); len(out) != 0 {
				t.Errorf("Translate returned %d instances, want 0", len(out))
			}
		})
	}
}

// TestForcedRefreshFindsNewSeat 刚挂载的座位视图在强制刷新后可被解析
func TestForcedRefreshFindsNewSeat(t *testing.T) {
	tr, reg := newTestTranslator()
	reg.Report(game.AnchorReport{ID: types.SeatAnchor(5), X: 500, Y: 10, W: 80, H: 40, Visible: true, PlayerID: "carol"})

	out := tr.Translate(&events.EmojiThrowEvent{FromPlayerID: "alice", ToPlayerID: "carol", Emoji: "👍"})
	if len(out) != 1 {
		t.Fatalf("instances = %d, want 1 after forced refresh", len(out))
	}
	if out[0].Destination != types.SeatAnchor(5) {
		t.Errorf("destination = %v, want seat-5", out[0].Destination)
	}
}

func TestEmojiClassification(t *testing.T) {
	tr, _ := newTestTranslator()

	tests := []struct {
		name         string
		emoji        string
		declared     string
		wantCategory types.Category
		wantEffect   types.EffectType
	}{
		{"glyph table", "🍅", "", types.CategoryAttack, types.EffectDecal},
		{"declared category", "🍅", "heart", types.CategoryHeart, types.EffectRising},
		{"declared matches table", "💣", "attack", types.CategoryAttack, types.EffectBurst},
		{"declared unknown uses table", "😂", "zany", types.CategoryReaction, types.EffectRing},
		{"card category ignored", "🎉", "deal", types.CategoryCelebration, types.EffectBurst},
		{"unknown glyph", "🦄", "", types.CategoryDefault, types.EffectBounce},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tr.Translate(&events.EmojiThrowEvent{FromPlayerID: "alice", ToPlayerID: "bob", Emoji: tt.emoji, Category: tt.declared})
			if len(out) != 1 {
				t.Fatalf("instances = %d, want 1", len(out))
			}
			if out[0].Category != tt.wantCategory {
				t.Errorf("category = %s, want %s", out[0].Category, tt.wantCategory)
			}
			if out[0].Effect != tt.wantEffect {
				t.Errorf("effect = %s, want %s", out[0].Effect, tt.wantEffect)
			}
			if out[0].Payload.Emoji != tt.emoji {
				t.Errorf("payload emoji = %q, want %q", out[0].Payload.Emoji, tt.emoji)
			}
		})
	}
}

// TestUnknownGlyphUsesDefaultProfile 未知表情使用 default 参数：旋转 1.0，弹跳特效
func TestUnknownGlyphUsesDefaultProfile(t *testing.T) {
	tr, _ := newTestTranslator()

	out := tr.Translate(&events.EmojiThrowEvent{FromPlayerID: "alice", ToPlayerID: "bob", Emoji: "🦄"})
	if len(out) != 1 {
		t.Fatalf("unknown glyph should not be dropped, got %d instances", len(out))
	}
	p := out[0].Profile
	if p.SpinSpeed != 1.0 || p.ImpactEffect != types.EffectBounce {
		t.Errorf("profile spin/effect = %v/%s, want 1.0/bounce", p.SpinSpeed, p.ImpactEffect)
	}
	if out[0].Duration != p.Duration {
		t.Errorf("duration = %v, want profile duration %v", out[0].Duration, p.Duration)
	}
}

// TestTwoThrowsIndependent 同一玩家连续两次投掷产生两个互不影响的实例
func TestTwoThrowsIndependent(t *testing.T) {
	tr, _ := newTestTranslator()
	ev := &events.EmojiThrowEvent{FromPlayerID: "alice", ToPlayerID: "bob", Emoji: "😂"}

	first := tr.Translate(ev)
	second := tr.Translate(ev)
	if len(first) != 1 || len(second) != 1 || first[0] == second[0] {
		t.Fatal("each throw should produce its own instance")
	}

	em := ecs.NewEntityManager()
	sched := NewTimelineScheduler(em, testAnchors(), &recordingSink{}, 0)
	ids := sched.Spawn(append(first, second...))
	if len(ids) != 2 || ids[0] == ids[1] {
		t.Errorf("ids = %v, want two distinct ids", ids)
	}
}

func TestReducedMotionTranslation(t *testing.T) {
	tr, _ := newTestTranslator()
	tr.SetReducedMotion(true)

	out := tr.Translate(&events.EmojiThrowEvent{FromPlayerID: "alice", ToPlayerID: "bob", Emoji: "😂"})
	if out[0].ArcScale != 0.5 || !out[0].DisableZigZag {
		t.Errorf("reduced motion: arcScale=%v disableZigZag=%v", out[0].ArcScale, out[0].DisableZigZag)
	}
}

func TestTranslateDeal(t *testing.T) {
	tr, _ := newTestTranslator()
	tr.SetLocalPlayer("alice")

	out := tr.Translate(&events.DealEvent{DealerSeat: 2})
	if len(out) != 52 {
		t.Fatalf("deal instances = %d, want 52", len(out))
	}

	// 活跃座位 0 和 3，庄家 2 → 从 3 开始
	if out[0].Destination != types.SeatAnchor(3) || out[1].Destination != types.SeatAnchor(0) {
		t.Errorf("first destinations = %v, %v, want seat-3, seat-0", out[0].Destination, out[1].Destination)
	}
	for i, anim := range out {
		if anim.Category != types.CategoryDeal || anim.Deal == nil {
			t.Fatalf("instance %d is not a deal card", i)
		}
		if anim.Duration != 0.6 {
			t.Errorf("instance %d duration = %v, want 0.6", i, anim.Duration)
		}
		if anim.Origin != types.TableCenter {
			t.Errorf("instance %d origin = %v, want table-center", i, anim.Origin)
		}
		if anim.Deal.Index != i || anim.Delay != anim.Deal.Delay {
			t.Errorf("instance %d carries item %d with delay %v", i, anim.Deal.Index, anim.Delay)
		}
	}
	if out[0].Deal.Recipient != "bob" || out[1].Deal.Recipient != "alice" {
		t.Errorf("recipients = %q, %q", out[0].Deal.Recipient, out[1].Deal.Recipient)
	}
}

func TestSeatAndResetProduceNothing(t *testing.T) {
	tr, _ := newTestTranslator()
	if out := tr.Translate(&events.SeatEvent{PlayerID: "dan", Seat: 1}); len(out) != 0 {
		t.Errorf("seat event produced %d instances", len(out))
	}
	if out := tr.Translate(&events.ResetEvent{}); len(out) != 0 {
		t.Errorf("reset event produced %d instances", len(out))
	}
}
