package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/cardtable/pkg/config"
	"github.com/decker502/cardtable/pkg/game"
	"github.com/decker502/cardtable/pkg/systems"
	"github.com/decker502/cardtable/pkg/types"
)

// 每个字符格对应的虚拟像素
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

var categoryStyles = map[types.Category]tcell.Style{
	types.CategoryAttack:      tcell.StyleDefault.Foreground(tcell.ColorRed),
	types.CategoryCelebration: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	types.CategoryReaction:    tcell.StyleDefault.Foreground(tcell.ColorAqua),
	types.CategoryGesture:     tcell.StyleDefault.Foreground(tcell.ColorPurple),
	types.CategoryHeart:       tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
}

var (
	feltStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	seatStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	cardStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	backStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	hudStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// virtualSize 终端尺寸换算为虚拟像素
func virtualSize(cols, rows int) (float64, float64) {
	return float64(cols) * cellWidth, float64(rows) * cellHeight
}

// toCell 虚拟像素换算为字符格
func toCell(x, y float64) (int, int) {
	return int(math.Floor(x / cellWidth)), int(math.Floor(y / cellHeight))
}

// anchorReports 生成终端布局下的锚点（牌桌中心 + 放得下的座位）
// 座位框超出终端范围时不上报，放在 hidden 里由调用方注销
func anchorReports(cols, rows int) (reports []game.AnchorReport, hidden []types.AnchorID) {
	vw, vh := virtualSize(cols, rows)
	reports = []game.AnchorReport{{
		ID:      types.TableCenter,
		X:       vw/2 - config.CardWidth/2,
		Y:       vh/2 - config.CardHeight/2,
		W:       config.CardWidth,
		H:       config.CardHeight,
		Visible: true,
	}}
	for seat := 0; seat < types.MaxSeats; seat++ {
		x, y, w, h := config.SeatRect(seat, vw, vh)
		if x < 0 || y < 0 || x+w > vw || y+h > vh {
			hidden = append(hidden, types.SeatAnchor(seat))
			continue
		}
		reports = append(reports, game.AnchorReport{
			ID: types.SeatAnchor(seat), X: x, Y: y, W: w, H: h, Visible: true,
		})
	}
	return reports, hidden
}

func (t *tableTUI) draw() {
	t.screen.Clear()
	snap := t.engine.Snapshot()
	vw, vh := virtualSize(t.width, t.height)

	t.drawFelt(vw, vh)
	t.drawSeats(vw, vh, snap.Hands)
	for _, e := range snap.Effects {
		t.drawEffect(e)
	}
	for _, v := range snap.Instances {
		t.drawInstance(v)
	}

	st := t.engine.Settings()
	t.drawText(0, 0, fmt.Sprintf("t=%.1fs flights=%d effects=%d hands=%d reduced=%v  [d]eal [c]ancel [r]educed [p]replay [q]uit",
		snap.Time, len(snap.Instances), len(snap.Effects), len(snap.Hands), st.ReducedMotion), hudStyle)
	t.screen.Show()
}

func (t *tableTUI) drawFelt(vw, vh float64) {
	rx, ry := config.TableRadii(vw, vh)
	steps := 4 * (t.width + t.height)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		cx, cy := toCell(vw/2+rx*math.Cos(a), vh/2+ry*math.Sin(a))
		t.setCell(cx, cy, '·', feltStyle)
	}
}

func (t *tableTUI) drawSeats(vw, vh float64, hands []systems.HandView) {
	counts := make(map[int]int)
	for _, h := range hands {
		counts[h.Seat]++
	}
	for seat := 0; seat < types.MaxSeats; seat++ {
		x, y, w, _ := config.SeatRect(seat, vw, vh)
		cx, cy := toCell(x, y)
		player := t.engine.PlayerAt(seat)
		if player == "" {
			player = "-"
		}
		label := fmt.Sprintf("[%d %s]", seat, player)
		if maxLen := int(w / cellWidth); len(label) > maxLen && maxLen > 3 {
			label = label[:maxLen-1] + "]"
		}
		t.drawText(cx, cy, label, seatStyle)
		if n := counts[seat]; n > 0 {
			t.drawText(cx, cy+1, fmt.Sprintf("%d cards", n), backStyle)
		}
	}
}

func (t *tableTUI) drawInstance(v systems.InstanceView) {
	if !v.Visible || v.Opacity < 0.2 {
		return
	}
	cx, cy := toCell(v.X, v.Y)

	if v.Category.IsCard() {
		cards := v.Payload.Cards
		if v.Payload.FaceDown || len(cards) == 0 {
			t.drawText(cx, cy, "▒▒", backStyle)
			return
		}
		text := ""
		for _, c := range cards {
			text += c.String()
		}
		t.drawText(cx, cy, text, cardStyle)
		return
	}

	style, ok := categoryStyles[v.Category]
	if !ok {
		style = tcell.StyleDefault
	}
	runes := []rune(v.Payload.Emoji)
	if len(runes) == 0 {
		t.setCell(cx, cy, '●', style)
		return
	}
	if cx < 0 || cy < 0 || cx >= t.width || cy >= t.height {
		return
	}
	t.screen.SetContent(cx, cy, runes[0], runes[1:], style)
}

func (t *tableTUI) drawEffect(e systems.EffectView) {
	style, ok := categoryStyles[e.Category]
	if !ok {
		style = tcell.StyleDefault
	}

	switch e.Type {
	case types.EffectBurst, types.EffectRising:
		for _, p := range e.Particles {
			cx, cy := toCell(p.X, p.Y)
			t.setCell(cx, cy, '*', style)
		}
	case types.EffectRing, types.EffectBounce:
		r := e.Radius * e.Progress
		for i := 0; i < 16; i++ {
			a := 2 * math.Pi * float64(i) / 16
			cx, cy := toCell(e.X+r*math.Cos(a), e.Y+r*math.Sin(a))
			t.setCell(cx, cy, '∘', style)
		}
	default:
		cx, cy := toCell(e.X, e.Y)
		t.setCell(cx, cy, '✶', style)
	}
}

func (t *tableTUI) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		t.setCell(x, y, r, style)
		x++
	}
}

func (t *tableTUI) setCell(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return
	}
	t.screen.SetContent(x, y, r, nil, style)
}
