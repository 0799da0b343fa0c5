package scenes

import (
	"math"

	"github.com/decker502/cardtable/pkg/config"
	"github.com/decker502/cardtable/pkg/game"
	"github.com/decker502/cardtable/pkg/systems"
	"github.com/decker502/cardtable/pkg/types"
)

// TableLayout 牌桌场景的几何布局
// 实现 game.AnchorProvider：RefreshAnchors 时扫描座位框和牌桌中心
type TableLayout struct {
	Width, Height float64
}

// ScanAnchors 实现 game.AnchorProvider
func (l *TableLayout) ScanAnchors() []game.AnchorReport {
	if l.Width <= 0 || l.Height <= 0 {
		return nil
	}
	reports := make([]game.AnchorReport, 0, types.MaxSeats+1)
	reports = append(reports, game.AnchorReport{
		ID:      types.TableCenter,
		X:       l.Width/2 - config.CardWidth/2,
		Y:       l.Height/2 - config.CardHeight/2,
		W:       config.CardWidth,
		H:       config.CardHeight,
		Visible: true,
	})
	for seat := 0; seat < types.MaxSeats; seat++ {
		x, y, w, h := config.SeatRect(seat, l.Width, l.Height)
		reports = append(reports, game.AnchorReport{
			ID:      types.SeatAnchor(seat),
			X:       x,
			Y:       y,
			W:       w,
			H:       h,
			Visible: true,
		})
	}
	return reports
}

// HandCardPosition 返回座位第 index 张手牌（共 count 张）的中心坐标
//
// 手牌摆在座位框朝向牌桌中心的一侧，沿桌边方向依次错开。
func (l *TableLayout) HandCardPosition(seat, index, count int) types.Point {
	seatPt := config.SeatCenter(seat, l.Width, l.Height)
	dx, dy := l.Width/2-seatPt.X, l.Height/2-seatPt.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return seatPt
	}
	ux, uy := dx/dist, dy/dist

	inset := config.SeatBoxHeight/2 + config.CardHeight/2 + 8
	base := types.Point{X: seatPt.X + ux*inset, Y: seatPt.Y + uy*inset}

	// 沿切线方向展开，整体居中
	offset := (float64(index) - float64(count-1)/2) * config.HandCardOffset
	return types.Point{X: base.X - uy*offset, Y: base.Y + ux*offset}
}

// handCounts 统计每个座位的手牌数
func handCounts(hands []systems.HandView) map[int]int {
	counts := make(map[int]int)
	for _, h := range hands {
		counts[h.Seat]++
	}
	return counts
}
