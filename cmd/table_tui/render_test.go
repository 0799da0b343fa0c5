package main

import (
	"math"
	"testing"

	"github.com/decker502/cardtable/pkg/config"
	"github.com/decker502/cardtable/pkg/types"
)

func TestToCell(t *testing.T) {
	tests := []struct {
		x, y   float64
		cx, cy int
	}{
		{0, 0, 0, 0},
		{7.9, 15.9, 0, 0},
		{8, 16, 1, 1},
		{-1, -1, -1, -1},
		{100, 100, 12, 6},
	}
	for _, tt := range tests {
		cx, cy := toCell(tt.x, tt.y)
		if cx != tt.cx || cy != tt.cy {
			t.Errorf("toCell(%v,%v) = (%d,%d), want (%d,%d)", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
		}
	}
}

func TestAnchorReportsFollowTerminalSize(t *testing.T) {
	reports, hidden := anchorReports(80, 24)
	if len(reports) != types.MaxSeats+1 || len(hidden) != 0 {
		t.Fatalf("got %d reports, %d hidden", len(reports), len(hidden))
	}
	vw, vh := virtualSize(80, 24)
	if c := reports[0].Center(); c.X != vw/2 || c.Y != vh/2 {
		t.Errorf("table center = %+v, want (%v,%v)", c, vw/2, vh/2)
	}

	// 座位都落在终端范围内
	for _, r := range reports[1:] {
		c := r.Center()
		want := config.SeatCenter(r.ID.Seat(), vw, vh)
		if math.Abs(c.X-want.X) > 1e-9 || math.Abs(c.Y-want.Y) > 1e-9 {
			t.Errorf("%s center = %+v, want %+v", r.ID, c, want)
		}
		cx, cy := toCell(c.X, c.Y)
		if cx < 0 || cx >= 80 || cy < 0 || cy >= 24 {
			t.Errorf("%s at cell (%d,%d) outside 80x24", r.ID, cx, cy)
		}
	}
}

// TestAnchorReportsTinyTerminal 终端放不下座位框时座位全部注销
func TestAnchorReportsTinyTerminal(t *testing.T) {
	reports, hidden := anchorReports(10, 4)
	if len(reports) != 1 || reports[0].ID != types.TableCenter {
		t.Errorf("got %d reports, want only table-center", len(reports))
	}
	if len(hidden) != types.MaxSeats {
		t.Errorf("hidden = %d, want %d", len(hidden), types.MaxSeats)
	}
}
