package types

import "fmt"

// MaxSeats 牌桌座位上限（座位 0-5）
const MaxSeats = 6

// AnchorID 锚点标识
// 0..MaxSeats-1 表示座位，TableCenter 表示牌桌中心
type AnchorID int

// TableCenter 牌桌中心锚点（保留标识）
const TableCenter AnchorID = -1

// NoSeat 表示玩家未入座
const NoSeat AnchorID = -2

// SeatAnchor 返回座位对应的锚点标识
func SeatAnchor(seat int) AnchorID {
	return AnchorID(seat)
}

// IsSeat 是否为合法座位锚点
func (a AnchorID) IsSeat() bool {
	return a >= 0 && int(a) < MaxSeats
}

// Seat 返回座位号；非座位锚点返回 -1
func (a AnchorID) Seat() int {
	if !a.IsSeat() {
		return -1
	}
	return int(a)
}

// String 返回锚点的字符串表示
func (a AnchorID) String() string {
	switch {
	case a == TableCenter:
		return "table-center"
	case a == NoSeat:
		return "none"
	case a.IsSeat():
		return fmt.Sprintf("seat-%d", int(a))
	default:
		return fmt.Sprintf("anchor(%d)", int(a))
	}
}

// Point 屏幕坐标
type Point struct {
	X, Y float64
}
