package config

import (
	"math"

	"github.com/decker502/cardtable/pkg/types"
)

// 布局配置常量
// 本文件定义了牌桌场景的布局参数：窗口尺寸、座位框大小、牌桌椭圆比例

const (
	// GameWindowWidth 默认窗口宽度（逻辑像素）
	GameWindowWidth = 1024

	// GameWindowHeight 默认窗口高度（逻辑像素）
	GameWindowHeight = 720

	// SeatBoxWidth 座位框宽度
	SeatBoxWidth = 120.0

	// SeatBoxHeight 座位框高度
	SeatBoxHeight = 56.0

	// TableRadiusRatioX 牌桌椭圆横向半径占视口宽度的比例
	TableRadiusRatioX = 0.36

	// TableRadiusRatioY 牌桌椭圆纵向半径占视口高度的比例
	TableRadiusRatioY = 0.34

	// SeatRadiusScale 座位所在椭圆相对牌桌椭圆的放大倍数
	// 座位框压在桌边外侧
	SeatRadiusScale = 1.12

	// CardWidth, CardHeight 卡牌尺寸
	CardWidth  = 36.0
	CardHeight = 52.0

	// HandCardOffset 手牌标记在座位下方依次错开的距离
	HandCardOffset = 6.0
)

// TableRadii 返回牌桌椭圆的横纵半径
func TableRadii(viewW, viewH float64) (rx, ry float64) {
	return viewW * TableRadiusRatioX, viewH * TableRadiusRatioY
}

// SeatCenter 返回座位中心坐标
//
// 座位均匀分布在椭圆上：0 号座位在正下方（本地玩家视角），
// 之后按顺时针依次排列。
func SeatCenter(seat int, viewW, viewH float64) types.Point {
	rx, ry := TableRadii(viewW, viewH)
	rx *= SeatRadiusScale
	ry *= SeatRadiusScale

	// 屏幕坐标 y 轴向下：角度 π/2 对应正下方，角度递增为顺时针
	angle := math.Pi/2 + 2*math.Pi*float64(seat)/float64(types.MaxSeats)
	return types.Point{
		X: viewW/2 + rx*math.Cos(angle),
		Y: viewH/2 + ry*math.Sin(angle),
	}
}

// SeatRect 返回座位框的左上角和尺寸
func SeatRect(seat int, viewW, viewH float64) (x, y, w, h float64) {
	c := SeatCenter(seat, viewW, viewH)
	return c.X - SeatBoxWidth/2, c.Y - SeatBoxHeight/2, SeatBoxWidth, SeatBoxHeight
}
