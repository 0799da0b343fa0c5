package systems

import (
	"sort"

	"github.com/decker502/cardtable/pkg/components"
	"github.com/decker502/cardtable/pkg/config"
	"github.com/decker502/cardtable/pkg/events"
	"github.com/decker502/cardtable/pkg/types"
)

// DealSeatLookup 返回座位上的玩家ID，空座返回 ""
type DealSeatLookup func(seat int) string

// BuildDealSequence 生成整副发牌的序列
//
// 规则:
//  1. 服务端给出的顺序原样使用；为空时从庄家座位开始按活跃座位轮流合成，
//     每轮每座一张，共 floor(总张数/座位数) 轮，出牌点为牌桌中心；
//     总张数少于座位数时只有庄家起的前几个座位各得一张
//  2. 不足总张数时，按同样的座位循环补齐占位条目（无收牌人）
//  3. 第 i 张的延迟 = i × (铺开时长 / (序列长度 - 1))，
//     铺开时长 = 总时长 - 单张飞行时长，因此第一张在 0 秒出发、最后一张恰好在总时长落地
//
// 只有收牌人是本地玩家时才保留明牌，其余一律背面。
// 服务端序列超过总张数时保留全部真实牌，不截断。
//
// 参数:
//   - activeSeats: 有玩家的座位；为空时视为全部座位
//   - seatPlayer: 合成序列时查询座位上的玩家（可为 nil）
func BuildDealSequence(ev *events.DealEvent, activeSeats []int, seatPlayer DealSeatLookup,
	cfg config.DealConfig, localPlayerID string) []components.DealSequenceItem {

	var items []components.DealSequenceItem
	if len(ev.Sequence) > 0 {
		items = fromServerSequence(ev.Sequence, localPlayerID)
	} else {
		items = synthesizeRoundRobin(ev.DealerSeat, activeSeats, seatPlayer, cfg.TotalCards)
	}

	items = padSequence(items, cfg.TotalCards)

	n := len(items)
	interval := 0.0
	if n > 1 {
		interval = cfg.SpreadDuration() / float64(n-1)
	}
	for i := range items {
		items[i].Index = i
		items[i].Delay = float64(i) * interval
	}
	return items
}

func fromServerSequence(steps []events.DealStep, localPlayerID string) []components.DealSequenceItem {
	items := make([]components.DealSequenceItem, 0, len(steps))
	for _, s := range steps {
		item := components.DealSequenceItem{
			Seat:      s.Seat,
			Recipient: s.PlayerID,
			Round:     s.Round,
			Source:    types.TableCenter,
		}
		if s.FromSeat != nil {
			item.Source = types.SeatAnchor(*s.FromSeat)
		}
		if s.Card != nil && localPlayerID != "" && s.PlayerID == localPlayerID {
			card := *s.Card
			item.Card = &card
		}
		items = append(items, item)
	}
	return items
}

func synthesizeRoundRobin(dealer int, activeSeats []int, seatPlayer DealSeatLookup, totalCards int) []components.DealSequenceItem {
	seats := dealOrder(dealer, activeSeats)
	// 总张数少于座位数时只发一轮，且只发到总张数为止
	if totalCards < len(seats) {
		seats = seats[:max(totalCards, 1)]
	}
	rounds := totalCards / len(seats)
	if rounds < 1 {
		rounds = 1
	}

	items := make([]components.DealSequenceItem, 0, rounds*len(seats))
	for r := 0; r < rounds; r++ {
		for _, seat := range seats {
			recipient := ""
			if seatPlayer != nil {
				recipient = seatPlayer(seat)
			}
			items = append(items, components.DealSequenceItem{
				Seat:      seat,
				Recipient: recipient,
				Round:     r,
				Source:    types.TableCenter,
			})
		}
	}
	return items
}

// dealOrder 返回从庄家座位开始的发牌座位顺序
// 庄家座位无人时从其后第一个活跃座位开始
func dealOrder(dealer int, activeSeats []int) []int {
	seats := make([]int, 0, types.MaxSeats)
	for _, s := range activeSeats {
		if s >= 0 && s < types.MaxSeats {
			seats = append(seats, s)
		}
	}
	if len(seats) == 0 {
		for s := 0; s < types.MaxSeats; s++ {
			seats = append(seats, s)
		}
	}
	sort.Ints(seats)

	start := 0
	for i, s := range seats {
		if s >= dealer {
			start = i
			break
		}
	}
	order := make([]int, 0, len(seats))
	order = append(order, seats[start:]...)
	return append(order, seats[:start]...)
}

// padSequence 用占位条目补齐到 total 张，占位条目循环使用已有座位
func padSequence(items []components.DealSequenceItem, total int) []components.DealSequenceItem {
	base := len(items)
	if base == 0 || base >= total {
		return items
	}
	lastRound := items[base-1].Round
	for i := base; i < total; i++ {
		src := items[(i-base)%base]
		items = append(items, components.DealSequenceItem{
			Seat:    src.Seat,
			Round:   lastRound + 1 + (i-base)/base,
			Source:  src.Source,
			Phantom: true,
		})
	}
	return items
}
