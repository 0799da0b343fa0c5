// Package main 打印发牌序列的时间表，用于核对发牌顺序、补齐和延迟
//
// Usage:
//
//	go run ./cmd/verify_deal [flags]
//
// Flags:
//
//	--dealer <seat>      庄家座位（默认 0）
//	--seats <list>       入座的座位，逗号分隔（默认 "0,1,2,3"）
//	--local <seat>       本地玩家所在座位，该座位的牌显示牌面（默认 -1，全部背面）
//	--config <path>      编排配置文件（默认 data/choreography.yaml，不存在时使用内置值）
//	--summary            只打印每个座位的张数和首末延迟
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/decker502/cardtable/pkg/components"
	"github.com/decker502/cardtable/pkg/config"
	"github.com/decker502/cardtable/pkg/events"
	"github.com/decker502/cardtable/pkg/systems"
	"github.com/decker502/cardtable/pkg/types"
)

var (
	dealerFlag  = flag.Int("dealer", 0, "Dealer seat")
	seatsFlag   = flag.String("seats", "0,1,2,3", "Occupied seats, comma separated")
	localFlag   = flag.Int("local", -1, "Seat of the local player (-1 for none)")
	configFlag  = flag.String("config", "data/choreography.yaml", "Choreography config path")
	summaryFlag = flag.Bool("summary", false, "Print per-seat summary only")
)

func main() {
	flag.Parse()

	seats, err := parseSeats(*seatsFlag)
	if err != nil {
		log.Fatalf("invalid --seats: %v", err)
	}

	cfg, err := config.LoadChoreographyConfig(*configFlag)
	if err != nil {
		log.Printf("%v (using built-in choreography)", err)
		cfg = config.DefaultChoreographyConfig()
	}

	ev := &events.DealEvent{DealerSeat: *dealerFlag}
	if err := ev.Validate(); err != nil {
		log.Fatalf("invalid deal: %v", err)
	}

	localPlayer := ""
	if *localFlag >= 0 {
		localPlayer = playerName(*localFlag)
	}
	items := systems.BuildDealSequence(ev, seats, playerName, cfg.Deal, localPlayer)

	if *summaryFlag {
		printSummary(os.Stdout, items, cfg.Deal)
		return
	}
	printSchedule(os.Stdout, items, cfg.Deal)
}

// playerName 为座位生成演示用玩家名
func playerName(seat int) string {
	return fmt.Sprintf("p%d", seat)
}

func parseSeats(s string) ([]int, error) {
	var seats []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if n < 0 || n >= types.MaxSeats {
			return nil, fmt.Errorf("seat %d out of range [0,%d)", n, types.MaxSeats)
		}
		seats = append(seats, n)
	}
	sort.Ints(seats)
	return seats, nil
}

func printSchedule(w io.Writer, items []components.DealSequenceItem, deal config.DealConfig) {
	fmt.Fprintf(w, "%5s %5s %4s %-8s %-6s %8s %8s\n", "index", "round", "seat", "player", "card", "depart", "land")
	for _, it := range items {
		player := it.Recipient
		if it.Phantom {
			player = "(none)"
		}
		card := "##"
		if it.Card != nil {
			card = it.Card.String()
		}
		fmt.Fprintf(w, "%5d %5d %4d %-8s %-6s %8.3f %8.3f\n",
			it.Index, it.Round, it.Seat, player, card, it.Delay, it.Delay+deal.FlightDuration)
	}
	if n := len(items); n > 0 {
		fmt.Fprintf(w, "\n%d cards, last card lands at %.3fs (configured %.3fs)\n",
			n, items[n-1].Delay+deal.FlightDuration, deal.TotalDuration)
	}
}

func printSummary(w io.Writer, items []components.DealSequenceItem, deal config.DealConfig) {
	type seatStats struct {
		cards, phantoms int
		first, last     float64
	}
	stats := make(map[int]*seatStats)
	var order []int
	for _, it := range items {
		st, ok := stats[it.Seat]
		if !ok {
			st = &seatStats{first: it.Delay}
			stats[it.Seat] = st
			order = append(order, it.Seat)
		}
		st.cards++
		if it.Phantom {
			st.phantoms++
		}
		st.last = it.Delay
	}
	sort.Ints(order)
	fmt.Fprintf(w, "%4s %6s %8s %8s %8s\n", "seat", "cards", "phantom", "first", "last")
	for _, seat := range order {
		st := stats[seat]
		fmt.Fprintf(w, "%4d %6d %8d %8.3f %8.3f\n", seat, st.cards, st.phantoms, st.first, st.last+deal.FlightDuration)
	}
}
