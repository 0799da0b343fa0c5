// Package main 在终端中渲染牌桌动画（tcell）
//
// 与 ebiten 版本共用同一个引擎，只是渲染到字符网格。
// 引擎坐标使用虚拟像素：每个字符格对应 cellWidth × cellHeight 像素，
// 这样物理参数（弧高、摆幅、特效半径）在两种渲染器中含义一致。
//
// Usage:
//
//	go run ./cmd/table_tui [flags]
//
// Flags:
//
//	--player <id>     本地玩家ID（默认 "alice"）
//	--server <url>    游戏服务器 websocket 地址
//	--script <path>   回放脚本（默认 data/demo_script.yaml，连接服务器时不回放）
//	--log <path>      日志文件（默认不输出日志）
//
// Controls:
//
//	d    发牌（庄家座位轮转）
//	c    取消全部动画
//	r    切换减弱动态效果
//	p    从头回放脚本
//	q / Esc / Ctrl-C  退出
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/cardtable/pkg/config"
	"github.com/decker502/cardtable/pkg/engine"
	"github.com/decker502/cardtable/pkg/events"
	"github.com/decker502/cardtable/pkg/feed"
	"github.com/decker502/cardtable/pkg/game"
	"github.com/decker502/cardtable/pkg/systems"
	"github.com/decker502/cardtable/pkg/types"
)

var (
	playerFlag = flag.String("player", "alice", "Local player ID")
	serverFlag = flag.String("server", "", "Game server websocket URL")
	scriptFlag = flag.String("script", "data/demo_script.yaml", "Replay script path (ignored with --server)")
	logFlag    = flag.String("log", "", "Write logs to this file")
)

type tableTUI struct {
	screen tcell.Screen
	engine *engine.Engine
	clock  *systems.FrameClock

	incoming    <-chan events.Event
	script      *feed.ScriptFeed
	scriptStart float64

	width, height int
	nextDealer    int
}

func newTableTUI(eng *engine.Engine, maxStep float64) (*tableTUI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	t := &tableTUI{
		screen: screen,
		engine: eng,
		clock:  systems.NewFrameClock(maxStep, time.Now),
	}
	t.handleResize()
	return t, nil
}

// handleResize 终端尺寸变化：重新上报锚点并立即刷新
func (t *tableTUI) handleResize() {
	t.width, t.height = t.screen.Size()
	vw, vh := virtualSize(t.width, t.height)
	t.engine.SetViewport(vw, vh)
	reports, hidden := anchorReports(t.width, t.height)
	for _, rep := range reports {
		t.engine.ReportAnchor(rep)
	}
	for _, id := range hidden {
		t.engine.ForgetAnchor(id)
	}
	t.engine.RefreshAnchors()
	t.screen.Sync()
	log.Printf("[TableTUI] 终端尺寸: %dx%d", t.width, t.height)
}

// handleInput 返回 false 表示退出
func (t *tableTUI) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'd':
			t.engine.Submit(&events.DealEvent{DealerSeat: t.nextDealer})
			t.nextDealer = (t.nextDealer + 1) % types.MaxSeats
		case 'c':
			t.engine.CancelAll()
		case 'r':
			s := t.engine.Settings()
			s.ReducedMotion = !s.ReducedMotion
			t.engine.ApplySettings(s)
		case 'p':
			if t.script != nil {
				t.engine.CancelAll()
				t.script.Rewind()
				t.scriptStart = t.engine.Now()
			}
		}
	case *tcell.EventResize:
		t.handleResize()
	}
	return true
}

func (t *tableTUI) update() {
	if t.incoming != nil {
	drain:
		for {
			select {
			case ev, ok := <-t.incoming:
				if !ok {
					t.incoming = nil
					break drain
				}
				t.engine.Submit(ev)
			default:
				break drain
			}
		}
	}
	if t.script != nil {
		for _, ev := range t.script.Due(t.engine.Now() - t.scriptStart) {
			t.engine.Submit(ev)
		}
	}
	t.engine.Update(t.clock.Tick())
}

func (t *tableTUI) run() {
	tps := t.engine.TPS()
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !t.handleInput(ev) {
				return
			}
			// 减弱动态效果会改变 tick 频率
			if next := t.engine.TPS(); next != tps {
				tps = next
				ticker.Reset(time.Second / time.Duration(tps))
			}

		case <-ticker.C:
			t.update()
			t.draw()
		}
	}
}

func (t *tableTUI) cleanup() {
	t.engine.CancelAll()
	t.screen.Fini()
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.Create(*logFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	profiles, err := config.LoadPhysicsProfiles("data/physics_profiles.yaml")
	if err != nil {
		log.Printf("[TableTUI] %v (using built-in profiles)", err)
		profiles = config.DefaultPhysicsProfiles()
	}
	choreography, err := config.LoadChoreographyConfig("data/choreography.yaml")
	if err != nil {
		log.Printf("[TableTUI] %v (using built-in choreography)", err)
		choreography = config.DefaultChoreographyConfig()
	}

	eng := engine.New(engine.Options{
		Profiles:      profiles,
		Choreography:  choreography,
		LocalPlayerID: *playerFlag,
		Settings:      game.DefaultSettings(),
	})

	ui, err := newTableTUI(eng, choreography.Frame.MaxStep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer ui.cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *serverFlag != "" {
		incoming := make(chan events.Event, 256)
		ui.incoming = incoming
		go func() {
			defer close(incoming)
			if err := feed.NewWebSocketFeed(*serverFlag).Run(ctx, incoming); err != nil {
				log.Printf("[TableTUI] 事件来源退出: %v", err)
			}
		}()
	} else if *scriptFlag != "" {
		script, err := feed.LoadScript(*scriptFlag)
		if err != nil {
			ui.cleanup()
			fmt.Fprintf(os.Stderr, "Failed to load script: %v\n", err)
			os.Exit(1)
		}
		ui.script = script
		ui.scriptStart = eng.Now()
	}

	ui.run()
}
