// Command cardtable 牌桌动画演示
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--player <id>     本地玩家ID（只有发给他的牌显示牌面，默认 "alice"）
//	--server <url>    游戏服务器 websocket 地址，如 ws://localhost:8080/table
//	--script <path>   回放脚本；--server 和 --script 都为空时回放内置演示脚本
//	--verbose         输出详细日志
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/cardtable/pkg/app"
	"github.com/decker502/cardtable/pkg/config"
	"github.com/decker502/cardtable/pkg/embedded"
)

var (
	playerFlag  = flag.String("player", "alice", "Local player ID")
	serverFlag  = flag.String("server", "", "Game server websocket URL")
	scriptFlag  = flag.String("script", "", "Replay script path (YAML)")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:       *verboseFlag,
		LocalPlayerID: *playerFlag,
		ServerURL:     *serverFlag,
		ScriptPath:    *scriptFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Card Table")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
