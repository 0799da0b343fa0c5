// Package app 提供牌桌动画演示的 ebiten 应用包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/cardtable/pkg/config"
	"github.com/decker502/cardtable/pkg/engine"
	"github.com/decker502/cardtable/pkg/events"
	"github.com/decker502/cardtable/pkg/feed"
	"github.com/decker502/cardtable/pkg/game"
	"github.com/decker502/cardtable/pkg/scenes"
)

// 数据文件路径（优先从嵌入资源读取）
const (
	physicsProfilesPath = "data/physics_profiles.yaml"
	choreographyPath    = "data/choreography.yaml"
	defaultScriptPath   = "data/demo_script.yaml"

	appName = "cardtable"

	// eventBufferSize 网络事件通道容量
	eventBufferSize = 256
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool

	// LocalPlayerID 本地玩家，只有发给他的牌显示牌面
	LocalPlayerID string

	// ServerURL 游戏服务器 websocket 地址；为空时不连接
	ServerURL string

	// ScriptPath 回放脚本路径；ServerURL 和 ScriptPath 都为空时回放内置演示脚本
	ScriptPath string
}

// App 是牌桌演示的应用包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	engine       *engine.Engine
	verbose      bool

	cancel context.CancelFunc
	closed bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入资源；
// 未初始化时从工作目录读取 data/ 下的文件。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	profiles, err := config.LoadPhysicsProfiles(physicsProfilesPath)
	if err != nil {
		log.Printf("[App] Warning: %v (using built-in profiles)", err)
		profiles = config.DefaultPhysicsProfiles()
	}
	choreography, err := config.LoadChoreographyConfig(choreographyPath)
	if err != nil {
		log.Printf("[App] Warning: %v (using built-in choreography)", err)
		choreography = config.DefaultChoreographyConfig()
	}

	// 设置存储不可用时降级为内存设置
	gdataManager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	settingsManager := game.NewSettingsManager(gdataManager)
	settings := settingsManager.GetSettings()

	eng := engine.New(engine.Options{
		Profiles:      profiles,
		Choreography:  choreography,
		LocalPlayerID: cfg.LocalPlayerID,
		Settings:      &settings,
	})
	ebiten.SetTPS(eng.TPS())
	log.Printf("[App] Engine ready: tps=%d local=%q", eng.TPS(), cfg.LocalPlayerID)

	scene := scenes.NewTableScene(eng, settingsManager)
	ctx, cancel := context.WithCancel(context.Background())

	if cfg.ServerURL != "" {
		incoming := make(chan events.Event, eventBufferSize)
		scene.SetIncoming(incoming)
		go runFeed(ctx, feed.NewWebSocketFeed(cfg.ServerURL), incoming)
	}

	scriptPath := cfg.ScriptPath
	if scriptPath == "" && cfg.ServerURL == "" {
		scriptPath = defaultScriptPath
	}
	if scriptPath != "" {
		script, err := feed.LoadScript(scriptPath)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("回放脚本加载失败: %w", err)
		}
		scene.SetScript(script)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	return &App{
		sceneManager: sceneManager,
		engine:       eng,
		verbose:      cfg.Verbose,
		cancel:       cancel,
	}, nil
}

// runFeed 在独立 goroutine 中运行事件来源，结束后关闭通道
func runFeed(ctx context.Context, src feed.Source, out chan<- events.Event) {
	defer close(out)
	if err := src.Run(ctx, out); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[App] 事件来源退出: %v", err)
	}
}

// Update 更新逻辑
// 每个 tick 调用一次（60 次/秒，减弱动态效果时 30 次/秒）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.Close()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// 固定步长：TPS 会随减弱动态效果设置变化
	deltaTime := 1.0 / float64(a.engine.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时左右留黑边，使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
//
// 逻辑尺寸跟随窗口尺寸，尺寸变化会传给场景并刷新锚点，
// 飞行中的动画在下一帧跟随座位的新位置。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		outsideWidth, outsideHeight = config.GameWindowWidth, config.GameWindowHeight
	}
	a.sceneManager.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Close 停止事件来源、取消全部动画并保存设置
// 可重复调用
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.cancel()
	a.engine.CancelAll()
	a.sceneManager.SaveOnExit()
	log.Printf("[App] Closed")
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
