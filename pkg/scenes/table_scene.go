package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/cardtable/pkg/config"
	"github.com/decker502/cardtable/pkg/engine"
	"github.com/decker502/cardtable/pkg/events"
	"github.com/decker502/cardtable/pkg/feed"
	"github.com/decker502/cardtable/pkg/game"
	"github.com/decker502/cardtable/pkg/systems"
	"github.com/decker502/cardtable/pkg/types"
)

// 场景配色
var (
	backgroundColor = color.RGBA{R: 24, G: 28, B: 38, A: 255}
	feltColor       = color.RGBA{R: 30, G: 110, B: 70, A: 255}
	seatColor       = color.RGBA{R: 52, G: 58, B: 74, A: 255}
	seatBorderColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	cardFaceColor   = color.RGBA{R: 250, G: 248, B: 240, A: 255}
	cardBackColor   = color.RGBA{R: 40, G: 70, B: 160, A: 255}
	cardEdgeColor   = color.RGBA{R: 90, G: 90, B: 100, A: 255}
)

// categoryColors 表情实例和特效按类别着色
var categoryColors = map[types.Category]color.RGBA{
	types.CategoryAttack:      {R: 230, G: 60, B: 50, A: 255},
	types.CategoryCelebration: {R: 250, G: 200, B: 40, A: 255},
	types.CategoryReaction:    {R: 120, G: 200, B: 250, A: 255},
	types.CategoryGesture:     {R: 170, G: 130, B: 240, A: 255},
	types.CategoryHeart:       {R: 250, G: 90, B: 160, A: 255},
	types.CategoryDefault:     {R: 220, G: 220, B: 220, A: 255},
	types.CategoryPass:        {R: 240, G: 240, B: 240, A: 255},
	types.CategoryDeal:        {R: 240, G: 240, B: 240, A: 255},
}

const (
	// emojiRadius 表情实例的基础半径（乘以实例缩放）
	emojiRadius = 14.0

	// feltTextureSize 牌桌椭圆纹理尺寸（绘制时按椭圆半径缩放）
	feltTextureSize = 256
)

// TableScene 牌桌场景
//
// 每帧从引擎取快照绘制，自身不保存任何动画状态。
// 事件来源有两种：websocket 通道（SetIncoming）和回放脚本（SetScript），可同时存在。
type TableScene struct {
	engine   *engine.Engine
	settings *game.SettingsManager
	layout   *TableLayout

	incoming    <-chan events.Event
	script      *feed.ScriptFeed
	scriptStart float64

	cardFace *ebiten.Image
	cardBack *ebiten.Image
	felt     *ebiten.Image

	nextDealer int
}

// NewTableScene 创建牌桌场景并把布局注册为引擎的锚点来源
//
// settings 可为 nil（快捷键修改的设置不落盘）。
func NewTableScene(eng *engine.Engine, settings *game.SettingsManager) *TableScene {
	s := &TableScene{
		engine:   eng,
		settings: settings,
		layout:   &TableLayout{},
	}
	eng.AddAnchorProvider(s.layout)
	return s
}

// SetIncoming 设置实时事件通道（非阻塞读取）
func (s *TableScene) SetIncoming(ch <-chan events.Event) {
	s.incoming = ch
}

// SetScript 设置回放脚本，从引擎当前时刻开始回放
func (s *TableScene) SetScript(script *feed.ScriptFeed) {
	s.script = script
	s.scriptStart = s.engine.Now()
}

// SetLayout 视口尺寸变化时调用
// 更新布局后立即刷新锚点，飞行中的实例在下一帧跟随新位置
func (s *TableScene) SetLayout(w, h int) {
	fw, fh := float64(w), float64(h)
	if fw == s.layout.Width && fh == s.layout.Height {
		return
	}
	s.layout.Width, s.layout.Height = fw, fh
	s.engine.SetViewport(fw, fh)
	s.engine.RefreshAnchors()
	log.Printf("[TableScene] 布局变化: %dx%d", w, h)
}

// Update 推进一帧
func (s *TableScene) Update(deltaTime float64) {
	s.handleInput()
	s.drainIncoming()
	if s.script != nil {
		for _, ev := range s.script.Due(s.engine.Now() - s.scriptStart) {
			s.engine.Submit(ev)
		}
	}
	s.engine.Update(deltaTime)
}

// drainIncoming 取出通道中已到达的全部事件，不阻塞
func (s *TableScene) drainIncoming() {
	if s.incoming == nil {
		return
	}
	for {
		select {
		case ev, ok := <-s.incoming:
			if !ok {
				log.Printf("[TableScene] 事件通道已关闭")
				s.incoming = nil
				return
			}
			s.engine.Submit(ev)
		default:
			return
		}
	}
}

func (s *TableScene) handleInput() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		s.engine.Submit(&events.DealEvent{DealerSeat: s.nextDealer})
		s.nextDealer = (s.nextDealer + 1) % types.MaxSeats
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		s.engine.CancelAll()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		if s.script != nil {
			s.engine.CancelAll()
			s.script.Rewind()
			s.scriptStart = s.engine.Now()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		cur := s.engine.Settings()
		s.applySettings(func(sm *game.SettingsManager) { sm.SetReducedMotion(!cur.ReducedMotion) },
			func(a *game.AnimationSettings) { a.ReducedMotion = !cur.ReducedMotion })
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		cur := s.engine.Settings()
		s.applySettings(func(sm *game.SettingsManager) { sm.SetAnimationsEnabled(!cur.AnimationsEnabled) },
			func(a *game.AnimationSettings) { a.AnimationsEnabled = !cur.AnimationsEnabled })
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		scale := s.engine.Settings().SpeedScale * 2
		s.applySettings(func(sm *game.SettingsManager) { sm.SetSpeedScale(scale) },
			func(a *game.AnimationSettings) { a.SpeedScale = math.Min(scale, game.MaxSpeedScale) })
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		scale := s.engine.Settings().SpeedScale / 2
		s.applySettings(func(sm *game.SettingsManager) { sm.SetSpeedScale(scale) },
			func(a *game.AnimationSettings) { a.SpeedScale = math.Max(scale, game.MinSpeedScale) })
	}
}

// applySettings 修改设置并同步到引擎和 tick 频率
// 有设置管理器时以它为准（负责范围校验和落盘），否则直接修改引擎当前设置
func (s *TableScene) applySettings(viaManager func(*game.SettingsManager), direct func(*game.AnimationSettings)) {
	var next game.AnimationSettings
	if s.settings != nil {
		viaManager(s.settings)
		next = s.settings.GetSettings()
		if err := s.settings.Save(); err != nil {
			log.Printf("[TableScene] Warning: 保存设置失败: %v", err)
		}
	} else {
		next = s.engine.Settings()
		direct(&next)
	}
	s.engine.ApplySettings(next)
	ebiten.SetTPS(s.engine.TPS())
	log.Printf("[TableScene] 设置: animations=%v reducedMotion=%v speed=%.2f tps=%d",
		next.AnimationsEnabled, next.ReducedMotion, next.SpeedScale, s.engine.TPS())
}

// SaveOnExit 实现 game.Saveable：退出时保存动画设置
func (s *TableScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[TableScene] 退出时保存设置失败: %v", err)
		return false
	}
	return true
}

// Draw 绘制一帧
func (s *TableScene) Draw(screen *ebiten.Image) {
	s.ensureImages()
	screen.Fill(backgroundColor)

	snap := s.engine.Snapshot()
	s.drawTable(screen)
	s.drawSeats(screen, snap)
	s.drawHands(screen, snap.Hands)
	for _, v := range snap.Instances {
		s.drawInstance(screen, v)
	}
	for _, e := range snap.Effects {
		drawEffect(screen, e)
	}
	s.drawHUD(screen, snap)
}

func (s *TableScene) ensureImages() {
	if s.cardFace != nil {
		return
	}
	w, h := int(config.CardWidth), int(config.CardHeight)

	s.cardFace = ebiten.NewImage(w, h)
	s.cardFace.Fill(cardFaceColor)
	vector.StrokeRect(s.cardFace, 1, 1, float32(w-2), float32(h-2), 2, cardEdgeColor, false)

	s.cardBack = ebiten.NewImage(w, h)
	s.cardBack.Fill(cardBackColor)
	vector.StrokeRect(s.cardBack, 4, 4, float32(w-8), float32(h-8), 2, cardFaceColor, false)

	s.felt = ebiten.NewImage(feltTextureSize, feltTextureSize)
	r := float32(feltTextureSize / 2)
	vector.DrawFilledCircle(s.felt, r, r, r, feltColor, true)
}

func (s *TableScene) drawTable(screen *ebiten.Image) {
	rx, ry := config.TableRadii(s.layout.Width, s.layout.Height)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-feltTextureSize/2, -feltTextureSize/2)
	op.GeoM.Scale(rx/(feltTextureSize/2), ry/(feltTextureSize/2))
	op.GeoM.Translate(s.layout.Width/2, s.layout.Height/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.felt, op)
}

func (s *TableScene) drawSeats(screen *ebiten.Image, snap systems.Snapshot) {
	counts := handCounts(snap.Hands)
	for seat := 0; seat < types.MaxSeats; seat++ {
		x, y, w, h := config.SeatRect(seat, s.layout.Width, s.layout.Height)
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), seatColor, false)
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, seatBorderColor, false)

		player := s.engine.PlayerAt(seat)
		if player == "" {
			player = "(empty)"
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d %s", seat, player), int(x)+6, int(y)+6)
		if n := counts[seat]; n > 0 {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("cards: %d", n), int(x)+6, int(y)+24)
		}
	}
}

func (s *TableScene) drawHands(screen *ebiten.Image, hands []systems.HandView) {
	counts := handCounts(hands)
	for _, h := range hands {
		pos := s.layout.HandCardPosition(h.Seat, h.IndexInSeat, counts[h.Seat])
		s.drawCard(screen, pos.X, pos.Y, 0, 0.7, 1, h.Card, h.Card == nil)
	}
}

func (s *TableScene) drawInstance(screen *ebiten.Image, v systems.InstanceView) {
	if !v.Visible || v.Opacity <= 0 {
		return
	}

	if v.Category.IsCard() {
		cards := v.Payload.Cards
		if len(cards) <= 1 {
			var card *types.Card
			if len(cards) == 1 {
				card = &cards[0]
			}
			s.drawCard(screen, v.X, v.Y, v.Rotation, v.Scale, v.Opacity, card, v.Payload.FaceDown)
			return
		}
		for i := range cards {
			rot := v.Rotation
			if i < len(v.FanAngles) {
				rot += v.FanAngles[i]
			}
			s.drawCard(screen, v.X, v.Y, rot, v.Scale, v.Opacity, &cards[i], v.Payload.FaceDown)
		}
		return
	}

	clr := fade(colorFor(v.Category), v.Opacity)
	r := float32(emojiRadius * v.Scale)
	vector.DrawFilledCircle(screen, float32(v.X), float32(v.Y), r, clr, true)
	ebitenutil.DebugPrintAt(screen, categoryLabel(v.Category), int(v.X)-9, int(v.Y)-8)
}

func (s *TableScene) drawCard(screen *ebiten.Image, x, y, rotationDeg, scale, opacity float64, card *types.Card, faceDown bool) {
	img := s.cardFace
	if faceDown || card == nil {
		img = s.cardBack
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-config.CardWidth/2, -config.CardHeight/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Rotate(rotationDeg * math.Pi / 180)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(opacity))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)

	// 牌面文字不随旋转，缩得太小时不画
	if img == s.cardFace && scale >= 0.5 {
		ebitenutil.DebugPrintAt(screen, cardLabel(*card), int(x)-8, int(y)-8)
	}
}

func drawEffect(screen *ebiten.Image, e systems.EffectView) {
	remaining := 1 - e.Progress
	base := colorFor(e.Category)
	x, y := float32(e.X), float32(e.Y)

	switch e.Type {
	case types.EffectRing:
		r := float32(e.Radius * e.Progress)
		vector.StrokeCircle(screen, x, y, r, float32(1+3*remaining), fade(base, remaining), true)
	case types.EffectFlash:
		r := float32(e.Radius * (0.5 + 0.5*e.Progress))
		vector.DrawFilledCircle(screen, x, y, r, fade(color.RGBA{R: 255, G: 255, B: 255, A: 255}, 0.6*remaining), true)
	case types.EffectDecal:
		vector.DrawFilledCircle(screen, x, y, float32(e.Radius*0.6), fade(base, 0.8*remaining), true)
	case types.EffectBounce:
		r := float32(e.Radius * (0.4 + 0.6*math.Abs(math.Sin(e.Progress*3*math.Pi))*remaining))
		vector.StrokeCircle(screen, x, y, r, 2, fade(base, remaining), true)
	case types.EffectBurst, types.EffectRising:
		clr := fade(base, remaining)
		for _, p := range e.Particles {
			half := p.Size / 2
			vector.DrawFilledRect(screen, float32(p.X-half), float32(p.Y-half), float32(p.Size), float32(p.Size), clr, false)
		}
	}
}

func (s *TableScene) drawHUD(screen *ebiten.Image, snap systems.Snapshot) {
	st := s.engine.Settings()
	hud := fmt.Sprintf("t=%.1fs  flights=%d  effects=%d  hands=%d  TPS=%.0f\n"+
		"animations=%v  reducedMotion=%v  speed=%.2fx\n"+
		"[D] deal  [C] cancel  [P] replay  [R] reduced motion  [A] animations  [+/-] speed  [F11] fullscreen",
		snap.Time, len(snap.Instances), len(snap.Effects), len(snap.Hands), ebiten.ActualTPS(),
		st.AnimationsEnabled, st.ReducedMotion, st.SpeedScale)
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)
}

func colorFor(c types.Category) color.RGBA {
	if clr, ok := categoryColors[c]; ok {
		return clr
	}
	return categoryColors[types.CategoryDefault]
}

// fade 按不透明度缩放颜色（color.RGBA 为预乘 alpha）
func fade(c color.RGBA, alpha float64) color.RGBA {
	a := math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// cardLabel 调试字体只有 ASCII，花色用首字母表示
func cardLabel(c types.Card) string {
	suit := strings.ToUpper(c.Suit)
	if len(suit) > 1 {
		suit = suit[:1]
	}
	return c.Rank + suit
}

// categoryLabel 表情实例上显示的类别缩写
func categoryLabel(c types.Category) string {
	name := c.String()
	if len(name) > 3 {
		name = name[:3]
	}
	return strings.ToUpper(name)
}
