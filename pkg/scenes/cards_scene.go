// Package scenes 包含应用的场景实现
package scenes

import (
	"fmt"
	"log"

	"github.com/gonewx/scratchcards/pkg/components"
	"github.com/gonewx/scratchcards/pkg/config"
	"github.com/gonewx/scratchcards/pkg/ecs"
	"github.com/gonewx/scratchcards/pkg/entities"
	"github.com/gonewx/scratchcards/pkg/game"
	"github.com/gonewx/scratchcards/pkg/progress"
	"github.com/gonewx/scratchcards/pkg/systems"
	"github.com/gonewx/scratchcards/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// 按钮文字
const (
	labelReveal       = "Reveal"
	labelScratchAgain = "Scratch again"
	labelResetAll     = "Reset all"
	labelDarkMode     = "Dark mode"
	labelLightMode    = "Light mode"
)

// PointerInput 每帧采样一次的指针输入
// 运行时为 utils.PointerTracker
type PointerInput interface {
	Update()
	Pointer() utils.PointerState
}

// CardsSceneConfig 创建 CardsScene 所需的依赖
type CardsSceneConfig struct {
	Deck     *config.CardDeckConfig
	Scratch  *config.ScratchConfig
	Settings *game.SettingsManager

	// Pointer 可选，默认使用 utils.NewPointerTracker()
	Pointer PointerInput
	// SparkleSeed 庆祝效果的随机种子
	SparkleSeed uint64
}

// cardEntry 场景对单张卡片持有的引用
type cardEntry struct {
	card   *components.ScratchCardComponent
	button *components.ButtonComponent
}

// CardsScene 刮刮卡主场景
//
// 场景是卡片揭晓状态（DeckState）的持有者：覆盖层通过回调上报进度和揭晓，
// 场景据此切换卡片按钮、顶部计数和 Reset all 按钮。
type CardsScene struct {
	entityManager *ecs.EntityManager
	deck          *progress.DeckState
	settings      *game.SettingsManager
	layout        config.Layout
	pointer       PointerInput

	scratchInput  *systems.ScratchInputSystem
	buttonSystem  *systems.ButtonSystem
	scratchRender *systems.ScratchRenderSystem
	buttonRender  *systems.ButtonRenderSystem
	hudRender     *systems.DeckHUDRenderSystem
	sparkles      *systems.SparkleSystem

	cards       map[int]*cardEntry
	order       []int
	resetAll    *components.ButtonComponent
	themeButton *components.ButtonComponent

	// setCursor 设置光标形状，测试中替换为空操作
	setCursor   func(ebiten.CursorShapeType)
	cursorShape ebiten.CursorShapeType
}

// NewCardsScene 创建刮刮卡场景
func NewCardsScene(cfg CardsSceneConfig) (*CardsScene, error) {
	if cfg.Deck == nil || len(cfg.Deck.Cards) == 0 {
		return nil, fmt.Errorf("cards scene: %w", config.ErrEmptyDeck)
	}
	if cfg.Scratch == nil {
		cfg.Scratch = config.DefaultScratchConfig()
	}
	if cfg.Settings == nil {
		cfg.Settings = game.NewSettingsManager(nil)
	}
	if cfg.Pointer == nil {
		cfg.Pointer = utils.NewPointerTracker()
	}

	fonts, err := systems.LoadFonts()
	if err != nil {
		return nil, fmt.Errorf("cards scene: %w", err)
	}

	em := ecs.NewEntityManager()
	deck := progress.NewDeckStateFromConfig(cfg.Deck)
	layout := config.NewLayout(cfg.Scratch, len(cfg.Deck.Cards))
	palette := cfg.Settings.Palette()

	s := &CardsScene{
		entityManager: em,
		deck:          deck,
		settings:      cfg.Settings,
		layout:        layout,
		pointer:       cfg.Pointer,
		scratchInput:  systems.NewScratchInputSystem(em, cfg.Pointer, deck),
		buttonSystem:  systems.NewButtonSystem(em, cfg.Pointer),
		scratchRender: systems.NewScratchRenderSystem(em, deck, fonts, palette),
		buttonRender:  systems.NewButtonRenderSystem(em, palette),
		hudRender:     systems.NewDeckHUDRenderSystem(deck, layout, fonts, palette),
		sparkles:      systems.NewSparkleSystem(em, cfg.SparkleSeed),
		cards:         make(map[int]*cardEntry, len(cfg.Deck.Cards)),
		setCursor:     ebiten.SetCursorShape,
		cursorShape:   ebiten.CursorShapeDefault,
	}
	s.scratchRender.ShowPercent = cfg.Settings.GetSettings().ShowPercent
	if utils.IsMobile() {
		// 触摸设备没有光标
		s.setCursor = func(ebiten.CursorShapeType) {}
	}

	callbacks := entities.CardCallbacks{
		OnProgress: s.onCardProgress,
		OnRevealed: s.onCardRevealed,
	}
	for i, card := range cfg.Deck.Cards {
		_, comp := entities.NewScratchCard(em, card, i, layout, cfg.Scratch, callbacks)
		id := card.ID
		_, button := entities.NewButton(em, layout.CardButtonRect(i), labelReveal, fonts.Small,
			components.ButtonStyleSoft, func() { s.onCardButton(id) })
		s.cards[id] = &cardEntry{card: comp, button: button}
		s.order = append(s.order, id)
	}

	_, s.resetAll = entities.NewButton(em, layout.ResetAllButtonRect(), labelResetAll, fonts.Body,
		components.ButtonStyleAccent, s.ResetAll)
	_, s.themeButton = entities.NewButton(em, layout.ThemeButtonRect(), "", fonts.Small,
		components.ButtonStyleSoft, s.ToggleTheme)

	deck.OnChange = func(int, progress.CardState) { s.syncButtons() }
	s.syncButtons()

	log.Printf("[CardsScene] Created %d cards (%dx%d grid, theme=%s)",
		len(s.order), layout.Columns, layout.Rows, cfg.Settings.GetSettings().Theme)
	return s, nil
}

// Update 处理输入并推进动画
func (s *CardsScene) Update(deltaTime float64) {
	s.pointer.Update()

	s.buttonSystem.Update(deltaTime)
	s.scratchInput.Update(deltaTime)
	s.sparkles.Update(deltaTime)

	s.updateCursor()
}

// Draw 渲染场景
func (s *CardsScene) Draw(screen *ebiten.Image) {
	s.hudRender.DrawBackground(screen)
	s.scratchRender.Draw(screen)
	s.buttonRender.Draw(screen)
	s.sparkles.Draw(screen, s.settings.Palette())
	s.hudRender.DrawForeground(screen)
}

// SaveOnExit 关闭时保存设置
func (s *CardsScene) SaveOnExit() bool {
	if err := s.settings.Save(); err != nil {
		log.Printf("[CardsScene] Failed to save settings: %v", err)
		return false
	}
	return true
}

// ScreenSize 返回场景需要的逻辑屏幕尺寸
func (s *CardsScene) ScreenSize() (width, height int) {
	return s.layout.ScreenSize()
}

// Deck 返回揭晓状态
func (s *CardsScene) Deck() *progress.DeckState {
	return s.deck
}

// RevealCard 不经过擦除直接揭晓卡片（卡片栏的 Reveal 按钮）
func (s *CardsScene) RevealCard(id int) error {
	entry, ok := s.cards[id]
	if !ok {
		return fmt.Errorf("%w: %d", config.ErrUnknownCard, id)
	}
	// ForceReveal 通过回调更新 DeckState；降级模式下同样有效
	entry.card.Surface.ForceReveal()
	return nil
}

// ResetCard 重新覆盖卡片（Scratch again）
func (s *CardsScene) ResetCard(id int) error {
	entry, ok := s.cards[id]
	if !ok {
		return fmt.Errorf("%w: %d", config.ErrUnknownCard, id)
	}
	entry.card.Surface.Reset()
	entry.card.Scratching = false
	return s.deck.Reset(id)
}

// ResetAll 重新覆盖所有卡片
func (s *CardsScene) ResetAll() {
	for _, id := range s.order {
		entry := s.cards[id]
		entry.card.Surface.Reset()
		entry.card.Scratching = false
	}
	s.sparkles.Clear()
	s.deck.ResetAll()
}

// ToggleTheme 切换明暗主题并保存设置
func (s *CardsScene) ToggleTheme() {
	theme := s.settings.ToggleTheme()
	palette := s.settings.Palette()
	s.scratchRender.SetPalette(palette)
	s.buttonRender.SetPalette(palette)
	s.hudRender.SetPalette(palette)
	s.syncButtons()

	if err := s.settings.Save(); err != nil {
		log.Printf("[CardsScene] Failed to save theme: %v", err)
	}
	log.Printf("[CardsScene] Theme switched to %s", theme)
}

func (s *CardsScene) onCardProgress(id, percent int) {
	if err := s.deck.Scratch(id, percent); err != nil {
		log.Printf("[CardsScene] %v", err)
	}
}

func (s *CardsScene) onCardRevealed(id int) {
	if err := s.deck.Reveal(id); err != nil {
		log.Printf("[CardsScene] %v", err)
		return
	}
	if entry, ok := s.cards[id]; ok {
		s.sparkles.Spawn(s.layout.CardRect(entry.card.Index))
	}
}

// onCardButton 卡片栏按钮：未揭晓时为 Reveal，揭晓后为 Scratch again
func (s *CardsScene) onCardButton(id int) {
	state, ok := s.deck.Get(id)
	if !ok {
		return
	}
	var err error
	if state.Revealed {
		err = s.ResetCard(id)
	} else {
		err = s.RevealCard(id)
	}
	if err != nil {
		log.Printf("[CardsScene] %v", err)
	}
}

// syncButtons 让按钮文字和可见性跟随 DeckState 与主题
func (s *CardsScene) syncButtons() {
	for id, entry := range s.cards {
		state, _ := s.deck.Get(id)
		if state.Revealed {
			entry.button.Text = labelScratchAgain
		} else {
			entry.button.Text = labelReveal
		}
	}
	s.resetAll.Hidden = s.deck.RevealedCount() == 0

	if s.settings.GetSettings().Theme == config.ThemeDark {
		s.themeButton.Text = labelLightMode
	} else {
		s.themeButton.Text = labelDarkMode
	}
}

// updateCursor 悬停卡片时显示十字光标，悬停按钮时显示手形
// 只在形状变化时调用 ebiten
func (s *CardsScene) updateCursor() {
	shape := ebiten.CursorShapeDefault
	switch {
	case s.buttonSystem.HoveringButton():
		shape = ebiten.CursorShapePointer
	case s.scratchInput.HoveringCard():
		shape = ebiten.CursorShapeCrosshair
	}
	if shape != s.cursorShape {
		s.cursorShape = shape
		s.setCursor(shape)
	}
}
