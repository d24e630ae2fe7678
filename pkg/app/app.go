// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/gonewx/scratchcards/pkg/config"
	"github.com/gonewx/scratchcards/pkg/game"
	"github.com/gonewx/scratchcards/pkg/scenes"
	"github.com/gonewx/scratchcards/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储目录名
const AppName = "scratchcards"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Theme 覆盖已保存的主题（"light" / "dark"），为空则使用存档
	Theme string
	// Scale 覆盖 data/scratch.yaml 中的 displayScale，0 表示不覆盖
	Scale float64
	// CardsPath 卡组文件路径，为空则使用内置卡组
	CardsPath string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager

	// screenW, screenH 当前场景的逻辑屏幕尺寸
	screenW, screenH int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	settings, err := newSettingsManager(cfg.Theme)
	if err != nil {
		return nil, err
	}

	deckPath := cfg.CardsPath
	if deckPath == "" {
		deckPath = config.DefaultCardDeckPath
	}
	deck, err := config.LoadCardDeck(deckPath)
	if err != nil {
		return nil, fmt.Errorf("卡组加载失败: %w", err)
	}

	scratchCfg, err := config.LoadScratchConfig(config.DefaultScratchConfigPath)
	if err != nil {
		return nil, fmt.Errorf("刮刮卡参数加载失败: %w", err)
	}
	if cfg.Scale > 0 {
		scratchCfg.DisplayScale = cfg.Scale
		if err := scratchCfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid --scale: %w", err)
		}
	}
	log.Printf("[App] Loaded %d cards from %s (%dx%d bitmap, scale %.2f)",
		len(deck.Cards), deckPath, scratchCfg.CardWidth, scratchCfg.CardHeight, scratchCfg.DisplayScale)

	a := &App{
		sceneManager: game.NewSceneManager(),
		settings:     settings,
	}

	// 同一个指针跟踪器在重新加载场景后继续使用，避免丢失正在进行的按压
	pointer := utils.NewPointerTracker()
	factory := func() (game.Scene, error) {
		scene, err := scenes.NewCardsScene(scenes.CardsSceneConfig{
			Deck:        deck,
			Scratch:     scratchCfg,
			Settings:    settings,
			Pointer:     pointer,
			SparkleSeed: uint64(time.Now().UnixNano()),
		})
		if err != nil {
			return nil, err
		}
		a.screenW, a.screenH = scene.ScreenSize()
		return scene, nil
	}
	a.sceneManager.SetSceneFactory(factory)

	scene, err := factory()
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}
	a.sceneManager.SwitchTo(scene)

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return a, nil
}

// newSettingsManager 打开 gdata 存储并加载设置
// 存储不可用时以内存模式运行
func newSettingsManager(themeOverride string) (*game.SettingsManager, error) {
	var gdataManager *gdata.Manager
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage directory unavailable: %v", err)
	} else {
		m, err := gdata.Open(gdata.Config{AppName: AppName})
		if err != nil {
			log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		} else {
			gdataManager = m
		}
	}

	settings := game.NewSettingsManager(gdataManager)
	if themeOverride != "" {
		theme, err := config.ParseTheme(themeOverride)
		if err != nil {
			return nil, fmt.Errorf("invalid --theme: %w", err)
		}
		settings.SetTheme(theme)
	}
	return settings, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.screenW, a.screenH)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.screenW, a.screenH)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏（移动端始终全屏）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// F5 重新创建场景（所有卡片重新覆盖）
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		a.sceneManager.Reload()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if fullscreen {
		ebiten.SetFullscreen(true)
	} else {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	}

	a.settings.SetFullscreen(fullscreen)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Failed to save fullscreen setting: %v", err)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// letterbox 使用当前主题的背景色
	screen.Fill(a.letterbox())
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear // 使用线性滤波减少锯齿和模糊
	screen.DrawImage(offscreen, op)
}

func (a *App) letterbox() color.Color {
	return a.settings.Palette().Background
}

// Layout 返回逻辑屏幕尺寸
// 尺寸由卡片网格决定，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.screenW, a.screenH
}

// WindowSize 返回初始窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.screenW, a.screenH
}

// GetSceneManager 返回场景管理器
// 用于在关闭时保存设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}
