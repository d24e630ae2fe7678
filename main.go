package main

import (
	"flag"
	"log"
	"os"

	"github.com/gonewx/scratchcards/data"
	"github.com/gonewx/scratchcards/pkg/app"
	"github.com/gonewx/scratchcards/pkg/embedded"
	"github.com/gonewx/scratchcards/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	theme := flag.String("theme", "", `界面主题："light" 或 "dark"（覆盖已保存的设置）`)
	scale := flag.Float64("scale", 0, "卡片显示缩放（屏幕像素 / 位图像素），0 使用 data/scratch.yaml")
	cards := flag.String("cards", "", "自定义卡组 YAML 文件路径")
	flag.Parse()

	embedded.Init(data.FS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:   *verbose,
		Theme:     *theme,
		Scale:     *scale,
		CardsPath: *cards,
	})
	if err != nil {
		// NewApp 可能已关闭日志输出，错误直接写到 stderr
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}

	w, h := gameApp.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Hidden Surprises")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(&closeHandler{App: gameApp}); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}

// closeHandler 在窗口关闭时保存当前场景的设置
type closeHandler struct {
	*app.App
}

func (g *closeHandler) Update() error {
	if ebiten.IsWindowBeingClosed() {
		if saveable, ok := g.GetSceneManager().GetCurrentScene().(game.Saveable); ok {
			saveable.SaveOnExit()
		}
		return ebiten.Termination
	}
	return g.App.Update()
}
