// Command scratchterm 在终端中刮开卡片
//
// 覆盖层用半块字符渲染，按住鼠标左键拖动即可擦除：
//
//	go run ./cmd/scratchterm
//	go run ./cmd/scratchterm --cards my_cards.yaml --theme dark
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/scratchcards/data"
	"github.com/gonewx/scratchcards/pkg/config"
	"github.com/gonewx/scratchcards/pkg/embedded"
)

func main() {
	cardsPath := flag.String("cards", config.DefaultCardDeckPath, "卡组 YAML 文件路径")
	themeName := flag.String("theme", string(config.ThemeLight), `配色："light" 或 "dark"`)
	logPath := flag.String("log", "", "日志文件路径（终端被界面占用，默认不输出日志）")
	flag.Parse()

	if err := run(*cardsPath, *themeName, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "scratchterm: %v\n", err)
		os.Exit(1)
	}
}

func run(cardsPath, themeName, logPath string) error {
	log.SetOutput(io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	embedded.Init(data.FS)

	theme, err := config.ParseTheme(themeName)
	if err != nil {
		return err
	}
	deck, err := config.LoadCardDeck(cardsPath)
	if err != nil {
		return err
	}
	scratchCfg, err := config.LoadScratchConfig(config.DefaultScratchConfigPath)
	if err != nil {
		return err
	}

	b, err := newBoard(deck, scratchCfg, config.PaletteFor(theme))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseDragEvents)
	screen.SetStyle(tcell.StyleDefault)
	b.resize(screen.Size())
	log.Printf("[scratchterm] %d cards loaded from %s", len(deck.Cards), cardsPath)

	for {
		b.draw(screen)
		screen.Show()

		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			screen.Sync()
		}
		if b.handleEvent(ev) {
			return nil
		}
	}
}
