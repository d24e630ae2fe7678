package systems

import (
	"fmt"
	"image/color"

	"github.com/gonewx/scratchcards/pkg/config"
	"github.com/gonewx/scratchcards/pkg/progress"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 顶部和底部的文案
const (
	hudTitle       = "Hidden Surprises"
	hudSubtitle    = `Scratch each card to reveal a hidden message, or click "Reveal"`
	hudFooter      = "Every card is something true I feel about you"
	hudAllRevealed = "You found all the surprises!"
	hudAllSubline  = "But there's always more love where that came from"
)

// DeckHUDRenderSystem 绘制背景、标题、揭晓计数和底部文字
type DeckHUDRenderSystem struct {
	deck    *progress.DeckState
	layout  config.Layout
	fonts   Fonts
	palette config.Palette
}

// NewDeckHUDRenderSystem 创建 HUD 渲染系统
func NewDeckHUDRenderSystem(deck *progress.DeckState, layout config.Layout, fonts Fonts, palette config.Palette) *DeckHUDRenderSystem {
	return &DeckHUDRenderSystem{
		deck:    deck,
		layout:  layout,
		fonts:   fonts,
		palette: palette,
	}
}

// SetPalette 切换主题时更新配色
func (s *DeckHUDRenderSystem) SetPalette(palette config.Palette) {
	s.palette = palette
}

// Counter 揭晓计数文字，例如 "3 / 8 revealed"
func (s *DeckHUDRenderSystem) Counter() string {
	return fmt.Sprintf("%d / %d revealed", s.deck.RevealedCount(), s.deck.Len())
}

// DrawBackground 在所有卡片之前绘制
func (s *DeckHUDRenderSystem) DrawBackground(screen *ebiten.Image) {
	screen.Fill(s.palette.Background)

	w, _ := s.layout.ScreenSize()
	cx := float64(w) / 2

	s.drawCentered(screen, hudTitle, s.fonts.Title, cx, 34, s.palette.Title)
	s.drawCentered(screen, hudSubtitle, s.fonts.Body, cx, 62, s.palette.MutedText)

	// 揭晓计数徽章，位于 Reset all 按钮左侧
	reset := s.layout.ResetAllButtonRect()
	badgeW, badgeH := 150.0, reset.H
	badgeX := reset.X - 16 - badgeW
	vector.DrawFilledRect(screen, float32(badgeX), float32(reset.Y), float32(badgeW), float32(badgeH), s.palette.Button, true)
	counterColor := s.palette.MutedText
	if s.deck.RevealedCount() > 0 {
		counterColor = s.palette.Text
	}
	s.drawCentered(screen, s.Counter(), s.fonts.Body, badgeX+badgeW/2, reset.Y+badgeH/2, counterColor)
}

// DrawForeground 在所有卡片之后绘制底部区域
func (s *DeckHUDRenderSystem) DrawForeground(screen *ebiten.Image) {
	w, h := s.layout.ScreenSize()
	cx := float64(w) / 2
	top := float64(h) - config.FooterHeight

	if s.deck.AllRevealed() {
		vector.DrawFilledRect(screen, float32(config.ScreenMargin), float32(top+4),
			float32(float64(w)-2*config.ScreenMargin), float32(config.FooterHeight-8), s.palette.Banner, true)
		s.drawCentered(screen, hudAllRevealed, s.fonts.Body, cx, top+config.FooterHeight/2-8, s.palette.Title)
		s.drawCentered(screen, hudAllSubline, s.fonts.Small, cx, top+config.FooterHeight/2+9, s.palette.Text)
		return
	}
	s.drawCentered(screen, hudFooter, s.fonts.Body, cx, top+config.FooterHeight/2, s.palette.MutedText)
}

func (s *DeckHUDRenderSystem) drawCentered(screen *ebiten.Image, str string, face text.Face, cx, cy float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}
