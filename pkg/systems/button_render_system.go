package systems

import (
	"image/color"

	"github.com/gonewx/scratchcards/pkg/components"
	"github.com/gonewx/scratchcards/pkg/config"
	"github.com/gonewx/scratchcards/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ButtonRenderSystem 按钮渲染系统
// 负责渲染所有可见的按钮实体
//
// 职责：
//   - 按主题配色和按钮风格渲染背景与边框
//   - 渲染按钮文字（自动居中）
//   - 根据按钮状态调整颜色（hover/pressed/disabled）
type ButtonRenderSystem struct {
	entityManager *ecs.EntityManager
	palette       config.Palette
}

// NewButtonRenderSystem 创建按钮渲染系统
func NewButtonRenderSystem(em *ecs.EntityManager, palette config.Palette) *ButtonRenderSystem {
	return &ButtonRenderSystem{
		entityManager: em,
		palette:       palette,
	}
}

// SetPalette 切换主题时更新配色
func (s *ButtonRenderSystem) SetPalette(palette config.Palette) {
	s.palette = palette
}

// Draw 渲染所有按钮
func (s *ButtonRenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		s.DrawButton(screen, entityID)
	}
}

// DrawButton 渲染单个按钮实体
func (s *ButtonRenderSystem) DrawButton(screen *ebiten.Image, entityID ecs.EntityID) {
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
	if !ok || button.Hidden {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
	if !ok {
		return
	}

	bg, fg := s.buttonColors(button)
	x, y := float32(pos.X), float32(pos.Y)
	w, h := float32(button.Width), float32(button.Height)

	vector.DrawFilledRect(screen, x, y, w, h, bg, true)
	vector.StrokeRect(screen, x, y, w, h, 1, fg, true)

	s.drawButtonText(screen, button, pos.X, pos.Y, fg)
}

// buttonColors 返回按钮的背景色和文字色
func (s *ButtonRenderSystem) buttonColors(button *components.ButtonComponent) (bg, fg color.RGBA) {
	bg, fg = s.palette.Button, s.palette.ButtonText
	if button.Style == components.ButtonStyleAccent {
		bg, fg = s.palette.ProgressFill, s.palette.Background
	}

	switch button.State {
	case components.UIHovered:
		if button.Style == components.ButtonStyleAccent {
			bg = shade(bg, 1.1)
		} else {
			bg = s.palette.ButtonHover
		}
	case components.UIClicked:
		bg = shade(bg, 0.85)
	case components.UIDisabled:
		bg = s.palette.ProgressBack
		fg = s.palette.MutedText
	}
	return bg, fg
}

// drawButtonText 渲染按钮文字（水平垂直居中）
func (s *ButtonRenderSystem) drawButtonText(screen *ebiten.Image, button *components.ButtonComponent, x, y float64, clr color.RGBA) {
	if button.Text == "" || button.Font == nil {
		return
	}

	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(x+button.Width/2, y+button.Height/2)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, button.Text, button.Font, op)
}

// shade 按比例调整颜色亮度，alpha 不变
func shade(c color.RGBA, factor float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(min(float64(v)*factor, 255))
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
