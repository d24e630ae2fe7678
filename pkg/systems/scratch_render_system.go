package systems

import (
	"fmt"
	"image/color"

	"github.com/gonewx/scratchcards/pkg/components"
	"github.com/gonewx/scratchcards/pkg/config"
	"github.com/gonewx/scratchcards/pkg/ecs"
	"github.com/gonewx/scratchcards/pkg/progress"
	"github.com/gonewx/scratchcards/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// cardPadding 揭晓内容的内边距
	cardPadding = 16.0
	// messageLineHeight 隐藏文字的行高
	messageLineHeight = 19.0
)

// ScratchRenderSystem 刮刮卡渲染系统
//
// 每张卡片分三层绘制：
//   - 揭晓内容（分类底色、标题、隐藏文字）
//   - 覆盖层纹理（未揭晓时），位图变化后才重新上传
//   - 下方的卡片栏（进度条和百分比，或揭晓提示）
type ScratchRenderSystem struct {
	entityManager *ecs.EntityManager
	deck          *progress.DeckState
	fonts         Fonts
	palette       config.Palette

	// ShowPercent 卡片栏是否显示百分比数字
	ShowPercent bool

	// wrapped 按卡片 ID 缓存的换行结果
	wrapped map[int]wrappedCard
}

// NewScratchRenderSystem 创建刮刮卡渲染系统
func NewScratchRenderSystem(em *ecs.EntityManager, deck *progress.DeckState, fonts Fonts, palette config.Palette) *ScratchRenderSystem {
	return &ScratchRenderSystem{
		entityManager: em,
		deck:          deck,
		fonts:         fonts,
		palette:       palette,
		ShowPercent:   true,
		wrapped:       make(map[int]wrappedCard),
	}
}

// SetPalette 切换主题时更新配色
func (s *ScratchRenderSystem) SetPalette(palette config.Palette) {
	s.palette = palette
}

// Draw 渲染所有卡片
func (s *ScratchRenderSystem) Draw(screen *ebiten.Image) {
	for _, entityID := range ecs.GetEntitiesWith1[*components.ScratchCardComponent](s.entityManager) {
		card, _ := ecs.GetComponent[*components.ScratchCardComponent](s.entityManager, entityID)
		state, _ := s.deck.Get(card.Card.ID)

		s.drawContent(screen, card)
		if !state.Revealed {
			s.drawOverlay(screen, card)
		}
		s.drawCardBar(screen, card, state)

		vp := card.Viewport
		vector.StrokeRect(screen, float32(vp.X), float32(vp.Y), float32(vp.Width),
			float32(vp.Height+config.CardBarHeight), 1, s.palette.ProgressBack, true)
	}
}

// drawContent 绘制揭晓后的内容层
func (s *ScratchRenderSystem) drawContent(screen *ebiten.Image, card *components.ScratchCardComponent) {
	vp := card.Viewport
	vector.DrawFilledRect(screen, float32(vp.X), float32(vp.Y), float32(vp.Width), float32(vp.Height),
		s.palette.CategoryColor(card.Card.Category), true)

	maxWidth := vp.Width - 2*cardPadding
	y := vp.Y + cardPadding

	lines := s.wrap(card, maxWidth)
	for _, line := range lines.title {
		s.drawText(screen, line, s.fonts.Body, vp.X+cardPadding, y, s.palette.Title)
		y += messageLineHeight
	}
	y += 6

	for _, line := range lines.message {
		if y+messageLineHeight > vp.Y+vp.Height-cardPadding/2 {
			break
		}
		s.drawText(screen, line, s.fonts.Small, vp.X+cardPadding, y, s.palette.Text)
		y += messageLineHeight
	}
}

type wrappedCard struct {
	width   float64
	title   []string
	message []string
}

func (s *ScratchRenderSystem) wrap(card *components.ScratchCardComponent, maxWidth float64) wrappedCard {
	if w, ok := s.wrapped[card.Card.ID]; ok && w.width == maxWidth {
		return w
	}
	w := wrappedCard{
		width:   maxWidth,
		title:   utils.WrapText(card.Card.Title, s.fonts.Body, maxWidth),
		message: utils.WrapText(card.Card.HiddenMessage, s.fonts.Small, maxWidth),
	}
	s.wrapped[card.Card.ID] = w
	return w
}

// drawOverlay 绘制覆盖层
// 降级模式下没有位图，只画一块纯色覆盖层，仍可通过 Reveal 按钮揭晓
func (s *ScratchRenderSystem) drawOverlay(screen *ebiten.Image, card *components.ScratchCardComponent) {
	vp := card.Viewport
	bitmap := card.Surface.Bitmap()
	if bitmap == nil {
		vector.DrawFilledRect(screen, float32(vp.X), float32(vp.Y), float32(vp.Width), float32(vp.Height),
			s.palette.ProgressBack, true)
		s.drawCenteredText(screen, card.Surface.Label(), s.fonts.Body, vp.X+vp.Width/2, vp.Y+vp.Height/2, s.palette.Text)
		return
	}

	if card.NeedsUpload() {
		b := bitmap.Bounds()
		if card.Overlay == nil || card.Overlay.Bounds().Size() != b.Size() {
			if card.Overlay != nil {
				card.Overlay.Deallocate()
			}
			card.Overlay = ebiten.NewImage(b.Dx(), b.Dy())
		}
		// image.RGBA 是预乘 alpha，与 WritePixels 的格式一致
		card.Overlay.WritePixels(bitmap.Pix)
		card.UploadedVersion = card.Surface.Version()
	}

	sx, sy := vp.Scale()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1/sx, 1/sy)
	op.GeoM.Translate(vp.X, vp.Y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(card.Overlay, op)
}

// drawCardBar 绘制卡片下方的进度栏
// 右侧按钮（Reveal / Scratch again）由 ButtonRenderSystem 绘制
func (s *ScratchRenderSystem) drawCardBar(screen *ebiten.Image, card *components.ScratchCardComponent, state progress.CardState) {
	vp := card.Viewport
	bar := config.Rect{X: vp.X, Y: vp.Y + vp.Height, W: vp.Width, H: config.CardBarHeight}

	vector.DrawFilledRect(screen, float32(bar.X), float32(bar.Y), float32(bar.W), float32(bar.H), s.palette.CardBar, true)

	midY := bar.Y + bar.H/2
	if state.Revealed {
		s.drawText(screen, "Revealed", s.fonts.Small, bar.X+10, midY-7, s.palette.MutedText)
		return
	}

	// 进度条
	px, py := float32(bar.X+10), float32(midY-2)
	vector.DrawFilledRect(screen, px, py, config.ProgressBarWidth, 4, s.palette.ProgressBack, true)
	if state.Scratched > 0 {
		fill := float32(config.ProgressBarWidth) * float32(state.Scratched) / 100
		vector.DrawFilledRect(screen, px, py, fill, 4, s.palette.ProgressFill, true)
	}

	if s.ShowPercent {
		s.drawText(screen, fmt.Sprintf("%d%%", state.Scratched), s.fonts.Small,
			bar.X+18+config.ProgressBarWidth, midY-7, s.palette.MutedText)
	}
}

func (s *ScratchRenderSystem) drawText(screen *ebiten.Image, str string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

func (s *ScratchRenderSystem) drawCenteredText(screen *ebiten.Image, str string, face text.Face, cx, cy float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}
