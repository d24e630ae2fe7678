package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/scratchcards/pkg/config"
	"github.com/gonewx/scratchcards/pkg/progress"
	"github.com/gonewx/scratchcards/pkg/scratch"
	"github.com/mattn/go-runewidth"
)

const (
	// headerRows 顶部标题和计数
	headerRows = 2
	// footerRows 底部状态栏和按键提示
	footerRows = 2
	// marginCols 卡片区域左右留白
	marginCols = 2

	upperHalfBlock = '▀'
)

const helpLine = "drag: scratch  r: reveal  x: reset  X: reset all  tab: next card  q: quit"

// cellWriter 绘制所需的最小屏幕接口，tcell.Screen 满足它
type cellWriter interface {
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

// board 终端刮刮卡：一次显示一张卡片，半块字符渲染覆盖层
//
// 每个字符格对应两个纵向的显示像素（上半格用前景色，下半格用背景色），
// 显示像素经 Viewport 按两轴独立比例换算到位图坐标。
type board struct {
	cards    []config.CardConfig
	surfaces []*scratch.Surface
	deck     *progress.DeckState
	palette  config.Palette

	current int
	// pressed 左键是否按住，dragging 是否有进行中的笔画
	pressed  bool
	dragging bool
	// last 本次笔画最近一次送入覆盖层的位图坐标
	last scratch.Point

	width, height int
	viewport      scratch.Viewport
}

// newBoard 为卡组中每张卡片创建覆盖层
func newBoard(deck *config.CardDeckConfig, cfg *config.ScratchConfig, palette config.Palette) (*board, error) {
	if deck == nil || len(deck.Cards) == 0 {
		return nil, config.ErrEmptyDeck
	}
	b := &board{
		cards:   deck.Cards,
		deck:    progress.NewDeckStateFromConfig(deck),
		palette: palette,
	}
	for _, card := range deck.Cards {
		id := card.ID
		opts := cfg.SurfaceOptions()
		opts.OnProgress = func(percent int) {
			if err := b.deck.Scratch(id, percent); err != nil {
				log.Printf("[scratchterm] %v", err)
			}
		}
		opts.OnRevealed = func() {
			if err := b.deck.Reveal(id); err != nil {
				log.Printf("[scratchterm] %v", err)
			}
		}
		b.surfaces = append(b.surfaces, scratch.NewSurface(cfg.CardWidth, cfg.CardHeight, card.Title, opts))
	}
	return b, nil
}

// resize 按终端尺寸重新计算卡片区域
func (b *board) resize(width, height int) {
	b.endStroke()
	b.width, b.height = width, height
	b.updateViewport()
}

// updateViewport 卡片区域的显示坐标：x 以字符格为单位，y 以半个字符格为单位
func (b *board) updateViewport() {
	w := max(b.width-2*marginCols, 1)
	h := max(b.height-headerRows-footerRows, 1)
	b.viewport = scratch.ViewportFor(b.surfaces[b.current], marginCols, headerRows*2, float64(w), float64(h*2))
}

func (b *board) surface() *scratch.Surface {
	return b.surfaces[b.current]
}

func (b *board) card() config.CardConfig {
	return b.cards[b.current]
}

// cellPoint 字符格中心在显示坐标中的位置
// 只有纵轴翻倍，横轴与字符格一致
func cellPoint(x, y int) (float64, float64) {
	return float64(x) + 0.5, float64(y)*2 + 1
}

// handleEvent 处理一个终端事件，返回是否退出
func (b *board) handleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		b.resize(ev.Size())
	case *tcell.EventKey:
		return b.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		b.handlePointer(x, y, ev.Buttons()&tcell.Button1 != 0)
	}
	return false
}

func (b *board) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyTab, tcell.KeyRight:
		b.selectCard(b.current + 1)
		return false
	case tcell.KeyBacktab, tcell.KeyLeft:
		b.selectCard(b.current - 1)
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'r':
		b.endStroke()
		b.surface().ForceReveal()
	case 'x':
		b.resetCurrent()
	case 'X':
		b.resetAll()
	case 'n':
		b.selectCard(b.current + 1)
	case 'p':
		b.selectCard(b.current - 1)
	}
	return false
}

// handlePointer 把鼠标按键状态转换为笔画
// 按住左键移出卡片区域即结束笔画，重新进入不会继续
func (b *board) handlePointer(x, y int, pressed bool) {
	wasPressed := b.pressed
	b.pressed = pressed
	if !pressed {
		b.endStroke()
		return
	}
	if state, _ := b.deck.Get(b.card().ID); state.Revealed {
		return
	}

	px, py := cellPoint(x, y)
	inside := b.viewport.Contains(px, py)
	switch {
	case !wasPressed && inside:
		b.last = b.viewport.ToBitmap(px, py)
		b.surface().BeginStroke(b.last)
		b.dragging = b.surface().Stroking()
	case b.dragging && inside:
		// 同一个字符格上的重复事件不再擦除
		if p := b.viewport.ToBitmap(px, py); p != b.last {
			b.last = p
			b.surface().ContinueStroke(p)
		}
	case b.dragging:
		b.endStroke()
	}
}

func (b *board) endStroke() {
	if !b.dragging {
		return
	}
	b.surface().EndStroke()
	b.dragging = false
}

func (b *board) selectCard(index int) {
	b.endStroke()
	n := len(b.cards)
	b.current = ((index % n) + n) % n
	b.updateViewport()
}

func (b *board) resetCurrent() {
	b.endStroke()
	b.surface().Reset()
	if err := b.deck.Reset(b.card().ID); err != nil {
		log.Printf("[scratchterm] %v", err)
	}
}

func (b *board) resetAll() {
	b.endStroke()
	for _, s := range b.surfaces {
		s.Reset()
	}
	b.deck.ResetAll()
}

// draw 绘制整个界面
func (b *board) draw(scr cellWriter) {
	base := tcell.StyleDefault.Background(toColor(b.palette.Background)).Foreground(toColor(b.palette.Text))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			scr.SetContent(x, y, ' ', nil, base)
		}
	}

	title := fmt.Sprintf("Hidden Surprises  %d / %d revealed", b.deck.RevealedCount(), b.deck.Len())
	if b.deck.AllRevealed() {
		title = "You found all the surprises!"
	}
	drawString(scr, marginCols, 0, b.width-2*marginCols, title, base.Foreground(toColor(b.palette.Title)).Bold(true))

	card := b.card()
	heading := fmt.Sprintf("[%d/%d] %s", b.current+1, len(b.cards), card.Title)
	drawString(scr, marginCols, 1, b.width-2*marginCols, heading, base.Foreground(toColor(b.palette.MutedText)))

	b.drawCard(scr)

	drawString(scr, marginCols, b.height-2, b.width-2*marginCols, b.status(), base)
	drawString(scr, marginCols, b.height-1, b.width-2*marginCols, helpLine, base.Foreground(toColor(b.palette.MutedText)))
}

// status 状态栏文字
func (b *board) status() string {
	card := b.card()
	state, _ := b.deck.Get(card.ID)
	if state.Revealed {
		return strings.TrimSpace(card.Emoji + " Revealed")
	}
	if b.surface().Degraded() {
		return "Scratching unavailable, press r to reveal"
	}
	return fmt.Sprintf("%s %d%% scratched", progressBar(state.Scratched, 10), state.Scratched)
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// drawCard 绘制卡片内容，未揭晓时叠加覆盖层
func (b *board) drawCard(scr cellWriter) {
	vp := b.viewport
	x0, y0 := int(vp.X), int(vp.Y)/2
	cols, rows := int(vp.Width), int(vp.Height)/2

	card := b.card()
	content := b.palette.CategoryColor(card.Category)
	textStyle := tcell.StyleDefault.Background(toColor(content)).Foreground(toColor(b.palette.Text))
	message := layoutMessage(card, cols-2, rows)

	state, _ := b.deck.Get(card.ID)
	bitmap := b.surface().Bitmap()
	covered := !state.Revealed

	if covered && bitmap == nil {
		// 降级模式：纯色覆盖层加标题
		fill := tcell.StyleDefault.Background(toColor(b.palette.ProgressBack)).Foreground(toColor(b.palette.Text))
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				scr.SetContent(x0+x, y0+y, ' ', nil, fill)
			}
		}
		drawString(scr, x0+1, y0+rows/2, cols-2, card.Title, fill)
		return
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			ch := message.at(x-1, y)
			if !covered {
				scr.SetContent(x0+x, y0+y, ch, nil, textStyle)
				continue
			}

			px, py := cellPoint(x0+x, y0+y)
			top := composite(sample(bitmap, vp.ToBitmap(px, py-0.5)), content)
			bottom := composite(sample(bitmap, vp.ToBitmap(px, py+0.5)), content)
			if top == content && bottom == content {
				// 两半都已擦开，显示下面的文字
				scr.SetContent(x0+x, y0+y, ch, nil, textStyle)
				continue
			}
			style := tcell.StyleDefault.Foreground(toColor(top)).Background(toColor(bottom))
			scr.SetContent(x0+x, y0+y, upperHalfBlock, nil, style)
		}
	}
}

// sample 取位图中距离 p 最近的像素，越界时取边缘
func sample(bitmap *image.RGBA, p scratch.Point) color.RGBA {
	b := bitmap.Bounds()
	x := min(max(int(p.X), b.Min.X), b.Max.X-1)
	y := min(max(int(p.Y), b.Min.Y), b.Max.Y-1)
	return bitmap.RGBAAt(x, y)
}

// composite 把预乘 alpha 的覆盖层像素叠加到不透明底色上
func composite(over, under color.RGBA) color.RGBA {
	if over.A == 0xff {
		return over
	}
	inv := 255 - uint32(over.A)
	blend := func(o, u uint8) uint8 {
		return uint8(uint32(o) + uint32(u)*inv/255)
	}
	return color.RGBA{R: blend(over.R, under.R), G: blend(over.G, under.G), B: blend(over.B, under.B), A: 0xff}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// drawString 在一行内绘制文字，按显示宽度截断
func drawString(scr cellWriter, x, y, maxWidth int, s string, style tcell.Style) {
	if maxWidth <= 0 {
		return
	}
	s = runewidth.Truncate(s, maxWidth, "…")
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		scr.SetContent(x, y, r, nil, style)
		x += w
	}
}

// messageGrid 卡片内容的字符布局
type messageGrid struct {
	lines []string
	top   int
}

// layoutMessage 把标题、emoji 和隐藏文字按宽度换行并垂直居中
func layoutMessage(card config.CardConfig, width, rows int) messageGrid {
	var lines []string
	if card.Emoji != "" {
		lines = append(lines, card.Emoji, "")
	}
	lines = append(lines, wrapWords(card.HiddenMessage, width)...)
	if len(lines) > rows {
		lines = lines[:rows]
	}
	return messageGrid{lines: lines, top: (rows - len(lines)) / 2}
}

// at 返回 (x, y) 处的字符，没有内容时为空格
// 宽字符只占第一个格子，后续格子返回空格
func (m messageGrid) at(x, y int) rune {
	i := y - m.top
	if i < 0 || i >= len(m.lines) || x < 0 {
		return ' '
	}
	col := 0
	for _, r := range m.lines[i] {
		if col == x {
			return r
		}
		col += runewidth.RuneWidth(r)
		if col > x {
			break
		}
	}
	return ' '
}

// wrapWords 按显示宽度断行，单词超长时强制截断
func wrapWords(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var line string
	for _, word := range strings.Fields(s) {
		for runewidth.StringWidth(word) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				// 单个字符就超过宽度
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			lines = append(lines, head)
			word = word[len(head):]
		}
		switch {
		case line == "":
			line = word
		case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
