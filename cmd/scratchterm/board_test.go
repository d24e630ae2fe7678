package main

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/scratchcards/pkg/config"
)

// gridScreen 记录 SetContent 的字符网格
type gridScreen struct {
	width, height int
	cells         [][]rune
	styles        [][]tcell.Style
}

func newGridScreen(width, height int) *gridScreen {
	g := &gridScreen{width: width, height: height}
	g.cells = make([][]rune, height)
	g.styles = make([][]tcell.Style, height)
	for y := range g.cells {
		g.cells[y] = make([]rune, width)
		g.styles[y] = make([]tcell.Style, width)
	}
	return g
}

func (g *gridScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.cells[y][x] = mainc
	g.styles[y][x] = style
}

func (g *gridScreen) row(y int) string {
	return string(g.cells[y])
}

func (g *gridScreen) contains(s string) bool {
	for y := range g.cells {
		if strings.Contains(g.row(y), s) {
			return true
		}
	}
	return false
}

func testBoard(t *testing.T) *board {
	t.Helper()
	deck := &config.CardDeckConfig{Cards: []config.CardConfig{
		{ID: 1, Title: "Voice", HiddenMessage: "My favourite sound", Emoji: "♪", Category: config.CategoryCompliment},
		{ID: 2, Title: "Nickname", HiddenMessage: "Potato", Category: config.CategoryPlayful},
	}}
	b, err := newBoard(deck, config.DefaultScratchConfig(), config.PaletteFor(config.ThemeLight))
	if err != nil {
		t.Fatalf("newBoard: %v", err)
	}
	// 卡片区域 80x20 个字符格 = 80x40 显示像素，位图 280x200
	b.resize(84, 24)
	return b
}

func mouse(x, y int, buttons tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, buttons, tcell.ModNone)
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestNewBoardEmptyDeck(t *testing.T) {
	_, err := newBoard(&config.CardDeckConfig{}, config.DefaultScratchConfig(), config.PaletteFor(config.ThemeLight))
	if !errors.Is(err, config.ErrEmptyDeck) {
		t.Errorf("expected ErrEmptyDeck, got %v", err)
	}
}

// TestCellToBitmap 字符格坐标按两轴独立比例换算到位图
func TestCellToBitmap(t *testing.T) {
	b := testBoard(t)

	vp := b.viewport
	if vp.X != 2 || vp.Y != 4 || vp.Width != 80 || vp.Height != 40 {
		t.Fatalf("viewport: %+v", vp)
	}

	px, py := cellPoint(42, 12)
	p := vp.ToBitmap(px, py)
	// x: (42.5-2)*280/80, y: (25-4)*200/40
	if p.X != 141.75 || p.Y != 105 {
		t.Errorf("ToBitmap: got (%v, %v), want (141.75, 105)", p.X, p.Y)
	}
}

func TestMouseScratch(t *testing.T) {
	b := testBoard(t)

	b.handleEvent(mouse(42, 12, tcell.Button1))
	if !b.dragging {
		t.Fatal("press inside the card should start a stroke")
	}
	if a := b.surface().Bitmap().RGBAAt(141, 105).A; a != 0 {
		t.Errorf("pixel under the pointer should be erased, alpha=%d", a)
	}

	for x := 43; x < 60; x++ {
		b.handleEvent(mouse(x, 12, tcell.Button1))
	}
	b.handleEvent(mouse(60, 12, tcell.ButtonNone))
	if b.dragging {
		t.Error("release should end the stroke")
	}

	state, _ := b.deck.Get(1)
	if state.Scratched == 0 || state.Scratched != b.surface().Percent() {
		t.Errorf("deck progress %d, surface %d", state.Scratched, b.surface().Percent())
	}
}

// TestMouseRepeatedCell 同一字符格的重复拖动事件不会重复擦除
func TestMouseRepeatedCell(t *testing.T) {
	b := testBoard(t)

	b.handleEvent(mouse(42, 12, tcell.Button1))
	b.handleEvent(mouse(44, 12, tcell.Button1))
	version := b.surface().Version()
	for i := 0; i < 10; i++ {
		b.handleEvent(mouse(44, 12, tcell.Button1))
	}
	if b.surface().Version() != version {
		t.Error("repeated events on one cell should not erase again")
	}
	b.handleEvent(mouse(46, 12, tcell.Button1))
	if b.surface().Version() == version {
		t.Error("moving to another cell should continue the stroke")
	}
}

// TestMouseLeaveEndsStroke 移出卡片结束笔画，按住不放再移回来不会继续
func TestMouseLeaveEndsStroke(t *testing.T) {
	b := testBoard(t)

	b.handleEvent(mouse(10, 10, tcell.Button1))
	b.handleEvent(mouse(0, 10, tcell.Button1))
	if b.dragging {
		t.Fatal("leaving the card should end the stroke")
	}

	before := b.surface().Percent()
	for x := 10; x < 70; x += 2 {
		b.handleEvent(mouse(x, 18, tcell.Button1))
	}
	if b.dragging || b.surface().Percent() != before {
		t.Error("re-entering while still pressed must not resume scratching")
	}

	b.handleEvent(mouse(0, 0, tcell.ButtonNone))
	b.handleEvent(mouse(40, 18, tcell.Button1))
	if !b.dragging {
		t.Error("a fresh press should start a new stroke")
	}
}

func TestKeys(t *testing.T) {
	b := testBoard(t)

	t.Run("r 揭晓当前卡片", func(t *testing.T) {
		b.handleEvent(key('r'))
		state, _ := b.deck.Get(1)
		if !state.Revealed || state.Scratched != 100 {
			t.Errorf("state after r: %+v", state)
		}
		// 揭晓后不再接收笔画
		b.handleEvent(mouse(42, 12, tcell.Button1))
		if b.dragging {
			t.Error("revealed card should ignore the mouse")
		}
		b.handleEvent(mouse(42, 12, tcell.ButtonNone))
	})

	t.Run("x 重置当前卡片", func(t *testing.T) {
		b.handleEvent(key('x'))
		state, _ := b.deck.Get(1)
		if state.Revealed || state.Scratched != 0 || b.surface().Revealed() {
			t.Errorf("state after x: %+v", state)
		}
	})

	t.Run("Tab 循环切换卡片", func(t *testing.T) {
		b.handleEvent(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
		if b.current != 1 {
			t.Errorf("current: got %d, want 1", b.current)
		}
		b.handleEvent(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
		if b.current != 0 {
			t.Errorf("current: got %d, want 0", b.current)
		}
		b.handleEvent(key('p'))
		if b.current != 1 {
			t.Errorf("current: got %d, want 1", b.current)
		}
	})

	t.Run("X 重置所有卡片", func(t *testing.T) {
		b.handleEvent(key('r'))
		b.handleEvent(key('n'))
		b.handleEvent(key('r'))
		if !b.deck.AllRevealed() {
			t.Fatal("both cards should be revealed")
		}
		b.handleEvent(key('X'))
		if b.deck.RevealedCount() != 0 {
			t.Errorf("revealed after X: %d", b.deck.RevealedCount())
		}
	})

	t.Run("q 和 Esc 退出", func(t *testing.T) {
		if !b.handleEvent(key('q')) {
			t.Error("q should quit")
		}
		if !b.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
			t.Error("Esc should quit")
		}
		if b.handleEvent(key('z')) {
			t.Error("unbound key should not quit")
		}
	})
}

func TestDraw(t *testing.T) {
	b := testBoard(t)
	scr := newGridScreen(84, 24)

	b.draw(scr)
	if !strings.Contains(scr.row(0), "0 / 2 revealed") {
		t.Errorf("header: %q", scr.row(0))
	}
	if !strings.Contains(scr.row(1), "Voice") {
		t.Errorf("card heading: %q", scr.row(1))
	}
	if scr.cells[12][42] != upperHalfBlock {
		t.Errorf("covered card should render half blocks, got %q", scr.cells[12][42])
	}
	if scr.contains("favourite") {
		t.Error("hidden message must not show while covered")
	}

	b.handleEvent(key('r'))
	b.draw(scr)
	if !scr.contains("My favourite sound") {
		t.Error("revealed card should show the hidden message")
	}
	if !scr.contains("♪") {
		t.Error("revealed card should show the emoji")
	}
	if !strings.Contains(scr.row(0), "1 / 2 revealed") {
		t.Errorf("header after reveal: %q", scr.row(0))
	}
	if !strings.Contains(scr.row(22), "Revealed") {
		t.Errorf("status line: %q", scr.row(22))
	}
}

func TestWrapWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  []string
	}{
		{name: "单行", input: "hello world", width: 20, want: []string{"hello world"}},
		{name: "按单词换行", input: "the quick brown fox", width: 10, want: []string{"the quick", "brown fox"}},
		{name: "超长单词截断", input: "abcdefghij", width: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "宽字符按显示宽度计算", input: "你好世界", width: 4, want: []string{"你好", "世界"}},
		{name: "宽度为零", input: "abc", width: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapWords(tt.input, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrapWords(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestMessageGridAt(t *testing.T) {
	m := messageGrid{lines: []string{"你a"}, top: 1}
	if m.at(0, 0) != ' ' {
		t.Error("rows above the text should be blank")
	}
	if m.at(0, 1) != '你' {
		t.Errorf("at(0,1) = %q", m.at(0, 1))
	}
	if m.at(1, 1) != ' ' {
		t.Error("second cell of a wide rune should be blank")
	}
	if m.at(2, 1) != 'a' {
		t.Errorf("at(2,1) = %q", m.at(2, 1))
	}
}

func TestComposite(t *testing.T) {
	under := color.RGBA{R: 200, G: 100, B: 50, A: 255}

	opaque := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	if composite(opaque, under) != opaque {
		t.Error("opaque cover should hide the content")
	}
	if composite(color.RGBA{}, under) != under {
		t.Error("erased pixel should show the content")
	}
	half := composite(color.RGBA{R: 50, G: 50, B: 50, A: 128}, under)
	if half.A != 255 || half.R <= 50 || half.R >= 200 {
		t.Errorf("partial alpha should blend, got %+v", half)
	}
}
