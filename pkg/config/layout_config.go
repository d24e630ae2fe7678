package config

// 布局配置
// 本文件定义卡片网格、顶部信息栏和按钮的位置，所有坐标为逻辑屏幕坐标
// （Ebitengine 的 Layout 尺寸，窗口缩放由引擎处理）

const (
	// ScreenMargin 网格四周的留白
	ScreenMargin = 40.0

	// HeaderHeight 顶部标题和揭晓进度区域高度
	HeaderHeight = 120.0

	// FooterHeight 底部说明文字区域高度
	FooterHeight = 48.0

	// CardBarHeight 卡片覆盖层下方进度条/按钮栏高度
	CardBarHeight = 30.0

	// CardButtonWidth 和 CardButtonHeight 卡片栏内按钮尺寸
	CardButtonWidth  = 76.0
	CardButtonHeight = 22.0

	// HeaderButtonWidth 和 HeaderButtonHeight 顶部按钮尺寸（Reset all、主题切换）
	HeaderButtonWidth  = 110.0
	HeaderButtonHeight = 28.0

	// ProgressBarWidth 卡片栏内进度条宽度
	ProgressBarWidth = 64.0
)

// Rect 轴对齐矩形
type Rect struct {
	X, Y, W, H float64
}

// Contains 点是否在矩形内
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Layout 根据卡片数量和刮刮卡参数计算的网格布局
type Layout struct {
	Columns   int
	Rows      int
	CardW     float64 // 覆盖层显示宽度
	CardH     float64 // 覆盖层显示高度
	Spacing   float64
	cardCount int
}

// NewLayout 计算布局
func NewLayout(cfg *ScratchConfig, cardCount int) Layout {
	cols := cfg.GridColumns
	if cardCount > 0 && cardCount < cols {
		cols = cardCount
	}
	if cols < 1 {
		cols = 1
	}
	rows := (cardCount + cols - 1) / cols
	w, h := cfg.DisplaySize()
	return Layout{
		Columns:   cols,
		Rows:      rows,
		CardW:     w,
		CardH:     h,
		Spacing:   cfg.CardSpacing,
		cardCount: cardCount,
	}
}

// cellHeight 单个卡片格子的高度（覆盖层 + 按钮栏）
func (l Layout) cellHeight() float64 {
	return l.CardH + CardBarHeight
}

// ScreenSize 返回逻辑屏幕尺寸
func (l Layout) ScreenSize() (width, height int) {
	cols, rows := float64(l.Columns), float64(l.Rows)
	w := 2*ScreenMargin + cols*l.CardW + max(cols-1, 0)*l.Spacing
	h := HeaderHeight + rows*l.cellHeight() + max(rows-1, 0)*l.Spacing + FooterHeight
	return int(w + 0.5), int(h + 0.5)
}

// CardRect 返回第 index 张卡片覆盖层的显示区域
func (l Layout) CardRect(index int) Rect {
	col := index % l.Columns
	row := index / l.Columns
	return Rect{
		X: ScreenMargin + float64(col)*(l.CardW+l.Spacing),
		Y: HeaderHeight + float64(row)*(l.cellHeight()+l.Spacing),
		W: l.CardW,
		H: l.CardH,
	}
}

// CardBarRect 返回第 index 张卡片下方按钮栏的区域
func (l Layout) CardBarRect(index int) Rect {
	card := l.CardRect(index)
	return Rect{X: card.X, Y: card.Y + card.H, W: card.W, H: CardBarHeight}
}

// CardButtonRect 返回第 index 张卡片按钮栏右侧按钮的区域
// "Reveal" 和 "Scratch again" 共用这个位置，按卡片状态切换
func (l Layout) CardButtonRect(index int) Rect {
	bar := l.CardBarRect(index)
	return Rect{
		X: bar.X + bar.W - CardButtonWidth - 6,
		Y: bar.Y + (bar.H-CardButtonHeight)/2,
		W: CardButtonWidth,
		H: CardButtonHeight,
	}
}

// ResetAllButtonRect 顶部 "Reset all" 按钮
func (l Layout) ResetAllButtonRect() Rect {
	w, _ := l.ScreenSize()
	return Rect{
		X: float64(w)/2 + 90,
		Y: 72,
		W: HeaderButtonWidth,
		H: HeaderButtonHeight,
	}
}

// ThemeButtonRect 右上角主题切换按钮
func (l Layout) ThemeButtonRect() Rect {
	w, _ := l.ScreenSize()
	return Rect{
		X: float64(w) - ScreenMargin - HeaderButtonWidth,
		Y: 16,
		W: HeaderButtonWidth,
		H: HeaderButtonHeight,
	}
}
