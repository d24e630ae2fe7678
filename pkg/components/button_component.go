package components

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ButtonStyle 按钮的配色风格
type ButtonStyle int

const (
	// ButtonStyleSoft 浅色按钮（卡片栏、主题切换）
	ButtonStyleSoft ButtonStyle = iota
	// ButtonStyleAccent 强调色按钮（Reset all）
	ButtonStyleAccent
)

// ButtonComponent 按钮组件（ECS 架构）
// 包含按钮的文字、尺寸、状态和点击回调
//
// 按钮纯色绘制，颜色由渲染系统根据当前主题配色和 Style 决定。
type ButtonComponent struct {
	// Text 按钮上显示的文字
	Text string
	// Font 文字字体
	Font *text.GoTextFace
	// Style 配色风格
	Style ButtonStyle

	// Width, Height 按钮尺寸（像素）
	Width  float64
	Height float64

	// State 当前交互状态（Normal/Hover/Clicked/Disabled）
	State UIState
	// Enabled 是否启用（禁用时不响应点击）
	Enabled bool
	// Hidden 隐藏的按钮既不绘制也不响应输入
	Hidden bool

	// OnClick 点击回调函数（在指针释放时触发）
	OnClick func()
}

// Contains 屏幕坐标是否落在位于 pos 的按钮内
func (b *ButtonComponent) Contains(pos *PositionComponent, x, y float64) bool {
	return x >= pos.X && x < pos.X+b.Width &&
		y >= pos.Y && y < pos.Y+b.Height
}
