package config

import (
	"fmt"
	"image/color"
)

// Theme 界面主题
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme 解析主题名
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q (want %q or %q)", s, ThemeLight, ThemeDark)
}

// Toggle 返回另一个主题
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Palette 一套界面配色
// 渲染系统显式持有 Palette，切换主题时由场景整体替换
type Palette struct {
	Background   color.RGBA
	Title        color.RGBA
	Text         color.RGBA
	MutedText    color.RGBA
	CardBar      color.RGBA
	ProgressBack color.RGBA
	ProgressFill color.RGBA
	Button       color.RGBA
	ButtonHover  color.RGBA
	ButtonText   color.RGBA
	Banner       color.RGBA
	// Categories 揭晓内容底色
	Categories map[CardCategory]color.RGBA
}

// PaletteFor 返回主题对应的配色
func PaletteFor(t Theme) Palette {
	if t == ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// CategoryColor 返回分类底色，未知分类使用 compliment 的颜色
func (p Palette) CategoryColor(c CardCategory) color.RGBA {
	if col, ok := p.Categories[c]; ok {
		return col
	}
	return p.Categories[CategoryCompliment]
}

var lightPalette = Palette{
	Background:   color.RGBA{0xFD, 0xF8, 0xF5, 0xFF},
	Title:        color.RGBA{0x8A, 0x6B, 0x52, 0xFF},
	Text:         color.RGBA{0x8A, 0x6B, 0x52, 0xFF},
	MutedText:    color.RGBA{0xA6, 0x93, 0x81, 0xFF},
	CardBar:      color.RGBA{0xE4, 0xD7, 0xCF, 0xFF},
	ProgressBack: color.RGBA{0xD1, 0xC1, 0xB5, 0xFF},
	ProgressFill: color.RGBA{0xF8, 0x5C, 0x86, 0xFF},
	Button:       color.RGBA{0xF6, 0xEE, 0xE9, 0xFF},
	ButtonHover:  color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	ButtonText:   color.RGBA{0x8A, 0x6B, 0x52, 0xFF},
	Banner:       color.RGBA{0xFF, 0xBC, 0xCD, 0xFF},
	Categories: map[CardCategory]color.RGBA{
		CategoryCompliment: {0xFF, 0xBC, 0xCD, 0xFF},
		CategoryMemory:     {0xC8, 0xD4, 0xC9, 0xFF},
		CategoryPromise:    {0xE4, 0xD7, 0xCF, 0xFF},
		CategoryPlayful:    {0xFF, 0xF5, 0xF7, 0xFF},
	},
}

var darkPalette = Palette{
	Background:   color.RGBA{0x1F, 0x1A, 0x1D, 0xFF},
	Title:        color.RGBA{0xFF, 0xBC, 0xCD, 0xFF},
	Text:         color.RGBA{0xE4, 0xD7, 0xCF, 0xFF},
	MutedText:    color.RGBA{0xBB, 0xAB, 0x9B, 0xFF},
	CardBar:      color.RGBA{0x3A, 0x30, 0x2C, 0xFF},
	ProgressBack: color.RGBA{0x55, 0x48, 0x40, 0xFF},
	ProgressFill: color.RGBA{0xFC, 0x80, 0x9F, 0xFF},
	Button:       color.RGBA{0x4A, 0x3E, 0x37, 0xFF},
	ButtonHover:  color.RGBA{0x6E, 0x5E, 0x54, 0xFF},
	ButtonText:   color.RGBA{0xFD, 0xF8, 0xF5, 0xFF},
	Banner:       color.RGBA{0x8A, 0x3A, 0x52, 0xFF},
	Categories: map[CardCategory]color.RGBA{
		CategoryCompliment: {0x5A, 0x32, 0x3E, 0xFF},
		CategoryMemory:     {0x3A, 0x4A, 0x3B, 0xFF},
		CategoryPromise:    {0x4A, 0x3E, 0x36, 0xFF},
		CategoryPlayful:    {0x4E, 0x3A, 0x48, 0xFF},
	},
}
