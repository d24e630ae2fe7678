package systems

import (
	"fmt"

	"github.com/gonewx/scratchcards/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Fonts 界面使用的几种字号
type Fonts struct {
	Title *text.GoTextFace
	Body  *text.GoTextFace
	Small *text.GoTextFace
}

// LoadFonts 加载界面字体
func LoadFonts() (Fonts, error) {
	title, err := utils.LoadFace(30)
	if err != nil {
		return Fonts{}, fmt.Errorf("title font: %w", err)
	}
	body, err := utils.LoadFace(14)
	if err != nil {
		return Fonts{}, fmt.Errorf("body font: %w", err)
	}
	small, err := utils.LoadFace(12)
	if err != nil {
		return Fonts{}, fmt.Errorf("small font: %w", err)
	}
	return Fonts{Title: title, Body: body, Small: small}, nil
}
