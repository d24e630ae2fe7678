package components

import (
	"github.com/gonewx/scratchcards/pkg/config"
	"github.com/gonewx/scratchcards/pkg/scratch"
	"github.com/hajimehoshi/ebiten/v2"
)

// ScratchCardComponent 一张刮刮卡
//
// Surface 是覆盖层位图（擦除逻辑），Viewport 描述它在屏幕上的显示区域。
// 是否已揭晓以父级的 DeckState 为准，不保存在组件里。
type ScratchCardComponent struct {
	// Card 卡片内容（标题、隐藏文字、分类）
	Card config.CardConfig
	// Index 卡片在网格中的位置
	Index int

	Surface  *scratch.Surface
	Viewport scratch.Viewport

	// Overlay 覆盖层纹理，首次绘制时创建
	Overlay *ebiten.Image
	// UploadedVersion 最近一次上传到 Overlay 的 Surface.Version()
	UploadedVersion uint64

	// Scratching 当前是否有指针在这张卡上擦除
	Scratching bool
	// LastPoint 本次笔画最近一次送入 Surface 的位图坐标
	LastPoint scratch.Point
}

// NeedsUpload 覆盖层纹理是否落后于位图
func (c *ScratchCardComponent) NeedsUpload() bool {
	return c.Overlay == nil || c.UploadedVersion != c.Surface.Version()
}
