package entities

import (
	"github.com/gonewx/scratchcards/pkg/components"
	"github.com/gonewx/scratchcards/pkg/config"
	"github.com/gonewx/scratchcards/pkg/ecs"
	"github.com/gonewx/scratchcards/pkg/scratch"
)

// CardCallbacks 覆盖层事件回调，由父级（场景）提供
type CardCallbacks struct {
	OnProgress func(cardID, percent int)
	OnRevealed func(cardID int)
}

// NewScratchCard 创建刮刮卡实体
//
// 参数：
//   - em: 实体管理器
//   - card: 卡片内容
//   - index: 卡片在网格中的位置
//   - layout: 网格布局（决定显示区域）
//   - cfg: 位图尺寸、笔刷半径和揭晓阈值
//   - callbacks: 进度和揭晓回调
//
// 位图无法分配时 Surface 处于降级模式，实体照常创建，只能通过 Reveal 按钮揭晓。
func NewScratchCard(
	em *ecs.EntityManager,
	card config.CardConfig,
	index int,
	layout config.Layout,
	cfg *config.ScratchConfig,
	callbacks CardCallbacks,
) (ecs.EntityID, *components.ScratchCardComponent) {
	opts := cfg.SurfaceOptions()
	if callbacks.OnProgress != nil {
		opts.OnProgress = func(percent int) { callbacks.OnProgress(card.ID, percent) }
	}
	if callbacks.OnRevealed != nil {
		opts.OnRevealed = func() { callbacks.OnRevealed(card.ID) }
	}

	surface := scratch.NewSurface(cfg.CardWidth, cfg.CardHeight, card.Title, opts)
	rect := layout.CardRect(index)

	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.PositionComponent{X: rect.X, Y: rect.Y})

	comp := &components.ScratchCardComponent{
		Card:     card,
		Index:    index,
		Surface:  surface,
		Viewport: scratch.ViewportFor(surface, rect.X, rect.Y, rect.W, rect.H),
	}
	ecs.AddComponent(em, entity, comp)

	return entity, comp
}
