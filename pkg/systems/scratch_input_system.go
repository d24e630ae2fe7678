package systems

import (
	"github.com/gonewx/scratchcards/pkg/components"
	"github.com/gonewx/scratchcards/pkg/ecs"
	"github.com/gonewx/scratchcards/pkg/progress"
	"github.com/gonewx/scratchcards/pkg/utils"
)

// ScratchInputSystem 把指针事件路由到刮刮卡覆盖层
//
// 指针按下 -> BeginStroke，拖动 -> ContinueStroke，释放或离开卡片 -> EndStroke。
// 屏幕坐标经 Viewport 换算到位图坐标（两轴独立缩放）。
// 已揭晓的卡片不再接收输入：覆盖层已经不显示了。
type ScratchInputSystem struct {
	entityManager *ecs.EntityManager
	pointer       PointerSource
	deck          *progress.DeckState

	hovering bool
}

// NewScratchInputSystem 创建刮刮卡输入系统
func NewScratchInputSystem(em *ecs.EntityManager, pointer PointerSource, deck *progress.DeckState) *ScratchInputSystem {
	return &ScratchInputSystem{
		entityManager: em,
		pointer:       pointer,
		deck:          deck,
	}
}

// Update 处理本帧的指针状态
func (s *ScratchInputSystem) Update(deltaTime float64) {
	p := s.pointer.Pointer()
	x, y := float64(p.X), float64(p.Y)
	s.hovering = false

	for _, entityID := range ecs.GetEntitiesWith1[*components.ScratchCardComponent](s.entityManager) {
		card, _ := ecs.GetComponent[*components.ScratchCardComponent](s.entityManager, entityID)

		if s.isRevealed(card) {
			s.endStroke(card)
			continue
		}

		inside := card.Viewport.Contains(x, y)
		if inside && !card.Surface.Degraded() {
			s.hovering = true
		}

		switch p.Phase {
		case utils.PointerDown:
			if inside {
				card.LastPoint = card.Viewport.ToBitmap(x, y)
				card.Surface.BeginStroke(card.LastPoint)
				card.Scratching = card.Surface.Stroking()
			}

		case utils.PointerDragging:
			if !card.Scratching {
				continue
			}
			if !inside {
				// 离开卡片即结束笔画，重新进入不会自动继续
				s.endStroke(card)
				continue
			}
			// 指针按住不动时不重复擦除
			pt := card.Viewport.ToBitmap(x, y)
			if pt == card.LastPoint {
				continue
			}
			card.LastPoint = pt
			card.Surface.ContinueStroke(pt)

		default:
			s.endStroke(card)
		}
	}
}

// HoveringCard 指针是否悬停在可擦除的卡片上（用于设置光标形状）
func (s *ScratchInputSystem) HoveringCard() bool {
	return s.hovering
}

func (s *ScratchInputSystem) isRevealed(card *components.ScratchCardComponent) bool {
	state, ok := s.deck.Get(card.Card.ID)
	return !ok || state.Revealed
}

func (s *ScratchInputSystem) endStroke(card *components.ScratchCardComponent) {
	if !card.Scratching {
		return
	}
	card.Surface.EndStroke()
	card.Scratching = false
}
