package systems

import (
	"testing"

	"github.com/gonewx/scratchcards/pkg/components"
	"github.com/gonewx/scratchcards/pkg/config"
	"github.com/gonewx/scratchcards/pkg/ecs"
	"github.com/gonewx/scratchcards/pkg/progress"
	"github.com/gonewx/scratchcards/pkg/scratch"
	"github.com/gonewx/scratchcards/pkg/utils"
)

// fakePointer 脚本化的指针，测试中直接设置每帧状态
type fakePointer struct {
	state utils.PointerState
}

func (f *fakePointer) Pointer() utils.PointerState { return f.state }

func (f *fakePointer) set(phase utils.PointerPhase, x, y int) {
	f.state = utils.PointerState{Phase: phase, X: x, Y: y}
}

// newTestCard 创建一张 280x200 位图、在 (x, y) 以 w x h 显示的卡片实体
func newTestCard(t *testing.T, em *ecs.EntityManager, deck *progress.DeckState, id int, x, y, w, h float64) (*components.ScratchCardComponent, ecs.EntityID) {
	t.Helper()
	card := config.CardConfig{ID: id, Title: "Card", HiddenMessage: "hello there", Category: config.CategoryPlayful}
	surface := scratch.NewSurface(scratch.DefaultWidth, scratch.DefaultHeight, card.Title, scratch.Options{
		OnProgress: func(p int) { _ = deck.Scratch(id, p) },
		OnRevealed: func() { _ = deck.Reveal(id) },
	})
	comp := &components.ScratchCardComponent{
		Card:     card,
		Surface:  surface,
		Viewport: scratch.ViewportFor(surface, x, y, w, h),
	}
	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, comp)
	return comp, entity
}
