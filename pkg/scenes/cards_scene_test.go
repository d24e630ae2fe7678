package scenes

import (
	"errors"
	"testing"

	"github.com/gonewx/scratchcards/pkg/components"
	"github.com/gonewx/scratchcards/pkg/config"
	"github.com/gonewx/scratchcards/pkg/ecs"
	"github.com/gonewx/scratchcards/pkg/game"
	"github.com/gonewx/scratchcards/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// scriptedPointer 每次 Update 取出下一帧的指针状态
type scriptedPointer struct {
	frames []utils.PointerState
	state  utils.PointerState
}

func (p *scriptedPointer) Update() {
	if len(p.frames) == 0 {
		p.state = utils.PointerState{Phase: utils.PointerIdle, X: p.state.X, Y: p.state.Y}
		return
	}
	p.state, p.frames = p.frames[0], p.frames[1:]
}

func (p *scriptedPointer) Pointer() utils.PointerState { return p.state }

func (p *scriptedPointer) click(x, y float64) {
	p.frames = append(p.frames,
		utils.PointerState{Phase: utils.PointerDown, X: int(x), Y: int(y)},
		utils.PointerState{Phase: utils.PointerUp, X: int(x), Y: int(y)},
	)
}

func testDeck() *config.CardDeckConfig {
	return &config.CardDeckConfig{Cards: []config.CardConfig{
		{ID: 1, Title: "Voice", HiddenMessage: "My favourite sound", Category: config.CategoryCompliment},
		{ID: 2, Title: "Nickname", HiddenMessage: "Potato", Category: config.CategoryPlayful},
		{ID: 3, Title: "Promise", HiddenMessage: "The last slice", Category: config.CategoryPromise},
	}}
}

func newTestScene(t *testing.T) (*CardsScene, *scriptedPointer) {
	t.Helper()
	pointer := &scriptedPointer{}
	scene, err := NewCardsScene(CardsSceneConfig{
		Deck:        testDeck(),
		Settings:    game.NewSettingsManager(nil),
		Pointer:     pointer,
		SparkleSeed: 1,
	})
	if err != nil {
		t.Fatalf("NewCardsScene: %v", err)
	}
	scene.setCursor = func(ebiten.CursorShapeType) {}
	return scene, pointer
}

// run 推进场景直到脚本帧全部消费
func run(scene *CardsScene, pointer *scriptedPointer) {
	for len(pointer.frames) > 0 {
		scene.Update(1.0 / 60)
	}
}

func center(r config.Rect) (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

func TestNewCardsSceneEmptyDeck(t *testing.T) {
	_, err := NewCardsScene(CardsSceneConfig{Deck: &config.CardDeckConfig{}})
	if !errors.Is(err, config.ErrEmptyDeck) {
		t.Errorf("expected ErrEmptyDeck, got %v", err)
	}
}

func TestCardsSceneInitialState(t *testing.T) {
	scene, _ := newTestScene(t)

	if scene.Deck().Len() != 3 || scene.Deck().RevealedCount() != 0 {
		t.Fatalf("deck: %d cards, %d revealed", scene.Deck().Len(), scene.Deck().RevealedCount())
	}
	if !scene.resetAll.Hidden {
		t.Error("Reset all should be hidden while nothing is revealed")
	}
	for id, entry := range scene.cards {
		if entry.button.Text != labelReveal {
			t.Errorf("card %d button: got %q", id, entry.button.Text)
		}
	}
	if scene.themeButton.Text != labelDarkMode {
		t.Errorf("theme button: got %q", scene.themeButton.Text)
	}

	w, h := scene.ScreenSize()
	if w <= 0 || h <= 0 {
		t.Errorf("ScreenSize: %dx%d", w, h)
	}
	scene.Draw(ebiten.NewImage(w, h))
}

// TestCardsSceneRevealButton 点击 Reveal 揭晓卡片，再点 Scratch again 恢复
func TestCardsSceneRevealButton(t *testing.T) {
	scene, pointer := newTestScene(t)

	pointer.click(center(scene.layout.CardButtonRect(1)))
	run(scene, pointer)

	state, _ := scene.Deck().Get(2)
	if !state.Revealed || state.Scratched != 100 {
		t.Fatalf("card 2 after Reveal: %+v", state)
	}
	if scene.cards[2].button.Text != labelScratchAgain {
		t.Errorf("button text: got %q", scene.cards[2].button.Text)
	}
	if scene.resetAll.Hidden {
		t.Error("Reset all should appear once a card is revealed")
	}
	if n := len(ecs.GetEntitiesWith1[*components.SparkleComponent](scene.entityManager)); n != 1 {
		t.Errorf("sparkle effects: got %d, want 1", n)
	}

	pointer.click(center(scene.layout.CardButtonRect(1)))
	run(scene, pointer)

	state, _ = scene.Deck().Get(2)
	if state.Revealed || state.Scratched != 0 {
		t.Errorf("card 2 after Scratch again: %+v", state)
	}
	if scene.cards[2].card.Surface.Percent() != 0 {
		t.Error("surface should be re-covered")
	}
	if !scene.resetAll.Hidden {
		t.Error("Reset all should hide again")
	}
}

// TestCardsSceneScratch 在卡片上拖动，进度同步到 DeckState
func TestCardsSceneScratch(t *testing.T) {
	scene, pointer := newTestScene(t)
	rect := scene.layout.CardRect(0)

	pointer.frames = append(pointer.frames, utils.PointerState{Phase: utils.PointerDown, X: int(rect.X + 30), Y: int(rect.Y + 100)})
	for x := rect.X + 40; x < rect.X+rect.W-30; x += 10 {
		pointer.frames = append(pointer.frames, utils.PointerState{Phase: utils.PointerDragging, X: int(x), Y: int(rect.Y + 100)})
	}
	pointer.frames = append(pointer.frames, utils.PointerState{Phase: utils.PointerUp, X: int(rect.X + 250), Y: int(rect.Y + 100)})
	run(scene, pointer)

	state, _ := scene.Deck().Get(1)
	surface := scene.cards[1].card.Surface
	if state.Scratched == 0 || state.Scratched != surface.Percent() {
		t.Errorf("deck progress %d, surface %d", state.Scratched, surface.Percent())
	}
	if state.Revealed {
		t.Error("one horizontal stroke should stay below the reveal threshold")
	}
	if other, _ := scene.Deck().Get(2); other.Scratched != 0 {
		t.Error("other cards must be untouched")
	}
}

func TestCardsSceneResetAll(t *testing.T) {
	scene, pointer := newTestScene(t)
	if err := scene.RevealCard(1); err != nil {
		t.Fatal(err)
	}
	if err := scene.RevealCard(3); err != nil {
		t.Fatal(err)
	}

	pointer.click(center(scene.layout.ResetAllButtonRect()))
	run(scene, pointer)

	if scene.Deck().RevealedCount() != 0 {
		t.Errorf("revealed after reset all: %d", scene.Deck().RevealedCount())
	}
	for id, entry := range scene.cards {
		if entry.card.Surface.Revealed() || entry.card.Surface.Percent() != 0 {
			t.Errorf("card %d surface not reset", id)
		}
	}
	if n := len(ecs.GetEntitiesWith1[*components.SparkleComponent](scene.entityManager)); n != 0 {
		t.Errorf("reset all should clear sparkles, %d left", n)
	}
}

func TestCardsSceneUnknownCard(t *testing.T) {
	scene, _ := newTestScene(t)
	if err := scene.RevealCard(99); !errors.Is(err, config.ErrUnknownCard) {
		t.Errorf("RevealCard: %v", err)
	}
	if err := scene.ResetCard(99); !errors.Is(err, config.ErrUnknownCard) {
		t.Errorf("ResetCard: %v", err)
	}
}

func TestCardsSceneToggleTheme(t *testing.T) {
	scene, pointer := newTestScene(t)

	pointer.click(center(scene.layout.ThemeButtonRect()))
	run(scene, pointer)

	if scene.settings.GetSettings().Theme != config.ThemeDark {
		t.Errorf("theme: got %s", scene.settings.GetSettings().Theme)
	}
	if scene.themeButton.Text != labelLightMode {
		t.Errorf("theme button: got %q", scene.themeButton.Text)
	}
	if !scene.SaveOnExit() {
		t.Error("SaveOnExit should succeed without storage")
	}
}

func TestCardsSceneCursor(t *testing.T) {
	scene, pointer := newTestScene(t)
	var shapes []ebiten.CursorShapeType
	scene.setCursor = func(s ebiten.CursorShapeType) { shapes = append(shapes, s) }

	x, y := center(scene.layout.CardRect(0))
	pointer.frames = append(pointer.frames, utils.PointerState{Phase: utils.PointerIdle, X: int(x), Y: int(y)})
	bx, by := center(scene.layout.CardButtonRect(0))
	pointer.frames = append(pointer.frames, utils.PointerState{Phase: utils.PointerIdle, X: int(bx), Y: int(by)})
	pointer.frames = append(pointer.frames, utils.PointerState{Phase: utils.PointerIdle, X: 1, Y: 1})
	run(scene, pointer)

	want := []ebiten.CursorShapeType{ebiten.CursorShapeCrosshair, ebiten.CursorShapePointer, ebiten.CursorShapeDefault}
	if len(shapes) != len(want) {
		t.Fatalf("cursor changes: got %v, want %v", shapes, want)
	}
	for i := range want {
		if shapes[i] != want[i] {
			t.Errorf("change %d: got %v, want %v", i, shapes[i], want[i])
		}
	}
}
