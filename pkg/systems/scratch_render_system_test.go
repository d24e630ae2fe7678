package systems

import (
	"testing"

	"github.com/gonewx/scratchcards/pkg/config"
	"github.com/gonewx/scratchcards/pkg/ecs"
	"github.com/gonewx/scratchcards/pkg/progress"
	"github.com/gonewx/scratchcards/pkg/scratch"
	"github.com/hajimehoshi/ebiten/v2"
)

func loadTestFonts(t *testing.T) Fonts {
	t.Helper()
	fonts, err := LoadFonts()
	if err != nil {
		t.Fatalf("LoadFonts: %v", err)
	}
	return fonts
}

// TestScratchRenderUploadsOnlyWhenChanged 位图未变化时不重复上传纹理
func TestScratchRenderUploadsOnlyWhenChanged(t *testing.T) {
	em := ecs.NewEntityManager()
	deck := progress.NewDeckState([]int{1})
	card, _ := newTestCard(t, em, deck, 1, 0, 0, 280, 200)
	sys := NewScratchRenderSystem(em, deck, loadTestFonts(t), config.PaletteFor(config.ThemeLight))
	screen := ebiten.NewImage(320, 280)

	if !card.NeedsUpload() {
		t.Fatal("fresh card should need an upload")
	}
	sys.Draw(screen)
	if card.NeedsUpload() {
		t.Fatal("Draw should upload the overlay")
	}
	overlay := card.Overlay

	sys.Draw(screen)
	if card.Overlay != overlay {
		t.Error("unchanged bitmap should reuse the overlay texture")
	}

	card.Surface.BeginStroke(scratch.Point{X: 50, Y: 50})
	card.Surface.EndStroke()
	if !card.NeedsUpload() {
		t.Fatal("erase should invalidate the overlay")
	}
	sys.Draw(screen)
	if card.NeedsUpload() {
		t.Error("Draw should re-upload after an erase")
	}
}

func TestScratchRenderSkipsRevealedOverlay(t *testing.T) {
	em := ecs.NewEntityManager()
	deck := progress.NewDeckState([]int{1})
	card, _ := newTestCard(t, em, deck, 1, 0, 0, 280, 200)
	sys := NewScratchRenderSystem(em, deck, loadTestFonts(t), config.PaletteFor(config.ThemeDark))

	card.Surface.ForceReveal()
	sys.Draw(ebiten.NewImage(320, 280))

	if card.Overlay != nil {
		t.Error("revealed card should not create an overlay texture")
	}
}

func TestScratchRenderDegradedCard(t *testing.T) {
	em := ecs.NewEntityManager()
	deck := progress.NewDeckState([]int{1})
	card, _ := newTestCard(t, em, deck, 1, 0, 0, 280, 200)
	card.Surface.Initialize(0, 0, "broken")
	if !card.Surface.Degraded() {
		t.Fatal("zero-size surface should be degraded")
	}

	sys := NewScratchRenderSystem(em, deck, loadTestFonts(t), config.PaletteFor(config.ThemeLight))
	sys.Draw(ebiten.NewImage(320, 280))
	if card.Overlay != nil {
		t.Error("degraded card has no bitmap to upload")
	}
}

func TestDeckHUDCounter(t *testing.T) {
	deck := progress.NewDeckState([]int{1, 2, 3})
	cfg := config.DefaultScratchConfig()
	hud := NewDeckHUDRenderSystem(deck, config.NewLayout(cfg, 3), loadTestFonts(t), config.PaletteFor(config.ThemeLight))

	if got := hud.Counter(); got != "0 / 3 revealed" {
		t.Errorf("Counter: got %q", got)
	}
	_ = deck.Reveal(2)
	if got := hud.Counter(); got != "1 / 3 revealed" {
		t.Errorf("Counter: got %q", got)
	}

	w, h := config.NewLayout(cfg, 3).ScreenSize()
	screen := ebiten.NewImage(w, h)
	hud.DrawBackground(screen)
	_ = deck.Reveal(1)
	_ = deck.Reveal(3)
	hud.DrawForeground(screen)
}
