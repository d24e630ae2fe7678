package progress

import (
	"fmt"
	"log"

	"github.com/gonewx/scratchcards/pkg/config"
)

// CardState 父视图持有的单张卡片状态
type CardState struct {
	// Scratched 已擦除百分比 0..100
	Scratched int
	// Revealed 是否已揭晓
	Revealed bool
}

// DeckState 整个卡组的揭晓状态
//
// 覆盖层只在 Revealed 为 false 时渲染；
// ScratchSurface 通过 OnProgress/OnRevealed 回调更新这里的状态。
type DeckState struct {
	order  []int
	states map[int]*CardState

	// OnChange 任意卡片状态变化后调用（可为 nil）
	OnChange func(cardID int, state CardState)
}

// NewDeckState 为给定的卡片 ID 列表创建状态，全部为未揭晓
func NewDeckState(ids []int) *DeckState {
	d := &DeckState{
		order:  append([]int(nil), ids...),
		states: make(map[int]*CardState, len(ids)),
	}
	for _, id := range ids {
		d.states[id] = &CardState{}
	}
	return d
}

// NewDeckStateFromConfig 由卡组配置创建状态
func NewDeckStateFromConfig(deck *config.CardDeckConfig) *DeckState {
	return NewDeckState(deck.IDs())
}

func (d *DeckState) lookup(id int) (*CardState, error) {
	s, ok := d.states[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", config.ErrUnknownCard, id)
	}
	return s, nil
}

// Scratch 记录擦除进度
// 已揭晓的卡片不再更新进度（揭晓时固定为 100）
func (d *DeckState) Scratch(id, percent int) error {
	s, err := d.lookup(id)
	if err != nil {
		return err
	}
	if s.Revealed {
		return nil
	}
	percent = min(max(percent, 0), 100)
	if percent == s.Scratched {
		return nil
	}
	s.Scratched = percent
	d.notify(id, s)
	return nil
}

// Reveal 揭晓卡片，进度设为 100
func (d *DeckState) Reveal(id int) error {
	s, err := d.lookup(id)
	if err != nil {
		return err
	}
	if s.Revealed {
		return nil
	}
	s.Revealed = true
	s.Scratched = 100
	log.Printf("[DeckState] Card %d revealed (%d/%d)", id, d.RevealedCount(), len(d.order))
	d.notify(id, s)
	return nil
}

// Reset 把单张卡片恢复为未揭晓
func (d *DeckState) Reset(id int) error {
	s, err := d.lookup(id)
	if err != nil {
		return err
	}
	*s = CardState{}
	d.notify(id, s)
	return nil
}

// ResetAll 恢复所有卡片
func (d *DeckState) ResetAll() {
	for _, id := range d.order {
		*d.states[id] = CardState{}
		d.notify(id, d.states[id])
	}
	log.Printf("[DeckState] All %d cards reset", len(d.order))
}

// Get 返回卡片状态的副本
func (d *DeckState) Get(id int) (CardState, bool) {
	s, ok := d.states[id]
	if !ok {
		return CardState{}, false
	}
	return *s, true
}

// IDs 按卡组顺序返回卡片 ID
func (d *DeckState) IDs() []int {
	return append([]int(nil), d.order...)
}

// Len 卡片数量
func (d *DeckState) Len() int {
	return len(d.order)
}

// RevealedCount 已揭晓的卡片数
func (d *DeckState) RevealedCount() int {
	n := 0
	for _, s := range d.states {
		if s.Revealed {
			n++
		}
	}
	return n
}

// AllRevealed 是否全部揭晓
func (d *DeckState) AllRevealed() bool {
	return len(d.order) > 0 && d.RevealedCount() == len(d.order)
}

func (d *DeckState) notify(id int, s *CardState) {
	if d.OnChange != nil {
		d.OnChange(id, *s)
	}
}
