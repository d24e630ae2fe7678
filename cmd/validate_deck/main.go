// Command validate_deck 校验卡组和刮刮卡参数文件
//
//	go run ./cmd/validate_deck                 # 校验内置 data/cards.yaml
//	go run ./cmd/validate_deck my_cards.yaml   # 校验磁盘上的卡组
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/gonewx/scratchcards/data"
	"github.com/gonewx/scratchcards/pkg/config"
	"github.com/gonewx/scratchcards/pkg/embedded"
	"github.com/mattn/go-runewidth"
)

func main() {
	embedded.Init(data.FS)

	paths := os.Args[1:]
	if len(paths) == 0 {
		paths = []string{config.DefaultCardDeckPath}
	}

	failed := 0
	for _, path := range paths {
		if !validateDeck(path) {
			failed++
		}
	}

	if _, err := config.LoadScratchConfig(config.DefaultScratchConfigPath); err != nil {
		fmt.Printf("❌ %v\n", err)
		failed++
	} else {
		fmt.Printf("✅ %s 参数有效\n", config.DefaultScratchConfigPath)
	}

	if failed > 0 {
		fmt.Printf("❌ 有 %d 个文件未通过校验\n", failed)
		os.Exit(1)
	}
}

func validateDeck(path string) bool {
	deck, err := config.LoadCardDeck(path)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return false
	}

	fmt.Printf("✅ %s: %d 张卡片\n", path, len(deck.Cards))

	counts := make(map[config.CardCategory]int)
	for _, card := range deck.Cards {
		counts[card.Category]++
		if w := runewidth.StringWidth(card.Emoji); w > 2 {
			fmt.Printf("⚠️  卡片 %d 的 emoji %q 占 %d 列，终端前端可能错位\n", card.ID, card.Emoji, w)
		}
	}

	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, string(c))
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Printf("   %-10s %d\n", c, counts[config.CardCategory(c)])
	}
	return true
}
