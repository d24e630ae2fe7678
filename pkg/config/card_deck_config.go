package config

import (
	"errors"
	"fmt"

	"github.com/gonewx/scratchcards/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultCardDeckPath 内置卡组的嵌入路径
const DefaultCardDeckPath = "data/cards.yaml"

// ErrUnknownCard 查询不存在的卡片 ID 时返回
var ErrUnknownCard = errors.New("unknown card")

// ErrEmptyDeck 卡组中没有任何卡片
var ErrEmptyDeck = errors.New("card deck is empty")

// CardCategory 卡片分类，决定揭晓内容的底色
type CardCategory string

const (
	CategoryCompliment CardCategory = "compliment"
	CategoryMemory     CardCategory = "memory"
	CategoryPromise    CardCategory = "promise"
	CategoryPlayful    CardCategory = "playful"
)

// Valid 是否为已知分类
func (c CardCategory) Valid() bool {
	switch c {
	case CategoryCompliment, CategoryMemory, CategoryPromise, CategoryPlayful:
		return true
	}
	return false
}

// CardConfig 单张刮刮卡的内容
type CardConfig struct {
	ID            int          `yaml:"id"`            // 卡片 ID，卡组内唯一
	Title         string       `yaml:"title"`         // 标题，同时印在覆盖层上
	HiddenMessage string       `yaml:"hiddenMessage"` // 揭晓后显示的内容
	Emoji         string       `yaml:"emoji"`         // 装饰符号（终端前端使用）
	Category      CardCategory `yaml:"category"`      // 分类
}

// CardDeckConfig 卡组配置文件结构
type CardDeckConfig struct {
	Cards []CardConfig `yaml:"cards"`
}

// LoadCardDeck 从 YAML 文件加载卡组
// 参数：
//
//	path - "data/" 开头为嵌入资源，其他为磁盘路径
//
// 返回：
//
//	*CardDeckConfig - 解析后的卡组
//	error - 读取、解析或校验失败
func LoadCardDeck(path string) (*CardDeckConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read card deck %s: %w", path, err)
	}

	deck, err := ParseCardDeck(data)
	if err != nil {
		return nil, fmt.Errorf("card deck %s: %w", path, err)
	}
	return deck, nil
}

// ParseCardDeck 解析并校验卡组 YAML
func ParseCardDeck(data []byte) (*CardDeckConfig, error) {
	var deck CardDeckConfig
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("failed to parse card deck YAML: %w", err)
	}
	if err := validateCardDeck(&deck); err != nil {
		return nil, fmt.Errorf("invalid card deck: %w", err)
	}
	return &deck, nil
}

// validateCardDeck 验证卡组的完整性和合法性
func validateCardDeck(deck *CardDeckConfig) error {
	if len(deck.Cards) == 0 {
		return ErrEmptyDeck
	}

	seen := make(map[int]bool, len(deck.Cards))
	for i, card := range deck.Cards {
		if card.ID <= 0 {
			return fmt.Errorf("card #%d: id must be positive, got %d", i, card.ID)
		}
		if seen[card.ID] {
			return fmt.Errorf("card #%d: duplicate id %d", i, card.ID)
		}
		seen[card.ID] = true

		if card.Title == "" {
			return fmt.Errorf("card %d: title is required", card.ID)
		}
		if card.HiddenMessage == "" {
			return fmt.Errorf("card %d: hiddenMessage is required", card.ID)
		}
		if !card.Category.Valid() {
			return fmt.Errorf("card %d: unknown category %q", card.ID, card.Category)
		}
	}
	return nil
}

// IDs 按卡组顺序返回全部卡片 ID
func (d *CardDeckConfig) IDs() []int {
	ids := make([]int, len(d.Cards))
	for i, card := range d.Cards {
		ids[i] = card.ID
	}
	return ids
}
