package config

import (
	"fmt"

	"github.com/gonewx/scratchcards/pkg/embedded"
	"github.com/gonewx/scratchcards/pkg/scratch"
	"gopkg.in/yaml.v3"
)

// DefaultScratchConfigPath 内置刮刮卡参数的嵌入路径
const DefaultScratchConfigPath = "data/scratch.yaml"

// ScratchConfig 刮刮卡参数
// 位图尺寸与显示尺寸分开配置：DisplayScale != 1 时输入坐标需要按比例换算
type ScratchConfig struct {
	CardWidth       int     `yaml:"cardWidth"`       // 覆盖层位图宽度（像素）
	CardHeight      int     `yaml:"cardHeight"`      // 覆盖层位图高度（像素）
	BrushRadius     float64 `yaml:"brushRadius"`     // 笔刷半径（位图坐标）
	RevealThreshold int     `yaml:"revealThreshold"` // 揭晓阈值（百分比）
	GridColumns     int     `yaml:"gridColumns"`     // 每行卡片数
	DisplayScale    float64 `yaml:"displayScale"`    // 卡片显示缩放（屏幕像素 / 位图像素）
	CardSpacing     float64 `yaml:"cardSpacing"`     // 卡片间距（屏幕像素）
}

// DefaultScratchConfig 返回默认参数
func DefaultScratchConfig() *ScratchConfig {
	return &ScratchConfig{
		CardWidth:       scratch.DefaultWidth,
		CardHeight:      scratch.DefaultHeight,
		BrushRadius:     scratch.DefaultBrushRadius,
		RevealThreshold: scratch.RevealThreshold,
		GridColumns:     4,
		DisplayScale:    1,
		CardSpacing:     24,
	}
}

// LoadScratchConfig 从 YAML 文件加载参数，缺省字段使用默认值
func LoadScratchConfig(path string) (*ScratchConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scratch config %s: %w", path, err)
	}
	cfg, err := ParseScratchConfig(data)
	if err != nil {
		return nil, fmt.Errorf("scratch config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseScratchConfig 在默认值之上解析 YAML 并校验
func ParseScratchConfig(data []byte) (*ScratchConfig, error) {
	cfg := DefaultScratchConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scratch config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scratch config: %w", err)
	}
	return cfg, nil
}

// Validate 校验参数范围
func (c *ScratchConfig) Validate() error {
	if c.CardWidth <= 0 || c.CardWidth > scratch.MaxDimension {
		return fmt.Errorf("cardWidth must be in 1..%d, got %d", scratch.MaxDimension, c.CardWidth)
	}
	if c.CardHeight <= 0 || c.CardHeight > scratch.MaxDimension {
		return fmt.Errorf("cardHeight must be in 1..%d, got %d", scratch.MaxDimension, c.CardHeight)
	}
	if c.BrushRadius <= 0 {
		return fmt.Errorf("brushRadius must be positive, got %v", c.BrushRadius)
	}
	if c.RevealThreshold < 1 || c.RevealThreshold > 100 {
		return fmt.Errorf("revealThreshold must be in 1..100, got %d", c.RevealThreshold)
	}
	if c.GridColumns < 1 {
		return fmt.Errorf("gridColumns must be at least 1, got %d", c.GridColumns)
	}
	if c.DisplayScale <= 0 {
		return fmt.Errorf("displayScale must be positive, got %v", c.DisplayScale)
	}
	if c.CardSpacing < 0 {
		return fmt.Errorf("cardSpacing cannot be negative, got %v", c.CardSpacing)
	}
	return nil
}

// SurfaceOptions 转换为 scratch.Options（不含回调）
func (c *ScratchConfig) SurfaceOptions() scratch.Options {
	return scratch.Options{
		BrushRadius: c.BrushRadius,
		Threshold:   c.RevealThreshold,
	}
}

// DisplaySize 返回卡片覆盖层在屏幕上的尺寸
func (c *ScratchConfig) DisplaySize() (width, height float64) {
	return float64(c.CardWidth) * c.DisplayScale, float64(c.CardHeight) * c.DisplayScale
}
