package utils

import (
	"strings"
	"testing"
)

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	font, err := LoadFace(14)
	if err != nil {
		t.Fatalf("LoadFace: %v", err)
	}

	tests := []struct {
		name      string
		input     string
		maxWidth  float64
		expectMin int // 期望最少的行数
	}{
		{"短文本不换行", "You make me smile", 1000, 1},
		{"长文本自动换行", "You make every ordinary Tuesday feel like a small celebration", 120, 3},
		{"空文本", "", 100, 1},
		{"超长单词强制断行", strings.Repeat("w", 60), 80, 2},
		{"保留换行符", "first\nsecond", 1000, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, font, tt.maxWidth)

			if len(lines) < tt.expectMin {
				t.Errorf("期望至少 %d 行，实际 %d 行: %q", tt.expectMin, len(lines), lines)
			}
			for i, line := range lines {
				// 单个字符可以超宽，其余行必须在宽度内
				if utf8Len(line) > 1 && measureTextWidth(line, font) > tt.maxWidth {
					t.Errorf("第 %d 行超出最大宽度: %q", i, line)
				}
			}
		})
	}
}

// TestWrapTextKeepsWords 换行不丢失也不打乱单词
func TestWrapTextKeepsWords(t *testing.T) {
	font, err := LoadFace(14)
	if err != nil {
		t.Fatalf("LoadFace: %v", err)
	}

	input := "I promise   to always save you\tthe last slice of pizza"
	lines := WrapText(input, font, 100)
	if got, want := strings.Join(lines, " "), strings.Join(strings.Fields(input), " "); got != want {
		t.Errorf("rejoined text: got %q, want %q", got, want)
	}
}

func TestWrapTextNilFont(t *testing.T) {
	lines := WrapText("anything", nil, 100)
	if len(lines) != 1 || lines[0] != "anything" {
		t.Errorf("nil font should return the input unchanged, got %q", lines)
	}
}

func TestLoadFaceSharesSource(t *testing.T) {
	a, err := LoadFace(12)
	if err != nil {
		t.Fatalf("LoadFace: %v", err)
	}
	b, _ := LoadFace(20)
	if a.Source != b.Source {
		t.Error("faces should share one parsed source")
	}
	if a.Size != 12 || b.Size != 20 {
		t.Errorf("sizes: got %v and %v", a.Size, b.Size)
	}
}

func utf8Len(s string) int {
	return len([]rune(s))
}
