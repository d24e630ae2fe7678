package scratch

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// CoverPainter 默认的覆盖层图案：
// 对角线性渐变 + 点阵 + 高光椭圆 + "Scratch Me!" 提示 + 卡片标题
//
// 所有图层都画在不透明渐变之上，因此结果总是完全不透明。
type CoverPainter struct {
	// GradientEdge 渐变两端颜色，GradientMid 渐变中点颜色
	GradientEdge color.RGBA
	GradientMid  color.RGBA
	// Dot 点阵颜色（非预乘）
	Dot color.NRGBA
	// Shimmer 高光颜色（非预乘）
	Shimmer color.NRGBA
	// Hint 提示文字颜色，Label 标题文字颜色（非预乘）
	Hint  color.NRGBA
	Label color.NRGBA
	// HintText 提示文字
	HintText string
	// DotSpacing 点阵间距，DotRadius 点半径
	DotSpacing int
	DotRadius  float64
	// Face 文字字体，nil 时使用 basicfont.Face7x13
	Face font.Face
}

// DefaultCoverPainter 返回暖色纸质风格的覆盖层
func DefaultCoverPainter() *CoverPainter {
	return &CoverPainter{
		GradientEdge: color.RGBA{0xD4, 0xC5, 0xB3, 0xFF},
		GradientMid:  color.RGBA{0xE0, 0xD5, 0xC5, 0xFF},
		Dot:          color.NRGBA{160, 140, 120, 38},
		Shimmer:      color.NRGBA{255, 255, 255, 38},
		Hint:         color.NRGBA{90, 70, 50, 179},
		Label:        color.NRGBA{90, 70, 50, 128},
		HintText:     "* Scratch Me! *",
		DotSpacing:   20,
		DotRadius:    2,
	}
}

// Paint 在 dst 上绘制完整的覆盖层
func (p *CoverPainter) Paint(dst *image.RGBA, label string) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return
	}

	p.paintGradient(dst)

	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Over

	// 点阵
	if p.DotSpacing > 0 && p.DotRadius > 0 {
		for x := 0; x < w; x += p.DotSpacing {
			for y := 0; y < h; y += p.DotSpacing {
				addCircle(r, Point{X: float64(x), Y: float64(y)}, p.DotRadius)
			}
		}
		r.Draw(dst, b, image.NewUniform(p.Dot), image.Point{})
	}

	// 高光
	r.Reset(w, h)
	r.DrawOp = draw.Over
	addEllipse(r, Point{X: float64(w) * 0.3, Y: float64(h) * 0.25}, 60, 30, -0.4)
	r.Draw(dst, b, image.NewUniform(p.Shimmer), image.Point{})

	face := p.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	p.drawCentered(dst, face, p.HintText, h/2-30, p.Hint)
	p.drawCentered(dst, face, fitText(face, label, w-16), h/2+10, p.Label)
}

// paintGradient 沿左上→右下对角线绘制三色渐变
func (p *CoverPainter) paintGradient(dst *image.RGBA) {
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	den := w*w + h*h
	for y := b.Min.Y; y < b.Max.Y; y++ {
		fy := float64(y-b.Min.Y) + 0.5
		for x := b.Min.X; x < b.Max.X; x++ {
			fx := float64(x-b.Min.X) + 0.5
			t := (fx*w + fy*h) / den
			// 0 → edge, 0.5 → mid, 1 → edge
			m := 1 - 2*abs(t-0.5)
			dst.SetRGBA(x, y, lerpRGBA(p.GradientEdge, p.GradientMid, m))
		}
	}
}

// drawCentered 以 middle 为垂直中心、水平居中绘制一行文字
func (p *CoverPainter) drawCentered(dst *image.RGBA, face font.Face, s string, middle int, c color.NRGBA) {
	if s == "" {
		return
	}
	metrics := face.Metrics()
	width := font.MeasureString(face, s)
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
	x := fixed.I(dst.Bounds().Min.X+dst.Bounds().Dx()/2) - width/2
	y := fixed.I(dst.Bounds().Min.Y + middle + (ascent-descent)/2)
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(s)
}

// fitText 超出 maxWidth 时截断并追加省略号
func fitText(face font.Face, s string, maxWidth int) string {
	limit := fixed.I(maxWidth)
	if font.MeasureString(face, s) <= limit {
		return s
	}
	const ellipsis = "..."
	runes := []rune(strings.TrimSpace(s))
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimSpace(string(runes)) + ellipsis
		if font.MeasureString(face, candidate) <= limit {
			return candidate
		}
	}
	return ""
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
