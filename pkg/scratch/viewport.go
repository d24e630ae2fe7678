package scratch

// Viewport 描述位图在屏幕上的显示区域
//
// 位图分辨率与屏幕显示尺寸不一定是 1:1（窗口缩放、高 DPI、终端字符格），
// 指针坐标必须按各轴独立的比例换算到位图坐标后才能擦除：
//
//	bitmapX = (screenX - X) * BitmapWidth  / Width
//	bitmapY = (screenY - Y) * BitmapHeight / Height
type Viewport struct {
	// X, Y, Width, Height 显示区域（屏幕坐标）
	X, Y          float64
	Width, Height float64
	// BitmapWidth, BitmapHeight 位图分辨率
	BitmapWidth, BitmapHeight int
}

// ViewportFor 返回 surface 在 (x, y) 处以 width x height 显示时的 Viewport
func ViewportFor(s *Surface, x, y, width, height float64) Viewport {
	bw, bh := s.Size()
	return Viewport{X: x, Y: y, Width: width, Height: height, BitmapWidth: bw, BitmapHeight: bh}
}

// Scale 返回屏幕→位图的缩放比例
func (v Viewport) Scale() (sx, sy float64) {
	if v.Width <= 0 || v.Height <= 0 {
		return 1, 1
	}
	return float64(v.BitmapWidth) / v.Width, float64(v.BitmapHeight) / v.Height
}

// ToBitmap 把屏幕坐标换算为位图坐标
func (v Viewport) ToBitmap(screenX, screenY float64) Point {
	sx, sy := v.Scale()
	return Point{X: (screenX - v.X) * sx, Y: (screenY - v.Y) * sy}
}

// Contains 屏幕坐标是否落在显示区域内
func (v Viewport) Contains(screenX, screenY float64) bool {
	return screenX >= v.X && screenX < v.X+v.Width &&
		screenY >= v.Y && screenY < v.Y+v.Height
}
