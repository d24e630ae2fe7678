package scratch

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa 用四段三次贝塞尔曲线逼近圆时的控制点系数
const kappa = 0.5522847498

// eraser 以 destination-out 方式擦除笔刷形状
//
// 每次擦除先把所有形状（终点圆、起点圆头、线段矩形）的覆盖率
// 合并到一张 alpha 遮罩里，再一次性应用到位图：
//
//	dst' = dst * (1 - mask)
//
// 位图是预乘 alpha 的 RGBA，因此四个通道按同一系数缩放即可。
type eraser struct {
	radius float64
	raster *vector.Rasterizer
	mask   *image.Alpha
}

func newEraser(radius float64) *eraser {
	return &eraser{
		radius: radius,
		raster: vector.NewRasterizer(1, 1),
	}
}

// apply 擦除 to 处的圆，from 非空时再擦除 from→to 的圆头线段
// 返回本次新增的完全透明像素数
func (e *eraser) apply(dst *image.RGBA, from *Point, to Point) int {
	if dst == nil || !finite(to) || (from != nil && !finite(*from)) {
		return 0
	}

	area := dst.Bounds()
	if from != nil {
		// 位图外 radius 之内的部分才可能影响像素，线段先裁剪到这个范围
		a, b, ok := clipSegment(*from, to, expandRect(area, e.radius+1))
		if !ok {
			return 0
		}
		from, to = &a, b
	}

	dirty := e.bounds(area, from, to).Intersect(area)
	if dirty.Empty() {
		return 0
	}

	e.resetMask(dirty)
	origin := Point{X: float64(dirty.Min.X), Y: float64(dirty.Min.Y)}

	e.fill(dirty, func(r *vector.Rasterizer) {
		addCircle(r, sub(to, origin), e.radius)
	})
	if from != nil {
		e.fill(dirty, func(r *vector.Rasterizer) {
			addCircle(r, sub(*from, origin), e.radius)
		})
		if seg := segmentQuad(sub(*from, origin), sub(to, origin), e.radius); seg != nil {
			e.fill(dirty, func(r *vector.Rasterizer) {
				addPolygon(r, seg)
			})
		}
	}

	return destinationOut(dst, e.mask, dirty)
}

// bounds 返回覆盖本次擦除的整数矩形
// 浮点边界先限制在 area 外扩 radius 的范围内再转换为 int，避免远处的坐标溢出
func (e *eraser) bounds(area image.Rectangle, from *Point, to Point) image.Rectangle {
	minX, minY := to.X, to.Y
	maxX, maxY := to.X, to.Y
	if from != nil {
		minX, minY = math.Min(minX, from.X), math.Min(minY, from.Y)
		maxX, maxY = math.Max(maxX, from.X), math.Max(maxY, from.Y)
	}
	r := e.radius
	limit := expandRect(area, r+1)
	return image.Rect(
		int(math.Floor(limit.clampX(minX-r)))-1,
		int(math.Floor(limit.clampY(minY-r)))-1,
		int(math.Ceil(limit.clampX(maxX+r)))+1,
		int(math.Ceil(limit.clampY(maxY+r)))+1,
	)
}

// rectF 浮点矩形，用于裁剪
type rectF struct {
	minX, minY, maxX, maxY float64
}

func expandRect(r image.Rectangle, by float64) rectF {
	return rectF{
		minX: float64(r.Min.X) - by,
		minY: float64(r.Min.Y) - by,
		maxX: float64(r.Max.X) + by,
		maxY: float64(r.Max.Y) + by,
	}
}

func (r rectF) clampX(x float64) float64 { return math.Max(r.minX, math.Min(r.maxX, x)) }
func (r rectF) clampY(y float64) float64 { return math.Max(r.minY, math.Min(r.maxY, y)) }

const (
	outLeft = 1 << iota
	outRight
	outTop
	outBottom
)

func (r rectF) outcode(p Point) int {
	code := 0
	switch {
	case p.X < r.minX:
		code |= outLeft
	case p.X > r.maxX:
		code |= outRight
	}
	switch {
	case p.Y < r.minY:
		code |= outTop
	case p.Y > r.maxY:
		code |= outBottom
	}
	return code
}

// clipSegment 把线段 a→b 裁剪到 r 内（Cohen-Sutherland），完全在外时返回 false
//
// 端点移到边界时从另一个端点插值，远处端点的大坐标不会吞掉近处端点的精度。
func clipSegment(a, b Point, r rectF) (Point, Point, bool) {
	for range 8 {
		ca, cb := r.outcode(a), r.outcode(b)
		if ca|cb == 0 {
			break
		}
		if ca&cb != 0 {
			return a, b, false
		}
		if ca != 0 {
			a = r.moveToEdge(a, b, ca)
		} else {
			b = r.moveToEdge(b, a, cb)
		}
	}
	return a, b, true
}

// moveToEdge 沿 keep→p 的直线把 p 移到 code 指示的一条边上
func (r rectF) moveToEdge(p, keep Point, code int) Point {
	switch {
	case code&outTop != 0:
		return Point{X: keep.X + (p.X-keep.X)*(r.minY-keep.Y)/(p.Y-keep.Y), Y: r.minY}
	case code&outBottom != 0:
		return Point{X: keep.X + (p.X-keep.X)*(r.maxY-keep.Y)/(p.Y-keep.Y), Y: r.maxY}
	case code&outLeft != 0:
		return Point{X: r.minX, Y: keep.Y + (p.Y-keep.Y)*(r.minX-keep.X)/(p.X-keep.X)}
	default:
		return Point{X: r.maxX, Y: keep.Y + (p.Y-keep.Y)*(r.maxX-keep.X)/(p.X-keep.X)}
	}
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (e *eraser) resetMask(dirty image.Rectangle) {
	w, h := dirty.Dx(), dirty.Dy()
	if e.mask == nil || cap(e.mask.Pix) < w*h {
		e.mask = image.NewAlpha(image.Rect(0, 0, w, h))
		return
	}
	e.mask.Pix = e.mask.Pix[:w*h]
	e.mask.Stride = w
	e.mask.Rect = image.Rect(0, 0, w, h)
	clear(e.mask.Pix)
}

// fill 把一个闭合路径的覆盖率以 Over 方式合并到遮罩
func (e *eraser) fill(dirty image.Rectangle, build func(r *vector.Rasterizer)) {
	e.raster.Reset(dirty.Dx(), dirty.Dy())
	e.raster.DrawOp = draw.Over
	build(e.raster)
	e.raster.Draw(e.mask, e.mask.Bounds(), image.Opaque, image.Point{})
}

// destinationOut 按遮罩降低 dst 在 dirty 区域内的 alpha
// 返回从非透明变为完全透明的像素数
func destinationOut(dst *image.RGBA, mask *image.Alpha, dirty image.Rectangle) int {
	cleared := 0
	w := dirty.Dx()
	for y := 0; y < dirty.Dy(); y++ {
		mrow := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		off := dst.PixOffset(dirty.Min.X, dirty.Min.Y+y)
		for x, m := range mrow {
			if m == 0 {
				continue
			}
			px := dst.Pix[off+x*4 : off+x*4+4 : off+x*4+4]
			if px[3] == 0 {
				continue
			}
			keep := 255 - uint32(m)
			px[0] = uint8(uint32(px[0]) * keep / 255)
			px[1] = uint8(uint32(px[1]) * keep / 255)
			px[2] = uint8(uint32(px[2]) * keep / 255)
			px[3] = uint8(uint32(px[3]) * keep / 255)
			if px[3] == 0 {
				px[0], px[1], px[2] = 0, 0, 0
				cleared++
			}
		}
	}
	return cleared
}

// segmentQuad 返回 from→to 线段膨胀 radius 后的矩形四个顶点
// 两点重合时返回 nil（由两端的圆负责）
func segmentQuad(from, to Point, radius float64) []Point {
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length < 1e-6 {
		return nil
	}
	nx, ny := -dy/length*radius, dx/length*radius
	return []Point{
		{from.X + nx, from.Y + ny},
		{to.X + nx, to.Y + ny},
		{to.X - nx, to.Y - ny},
		{from.X - nx, from.Y - ny},
	}
}

// addCircle 向光栅器添加一个圆（四段三次贝塞尔）
func addCircle(r *vector.Rasterizer, c Point, radius float64) {
	k := radius * kappa
	x, y, rr := float32(c.X), float32(c.Y), float32(radius)
	kk := float32(k)

	r.MoveTo(x+rr, y)
	r.CubeTo(x+rr, y+kk, x+kk, y+rr, x, y+rr)
	r.CubeTo(x-kk, y+rr, x-rr, y+kk, x-rr, y)
	r.CubeTo(x-rr, y-kk, x-kk, y-rr, x, y-rr)
	r.CubeTo(x+kk, y-rr, x+rr, y-kk, x+rr, y)
	r.ClosePath()
}

// addEllipse 向光栅器添加一个旋转椭圆（折线逼近）
func addEllipse(r *vector.Rasterizer, c Point, rx, ry, rotation float64) {
	const segments = 48
	sin, cos := math.Sincos(rotation)
	for i := 0; i <= segments; i++ {
		t := 2 * math.Pi * float64(i) / segments
		ex, ey := rx*math.Cos(t), ry*math.Sin(t)
		x := float32(c.X + ex*cos - ey*sin)
		y := float32(c.Y + ex*sin + ey*cos)
		if i == 0 {
			r.MoveTo(x, y)
		} else {
			r.LineTo(x, y)
		}
	}
	r.ClosePath()
}

func addPolygon(r *vector.Rasterizer, pts []Point) {
	for i, p := range pts {
		if i == 0 {
			r.MoveTo(float32(p.X), float32(p.Y))
		} else {
			r.LineTo(float32(p.X), float32(p.Y))
		}
	}
	r.ClosePath()
}

func sub(a, b Point) Point {
	return Point{X: a.X - b.X, Y: a.Y - b.Y}
}
