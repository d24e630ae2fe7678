// Package scratch 实现刮刮卡的覆盖层位图
//
// Surface 持有一张不透明的 RGBA 位图，沿指针拖动路径以"减法 alpha"
// （destination-out）方式擦除像素，统计完全透明像素的百分比，
// 并在首次达到揭晓阈值时发出揭晓事件。
//
// 本包不依赖任何 UI 框架：桌面端（Ebitengine）和终端（tcell）
// 前端都只调用这里的公开方法。
//
// 状态机：
//
//	Covered(p) --擦除--> Covered(p' >= p)
//	Covered(p) --p' >= 阈值 或 ForceReveal--> Revealed
//	Revealed   --Reset--> Covered(0)
package scratch

import (
	"errors"
	"fmt"
	"image"
	"log"
	"math"
)

const (
	// RevealThreshold 揭晓阈值（百分比），不要求用户擦净整张卡
	RevealThreshold = 50

	// DefaultBrushRadius 默认笔刷半径（位图坐标）
	DefaultBrushRadius = 30.0

	// DefaultWidth 和 DefaultHeight 是卡片位图的默认分辨率
	DefaultWidth  = 280
	DefaultHeight = 200

	// MaxDimension 单边最大像素数，超出视为无法获取绘图表面
	MaxDimension = 4096
)

// ErrSurfaceUnavailable 表示无法获取绘图表面（位图分配失败）
var ErrSurfaceUnavailable = errors.New("scratch: drawing surface unavailable")

// Point 位图坐标系中的点
type Point struct {
	X, Y float64
}

// State 覆盖层状态
type State int

const (
	// StateCovered 仍被覆盖（可能已部分擦除）
	StateCovered State = iota
	// StateRevealed 已揭晓，直到 Reset 之前保持不变
	StateRevealed
)

func (s State) String() string {
	switch s {
	case StateCovered:
		return "Covered"
	case StateRevealed:
		return "Revealed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Painter 绘制覆盖层图案
// 实现必须是确定性的，并且只能产生完全不透明的像素
type Painter interface {
	Paint(dst *image.RGBA, label string)
}

// AcquireFunc 分配覆盖层位图
type AcquireFunc func(width, height int) (*image.RGBA, error)

// Options Surface 的可选参数，零值字段使用默认值
type Options struct {
	// BrushRadius 笔刷半径（位图坐标），<= 0 时使用 DefaultBrushRadius
	BrushRadius float64
	// Threshold 揭晓阈值（百分比），<= 0 时使用 RevealThreshold
	Threshold int
	// Painter 覆盖层图案，nil 时使用 DefaultCoverPainter()
	Painter Painter
	// Acquire 位图分配函数，nil 时使用 NewBitmap
	Acquire AcquireFunc

	// OnProgress 每次擦除后调用，参数为 0..100 的百分比
	OnProgress func(percent int)
	// OnRevealed 每个位图生命周期内最多调用一次
	OnRevealed func()
}

// NewBitmap 分配一张 width x height 的 RGBA 位图
func NewBitmap(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrSurfaceUnavailable, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

// Surface 单张卡片的可擦除覆盖层
//
// 非并发安全：所有方法应由 UI 事件循环串行调用。
type Surface struct {
	opts Options

	bitmap *image.RGBA
	width  int
	height int
	label  string

	// 笔画状态
	stroking bool
	anchor   Point

	// transparent 完全透明（alpha == 0）的像素数，随每次擦除增量更新
	transparent int
	percent     int
	revealed    bool

	// degraded 为 true 时位图不可用，只能通过 ForceReveal 揭晓
	degraded bool

	// version 位图每次被修改后递增，前端据此判断是否需要重新上传纹理
	version uint64

	eraser *eraser
}

// NewSurface 创建并初始化一个 Surface
func NewSurface(width, height int, label string, opts Options) *Surface {
	if opts.BrushRadius <= 0 {
		opts.BrushRadius = DefaultBrushRadius
	}
	if opts.Threshold <= 0 {
		opts.Threshold = RevealThreshold
	}
	if opts.Painter == nil {
		opts.Painter = DefaultCoverPainter()
	}
	if opts.Acquire == nil {
		opts.Acquire = NewBitmap
	}

	s := &Surface{
		opts:   opts,
		eraser: newEraser(opts.BrushRadius),
	}
	s.Initialize(width, height, label)
	return s
}

// Initialize (重新)分配覆盖层位图并绘制背景图案和标签
//
// 位图无法获取时 Surface 进入降级模式：不响应笔画，只能 ForceReveal。
func (s *Surface) Initialize(width, height int, label string) {
	s.width = width
	s.height = height
	s.label = label
	s.stroking = false
	s.anchor = Point{}
	s.transparent = 0
	s.percent = 0
	s.revealed = false

	bitmap, err := s.opts.Acquire(width, height)
	if err == nil && bitmap == nil {
		err = ErrSurfaceUnavailable
	}
	if err != nil {
		// 降级后仍保持 Covered，由 ForceReveal（Reveal 按钮）揭晓，不自动视为已揭晓
		log.Printf("[ScratchSurface] %q: %v, falling back to manual reveal", label, err)
		s.bitmap = nil
		s.degraded = true
		return
	}

	s.bitmap = bitmap
	s.degraded = false
	s.version++
	s.opts.Painter.Paint(s.bitmap, label)
	s.transparent = countTransparent(s.bitmap)
	s.percent = s.percentOf(s.transparent)
}

// BeginStroke 开始一笔，并在 p 处擦除一次
func (s *Surface) BeginStroke(p Point) {
	if s.degraded || !finite(p) {
		return
	}
	s.stroking = true
	s.anchor = p
	s.erase(nil, p)
}

// ContinueStroke 从上一个锚点擦除到 p
// 没有进行中的笔画时忽略（例如没有按下就移动），NaN 和无穷坐标同样忽略
func (s *Surface) ContinueStroke(p Point) {
	if s.degraded || !s.stroking || !finite(p) {
		return
	}
	from := s.anchor
	s.anchor = p
	s.erase(&from, p)
}

// EndStroke 结束当前笔画，不修改位图
func (s *Surface) EndStroke() {
	s.stroking = false
	s.anchor = Point{}
}

// ForceReveal 不经过指针交互直接揭晓
//
// 覆盖层被整体清空，百分比固定为 100；重复调用不会再次触发 OnRevealed。
func (s *Surface) ForceReveal() {
	s.stroking = false
	s.anchor = Point{}

	if s.bitmap != nil {
		clear(s.bitmap.Pix)
		s.transparent = s.width * s.height
		s.version++
	}
	changed := s.percent != 100
	s.percent = 100

	if changed && s.opts.OnProgress != nil {
		s.opts.OnProgress(s.percent)
	}
	s.markRevealed()
}

// Reset 完整重启生命周期：重新分配并绘制位图，百分比归零，回到 Covered
func (s *Surface) Reset() {
	s.Initialize(s.width, s.height, s.label)
}

// erase 擦除 to 处的笔刷圆；from 非空时同时擦除 from→to 的圆头线段
func (s *Surface) erase(from *Point, to Point) {
	s.transparent += s.eraser.apply(s.bitmap, from, to)
	s.version++
	p := s.percentOf(s.transparent)
	// 擦除只会降低 alpha，百分比不会回退
	if p > s.percent {
		s.percent = p
	}

	if s.opts.OnProgress != nil {
		s.opts.OnProgress(s.percent)
	}
	if s.percent >= s.opts.Threshold {
		s.markRevealed()
	}
}

func (s *Surface) markRevealed() {
	if s.revealed {
		return
	}
	s.revealed = true
	log.Printf("[ScratchSurface] %q revealed at %d%%", s.label, s.percent)
	if s.opts.OnRevealed != nil {
		s.opts.OnRevealed()
	}
}

func (s *Surface) percentOf(transparent int) int {
	total := s.width * s.height
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(transparent) * 100 / float64(total)))
}

// Percent 返回已擦除百分比（0..100）
func (s *Surface) Percent() int { return s.percent }

// Revealed 是否已揭晓
func (s *Surface) Revealed() bool { return s.revealed }

// State 返回当前状态
func (s *Surface) State() State {
	if s.revealed {
		return StateRevealed
	}
	return StateCovered
}

// Degraded 位图不可用时返回 true
func (s *Surface) Degraded() bool { return s.degraded }

// Stroking 是否有进行中的笔画
func (s *Surface) Stroking() bool { return s.stroking }

// Label 返回覆盖层上的标签文字
func (s *Surface) Label() string { return s.label }

// Size 返回位图的逻辑尺寸
func (s *Surface) Size() (width, height int) { return s.width, s.height }

// BrushRadius 返回笔刷半径
func (s *Surface) BrushRadius() float64 { return s.opts.BrushRadius }

// Bitmap 返回覆盖层位图，降级模式下为 nil
// 调用者只能读取，不能修改
func (s *Surface) Bitmap() *image.RGBA { return s.bitmap }

// Version 返回位图的修改计数
func (s *Surface) Version() uint64 { return s.version }

// TransparentPixels 返回完全透明的像素数
func (s *Surface) TransparentPixels() int { return s.transparent }

// Recount 对整张位图做一次全量扫描，返回透明像素数
// 结果总是与增量计数 TransparentPixels 一致
func (s *Surface) Recount() int {
	if s.bitmap == nil {
		return 0
	}
	return countTransparent(s.bitmap)
}

// countTransparent 统计 alpha == 0 的像素
func countTransparent(img *image.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 3; i < len(row); i += 4 {
			if row[i] == 0 {
				n++
			}
		}
	}
	return n
}
