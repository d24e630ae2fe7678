// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerPhase 指针（鼠标左键或单指触摸）在本帧所处的阶段
type PointerPhase int

const (
	// PointerIdle 没有按下
	PointerIdle PointerPhase = iota
	// PointerDown 本帧刚按下
	PointerDown
	// PointerDragging 按住（可能在移动）
	PointerDragging
	// PointerUp 本帧刚释放，位置为释放前最后的位置
	PointerUp
)

func (p PointerPhase) String() string {
	switch p {
	case PointerDown:
		return "down"
	case PointerDragging:
		return "dragging"
	case PointerUp:
		return "up"
	default:
		return "idle"
	}
}

// PointerState 存储当前帧的指针状态
// 统一处理鼠标和触摸输入
type PointerState struct {
	Phase PointerPhase
	// X, Y 屏幕坐标（逻辑像素）
	X, Y int
	// Touch 是否来自触摸输入
	Touch bool
}

// Pressed 指针是否处于按下状态（刚按下或拖拽中）
func (s PointerState) Pressed() bool {
	return s.Phase == PointerDown || s.Phase == PointerDragging
}

// pointerSample 一次原始采样
type pointerSample struct {
	down  bool
	x, y  int
	touch bool
}

// PointerTracker 指针跟踪器
// 每帧调用一次 Update，然后由各系统通过 Pointer() 读取同一份状态
//
// 触摸优先：有活动触摸时跟踪第一个触点，否则跟踪鼠标左键。
// 触摸释放的那一帧 ebiten 已经拿不到触点位置，因此沿用上一帧的位置。
type PointerTracker struct {
	state PointerState
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{}
}

// Update 采样 ebiten 输入并推进状态（每帧调用一次）
func (t *PointerTracker) Update() {
	t.advance(samplePointer())
}

// Pointer 返回本帧的指针状态
func (t *PointerTracker) Pointer() PointerState {
	return t.state
}

func samplePointer() pointerSample {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return pointerSample{down: true, x: x, y: y, touch: true}
	}
	x, y := ebiten.CursorPosition()
	return pointerSample{
		down: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		x:    x,
		y:    y,
	}
}

// advance 根据一次采样推进状态机
func (t *PointerTracker) advance(s pointerSample) {
	switch t.state.Phase {
	case PointerIdle, PointerUp:
		if s.down {
			t.state = PointerState{Phase: PointerDown, X: s.x, Y: s.y, Touch: s.touch}
			return
		}
		if t.state.Phase == PointerUp {
			// 释放后的第一帧保留释放位置
			t.state.Phase = PointerIdle
			return
		}
		// 鼠标悬停位置
		t.state = PointerState{Phase: PointerIdle, X: s.x, Y: s.y, Touch: s.touch}

	case PointerDown, PointerDragging:
		if s.down {
			t.state.Phase = PointerDragging
			t.state.X, t.state.Y = s.x, s.y
			t.state.Touch = s.touch
			return
		}
		// 触摸释放：保留最后位置；鼠标释放：使用释放时的光标位置
		t.state.Phase = PointerUp
		if !t.state.Touch {
			t.state.X, t.state.Y = s.x, s.y
		}
	}
}

// Reset 重置跟踪状态
func (t *PointerTracker) Reset() {
	t.state = PointerState{}
}
