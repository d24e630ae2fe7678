package systems

import (
	"github.com/gonewx/scratchcards/pkg/components"
	"github.com/gonewx/scratchcards/pkg/ecs"
	"github.com/gonewx/scratchcards/pkg/utils"
)

// ButtonSystem 按钮交互系统
// 负责处理按钮的指针悬停、按下和点击逻辑
//
// 职责：
//   - 检测悬停（更新按钮状态为 UIHovered）
//   - 检测释放（在按钮内释放时触发 OnClick 回调）
//   - 根据 Enabled/Hidden 状态决定是否响应交互
//
// 注意：光标形状由调用者（CardsScene）统一管理
type ButtonSystem struct {
	entityManager *ecs.EntityManager
	pointer       PointerSource

	// armed 指针按下时所在的按钮，只有在同一个按钮上释放才算点击（0 表示没有）
	armed ecs.EntityID
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager, pointer PointerSource) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
		pointer:       pointer,
	}
}

// Update 更新按钮交互状态
// 返回本帧是否有按钮被点击
func (s *ButtonSystem) Update(deltaTime float64) bool {
	p := s.pointer.Pointer()
	x, y := float64(p.X), float64(p.Y)
	clicked := false

	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		if button.Hidden {
			button.State = components.UINormal
			continue
		}
		// 禁用状态不响应交互
		if !button.Enabled {
			button.State = components.UIDisabled
			continue
		}

		if !button.Contains(pos, x, y) {
			button.State = components.UINormal
			continue
		}

		switch p.Phase {
		case utils.PointerDown:
			s.armed = entityID
			button.State = components.UIClicked
		case utils.PointerDragging:
			if s.armed == entityID {
				button.State = components.UIClicked
			} else {
				button.State = components.UIHovered
			}
		case utils.PointerUp:
			button.State = components.UIHovered
			if s.armed != entityID {
				continue
			}
			// 释放瞬间触发回调，回调中可以修改按钮本身（例如隐藏）
			if button.OnClick != nil {
				button.OnClick()
			}
			clicked = true
		default:
			// 触摸没有悬停
			if p.Touch {
				button.State = components.UINormal
			} else {
				button.State = components.UIHovered
			}
		}
	}

	if !p.Pressed() {
		s.armed = 0
	}
	return clicked
}

// HoveringButton 指针是否悬停在可点击的按钮上（用于设置光标形状）
func (s *ButtonSystem) HoveringButton() bool {
	for _, entityID := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		if button.State == components.UIHovered || button.State == components.UIClicked {
			return true
		}
	}
	return false
}
