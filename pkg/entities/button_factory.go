package entities

import (
	"github.com/gonewx/scratchcards/pkg/components"
	"github.com/gonewx/scratchcards/pkg/config"
	"github.com/gonewx/scratchcards/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// NewButton 创建纯色按钮实体
//
// 参数：
//   - em: 实体管理器
//   - rect: 按钮区域（屏幕坐标）
//   - label: 按钮文字
//   - font: 文字字体
//   - style: 配色风格
//   - onClick: 点击回调函数
//
// 返回按钮实体 ID 和按钮组件（场景需要切换文字或隐藏按钮时直接修改组件）
func NewButton(
	em *ecs.EntityManager,
	rect config.Rect,
	label string,
	font *text.GoTextFace,
	style components.ButtonStyle,
	onClick func(),
) (ecs.EntityID, *components.ButtonComponent) {
	entity := em.CreateEntity()

	ecs.AddComponent(em, entity, &components.PositionComponent{
		X: rect.X,
		Y: rect.Y,
	})

	button := &components.ButtonComponent{
		Text:    label,
		Font:    font,
		Style:   style,
		Width:   rect.W,
		Height:  rect.H,
		State:   components.UINormal,
		Enabled: true,
		OnClick: onClick,
	}
	ecs.AddComponent(em, entity, button)

	return entity, button
}
