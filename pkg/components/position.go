package components

// PositionComponent 实体左上角的屏幕坐标（逻辑像素）
type PositionComponent struct {
	X, Y float64
}
