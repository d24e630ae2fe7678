package components

// Sparkle 揭晓庆祝效果中的一颗星
type Sparkle struct {
	// X, Y 起始位置（屏幕坐标）
	X, Y float64
	// Spin 整个生命周期内旋转的角度（弧度）
	Spin float64
}

// SparkleComponent 卡片揭晓时的一次庆祝效果
// Elapsed 达到 Duration 后实体被销毁
type SparkleComponent struct {
	Sparkles []Sparkle
	Elapsed  float64
	Duration float64
}

// Progress 返回 0..1 的播放进度
func (c *SparkleComponent) Progress() float64 {
	if c.Duration <= 0 {
		return 1
	}
	return min(c.Elapsed/c.Duration, 1)
}
