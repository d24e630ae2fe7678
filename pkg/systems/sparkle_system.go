package systems

import (
	"math"
	"math/rand/v2"

	"github.com/gonewx/scratchcards/pkg/components"
	"github.com/gonewx/scratchcards/pkg/config"
	"github.com/gonewx/scratchcards/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// SparkleCount 每次揭晓生成的星星数量
	SparkleCount = 6
	// SparkleDuration 庆祝效果持续时间（秒）
	SparkleDuration = 1.5
	// sparkleRise 星星在生命周期内上升的距离
	sparkleRise = 20.0
	// sparkleSize 星星最大尺寸时的半径
	sparkleSize = 9.0
)

// SparkleSystem 卡片揭晓时的庆祝效果
// 负责生成、推进和销毁 SparkleComponent 实体
type SparkleSystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand
}

// NewSparkleSystem 创建庆祝效果系统
func NewSparkleSystem(em *ecs.EntityManager, seed uint64) *SparkleSystem {
	return &SparkleSystem{
		entityManager: em,
		rng:           rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

// Spawn 在卡片区域内生成一次庆祝效果
// 星星落在区域中间 60% 的范围内
func (s *SparkleSystem) Spawn(area config.Rect) ecs.EntityID {
	sparkles := make([]components.Sparkle, SparkleCount)
	for i := range sparkles {
		sparkles[i] = components.Sparkle{
			X:    area.X + area.W*(0.2+0.6*s.rng.Float64()),
			Y:    area.Y + area.H*(0.2+0.6*s.rng.Float64()),
			Spin: math.Pi,
		}
	}

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.SparkleComponent{
		Sparkles: sparkles,
		Duration: SparkleDuration,
	})
	return id
}

// Update 推进所有效果，播放完毕的实体被销毁
func (s *SparkleSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.SparkleComponent](s.entityManager) {
		sparkle, _ := ecs.GetComponent[*components.SparkleComponent](s.entityManager, id)
		sparkle.Elapsed += deltaTime
		if sparkle.Elapsed >= sparkle.Duration {
			s.entityManager.DestroyEntity(id)
		}
	}
	s.entityManager.RemoveMarkedEntities()
}

// Clear 立即移除所有效果（例如 Reset all）
func (s *SparkleSystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.SparkleComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制所有效果
// 每颗星由两条交叉线段组成：尺寸先放大再缩小，同时上升、旋转并淡出
func (s *SparkleSystem) Draw(screen *ebiten.Image, palette config.Palette) {
	for _, id := range ecs.GetEntitiesWith1[*components.SparkleComponent](s.entityManager) {
		sparkle, _ := ecs.GetComponent[*components.SparkleComponent](s.entityManager, id)
		t := sparkle.Progress()

		size := sparkleSize * 1.5 * math.Sin(math.Pi*t)
		if size <= 0.5 {
			continue
		}
		clr := palette.ProgressFill
		alpha := 1 - t
		clr.R = uint8(float64(clr.R) * alpha)
		clr.G = uint8(float64(clr.G) * alpha)
		clr.B = uint8(float64(clr.B) * alpha)
		clr.A = uint8(float64(clr.A) * alpha)

		for _, sp := range sparkle.Sparkles {
			cx, cy := sp.X, sp.Y-sparkleRise*t
			angle := sp.Spin * t
			for arm := 0; arm < 2; arm++ {
				a := angle + float64(arm)*math.Pi/2
				dx, dy := size*math.Cos(a), size*math.Sin(a)
				vector.StrokeLine(screen, float32(cx-dx), float32(cy-dy), float32(cx+dx), float32(cy+dy), 2, clr, true)
			}
		}
	}
}
