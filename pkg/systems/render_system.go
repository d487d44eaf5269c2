package systems

import (
	"math"
	"sort"

	"github.com/gonewx/balloons/pkg/components"
	"github.com/gonewx/balloons/pkg/ecs"
	"github.com/gonewx/balloons/pkg/timeline"
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderSystem 绘制所有气球精灵
type RenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
	}
}

// DrawOrder 返回绘制顺序：深度小的先画，深度相同按实体 ID
func (s *RenderSystem) DrawOrder() []ecs.EntityID {
	ids := ecs.GetEntitiesWith2[*components.SpriteComponent, *components.TransformComponent](s.entityManager)
	depth := make(map[ecs.EntityID]float64, len(ids))
	for _, id := range ids {
		tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		depth[id] = tr.Transform.Depth
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return depth[ids[i]] < depth[ids[j]]
	})
	return ids
}

// Draw 绘制所有精灵
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	for _, id := range s.DrawOrder() {
		s.drawEntity(screen, id)
	}
}

func (s *RenderSystem) drawEntity(screen *ebiten.Image, id ecs.EntityID) {
	sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
	if !ok || sprite.Image == nil {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return
	}
	tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

	alpha := 1.0
	if op, ok := ecs.GetComponent[*components.OpacityComponent](s.entityManager, id); ok {
		alpha = op.Alpha
	}
	if alpha <= 0 {
		return
	}

	bounds := sprite.Image.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM = SpriteGeoM(float64(bounds.Dx()), float64(bounds.Dy()),
		sprite.Width, sprite.Height, tr.Transform, pos.X, pos.Y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear

	screen.DrawImage(sprite.Image, op)
}

// SpriteGeoM 计算精灵的绘制矩阵
//
// 顺序：图片居中 → 拉伸到绘制尺寸 → 变换缩放（X 轴乘以绕 Y 轴旋转的余弦）
// → 平面旋转 → 平移到中心点。
func SpriteGeoM(imgW, imgH, width, height float64, tr timeline.Transform, x, y float64) ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(-imgW/2, -imgH/2)
	if imgW > 0 && imgH > 0 {
		m.Scale(width/imgW, height/imgH)
	}
	m.Scale(tr.ScaleX*math.Cos(tr.RotationY), tr.ScaleY)
	m.Rotate(tr.RotationZ)
	m.Translate(x, y)
	return m
}
