package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 存储实体的视觉表现
type SpriteComponent struct {
	Image *ebiten.Image
	// ImageID 图片资源 ID（如 "IMAGE_BALLOON3"）
	ImageID string
	// Width/Height 未变换前的绘制尺寸，图片会被拉伸到此尺寸
	Width  float64
	Height float64
}
