package entities

import (
	"fmt"

	"github.com/gonewx/balloons/pkg/components"
	"github.com/gonewx/balloons/pkg/config"
	"github.com/gonewx/balloons/pkg/ecs"
	"github.com/gonewx/balloons/pkg/effect"
	"github.com/gonewx/balloons/pkg/timeline"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImageLoader 按资源 ID 加载图片（由 game.ResourceManager 实现）
type ImageLoader interface {
	LoadImageByID(resourceID string) (*ebiten.Image, error)
}

// NewBalloonEntity 创建一个气球实体并立即开始播放 tl
// 参数:
//   - manager: EntityManager 实例
//   - images: 图片加载器
//   - imageID: 图片资源 ID
//   - size: 未变换前的绘制尺寸
//   - tl: 已构建的时间轴
//   - onComplete: 播放完成时调用（实体已被标记删除之后）
//
// 返回: 创建的实体ID；图片无法解析时不创建实体并返回错误
func NewBalloonEntity(manager *ecs.EntityManager, images ImageLoader, imageID string,
	size config.SpriteSize, tl *timeline.Timeline, onComplete func()) (ecs.EntityID, error) {
	img, err := images.LoadImageByID(imageID)
	if err != nil {
		return 0, fmt.Errorf("failed to load balloon image: %w", err)
	}

	id := manager.CreateEntity()
	base := tl.Base()

	manager.AddComponent(id, &components.SpriteComponent{
		Image:   img,
		ImageID: imageID,
		Width:   size.Width,
		Height:  size.Height,
	})
	// 第一次求值前停在可见区域之外
	manager.AddComponent(id, &components.PositionComponent{X: base.Position.X, Y: base.Position.Y})
	manager.AddComponent(id, &components.TransformComponent{Transform: base.Transform})
	manager.AddComponent(id, &components.OpacityComponent{Alpha: base.Opacity})

	// 完成回调负责移除精灵
	manager.AddComponent(id, &components.TimelineComponent{
		Playback: timeline.Play(tl, func() {
			manager.DestroyEntity(id)
			if onComplete != nil {
				onComplete()
			}
		}),
	})

	return id, nil
}

// BalloonHost 把 effect.Emitter 接到 ECS 上
type BalloonHost struct {
	manager *ecs.EntityManager
	images  ImageLoader
	size    config.SpriteSize
}

// NewBalloonHost 创建宿主
func NewBalloonHost(manager *ecs.EntityManager, images ImageLoader, size config.SpriteSize) *BalloonHost {
	return &BalloonHost{manager: manager, images: images, size: size}
}

// Attach 实现 effect.Host
func (h *BalloonHost) Attach(image effect.ImageRef, tl *timeline.Timeline, onComplete func()) (effect.SpriteToken, error) {
	id, err := NewBalloonEntity(h.manager, h.images, string(image), h.size, tl, onComplete)
	if err != nil {
		return 0, err
	}
	return effect.SpriteToken(id), nil
}
