package components

import "github.com/gonewx/balloons/pkg/timeline"

// PositionComponent 精灵中心点的屏幕坐标
type PositionComponent struct {
	X float64
	Y float64
}

// TransformComponent 精灵当前的变换（缩放、旋转、深度）
//
// 由 TimelineSystem 每帧写入，RenderSystem 读取。
type TransformComponent struct {
	Transform timeline.Transform
}

// OpacityComponent 精灵透明度（0 = 完全透明，1 = 不透明）
type OpacityComponent struct {
	Alpha float64
}
