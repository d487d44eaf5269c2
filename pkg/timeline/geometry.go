// Package timeline 提供与平台无关的分段动画时间轴
//
// 一个 Timeline 由若干 Segment 组成，每个 Segment 在自己的时间窗口内驱动
// 精灵的一个属性（位置、变换或透明度）。所有段共享同一个总时长和主缓动曲线。
// 时间轴本身不持有任何可变状态：渲染循环每帧调用 Evaluate(elapsed)
// 得到当前的 State，再由调用方写回精灵。
package timeline

import "math"

// Vec2 二维坐标（屏幕坐标系，Y 轴向下）
type Vec2 struct {
	X float64
	Y float64
}

// LerpVec2 在 a、b 之间线性插值
func LerpVec2(a, b Vec2, p float64) Vec2 {
	return Vec2{X: lerp(a.X, b.X, p), Y: lerp(a.Y, b.Y, p)}
}

// Rect 绘制区域（原点 + 尺寸）
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect 创建原点在 (0,0) 的矩形
func NewRect(width, height float64) Rect {
	return Rect{Width: width, Height: height}
}

// Right 返回矩形右边界 X
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom 返回矩形下边界 Y
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// BezierPath 一段三次贝塞尔曲线
//
// Start 为起点，Control1/Control2 为两个内部控制点，End 为终点。
type BezierPath struct {
	Start    Vec2
	Control1 Vec2
	Control2 Vec2
	End      Vec2
}

// At 计算曲线参数 t（0~1）处的坐标
func (b BezierPath) At(t float64) Vec2 {
	t = clampUnit(t)
	inv := 1 - t
	a := inv * inv * inv
	c1 := 3 * inv * inv * t
	c2 := 3 * inv * t * t
	d := t * t * t
	return Vec2{
		X: a*b.Start.X + c1*b.Control1.X + c2*b.Control2.X + d*b.End.X,
		Y: a*b.Start.Y + c1*b.Control1.Y + c2*b.Control2.Y + d*b.End.Y,
	}
}

// RotationAngle 根据发射向量计算倾斜角度（弧度）
//
// dx 为水平位移，dy 为竖直位移（向上为正）。结果为 atan(dx/dy)：
//   - dx == 0 时返回 0（竖直发射不倾斜）
//   - dy == 0 时按 dx 的符号返回 ±π/2，而不是 NaN/Inf
func RotationAngle(dx, dy float64) float64 {
	if dx == 0 {
		return 0
	}
	if dy == 0 {
		return math.Copysign(math.Pi/2, dx)
	}
	return math.Atan(dx / dy)
}

func lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
