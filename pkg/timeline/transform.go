package timeline

// Epsilon 代替 0 的极小缩放值
// 缩放为精确 0 时矩阵退化，插值会出现跳变
const Epsilon = 0.0001

// Transform 精灵的分解变换
//
// 渲染时的应用顺序：缩放 → 绕 Y 轴旋转 → 绕 Z 轴旋转 → 平移。
// Depth 是 Z 方向平移，只用于决定绘制顺序。
type Transform struct {
	ScaleX    float64 // X 轴缩放（1.0 = 原始大小）
	ScaleY    float64 // Y 轴缩放
	RotationZ float64 // 平面内旋转（弧度）
	RotationY float64 // 绕竖直轴翻转（弧度）
	Depth     float64 // Z 方向平移
}

// Identity 返回单位变换
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Translation 返回只带深度平移的变换
func Translation(depth float64) Transform {
	t := Identity()
	t.Depth = depth
	return t
}

// RotateZ 在现有变换上叠加平面旋转
func (t Transform) RotateZ(angle float64) Transform {
	t.RotationZ += angle
	return t
}

// RotateY 在现有变换上叠加绕竖直轴的旋转
func (t Transform) RotateY(angle float64) Transform {
	t.RotationY += angle
	return t
}

// Scale 在现有变换上叠加缩放
func (t Transform) Scale(sx, sy float64) Transform {
	t.ScaleX *= sx
	t.ScaleY *= sy
	return t
}

// LerpTransform 对变换的每个分量做线性插值
func LerpTransform(a, b Transform, p float64) Transform {
	return Transform{
		ScaleX:    lerp(a.ScaleX, b.ScaleX, p),
		ScaleY:    lerp(a.ScaleY, b.ScaleY, p),
		RotationZ: lerp(a.RotationZ, b.RotationZ, p),
		RotationY: lerp(a.RotationY, b.RotationY, p),
		Depth:     lerp(a.Depth, b.Depth, p),
	}
}

// TransformKey 关键帧：Time 为段内归一化时间（0~1）
type TransformKey struct {
	Time  float64
	Value Transform
}

// sampleKeys 在关键帧列表上按 p 采样
// keys 必须按 Time 升序排列
func sampleKeys(keys []TransformKey, p float64) Transform {
	if len(keys) == 0 {
		return Identity()
	}
	if p <= keys[0].Time {
		return keys[0].Value
	}
	for i := 1; i < len(keys); i++ {
		prev, next := keys[i-1], keys[i]
		if p > next.Time {
			continue
		}
		span := next.Time - prev.Time
		if span <= 0 {
			return next.Value
		}
		return LerpTransform(prev.Value, next.Value, (p-prev.Time)/span)
	}
	return keys[len(keys)-1].Value
}
