package timeline

// Property 段所驱动的精灵属性
type Property int

const (
	PropertyPosition Property = iota
	PropertyTransform
	PropertyOpacity
)

// String 返回属性名
func (p Property) String() string {
	switch p {
	case PropertyPosition:
		return "position"
	case PropertyTransform:
		return "transform"
	case PropertyOpacity:
		return "opacity"
	default:
		return "unknown"
	}
}

// Mode 段的插值方式
type Mode int

const (
	ModeLinear    Mode = iota // 两点线性插值
	ModeCurve                 // 沿三次贝塞尔曲线
	ModeKeyframes             // 离散关键帧列表
	ModeTarget                // 从当前值过渡到单一目标值
)

// SpinTarget 旋出段的目标：绕竖直轴再转 AngleY，整体缩放到 Scale 倍
type SpinTarget struct {
	AngleY float64
	Scale  float64
}

// Segment 时间轴中的一段动画
//
// Begin 与 Duration 以秒为单位，相对于时间轴的局部时间。
// 段结束后保持最终值（不回退），开始前不产生任何影响。
// 构造后不可修改。
type Segment struct {
	Name     string
	Property Property
	Mode     Mode
	Begin    float64
	Duration float64
	Easing   Curve

	From Vec2       // ModeLinear
	To   Vec2       // ModeLinear
	Path BezierPath // ModeCurve

	Keys []TransformKey // ModeKeyframes

	ToOpacity float64    // PropertyOpacity + ModeTarget
	Spin      SpinTarget // PropertyTransform + ModeTarget
}

// LinearPosition 位置从 from 线性移动到 to
func LinearPosition(name string, from, to Vec2, begin, duration float64, easing Curve) Segment {
	return Segment{
		Name: name, Property: PropertyPosition, Mode: ModeLinear,
		Begin: begin, Duration: duration, Easing: easing,
		From: from, To: to,
	}
}

// CurvePosition 位置沿贝塞尔曲线移动
func CurvePosition(name string, path BezierPath, begin, duration float64, easing Curve) Segment {
	return Segment{
		Name: name, Property: PropertyPosition, Mode: ModeCurve,
		Begin: begin, Duration: duration, Easing: easing,
		Path: path,
	}
}

// TransformKeyframes 变换按关键帧插值
func TransformKeyframes(name string, keys []TransformKey, begin, duration float64, easing Curve) Segment {
	copied := make([]TransformKey, len(keys))
	copy(copied, keys)
	return Segment{
		Name: name, Property: PropertyTransform, Mode: ModeKeyframes,
		Begin: begin, Duration: duration, Easing: easing,
		Keys: copied,
	}
}

// FadeOpacity 透明度从当前值过渡到 to
func FadeOpacity(name string, to, begin, duration float64, easing Curve) Segment {
	return Segment{
		Name: name, Property: PropertyOpacity, Mode: ModeTarget,
		Begin: begin, Duration: duration, Easing: easing,
		ToOpacity: to,
	}
}

// SpinTo 在前面各段得到的变换之上叠加旋转和缩放
func SpinTo(name string, spin SpinTarget, begin, duration float64, easing Curve) Segment {
	return Segment{
		Name: name, Property: PropertyTransform, Mode: ModeTarget,
		Begin: begin, Duration: duration, Easing: easing,
		Spin: spin,
	}
}

// End 返回段的结束时间
func (s Segment) End() float64 {
	return s.Begin + s.Duration
}

// Progress 返回局部时间 local 下的缓动后进度
// active 为 false 表示段尚未开始
func (s Segment) Progress(local float64) (p float64, active bool) {
	if local < s.Begin {
		return 0, false
	}
	raw := 1.0
	if s.Duration > 0 && local < s.End()-overrunTolerance {
		raw = clampUnit((local - s.Begin) / s.Duration)
	}
	if s.Easing == nil {
		return raw, true
	}
	return s.Easing(raw), true
}

// apply 把段在进度 p 下的值写入 st
func (s Segment) apply(st *State, p float64) {
	switch s.Property {
	case PropertyPosition:
		switch s.Mode {
		case ModeCurve:
			st.Position = s.Path.At(p)
		default:
			st.Position = LerpVec2(s.From, s.To, p)
		}
	case PropertyTransform:
		switch s.Mode {
		case ModeKeyframes:
			st.Transform = sampleKeys(s.Keys, p)
		case ModeTarget:
			factor := lerp(1, s.Spin.Scale, p)
			st.Transform = st.Transform.RotateY(s.Spin.AngleY*p).Scale(factor, factor)
		}
	case PropertyOpacity:
		st.Opacity = lerp(st.Opacity, s.ToOpacity, p)
	}
}
