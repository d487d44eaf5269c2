package timeline

import (
	"errors"
	"fmt"
)

// ErrSegmentOverrun 段的结束时间超出了时间轴总时长
var ErrSegmentOverrun = errors.New("segment ends after timeline")

// ErrInvalidDuration 时间轴总时长必须为正
var ErrInvalidDuration = errors.New("timeline duration must be positive")

// overrunTolerance 比例 × 时长的浮点误差容忍
const overrunTolerance = 1e-9

// State 某一时刻精灵的属性快照
type State struct {
	Position  Vec2
	Transform Transform
	Opacity   float64
}

// Timeline 共享总时长和主缓动曲线的一组动画段
//
// 每次生成精灵时构建一次，之后只读；不可复用或倒放。
type Timeline struct {
	duration float64
	easing   Curve
	base     State
	segments []Segment
}

// New 构建时间轴并校验每段都在总时长之内
//
// base 为任何段开始前的初始状态；easing 为 nil 时使用线性主曲线。
func New(duration float64, easing Curve, base State, segments ...Segment) (*Timeline, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	for _, seg := range segments {
		if seg.Begin < 0 || seg.Duration < 0 {
			return nil, fmt.Errorf("segment %q: negative begin or duration", seg.Name)
		}
		if seg.End() > duration+overrunTolerance {
			return nil, fmt.Errorf("%w: %q ends at %.4f, timeline is %.4f",
				ErrSegmentOverrun, seg.Name, seg.End(), duration)
		}
	}
	if easing == nil {
		easing = Linear
	}
	copied := make([]Segment, len(segments))
	copy(copied, segments)
	return &Timeline{
		duration: duration,
		easing:   easing,
		base:     base,
		segments: copied,
	}, nil
}

// Duration 返回总时长（秒）
func (tl *Timeline) Duration() float64 {
	return tl.duration
}

// Base 返回初始状态
func (tl *Timeline) Base() State {
	return tl.base
}

// Segments 返回段列表的副本
func (tl *Timeline) Segments() []Segment {
	out := make([]Segment, len(tl.segments))
	copy(out, tl.segments)
	return out
}

// Segment 按名称查找段
func (tl *Timeline) Segment(name string) (Segment, bool) {
	for _, seg := range tl.segments {
		if seg.Name == name {
			return seg, true
		}
	}
	return Segment{}, false
}

// LocalTime 把墙钟已用时间经主缓动曲线映射为段使用的局部时间
func (tl *Timeline) LocalTime(elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= tl.duration {
		return tl.duration
	}
	return tl.easing(elapsed/tl.duration) * tl.duration
}

// Evaluate 计算已用时间 elapsed 时精灵的状态
func (tl *Timeline) Evaluate(elapsed float64) State {
	return tl.EvaluateLocal(tl.LocalTime(elapsed))
}

// EvaluateLocal 按局部时间计算状态（不经主曲线）
func (tl *Timeline) EvaluateLocal(local float64) State {
	st := tl.base
	for _, seg := range tl.segments {
		p, active := seg.Progress(local)
		if !active {
			continue
		}
		seg.apply(&st, p)
	}
	return st
}

// IsComplete 已用时间是否已达到总时长
func (tl *Timeline) IsComplete(elapsed float64) bool {
	return elapsed >= tl.duration
}
