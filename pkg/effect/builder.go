// Package effect 构建气球的五段飞行轨迹并负责生成
//
// 轨迹由五个同时播放的段组成：
//  1. launch  发射：从区域底部直线冲到 80% 高度附近
//  2. spring  挤压：按发射方向倾斜，经过压扁-拉伸-回弹放大
//  3. arc     弧线：沿贝塞尔曲线飘到顶部
//  4. fade    淡出：透明度降到 0
//  5. spin    旋出：绕竖直轴翻转并继续放大
package effect

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gonewx/balloons/pkg/config"
	"github.com/gonewx/balloons/pkg/timeline"
)

// 段名称
const (
	SegmentLaunch = "launch"
	SegmentSpring = "spring"
	SegmentArc    = "arc"
	SegmentFade   = "fade"
	SegmentSpin   = "spin"
)

// OffscreenPosition 精灵在第一次求值前所在的位置（可见区域之外）
var OffscreenPosition = timeline.Vec2{X: -1000, Y: -1000}

// springKeyTimes 挤压段关键帧时间
var springKeyTimes = [4]float64{0, 0.4, 0.7, 1}

// Trajectory 一次生成所抽取的全部随机量及派生的几何信息
type Trajectory struct {
	LaunchStart timeline.Vec2
	LaunchEnd   timeline.Vec2
	ArcEnd      timeline.Vec2
	Tilt        float64 // 挤压段倾斜角（弧度）
	SpringScale float64 // 挤压段最终缩放
	SpinAngle   float64 // 旋出段绕竖直轴角度，(2n+1)π
	SpinScale   float64 // 旋出段最终缩放
	Depth       float64 // 初始深度平移
}

// curves 解析后的缓动曲线
type curves struct {
	master, launch, spring, arc, fade, spin timeline.Curve
}

// Builder 按效果配置构建气球时间轴
type Builder struct {
	cfg    *config.EffectConfig
	curves curves
}

// NewBuilder 创建构建器，配置无效时返回错误
func NewBuilder(cfg *config.EffectConfig) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var c curves
	targets := []struct {
		name string
		dst  *timeline.Curve
	}{
		{cfg.Easing.Master, &c.master},
		{cfg.Easing.Launch, &c.launch},
		{cfg.Easing.Spring, &c.spring},
		{cfg.Easing.Arc, &c.arc},
		{cfg.Easing.Fade, &c.fade},
		{cfg.Easing.Spin, &c.spin},
	}
	for _, tgt := range targets {
		curve, err := timeline.CurveByName(tgt.name)
		if err != nil {
			return nil, err
		}
		*tgt.dst = curve
	}
	return &Builder{cfg: cfg, curves: c}, nil
}

// Config 返回构建器使用的配置
func (b *Builder) Config() *config.EffectConfig {
	return b.cfg
}

// Draw 为一次生成抽取所有随机量
//
// 每个随机量都从 rng 独立均匀抽取，rng 由调用方持有。
func (b *Builder) Draw(bounds timeline.Rect, rng *rand.Rand) Trajectory {
	cfg := b.cfg
	pad := cfg.RightPadding
	posX := bounds.Right() - pad

	start := timeline.Vec2{X: posX, Y: bounds.Bottom() + cfg.SpriteSize.Height}
	end := timeline.Vec2{
		X: posX + uniform(rng, -pad, pad),
		Y: bounds.Y + bounds.Height*cfg.Launch.EndHeightRatio + uniform(rng, -cfg.Launch.EndJitterY, cfg.Launch.EndJitterY),
	}
	dx := end.X - start.X
	dy := start.Y - end.Y

	turns := cfg.SpinTurns.Min + rng.Intn(cfg.SpinTurns.Max-cfg.SpinTurns.Min+1)

	return Trajectory{
		LaunchStart: start,
		LaunchEnd:   end,
		ArcEnd:      timeline.Vec2{X: posX + uniform(rng, -pad, pad), Y: bounds.Y + cfg.Arc.EndY},
		Tilt:        timeline.RotationAngle(dx, dy),
		SpringScale: uniform(rng, cfg.SpringScale.Min, cfg.SpringScale.Max),
		SpinAngle:   float64(2*turns+1) * math.Pi,
		SpinScale:   uniform(rng, cfg.SpinScale.Min, cfg.SpinScale.Max),
		Depth:       uniform(rng, cfg.Depth.Min, cfg.Depth.Max),
	}
}

// Build 抽取随机量并构建时间轴
func (b *Builder) Build(bounds timeline.Rect, rng *rand.Rand) (*timeline.Timeline, Trajectory, error) {
	traj := b.Draw(bounds, rng)
	tl, err := b.BuildFrom(bounds, traj)
	return tl, traj, err
}

// BuildFrom 用给定的轨迹参数构建时间轴（不抽取随机量）
func (b *Builder) BuildFrom(bounds timeline.Rect, traj Trajectory) (*timeline.Timeline, error) {
	base := timeline.State{
		Position:  OffscreenPosition,
		Transform: timeline.Translation(traj.Depth),
		Opacity:   1,
	}
	tl, err := timeline.New(b.cfg.TotalDuration, b.curves.master, base,
		b.launchSegment(traj),
		b.springSegment(base.Transform, traj),
		b.arcSegment(bounds, traj),
		b.fadeSegment(),
		b.spinSegment(traj),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build balloon timeline: %w", err)
	}
	return tl, nil
}

func (b *Builder) launchSegment(traj Trajectory) timeline.Segment {
	T := b.cfg.TotalDuration
	return timeline.LinearPosition(SegmentLaunch, traj.LaunchStart, traj.LaunchEnd,
		0, b.cfg.Portions.Launch*T, b.curves.launch)
}

func (b *Builder) springSegment(original timeline.Transform, traj Trajectory) timeline.Segment {
	T := b.cfg.TotalDuration
	tilted := original.RotateZ(traj.Tilt)
	scales := [4][2]float64{
		{timeline.Epsilon, 1},
		{0.2, 1.7},
		{1.3, 0.7},
		{traj.SpringScale, traj.SpringScale},
	}
	keys := make([]timeline.TransformKey, len(scales))
	for i, s := range scales {
		keys[i] = timeline.TransformKey{Time: springKeyTimes[i], Value: tilted.Scale(s[0], s[1])}
	}
	return timeline.TransformKeyframes(SegmentSpring, keys,
		b.cfg.Portions.Transform*T, b.cfg.Portions.Launch*T, b.curves.spring)
}

func (b *Builder) arcSegment(bounds timeline.Rect, traj Trajectory) timeline.Segment {
	T := b.cfg.TotalDuration
	launch := b.cfg.Portions.Launch
	path := timeline.BezierPath{
		Start:    traj.LaunchEnd,
		Control1: timeline.Vec2{X: traj.LaunchEnd.X, Y: bounds.Y + bounds.Height*b.cfg.Arc.Control1HeightRatio},
		Control2: timeline.Vec2{X: traj.ArcEnd.X, Y: bounds.Y + bounds.Height*b.cfg.Arc.Control2HeightRatio},
		End:      traj.ArcEnd,
	}
	return timeline.CurvePosition(SegmentArc, path, launch*T, (1-launch)*T, b.curves.arc)
}

func (b *Builder) fadeSegment() timeline.Segment {
	T := b.cfg.TotalDuration
	p := b.cfg.Portions.Opacity
	return timeline.FadeOpacity(SegmentFade, 0, p*T, (1-p)*T, b.curves.fade)
}

func (b *Builder) spinSegment(traj Trajectory) timeline.Segment {
	T := b.cfg.TotalDuration
	p := b.cfg.Portions.Rotation
	spin := timeline.SpinTarget{AngleY: traj.SpinAngle, Scale: traj.SpinScale}
	return timeline.SpinTo(SegmentSpin, spin, p*T, (1-p)*T, b.curves.spin)
}

// uniform 在 [lo, hi] 内均匀抽取
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
