package effect

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/balloons/pkg/config"
	"github.com/gonewx/balloons/pkg/timeline"
)

var phoneBounds = timeline.NewRect(375, 667)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	b, err := NewBuilder(config.DefaultEffectConfig())
	if err != nil {
		t.Fatalf("NewBuilder() error: %v", err)
	}
	return b
}

func TestBuild_PhoneScenario(t *testing.T) {
	b := newTestBuilder(t)

	for seed := int64(0); seed < 200; seed++ {
		tl, traj, err := b.Build(phoneBounds, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("seed %d: Build() error: %v", seed, err)
		}

		if traj.LaunchStart != (timeline.Vec2{X: 175, Y: 707}) {
			t.Fatalf("seed %d: LaunchStart = %v, want (175, 707)", seed, traj.LaunchStart)
		}
		lo, hi := 667*0.8-30, 667*0.8+30
		if traj.LaunchEnd.Y < lo || traj.LaunchEnd.Y > hi {
			t.Errorf("seed %d: LaunchEnd.Y = %v, want in [%v, %v]", seed, traj.LaunchEnd.Y, lo, hi)
		}
		if traj.LaunchEnd.X < -25 || traj.LaunchEnd.X > 375 {
			t.Errorf("seed %d: LaunchEnd.X = %v, want in [-25, 375]", seed, traj.LaunchEnd.X)
		}
		if traj.ArcEnd.Y != 0 {
			t.Errorf("seed %d: ArcEnd.Y = %v, want 0", seed, traj.ArcEnd.Y)
		}

		// 淡出段在局部时间 1.04 处开始，此时仍完全不透明
		if op := tl.EvaluateLocal(0.2 * 5.2).Opacity; op != 1 {
			t.Errorf("seed %d: opacity at local 1.04 = %v, want 1", seed, op)
		}
		final := tl.Evaluate(5.2)
		if final.Opacity != 0 {
			t.Errorf("seed %d: final opacity = %v, want 0", seed, final.Opacity)
		}
		if math.Abs(final.Position.Y) > 1e-9 {
			t.Errorf("seed %d: final Y = %v, want 0", seed, final.Position.Y)
		}
	}
}

func TestBuild_LaunchEndsAboveStart(t *testing.T) {
	b := newTestBuilder(t)
	bounds := []timeline.Rect{phoneBounds, timeline.NewRect(1024, 768), timeline.NewRect(320, 120)}

	for _, r := range bounds {
		for seed := int64(0); seed < 100; seed++ {
			tl, traj, err := b.Build(r, rand.New(rand.NewSource(seed)))
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if traj.LaunchEnd.Y >= traj.LaunchStart.Y {
				t.Fatalf("bounds %v seed %d: launch end Y %v not above start %v", r, seed, traj.LaunchEnd.Y, traj.LaunchStart.Y)
			}
			launch, ok := tl.Segment(SegmentLaunch)
			if !ok {
				t.Fatal("launch segment missing")
			}
			if launch.To.Y >= launch.From.Y {
				t.Errorf("launch segment moves down: %v -> %v", launch.From, launch.To)
			}
		}
	}
}

func TestNewBuilder_RejectsDownwardLaunch(t *testing.T) {
	cfg := config.DefaultEffectConfig()
	cfg.Launch.EndHeightRatio = 1.2
	if _, err := NewBuilder(cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("NewBuilder() error = %v, want ErrInvalidConfig", err)
	}
}

func TestBuild_LaunchEndsAboveStart_ExtremeConfig(t *testing.T) {
	// 允许范围内最靠下的终点：比例 1，抖动接近精灵高度
	cfg := config.DefaultEffectConfig()
	cfg.Launch.EndHeightRatio = 1
	cfg.Launch.EndJitterY = cfg.SpriteSize.Height - 0.001
	b, err := NewBuilder(cfg)
	if err != nil {
		t.Fatalf("NewBuilder() error: %v", err)
	}

	for _, r := range []timeline.Rect{phoneBounds, timeline.NewRect(320, 120)} {
		for seed := int64(0); seed < 200; seed++ {
			_, traj, err := b.Build(r, rand.New(rand.NewSource(seed)))
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if traj.LaunchEnd.Y >= traj.LaunchStart.Y {
				t.Fatalf("bounds %v seed %d: launch end Y %v not above start %v", r, seed, traj.LaunchEnd.Y, traj.LaunchStart.Y)
			}
		}
	}
}

func TestBuild_SegmentLayout(t *testing.T) {
	b := newTestBuilder(t)
	tl, _, err := b.Build(phoneBounds, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	const T = 5.2

	tests := []struct {
		name     string
		property timeline.Property
		mode     timeline.Mode
		begin    float64
		duration float64
	}{
		{SegmentLaunch, timeline.PropertyPosition, timeline.ModeLinear, 0, 0.05 * T},
		{SegmentSpring, timeline.PropertyTransform, timeline.ModeKeyframes, 0.06 * T, 0.05 * T},
		{SegmentArc, timeline.PropertyPosition, timeline.ModeCurve, 0.05 * T, 0.95 * T},
		{SegmentFade, timeline.PropertyOpacity, timeline.ModeTarget, 0.2 * T, 0.8 * T},
		{SegmentSpin, timeline.PropertyTransform, timeline.ModeTarget, 0.06 * T, 0.94 * T},
	}

	segs := tl.Segments()
	if len(segs) != len(tests) {
		t.Fatalf("len(Segments) = %d, want %d", len(segs), len(tests))
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := segs[i]
			if seg.Name != tt.name {
				t.Fatalf("segment %d = %q, want %q", i, seg.Name, tt.name)
			}
			if seg.Property != tt.property || seg.Mode != tt.mode {
				t.Errorf("property/mode = %v/%v, want %v/%v", seg.Property, seg.Mode, tt.property, tt.mode)
			}
			if math.Abs(seg.Begin-tt.begin) > 1e-9 || math.Abs(seg.Duration-tt.duration) > 1e-9 {
				t.Errorf("begin/duration = %v/%v, want %v/%v", seg.Begin, seg.Duration, tt.begin, tt.duration)
			}
			if seg.End() > T+1e-9 {
				t.Errorf("segment ends at %v after %v", seg.End(), T)
			}
		})
	}
}

func TestBuild_SegmentsNeverOverrun(t *testing.T) {
	portions := []float64{0, 0.05, 0.2, 0.5, 0.9, 1}
	durations := []float64{0.1, 1, 5.2, 30}

	for _, d := range durations {
		for _, launch := range portions {
			for _, other := range portions {
				cfg := config.DefaultEffectConfig()
				cfg.TotalDuration = d
				cfg.Portions = config.PortionConfig{Launch: launch, Transform: other * (1 - launch), Opacity: other, Rotation: other}
				b, err := NewBuilder(cfg)
				if err != nil {
					t.Fatalf("NewBuilder(%+v) error: %v", cfg.Portions, err)
				}
				tl, _, err := b.Build(phoneBounds, rand.New(rand.NewSource(1)))
				if err != nil {
					t.Fatalf("Build(%v, %+v) error: %v", d, cfg.Portions, err)
				}
				for _, seg := range tl.Segments() {
					if seg.End() > d+1e-9 {
						t.Errorf("T=%v %+v: %s ends at %v", d, cfg.Portions, seg.Name, seg.End())
					}
				}
			}
		}
	}
}

func TestDraw_RandomRanges(t *testing.T) {
	b := newTestBuilder(t)
	rng := rand.New(rand.NewSource(42))
	seen := map[int]bool{}

	for i := 0; i < 500; i++ {
		traj := b.Draw(phoneBounds, rng)
		if traj.SpringScale < 1.5 || traj.SpringScale > 2.0 {
			t.Errorf("SpringScale = %v, want in [1.5, 2]", traj.SpringScale)
		}
		if traj.SpinScale < 2 || traj.SpinScale > 5 {
			t.Errorf("SpinScale = %v, want in [2, 5]", traj.SpinScale)
		}
		if traj.Depth < -10000 || traj.Depth > 10000 {
			t.Errorf("Depth = %v, want in [-10000, 10000]", traj.Depth)
		}
		k := int(math.Round(traj.SpinAngle / math.Pi))
		if k%2 != 1 || k < 3 || k > 7 {
			t.Errorf("SpinAngle = %vπ, want odd multiple in {3,5,7}", k)
		}
		seen[k] = true
		if math.IsNaN(traj.Tilt) {
			t.Fatal("Tilt is NaN")
		}
	}
	if len(seen) != 3 {
		t.Errorf("spin multiples seen = %v, want all of 3,5,7", seen)
	}
}

func TestSpringKeyframes(t *testing.T) {
	b := newTestBuilder(t)
	traj := Trajectory{
		LaunchStart: timeline.Vec2{X: 175, Y: 707},
		LaunchEnd:   timeline.Vec2{X: 175, Y: 533},
		ArcEnd:      timeline.Vec2{X: 100, Y: 0},
		Tilt:        0,
		SpringScale: 1.8,
		SpinAngle:   3 * math.Pi,
		SpinScale:   2,
		Depth:       12,
	}
	tl, err := b.BuildFrom(phoneBounds, traj)
	if err != nil {
		t.Fatalf("BuildFrom() error: %v", err)
	}
	spring, _ := tl.Segment(SegmentSpring)

	want := [][2]float64{{timeline.Epsilon, 1}, {0.2, 1.7}, {1.3, 0.7}, {1.8, 1.8}}
	if len(spring.Keys) != len(want) {
		t.Fatalf("len(Keys) = %d, want %d", len(spring.Keys), len(want))
	}
	for i, k := range spring.Keys {
		if k.Time != springKeyTimes[i] {
			t.Errorf("key %d time = %v, want %v", i, k.Time, springKeyTimes[i])
		}
		if k.Value.ScaleX != want[i][0] || k.Value.ScaleY != want[i][1] {
			t.Errorf("key %d scale = (%v,%v), want %v", i, k.Value.ScaleX, k.Value.ScaleY, want[i])
		}
		if k.Value.Depth != 12 {
			t.Errorf("key %d depth = %v, want 12 (from original transform)", i, k.Value.Depth)
		}
	}

	// 竖直发射没有倾斜
	if spring.Keys[0].Value.RotationZ != 0 {
		t.Errorf("vertical launch tilt = %v, want 0", spring.Keys[0].Value.RotationZ)
	}

	// 最终：挤压缩放 × 旋出缩放
	end := tl.Evaluate(5.2).Transform
	if math.Abs(end.ScaleX-3.6) > 1e-9 || math.Abs(end.RotationY-3*math.Pi) > 1e-9 {
		t.Errorf("final transform = %+v, want scale 3.6 and RotationY 3π", end)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	b := newTestBuilder(t)
	tl1, traj1, _ := b.Build(phoneBounds, rand.New(rand.NewSource(99)))
	tl2, traj2, _ := b.Build(phoneBounds, rand.New(rand.NewSource(99)))

	if traj1 != traj2 {
		t.Fatalf("same seed produced different trajectories: %+v vs %+v", traj1, traj2)
	}
	for _, e := range []float64{0, 0.3, 1.04, 2.5, 5.2} {
		if tl1.Evaluate(e) != tl2.Evaluate(e) {
			t.Errorf("Evaluate(%v) differs for the same seed", e)
		}
	}
}
