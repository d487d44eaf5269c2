package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/gonewx/balloons/pkg/timeline"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 效果配置校验失败
var ErrInvalidConfig = errors.New("invalid effect config")

// DefaultEffectConfigPath 内置效果配置路径
const DefaultEffectConfigPath = "data/effect.yaml"

// Range 闭区间 [Min, Max]，随机数在其中均匀抽取
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// IntRange 整数闭区间
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// PortionConfig 各阶段起始位置占总时长的比例
type PortionConfig struct {
	// Launch 发射段时长比例，同时也是弧线段的起点和挤压段的时长
	Launch float64 `yaml:"launch"`
	// Transform 挤压旋转段起点
	Transform float64 `yaml:"transform"`
	// Opacity 淡出段起点
	Opacity float64 `yaml:"opacity"`
	// Rotation 旋出段起点
	Rotation float64 `yaml:"rotation"`
}

// LaunchConfig 发射终点参数
type LaunchConfig struct {
	// EndHeightRatio 终点 Y = 区域高度 × 此比例
	EndHeightRatio float64 `yaml:"endHeightRatio"`
	// EndJitterY 终点 Y 的随机抖动幅度（±像素）
	EndJitterY float64 `yaml:"endJitterY"`
}

// ArcConfig 弧线段控制点参数
type ArcConfig struct {
	Control1HeightRatio float64 `yaml:"control1HeightRatio"`
	Control2HeightRatio float64 `yaml:"control2HeightRatio"`
	EndY                float64 `yaml:"endY"`
}

// SpriteSize 精灵未变换前的尺寸
type SpriteSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// EasingConfig 各段缓动曲线名（见 timeline.CurveByName）
type EasingConfig struct {
	Master string `yaml:"master"`
	Launch string `yaml:"launch"`
	Spring string `yaml:"spring"`
	Arc    string `yaml:"arc"`
	Fade   string `yaml:"fade"`
	Spin   string `yaml:"spin"`
}

// EffectConfig 气球效果配置
//
// 配置文件位置: data/effect.yaml
type EffectConfig struct {
	// TotalDuration 单个气球动画总时长（秒）
	TotalDuration float64 `yaml:"totalDuration"`
	// RightPadding 发射点距右边界的距离，也是水平随机偏移的幅度
	RightPadding float64 `yaml:"rightPadding"`
	// EmitInterval 生成间隔（秒）
	EmitInterval float64 `yaml:"emitInterval"`

	Portions PortionConfig `yaml:"portions"`
	Launch   LaunchConfig  `yaml:"launch"`
	Arc      ArcConfig     `yaml:"arc"`

	// SpringScale 挤压段最终缩放
	SpringScale Range `yaml:"springScale"`
	// SpinScale 旋出段最终缩放
	SpinScale Range `yaml:"spinScale"`
	// SpinTurns 旋出段整圈数，实际角度为 (2n+1)π
	SpinTurns IntRange `yaml:"spinTurns"`
	// Depth 初始深度平移范围（决定绘制顺序）
	Depth Range `yaml:"depth"`

	SpriteSize SpriteSize   `yaml:"spriteSize"`
	Easing     EasingConfig `yaml:"easing"`

	// Variants 可选图片资源 ID，每次生成时均匀随机选一个
	Variants []string `yaml:"variants"`
}

// DefaultEffectConfig 返回默认效果配置
func DefaultEffectConfig() *EffectConfig {
	return &EffectConfig{
		TotalDuration: 5.2,
		RightPadding:  200,
		EmitInterval:  0.1,
		Portions: PortionConfig{
			Launch:    0.05,
			Transform: 0.06,
			Opacity:   0.2,
			Rotation:  0.06,
		},
		Launch: LaunchConfig{
			EndHeightRatio: 0.8,
			EndJitterY:     30,
		},
		Arc: ArcConfig{
			Control1HeightRatio: 0.3,
			Control2HeightRatio: 0.1,
			EndY:                0,
		},
		SpringScale: Range{Min: 1.5, Max: 2.0},
		SpinScale:   Range{Min: 2, Max: 5},
		SpinTurns:   IntRange{Min: 1, Max: 3},
		Depth:       Range{Min: -10000, Max: 10000},
		SpriteSize:  SpriteSize{Width: 40, Height: 40},
		Easing: EasingConfig{
			Master: "ease-in",
			Launch: "ease-out",
			Spring: "ease-out",
			Arc:    "linear",
			Fade:   "ease-out",
			Spin:   "default",
		},
		Variants: []string{
			"IMAGE_BALLOON1",
			"IMAGE_BALLOON2",
			"IMAGE_BALLOON3",
			"IMAGE_BALLOON4",
			"IMAGE_BALLOON5",
			"IMAGE_BALLOON6",
		},
	}
}

// LoadEffectConfig 从磁盘加载效果配置
//
// 文件中缺省的字段保留默认值。
func LoadEffectConfig(path string) (*EffectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read effect config: %w", err)
	}
	return ParseEffectConfig(data)
}

// ParseEffectConfig 解析 YAML 数据并校验
func ParseEffectConfig(data []byte) (*EffectConfig, error) {
	cfg := DefaultEffectConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse effect config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 验证配置有效性
//
// 除了范围检查外，还要求由比例推导出的每一段都不超出总时长。
func (c *EffectConfig) Validate() error {
	if c.TotalDuration <= 0 {
		return fmt.Errorf("%w: totalDuration must be > 0, got %v", ErrInvalidConfig, c.TotalDuration)
	}
	if c.EmitInterval <= 0 {
		return fmt.Errorf("%w: emitInterval must be > 0, got %v", ErrInvalidConfig, c.EmitInterval)
	}
	if c.RightPadding < 0 {
		return fmt.Errorf("%w: rightPadding must be >= 0, got %v", ErrInvalidConfig, c.RightPadding)
	}

	portions := map[string]float64{
		"launch":    c.Portions.Launch,
		"transform": c.Portions.Transform,
		"opacity":   c.Portions.Opacity,
		"rotation":  c.Portions.Rotation,
	}
	for name, p := range portions {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: portion %s must be in [0,1], got %v", ErrInvalidConfig, name, p)
		}
	}
	// 挤压段从 transform 比例开始，持续 launch 比例
	if c.Portions.Transform+c.Portions.Launch > 1+1e-9 {
		return fmt.Errorf("%w: transform+launch portions exceed 1 (%v + %v)",
			ErrInvalidConfig, c.Portions.Transform, c.Portions.Launch)
	}

	ranges := map[string]Range{
		"springScale": c.SpringScale,
		"spinScale":   c.SpinScale,
		"depth":       c.Depth,
	}
	for name, r := range ranges {
		if r.Min > r.Max {
			return fmt.Errorf("%w: %s range invalid: min(%v) > max(%v)", ErrInvalidConfig, name, r.Min, r.Max)
		}
	}
	if c.SpinTurns.Min < 0 || c.SpinTurns.Min > c.SpinTurns.Max {
		return fmt.Errorf("%w: spinTurns range invalid: [%d, %d]", ErrInvalidConfig, c.SpinTurns.Min, c.SpinTurns.Max)
	}
	if c.SpriteSize.Width <= 0 || c.SpriteSize.Height <= 0 {
		return fmt.Errorf("%w: spriteSize must be positive", ErrInvalidConfig)
	}
	// 发射终点必须严格高于起点（起点在区域下方 spriteH 处）
	if c.Launch.EndHeightRatio < 0 || c.Launch.EndHeightRatio > 1 {
		return fmt.Errorf("%w: launch.endHeightRatio %.3f out of [0,1]", ErrInvalidConfig, c.Launch.EndHeightRatio)
	}
	if c.Launch.EndJitterY < 0 || c.Launch.EndJitterY >= c.SpriteSize.Height {
		return fmt.Errorf("%w: launch.endJitterY %.3f out of [0, %.3f)", ErrInvalidConfig, c.Launch.EndJitterY, c.SpriteSize.Height)
	}
	for _, r := range []float64{c.Arc.Control1HeightRatio, c.Arc.Control2HeightRatio} {
		if r < 0 || r > 1 {
			return fmt.Errorf("%w: arc control height ratio %.3f out of [0,1]", ErrInvalidConfig, r)
		}
	}
	if len(c.Variants) == 0 {
		return fmt.Errorf("%w: at least one sprite variant is required", ErrInvalidConfig)
	}

	for _, name := range []string{c.Easing.Master, c.Easing.Launch, c.Easing.Spring, c.Easing.Arc, c.Easing.Fade, c.Easing.Spin} {
		if _, err := timeline.CurveByName(name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}
