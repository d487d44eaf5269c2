package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/balloons/pkg/effect"
	"github.com/gonewx/balloons/pkg/timeline"
)

// maxEmitsPerTick 单帧最多补发的数量，防止卡顿后一次性生成过多
const maxEmitsPerTick = 5

// Spawner 生成一个精灵（由 effect.Emitter 实现）
type Spawner interface {
	Emit(bounds timeline.Rect) (effect.SpriteToken, error)
}

// EmitSystem 按固定间隔触发生成
type EmitSystem struct {
	spawner       Spawner
	bounds        timeline.Rect
	spawnTimer    float64 // 当前计时器
	spawnInterval float64 // 生成间隔(秒)
	enabled       bool
}

// NewEmitSystem 创建生成系统
// 参数:
//   - spawner: 生成器
//   - bounds: 可见绘制区域
//   - interval: 生成间隔(秒)
func NewEmitSystem(spawner Spawner, bounds timeline.Rect, interval float64) *EmitSystem {
	log.Printf("[EmitSystem] Initialized with interval=%.2fs, area=%.0fx%.0f",
		interval, bounds.Width, bounds.Height)
	return &EmitSystem{
		spawner:       spawner,
		bounds:        bounds,
		spawnInterval: interval,
		enabled:       true,
	}
}

// Update 推进计时器，到达间隔时生成
//
// 生成失败（图片无法解析）是配置错误，直接返回给调用方。
func (s *EmitSystem) Update(deltaTime float64) error {
	if !s.enabled || s.spawnInterval <= 0 {
		return nil
	}

	s.spawnTimer += deltaTime
	emitted := 0
	for s.spawnTimer >= s.spawnInterval {
		s.spawnTimer -= s.spawnInterval
		if emitted >= maxEmitsPerTick {
			s.spawnTimer = 0
			break
		}
		if _, err := s.spawner.Emit(s.bounds); err != nil {
			return fmt.Errorf("emit balloon: %w", err)
		}
		emitted++
	}
	return nil
}

// SetBounds 更新绘制区域（窗口尺寸变化时调用）
func (s *EmitSystem) SetBounds(bounds timeline.Rect) {
	s.bounds = bounds
}

// Bounds 返回当前绘制区域
func (s *EmitSystem) Bounds() timeline.Rect {
	return s.bounds
}

// SetInterval 修改生成间隔
func (s *EmitSystem) SetInterval(interval float64) {
	s.spawnInterval = interval
	log.Printf("[EmitSystem] Interval set to %.2fs", interval)
}

// Interval 返回生成间隔
func (s *EmitSystem) Interval() float64 {
	return s.spawnInterval
}

// Enable 启用生成
func (s *EmitSystem) Enable() {
	s.enabled = true
	log.Printf("[EmitSystem] Auto emit ENABLED")
}

// Disable 暂停生成，已在播放的精灵不受影响
func (s *EmitSystem) Disable() {
	s.enabled = false
	log.Printf("[EmitSystem] Auto emit DISABLED")
}

// IsEnabled 是否正在生成
func (s *EmitSystem) IsEnabled() bool {
	return s.enabled
}
