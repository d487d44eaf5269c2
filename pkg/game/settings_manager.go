package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 生成间隔的可调范围（秒）
const (
	MinEmitInterval = 0.02
	MaxEmitInterval = 2.0
)

// EffectSettings 用户可调的运行时设置
// 与 data/effect.yaml 不同，这些值由用户在运行中修改并持久化
type EffectSettings struct {
	// EmitInterval 生成间隔（秒），0 表示使用效果配置中的默认值
	EmitInterval float64 `yaml:"emitInterval"`
	// Paused 是否暂停生成新气球（已在播放的气球不受影响）
	Paused bool `yaml:"paused"`
	// ShowStats 是否显示调试信息
	ShowStats bool `yaml:"showStats"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *EffectSettings {
	return &EffectSettings{
		EmitInterval: 0,
		Paused:       false,
		ShowStats:    false,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *EffectSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "effect"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 始终为 nil，加载失败只记录日志并使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if loaded.EmitInterval != 0 {
		loaded.EmitInterval = clampInterval(loaded.EmitInterval)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *EffectSettings {
	return sm.settings
}

// EmitInterval 返回生效的生成间隔：未设置时使用 fallback
func (sm *SettingsManager) EmitInterval(fallback float64) float64 {
	if sm.settings.EmitInterval > 0 {
		return sm.settings.EmitInterval
	}
	return fallback
}

// SetEmitInterval 设置生成间隔，限制在 [MinEmitInterval, MaxEmitInterval]
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetEmitInterval(interval float64) {
	sm.settings.EmitInterval = clampInterval(interval)
}

// SetPaused 设置是否暂停生成
func (sm *SettingsManager) SetPaused(paused bool) {
	sm.settings.Paused = paused
}

// SetShowStats 设置是否显示调试信息
func (sm *SettingsManager) SetShowStats(show bool) {
	sm.settings.ShowStats = show
}

func clampInterval(interval float64) float64 {
	if interval < MinEmitInterval {
		return MinEmitInterval
	}
	if interval > MaxEmitInterval {
		return MaxEmitInterval
	}
	return interval
}
