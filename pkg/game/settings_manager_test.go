package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return manager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.EmitInterval != 0 {
		t.Errorf("EmitInterval: got %v, want 0", settings.EmitInterval)
	}
	if settings.Paused {
		t.Error("Paused: got true, want false")
	}
	if settings.ShowStats {
		t.Error("ShowStats: got true, want false")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	if got := sm.EmitInterval(0.1); got != 0.1 {
		t.Errorf("EmitInterval(0.1) = %v, want fallback 0.1", got)
	}

	// 降级模式保存不报错
	sm.SetPaused(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode error: %v", err)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "test_balloons_settings")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	sm1.SetEmitInterval(0.25)
	sm1.SetPaused(true)
	sm1.SetShowStats(true)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}
	settings := sm2.GetSettings()

	if settings.EmitInterval != 0.25 {
		t.Errorf("Loaded EmitInterval: got %v, want 0.25", settings.EmitInterval)
	}
	if !settings.Paused {
		t.Error("Loaded Paused: got false, want true")
	}
	if !settings.ShowStats {
		t.Error("Loaded ShowStats: got false, want true")
	}
	if got := sm2.EmitInterval(0.1); got != 0.25 {
		t.Errorf("EmitInterval(0.1) = %v, want saved 0.25", got)
	}
}

// TestSetEmitIntervalClamp 测试 SetEmitInterval 范围校验
func TestSetEmitIntervalClamp(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{0.1, 0.1},
		{MinEmitInterval, MinEmitInterval},
		{MaxEmitInterval, MaxEmitInterval},
		{0, MinEmitInterval},
		{-3, MinEmitInterval},
		{10, MaxEmitInterval},
	}

	for _, tt := range tests {
		sm.SetEmitInterval(tt.input)
		if sm.GetSettings().EmitInterval != tt.expected {
			t.Errorf("SetEmitInterval(%v): got %v, want %v",
				tt.input, sm.GetSettings().EmitInterval, tt.expected)
		}
	}
}
