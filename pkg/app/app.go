// Package app 提供气球效果应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/balloons/pkg/config"
	"github.com/gonewx/balloons/pkg/ecs"
	"github.com/gonewx/balloons/pkg/effect"
	"github.com/gonewx/balloons/pkg/embedded"
	"github.com/gonewx/balloons/pkg/entities"
	"github.com/gonewx/balloons/pkg/game"
	"github.com/gonewx/balloons/pkg/systems"
	"github.com/gonewx/balloons/pkg/timeline"
	"github.com/gonewx/balloons/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// ResourceConfigPath 资源声明文件
const ResourceConfigPath = "assets/config/resources.yaml"

// BalloonGroup 启动时预加载的资源组
const BalloonGroup = "balloons"

// intervalStep 每次按 +/- 调整的生成间隔（秒）
const intervalStep = 0.02

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// EffectConfigPath 效果配置文件路径，为空则使用嵌入的 data/effect.yaml
	EffectConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// AppName gdata 存储使用的应用名，为空则为 "balloons"
	AppName string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	effectConfig   *config.EffectConfig
	entityManager  *ecs.EntityManager
	emitter        *effect.Emitter
	emitSystem     *systems.EmitSystem
	timelineSystem *systems.TimelineSystem
	renderSystem   *systems.RenderSystem
	settings       *game.SettingsManager
	verbose        bool
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 任何一个精灵图片无法解析都会让启动失败。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	effectConfig, err := LoadEffectConfig(cfg.EffectConfigPath)
	if err != nil {
		return nil, fmt.Errorf("效果配置加载失败: %w", err)
	}
	log.Printf("[Config] 效果配置: T=%.2fs, padding=%.0f, %d 种图片",
		effectConfig.TotalDuration, effectConfig.RightPadding, len(effectConfig.Variants))

	// 创建资源管理器
	resourceManager := game.NewResourceManager(embedded.FS())
	if err := resourceManager.LoadResourceConfig(ResourceConfigPath); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}
	if err := resourceManager.VerifyImages(effectConfig.Variants); err != nil {
		return nil, fmt.Errorf("气球图片校验失败: %w", err)
	}
	// 预加载到图片缓存，首次生成时不再解码
	if err := resourceManager.LoadResourceGroup(BalloonGroup); err != nil {
		return nil, fmt.Errorf("气球图片预加载失败: %w", err)
	}

	settings, err := game.NewSettingsManager(openStorage(cfg.AppName))
	if err != nil {
		return nil, fmt.Errorf("设置初始化失败: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("[App] Random seed: %d", seed)

	entityManager := ecs.NewEntityManager()
	host := entities.NewBalloonHost(entityManager, resourceManager, effectConfig.SpriteSize)
	emitter, err := effect.NewEmitter(effectConfig, host, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}

	bounds := timeline.NewRect(config.GameWindowWidth, config.GameWindowHeight)
	emitSystem := systems.NewEmitSystem(emitter, bounds, settings.EmitInterval(effectConfig.EmitInterval))
	if settings.GetSettings().Paused {
		emitSystem.Disable()
	}

	return &App{
		effectConfig:   effectConfig,
		entityManager:  entityManager,
		emitter:        emitter,
		emitSystem:     emitSystem,
		timelineSystem: systems.NewTimelineSystem(entityManager),
		renderSystem:   systems.NewRenderSystem(entityManager),
		settings:       settings,
		verbose:        cfg.Verbose,
	}, nil
}

// LoadEffectConfig 从磁盘路径或嵌入资源读取效果配置
func LoadEffectConfig(path string) (*config.EffectConfig, error) {
	if path != "" {
		return config.LoadEffectConfig(path)
	}
	data, err := embedded.ReadFile(config.DefaultEffectConfigPath)
	if err != nil {
		return nil, err
	}
	return config.ParseEffectConfig(data)
}

// openStorage 打开 gdata 存储，失败时返回 nil（设置只保存在内存中）
func openStorage(appName string) *gdata.Manager {
	if appName == "" {
		appName = "balloons"
	}
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: persistent storage unavailable: %v", err)
		return nil
	}
	return manager
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.handleInput()

	deltaTime := 1.0 / 60.0
	return a.Step(deltaTime)
}

// Step 推进一帧：生成、推进时间轴、清理完成的精灵
func (a *App) Step(deltaTime float64) error {
	if err := a.emitSystem.Update(deltaTime); err != nil {
		return err
	}
	a.timelineSystem.Update(deltaTime)
	a.entityManager.RemoveMarkedEntities()
	return nil
}

func (a *App) handleInput() {
	if utils.IsMobile() {
		a.handleTap(utils.JustTappedZone(config.GameWindowWidth, config.GameWindowHeight))
		return
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		a.AdjustInterval(-intervalStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		a.AdjustInterval(intervalStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.ToggleStats()
	}
}

// handleTap 移动端点击：顶部切换调试信息，左下减慢，右下加快
func (a *App) handleTap(zone utils.TapZone) {
	switch zone {
	case utils.TapZoneTop:
		a.ToggleStats()
	case utils.TapZoneLeft:
		a.AdjustInterval(intervalStep)
	case utils.TapZoneRight:
		a.AdjustInterval(-intervalStep)
	}
}

// TogglePause 暂停或恢复生成，已在播放的气球继续播放
func (a *App) TogglePause() {
	nowPaused := a.emitSystem.IsEnabled()
	if nowPaused {
		a.emitSystem.Disable()
	} else {
		a.emitSystem.Enable()
	}
	a.settings.SetPaused(nowPaused)
	a.saveSettings()
}

// AdjustInterval 调整生成间隔并保存
func (a *App) AdjustInterval(delta float64) {
	a.settings.SetEmitInterval(a.emitSystem.Interval() + delta)
	a.emitSystem.SetInterval(a.settings.EmitInterval(a.effectConfig.EmitInterval))
	a.saveSettings()
}

// ToggleStats 显示或隐藏调试信息
func (a *App) ToggleStats() {
	a.settings.SetShowStats(!a.settings.GetSettings().ShowStats)
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)
	a.renderSystem.Draw(screen)

	if a.settings.GetSettings().ShowStats {
		ebitenutil.DebugPrint(screen, a.StatsText())
	}
}

// StatsText 返回调试信息文本
func (a *App) StatsText() string {
	return fmt.Sprintf("TPS: %.0f\nActive: %d\nSpawned: %d\nCompleted: %d\nInterval: %.2fs\nPaused: %v",
		ebiten.ActualTPS(),
		a.timelineSystem.Active(),
		a.emitter.Spawned(),
		a.timelineSystem.Completed(),
		a.emitSystem.Interval(),
		!a.emitSystem.IsEnabled())
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// EntityManager 返回实体管理器
func (a *App) EntityManager() *ecs.EntityManager {
	return a.entityManager
}

// IsPaused 是否暂停生成
func (a *App) IsPaused() bool {
	return !a.emitSystem.IsEnabled()
}

// EmitInterval 返回当前生成间隔
func (a *App) EmitInterval() float64 {
	return a.emitSystem.Interval()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
