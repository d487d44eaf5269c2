package config

// 逻辑屏幕尺寸（手机竖屏），窗口缩放由 Ebitengine 处理
const (
	GameWindowWidth  = 375
	GameWindowHeight = 667
)

// GameWindowTitle 窗口标题
const GameWindowTitle = "Balloons"
