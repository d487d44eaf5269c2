// Package utils 提供平台相关的工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TapZone 屏幕点击区域
type TapZone int

const (
	// TapZoneNone 没有点击
	TapZoneNone TapZone = iota
	// TapZoneTop 顶部条带
	TapZoneTop
	// TapZoneLeft 下方左半边
	TapZoneLeft
	// TapZoneRight 下方右半边
	TapZoneRight
)

// topBandRatio 顶部条带占屏幕高度的比例
const topBandRatio = 0.15

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// ClassifyTap 把逻辑屏幕坐标 (x, y) 划分到点击区域
func ClassifyTap(x, y, width, height int) TapZone {
	if x < 0 || y < 0 || x >= width || y >= height {
		return TapZoneNone
	}
	if float64(y) < float64(height)*topBandRatio {
		return TapZoneTop
	}
	if x < width/2 {
		return TapZoneLeft
	}
	return TapZoneRight
}

// JustTappedZone 返回本帧点击落在的区域
func JustTappedZone(width, height int) TapZone {
	tapped, x, y := IsJustTouchedOrClicked()
	if !tapped {
		return TapZoneNone
	}
	return ClassifyTap(x, y, width, height)
}
