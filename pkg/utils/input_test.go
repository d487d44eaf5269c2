package utils

import "testing"

func TestClassifyTap(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want TapZone
	}{
		{"顶部条带", 200, 50, TapZoneTop},
		{"左下", 10, 400, TapZoneLeft},
		{"右下", 300, 400, TapZoneRight},
		{"中线归右", 187, 400, TapZoneRight},
		{"屏幕外", -1, 400, TapZoneNone},
		{"超出底部", 100, 667, TapZoneNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyTap(tt.x, tt.y, 375, 667); got != tt.want {
				t.Errorf("ClassifyTap(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
