package timeline

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/fogleman/ease"
)

// ErrUnknownCurve 配置中引用了不存在的缓动曲线
var ErrUnknownCurve = errors.New("unknown easing curve")

// Curve 把归一化进度 [0,1] 映射为缓动后的进度
type Curve func(t float64) float64

// 与宿主平台一致的标准时间曲线
var (
	Linear    Curve = func(t float64) float64 { return clampUnit(t) }
	EaseIn          = CubicBezier(0.42, 0.0, 1.0, 1.0)
	EaseOut         = CubicBezier(0.0, 0.0, 0.58, 1.0)
	EaseInOut       = CubicBezier(0.42, 0.0, 0.58, 1.0)
	Default         = CubicBezier(0.25, 0.1, 0.25, 1.0)
)

// CubicBezier 返回由控制点 (x1,y1)、(x2,y2) 定义的时间曲线
// 曲线固定经过 (0,0) 和 (1,1)，给定 x 先求参数 u 再返回 y(u)。
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// 牛顿迭代，绝大多数情况下几步收敛
		for i := 0; i < 8; i++ {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// 导数过小时退回二分法
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for i := 0; i < 30; i++ {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

// namedCurves 配置文件中可用的曲线名
// 前五个与宿主平台的命名时间函数对应，其余来自 Penner 缓动族
var namedCurves = map[string]Curve{
	"linear":      Linear,
	"ease-in":     EaseIn,
	"ease-out":    EaseOut,
	"ease-in-out": EaseInOut,
	"default":     Default,

	"in-quad":        Curve(ease.InQuad),
	"out-quad":       Curve(ease.OutQuad),
	"in-out-quad":    Curve(ease.InOutQuad),
	"in-cubic":       Curve(ease.InCubic),
	"out-cubic":      Curve(ease.OutCubic),
	"in-out-cubic":   Curve(ease.InOutCubic),
	"in-quart":       Curve(ease.InQuart),
	"out-quart":      Curve(ease.OutQuart),
	"in-out-quart":   Curve(ease.InOutQuart),
	"in-sine":        Curve(ease.InSine),
	"out-sine":       Curve(ease.OutSine),
	"in-out-sine":    Curve(ease.InOutSine),
	"in-expo":        Curve(ease.InExpo),
	"out-expo":       Curve(ease.OutExpo),
	"in-circ":        Curve(ease.InCirc),
	"out-circ":       Curve(ease.OutCirc),
	"in-back":        Curve(ease.InBack),
	"out-back":       Curve(ease.OutBack),
	"in-out-back":    Curve(ease.InOutBack),
	"out-bounce":     Curve(ease.OutBounce),
	"out-elastic":    Curve(ease.OutElastic),
	"in-out-elastic": Curve(ease.InOutElastic),
}

// CurveByName 按名称查找缓动曲线（大小写不敏感，空串视为 default）
func CurveByName(name string) (Curve, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Default, nil
	}
	curve, ok := namedCurves[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
	return curve, nil
}

// CurveNames 返回所有可用的曲线名（无序）
func CurveNames() []string {
	names := make([]string, 0, len(namedCurves))
	for name := range namedCurves {
		names = append(names, name)
	}
	return names
}
