package effect

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/gonewx/balloons/pkg/config"
	"github.com/gonewx/balloons/pkg/timeline"
)

// ImageRef 精灵图片资源 ID（如 "IMAGE_BALLOON3"）
type ImageRef string

// SpriteToken 已生成精灵的句柄
type SpriteToken uint64

// Host 承载精灵的宿主
//
// Attach 必须先解析图片，解析失败时不创建任何东西并返回错误；
// 成功时创建精灵、立即开始播放 tl，并在播放完成时恰好调用一次 onComplete。
// 精灵的移除由宿主负责。
type Host interface {
	Attach(image ImageRef, tl *timeline.Timeline, onComplete func()) (SpriteToken, error)
}

// Emitter 气球生成器
//
// 每次 Spawn 构建一条独立的时间轴交给宿主播放，立即返回。
// 随机源由 Emitter 独占，不与其他生成器共享。
type Emitter struct {
	builder    *Builder
	host       Host
	rng        *rand.Rand
	variants   []ImageRef
	onComplete func(SpriteToken)
	spawned    uint64
}

// NewEmitter 创建生成器
// rng 为 nil 时使用随机种子
func NewEmitter(cfg *config.EffectConfig, host Host, rng *rand.Rand) (*Emitter, error) {
	builder, err := NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	variants := make([]ImageRef, len(cfg.Variants))
	for i, v := range cfg.Variants {
		variants[i] = ImageRef(v)
	}
	return &Emitter{
		builder:  builder,
		host:     host,
		rng:      rng,
		variants: variants,
	}, nil
}

// OnComplete 设置精灵播放完成时的回调
func (e *Emitter) OnComplete(fn func(SpriteToken)) {
	e.onComplete = fn
}

// Builder 返回时间轴构建器
func (e *Emitter) Builder() *Builder {
	return e.builder
}

// Spawned 返回成功生成的精灵数量
func (e *Emitter) Spawned() uint64 {
	return e.spawned
}

// PickVariant 均匀随机选择一个图片
func (e *Emitter) PickVariant() ImageRef {
	return e.variants[e.rng.Intn(len(e.variants))]
}

// Emit 随机选择图片并生成一个精灵
func (e *Emitter) Emit(bounds timeline.Rect) (SpriteToken, error) {
	return e.Spawn(bounds, e.PickVariant())
}

// Spawn 在 bounds 区域内用 image 生成一个精灵并开始播放
//
// 唯一的错误来源是图片无法解析，这属于配置错误，调用方应直接上报。
func (e *Emitter) Spawn(bounds timeline.Rect, image ImageRef) (SpriteToken, error) {
	tl, _, err := e.builder.Build(bounds, e.rng)
	if err != nil {
		return 0, err
	}

	var token SpriteToken
	token, err = e.host.Attach(image, tl, func() {
		if e.onComplete != nil {
			e.onComplete(token)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("spawn %s: %w", image, err)
	}
	e.spawned++
	if e.spawned%100 == 0 {
		log.Printf("[Emitter] %d sprites spawned", e.spawned)
	}
	return token, nil
}
