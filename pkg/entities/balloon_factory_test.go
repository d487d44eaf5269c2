package entities

import (
	"errors"
	"testing"

	"github.com/gonewx/balloons/pkg/components"
	"github.com/gonewx/balloons/pkg/config"
	"github.com/gonewx/balloons/pkg/ecs"
	"github.com/gonewx/balloons/pkg/effect"
	"github.com/gonewx/balloons/pkg/game"
	"github.com/gonewx/balloons/pkg/timeline"
	"github.com/hajimehoshi/ebiten/v2"
)

// stubLoader 只认识 known 中的资源 ID，返回 nil 图片（测试不需要 GPU）
type stubLoader struct {
	known map[string]bool
	calls int
}

func (l *stubLoader) LoadImageByID(id string) (*ebiten.Image, error) {
	l.calls++
	if !l.known[id] {
		return nil, game.ErrImageNotFound
	}
	return nil, nil
}

func newTestTimeline(t *testing.T) *timeline.Timeline {
	t.Helper()
	base := timeline.State{
		Position:  timeline.Vec2{X: -1000, Y: -1000},
		Transform: timeline.Translation(42),
		Opacity:   1,
	}
	tl, err := timeline.New(1.0, timeline.Linear, base,
		timeline.LinearPosition("move", timeline.Vec2{X: 0, Y: 100}, timeline.Vec2{X: 0, Y: 0}, 0, 1, nil),
		timeline.FadeOpacity("fade", 0, 0.5, 0.5, nil),
	)
	if err != nil {
		t.Fatalf("timeline.New failed: %v", err)
	}
	return tl
}

func TestNewBalloonEntity_InitialComponents(t *testing.T) {
	em := ecs.NewEntityManager()
	loader := &stubLoader{known: map[string]bool{"IMAGE_BALLOON1": true}}
	size := config.SpriteSize{Width: 40, Height: 40}

	id, err := NewBalloonEntity(em, loader, "IMAGE_BALLOON1", size, newTestTimeline(t), nil)
	if err != nil {
		t.Fatalf("NewBalloonEntity failed: %v", err)
	}

	sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, id)
	if !ok {
		t.Fatal("实体缺少 SpriteComponent")
	}
	if sprite.ImageID != "IMAGE_BALLOON1" || sprite.Width != 40 || sprite.Height != 40 {
		t.Errorf("unexpected sprite: %+v", sprite)
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		t.Fatal("实体缺少 PositionComponent")
	}
	if pos.X != -1000 || pos.Y != -1000 {
		t.Errorf("initial position = (%v, %v), want (-1000, -1000)", pos.X, pos.Y)
	}

	tr, ok := ecs.GetComponent[*components.TransformComponent](em, id)
	if !ok {
		t.Fatal("实体缺少 TransformComponent")
	}
	if tr.Transform.Depth != 42 {
		t.Errorf("depth = %v, want 42", tr.Transform.Depth)
	}

	op, ok := ecs.GetComponent[*components.OpacityComponent](em, id)
	if !ok || op.Alpha != 1 {
		t.Errorf("initial opacity = %+v, want 1", op)
	}

	tc, ok := ecs.GetComponent[*components.TimelineComponent](em, id)
	if !ok || tc.Playback == nil {
		t.Fatal("实体缺少 TimelineComponent")
	}
	if tc.Playback.Elapsed() != 0 {
		t.Errorf("playback should start at 0, got %v", tc.Playback.Elapsed())
	}
}

func TestNewBalloonEntity_UnknownImage(t *testing.T) {
	em := ecs.NewEntityManager()
	loader := &stubLoader{known: map[string]bool{}}

	_, err := NewBalloonEntity(em, loader, "IMAGE_MISSING", config.SpriteSize{Width: 40, Height: 40},
		newTestTimeline(t), nil)
	if !errors.Is(err, game.ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
	if em.EntityCount() != 0 {
		t.Errorf("no entity should be created, got %d", em.EntityCount())
	}
}

func TestNewBalloonEntity_CompletionDestroysOnce(t *testing.T) {
	em := ecs.NewEntityManager()
	loader := &stubLoader{known: map[string]bool{"IMAGE_BALLOON2": true}}

	completions := 0
	id, err := NewBalloonEntity(em, loader, "IMAGE_BALLOON2", config.SpriteSize{Width: 40, Height: 40},
		newTestTimeline(t), func() { completions++ })
	if err != nil {
		t.Fatalf("NewBalloonEntity failed: %v", err)
	}

	tc, _ := ecs.GetComponent[*components.TimelineComponent](em, id)

	tc.Playback.Advance(0.5)
	if em.IsPendingDestroy(id) {
		t.Fatal("entity destroyed before the timeline finished")
	}

	_, fired := tc.Playback.Advance(0.6)
	if !fired {
		t.Fatal("completion should fire at the end of the timeline")
	}
	if !em.IsPendingDestroy(id) {
		t.Error("entity should be marked for destruction on completion")
	}

	tc.Playback.Advance(1)
	if completions != 1 {
		t.Errorf("onComplete called %d times, want 1", completions)
	}

	em.RemoveMarkedEntities()
	if em.IsAlive(id) {
		t.Error("entity should be removed after RemoveMarkedEntities")
	}
}

func TestBalloonHost_ImplementsEmitterHost(t *testing.T) {
	em := ecs.NewEntityManager()
	loader := &stubLoader{known: map[string]bool{"IMAGE_BALLOON1": true}}
	var host effect.Host = NewBalloonHost(em, loader, config.SpriteSize{Width: 40, Height: 40})

	cfg := config.DefaultEffectConfig()
	cfg.Variants = []string{"IMAGE_BALLOON1"}
	emitter, err := effect.NewEmitter(cfg, host, nil)
	if err != nil {
		t.Fatalf("NewEmitter failed: %v", err)
	}

	token, err := emitter.Spawn(timeline.NewRect(375, 667), "IMAGE_BALLOON1")
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if !em.IsAlive(ecs.EntityID(token)) {
		t.Errorf("token %d does not name a live entity", token)
	}

	if _, err := emitter.Spawn(timeline.NewRect(375, 667), "IMAGE_BALLOON9"); !errors.Is(err, game.ErrImageNotFound) {
		t.Errorf("expected ErrImageNotFound, got %v", err)
	}
	if em.EntityCount() != 1 {
		t.Errorf("entity count = %d, want 1", em.EntityCount())
	}
}
