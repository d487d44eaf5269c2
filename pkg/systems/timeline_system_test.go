package systems

import (
	"math"
	"testing"

	"github.com/gonewx/balloons/pkg/components"
	"github.com/gonewx/balloons/pkg/ecs"
	"github.com/gonewx/balloons/pkg/timeline"
)

// addPlayingEntity 创建一个带完整组件的播放实体，完成时自我删除
func addPlayingEntity(t *testing.T, em *ecs.EntityManager, duration float64, completions *int) ecs.EntityID {
	t.Helper()
	base := timeline.State{
		Position:  timeline.Vec2{X: -1000, Y: -1000},
		Transform: timeline.Identity(),
		Opacity:   1,
	}
	tl, err := timeline.New(duration, timeline.Linear, base,
		timeline.LinearPosition("move", timeline.Vec2{X: 100, Y: 200}, timeline.Vec2{X: 100, Y: 0}, 0, duration, nil),
		timeline.FadeOpacity("fade", 0, 0, duration, nil),
	)
	if err != nil {
		t.Fatalf("timeline.New failed: %v", err)
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: base.Position.X, Y: base.Position.Y})
	em.AddComponent(id, &components.TransformComponent{Transform: base.Transform})
	em.AddComponent(id, &components.OpacityComponent{Alpha: base.Opacity})
	em.AddComponent(id, &components.TimelineComponent{
		Playback: timeline.Play(tl, func() {
			em.DestroyEntity(id)
			*completions++
		}),
	})
	return id
}

func TestTimelineSystem_WritesState(t *testing.T) {
	em := ecs.NewEntityManager()
	completions := 0
	id := addPlayingEntity(t, em, 1.0, &completions)
	system := NewTimelineSystem(em)

	system.Update(0.5)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if math.Abs(pos.X-100) > 1e-9 || math.Abs(pos.Y-100) > 1e-9 {
		t.Errorf("position at 0.5s = (%v, %v), want (100, 100)", pos.X, pos.Y)
	}
	op, _ := ecs.GetComponent[*components.OpacityComponent](em, id)
	if math.Abs(op.Alpha-0.5) > 1e-9 {
		t.Errorf("opacity at 0.5s = %v, want 0.5", op.Alpha)
	}
	if completions != 0 {
		t.Errorf("completed early")
	}
}

func TestTimelineSystem_CompletesOnce(t *testing.T) {
	em := ecs.NewEntityManager()
	completions := 0
	id := addPlayingEntity(t, em, 1.0, &completions)
	system := NewTimelineSystem(em)

	if n := system.Update(0.99); n != 0 {
		t.Fatalf("completed %d timelines before the end", n)
	}
	if n := system.Update(0.02); n != 1 {
		t.Fatalf("completed %d timelines at the end, want 1", n)
	}

	op, _ := ecs.GetComponent[*components.OpacityComponent](em, id)
	if op.Alpha != 0 {
		t.Errorf("final opacity = %v, want 0", op.Alpha)
	}

	// 帧末清理前再推进也不会重复完成
	if n := system.Update(0.1); n != 0 {
		t.Errorf("completion fired again: %d", n)
	}
	if completions != 1 {
		t.Errorf("completion callback ran %d times, want 1", completions)
	}

	em.RemoveMarkedEntities()
	if em.IsAlive(id) {
		t.Error("completed entity should be removed")
	}
	if system.Active() != 0 {
		t.Errorf("Active() = %d, want 0", system.Active())
	}
	if system.Completed() != 1 {
		t.Errorf("Completed() = %d, want 1", system.Completed())
	}
}

func TestTimelineSystem_IndependentPlaybacks(t *testing.T) {
	em := ecs.NewEntityManager()
	completions := 0
	short := addPlayingEntity(t, em, 1.0, &completions)
	long := addPlayingEntity(t, em, 2.0, &completions)
	system := NewTimelineSystem(em)

	system.Update(1.0)
	em.RemoveMarkedEntities()

	if em.IsAlive(short) {
		t.Error("short timeline should be finished")
	}
	if !em.IsAlive(long) {
		t.Fatal("long timeline should still be playing")
	}
	op, _ := ecs.GetComponent[*components.OpacityComponent](em, long)
	if math.Abs(op.Alpha-0.5) > 1e-9 {
		t.Errorf("long opacity = %v, want 0.5", op.Alpha)
	}
	if system.Active() != 1 {
		t.Errorf("Active() = %d, want 1", system.Active())
	}
}
