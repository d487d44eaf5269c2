package systems

import (
	"github.com/gonewx/balloons/pkg/components"
	"github.com/gonewx/balloons/pkg/ecs"
)

// TimelineSystem 推进所有时间轴播放并把结果写回组件
type TimelineSystem struct {
	entityManager *ecs.EntityManager
	completed     uint64
}

// NewTimelineSystem 创建时间轴系统
func NewTimelineSystem(em *ecs.EntityManager) *TimelineSystem {
	return &TimelineSystem{
		entityManager: em,
	}
}

// Update 推进 deltaTime 秒，返回本帧完成的播放数量
//
// 完成回调在这里触发，实体由回调标记删除，帧末统一清理。
func (s *TimelineSystem) Update(deltaTime float64) int {
	entities := ecs.GetEntitiesWith1[*components.TimelineComponent](s.entityManager)

	finished := 0
	for _, id := range entities {
		tc, ok := ecs.GetComponent[*components.TimelineComponent](s.entityManager, id)
		if !ok || tc.Playback == nil {
			continue
		}

		state, fired := tc.Playback.Advance(deltaTime)

		if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
			pos.X = state.Position.X
			pos.Y = state.Position.Y
		}
		if tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id); ok {
			tr.Transform = state.Transform
		}
		if op, ok := ecs.GetComponent[*components.OpacityComponent](s.entityManager, id); ok {
			op.Alpha = state.Opacity
		}

		if fired {
			finished++
		}
	}
	s.completed += uint64(finished)
	return finished
}

// Completed 返回累计完成的播放数量
func (s *TimelineSystem) Completed() uint64 {
	return s.completed
}

// Active 返回正在播放的数量
func (s *TimelineSystem) Active() int {
	return len(ecs.GetEntitiesWith1[*components.TimelineComponent](s.entityManager))
}
