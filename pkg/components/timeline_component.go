package components

import "github.com/gonewx/balloons/pkg/timeline"

// TimelineComponent 把一次时间轴播放绑定到实体上
//
// 工作流程：
//  1. entities.NewBalloonEntity 创建实体并开始播放
//  2. TimelineSystem 每帧推进 Playback，把求值结果写回位置/变换/透明度组件
//  3. 播放到总时长时触发一次完成回调，实体被标记删除
type TimelineComponent struct {
	Playback *timeline.Playback
}
