package timeline

import "sync"

// Completion 一次性完成通知
//
// Fire 无论被调用多少次，回调只执行一次，Done 通道只关闭一次。
type Completion struct {
	once     sync.Once
	done     chan struct{}
	callback func()
}

// NewCompletion 创建完成通知，callback 可为 nil
func NewCompletion(callback func()) *Completion {
	return &Completion{
		done:     make(chan struct{}),
		callback: callback,
	}
}

// Fire 触发完成，返回本次调用是否真正触发
func (c *Completion) Fire() bool {
	fired := false
	c.once.Do(func() {
		fired = true
		close(c.done)
		if c.callback != nil {
			c.callback()
		}
	})
	return fired
}

// Done 返回在完成时关闭的通道
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Fired 是否已经触发
func (c *Completion) Fired() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Playback 一次播放：时间轴 + 已用时间 + 完成通知
//
// 由渲染循环每帧调用 Advance 推进。播放开始后不能暂停、取消或倒退。
type Playback struct {
	timeline   *Timeline
	elapsed    float64
	completion *Completion
}

// Play 开始播放 tl，onComplete 在总时长到达时恰好调用一次
func Play(tl *Timeline, onComplete func()) *Playback {
	return &Playback{
		timeline:   tl,
		completion: NewCompletion(onComplete),
	}
}

// Timeline 返回正在播放的时间轴
func (pb *Playback) Timeline() *Timeline {
	return pb.timeline
}

// Elapsed 返回已用时间
func (pb *Playback) Elapsed() float64 {
	return pb.elapsed
}

// Completion 返回完成通知
func (pb *Playback) Completion() *Completion {
	return pb.completion
}

// State 返回当前时刻的状态
func (pb *Playback) State() State {
	return pb.timeline.Evaluate(pb.elapsed)
}

// Advance 推进 dt 秒，返回新状态以及本次推进是否触发了完成
func (pb *Playback) Advance(dt float64) (State, bool) {
	if dt > 0 && !pb.completion.Fired() {
		pb.elapsed += dt
		if pb.elapsed > pb.timeline.duration {
			pb.elapsed = pb.timeline.duration
		}
	}
	st := pb.timeline.Evaluate(pb.elapsed)
	fired := false
	if pb.timeline.IsComplete(pb.elapsed) {
		fired = pb.completion.Fire()
	}
	return st, fired
}
