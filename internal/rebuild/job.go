package rebuild

import "github.com/google/uuid"

// Status 单个任务的状态机，只前进不回退：
// Pending → Running → {Succeeded, Failed}。
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "Running"
	case StatusSucceeded:
		return "Done"
	case StatusFailed:
		return "Failed"
	default:
		return "Pending"
	}
}

// Terminal 是否已到终态。
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Spec 一个重建目标：哪个镜像、从哪个声明文件、在哪个目录。
type Spec struct {
	Image     string
	Container string // 可为空
	EntryPath string // 声明文件（compose/quadlet/Dockerfile）路径
	SourceDir string
}

// Job 队列中的一个任务。状态由事件消费方通过 Apply 推进，
// 输出缓冲由任务的流读取协程追加，渲染方只读快照。
type Job struct {
	ID     string
	Spec   Spec
	Status Status
	Output *OutputRing
	Err    string
}

// NewJob 创建 Pending 任务，输出缓冲容量 limit 行。
func NewJob(spec Spec, limit int) *Job {
	return &Job{
		ID:     uuid.NewString()[:8],
		Spec:   spec,
		Output: NewOutputRing(limit),
	}
}

// EventKind 队列发给应用核心的事件类型。
type EventKind int

const (
	EventJobStarted EventKind = iota
	EventJobOutput  // 输出缓冲有新内容，行本身在任务的环形缓冲里
	EventJobFinished
	EventQueueDone
)

// Event 任务生命周期事件。
type Event struct {
	Kind      EventKind
	Job       int    // jobs 切片下标
	Stream    Stream // EventJobOutput 的流标记
	Err       string // EventJobFinished 失败时的错误串
	Cancelled bool   // EventQueueDone：队列被中断而不是跑完
}

// Apply 把事件施加到任务列表。状态单调前进，终态后的事件被忽略。
func Apply(jobs []*Job, ev Event) {
	if ev.Job < 0 || ev.Job >= len(jobs) {
		return
	}
	job := jobs[ev.Job]
	switch ev.Kind {
	case EventJobStarted:
		if job.Status == StatusPending {
			job.Status = StatusRunning
		}
	case EventJobFinished:
		if job.Status.Terminal() {
			return
		}
		if ev.Err != "" {
			job.Status = StatusFailed
			job.Err = ev.Err
		} else {
			job.Status = StatusSucceeded
		}
	}
}
