// Package rebuild 实现重建任务队列：逐个跑外部 build/pull 进程，
// 并发捕获 stdout/stderr，把输出写进每任务的有界环形缓冲。
package rebuild

import "sync"

// Stream 输出流标记。
type Stream int

const (
	StreamStdout Stream = iota
	StreamStderr
)

func (s Stream) String() string {
	if s == StreamStderr {
		return "stderr"
	}
	return "stdout"
}

// Line 一条带流标记的输出。
type Line struct {
	Stream Stream
	Text   string
}

// OutputRing 固定容量的输出缓冲，超限从头部淘汰（丢最旧）。
// 两个流读取协程都会追加，内部自己加锁；追加是纯数据操作，从不等渲染方。
type OutputRing struct {
	mu    sync.Mutex
	limit int
	lines []Line
}

// NewOutputRing 创建容量为 limit 的缓冲。limit 小于 1 时按 1 处理。
func NewOutputRing(limit int) *OutputRing {
	if limit < 1 {
		limit = 1
	}
	return &OutputRing{limit: limit}
}

// Append 追加一行，必要时淘汰最旧的一行。
func (r *OutputRing) Append(stream Stream, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, Line{Stream: stream, Text: text})
	if len(r.lines) > r.limit {
		// 淘汰后整体前移，容量保持有界
		copy(r.lines, r.lines[len(r.lines)-r.limit:])
		r.lines = r.lines[:r.limit]
	}
}

// Snapshot 返回当前内容的副本，渲染方只读快照。
func (r *OutputRing) Snapshot() []Line {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Line, len(r.lines))
	copy(out, r.lines)
	return out
}

// Len 当前行数。
func (r *OutputRing) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lines)
}

// Limit 容量上限。
func (r *OutputRing) Limit() int {
	return r.limit
}
