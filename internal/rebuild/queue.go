package rebuild

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"podtui/internal/prompt"
)

// QueueCompletedMarker 最后一个任务输出里的队列完成标记行。
const QueueCompletedMarker = "Rebuild queue completed"

// autoSelectLine 非交互模式替操作员选择默认动作时写进转写的叙述行。
const autoSelectLine = "Auto-selecting 'b' (build)"

// narrationWidth 自动选择叙述里提示行的格式化宽度。
const narrationWidth = 100

// Runner 重建队列执行器。一次只跑一个任务：串行避免挤占本机 CPU，
// 也避免多个构建的终端输出互相穿插。
type Runner struct {
	Podman    string   // podman 可执行文件，空则用 "podman"
	BuildArgs []string // 传给 podman build 的 --build-arg
	NoCache   bool
	Readable  func(string) bool // 构建文件可读性检查，测试可替换
}

func (r *Runner) podmanBin() string {
	if r.Podman == "" {
		return "podman"
	}
	return r.Podman
}

// jobSink 把输出行追加进任务的环形缓冲，再给消费方递一条轻量通知。
// 追加从不等渲染方；通知递不出去（消费方已退场）就随取消一起放弃。
type jobSink struct {
	ctx    context.Context
	ring   *OutputRing
	events chan<- Event
	job    int
}

func (s *jobSink) Line(stream Stream, text string) {
	s.ring.Append(stream, text)
	if s.events == nil {
		return
	}
	select {
	case s.events <- Event{Kind: EventJobOutput, Job: s.job, Stream: stream}:
	case <-s.ctx.Done():
	}
}

// Run 逐个执行任务并把生命周期事件发给 events。
// 中断策略：正在跑的子进程被 ctx 取消杀掉，排队中的任务不再启动，
// 队列以 Cancelled 收场。单个任务失败不终止队列。
func (r *Runner) Run(ctx context.Context, jobs []*Job, events chan<- Event) {
	send := func(ev Event) {
		select {
		case events <- ev:
		case <-ctx.Done():
			// 消费方退场后只为取消路径保留最后的 QueueDone 尝试
			select {
			case events <- ev:
			default:
			}
		}
	}

	last := -1
	for i, job := range jobs {
		if ctx.Err() != nil {
			send(Event{Kind: EventQueueDone, Cancelled: true})
			return
		}
		send(Event{Kind: EventJobStarted, Job: i})

		err := r.runJob(ctx, i, job, events)
		if err != nil {
			job.Output.Append(StreamStderr, err.Error())
			send(Event{Kind: EventJobOutput, Job: i, Stream: StreamStderr})
			send(Event{Kind: EventJobFinished, Job: i, Err: err.Error()})
			if ctx.Err() != nil {
				send(Event{Kind: EventQueueDone, Cancelled: true})
				return
			}
		} else {
			send(Event{Kind: EventJobFinished, Job: i})
		}
		last = i
	}

	if last >= 0 {
		jobs[last].Output.Append(StreamStdout, QueueCompletedMarker)
		send(Event{Kind: EventJobOutput, Job: last, Stream: StreamStdout})
	}
	send(Event{Kind: EventQueueDone})
}

// runJob 执行一个任务。Dockerfile 条目直接构建；
// compose/Quadlet 条目先把提示与自动选择写进转写，再走默认的构建动作。
func (r *Runner) runJob(ctx context.Context, idx int, job *Job, events chan<- Event) error {
	sink := &jobSink{ctx: ctx, ring: job.Output, events: events, job: idx}
	spec := job.Spec

	if strings.HasPrefix(filepath.Base(spec.EntryPath), "Dockerfile") {
		if strings.TrimSpace(spec.Image) == "" {
			return fmt.Errorf("image name is required for Dockerfile rebuild of %s", spec.EntryPath)
		}
		sink.Line(StreamStdout, fmt.Sprintf("Building image %s from %s", spec.Image, spec.EntryPath))
		return r.buildDockerfile(ctx, sink, spec.Image, spec.EntryPath, filepath.Dir(spec.EntryPath))
	}

	frags := prompt.BuildRefreshPrompt(spec.Image, spec.Container, spec.SourceDir)
	sink.Line(StreamStdout, prompt.Format(frags, narrationWidth))
	sink.Line(StreamStdout, autoSelectLine)

	return r.refresh(ctx, sink, spec)
}

// refresh 默认动作：有构建文件就构建，没有就刷新上游镜像。
func (r *Runner) refresh(ctx context.Context, sink Sink, spec Spec) error {
	plan := ResolveBuildPlan(spec, r.Readable)
	switch {
	case plan.Dockerfile != "":
		return r.buildDockerfile(ctx, sink, spec.Image, plan.Dockerfile, plan.Dir)
	case plan.Makefile:
		return r.runMake(ctx, sink, plan.Dir)
	default:
		return r.Pull(ctx, sink, spec.Image)
	}
}

// Pull 刷新一个上游镜像，输出写到 sink。一次性模式也直接用。
func (r *Runner) Pull(ctx context.Context, sink Sink, image string) error {
	return execStream(ctx, sink, r.podmanBin(), "pull", image)
}

// Build 按目标的构建计划构建。没有任何构建文件时报错，由调用方提示操作员。
func (r *Runner) Build(ctx context.Context, sink Sink, spec Spec) error {
	plan := ResolveBuildPlan(spec, r.Readable)
	switch {
	case plan.Dockerfile != "":
		return r.buildDockerfile(ctx, sink, spec.Image, plan.Dockerfile, plan.Dir)
	case plan.Makefile:
		return r.runMake(ctx, sink, plan.Dir)
	default:
		return fmt.Errorf("no Dockerfile or Makefile found for %s in %s", spec.Image, plan.Dir)
	}
}

// buildDockerfile 先 pull 基础镜像再 podman build。
func (r *Runner) buildDockerfile(ctx context.Context, sink Sink, image, dockerfile, dir string) error {
	base, err := BaseImage(dockerfile)
	if err != nil {
		return err
	}
	if base != "" {
		if err := execStream(ctx, sink, r.podmanBin(), "pull", base); err != nil {
			return err
		}
	}

	args := []string{"build", "-t", image, "-f", dockerfile}
	for _, a := range r.BuildArgs {
		args = append(args, "--build-arg", a)
	}
	if r.NoCache {
		args = append(args, "--no-cache")
	}
	args = append(args, dir)
	return execStream(ctx, sink, r.podmanBin(), args...)
}

// runMake make -C dir clean 再 make -C dir。
func (r *Runner) runMake(ctx context.Context, sink Sink, dir string) error {
	if err := execStream(ctx, sink, "make", "-C", dir, "clean"); err != nil {
		return err
	}
	return execStream(ctx, sink, "make", "-C", dir)
}
