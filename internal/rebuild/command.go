package rebuild

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Sink 接收带流标记的输出行。队列模式写环形缓冲，一次性模式直接写终端。
type Sink interface {
	Line(stream Stream, text string)
}

// WriterSink 把输出行原样写到 io.Writer，一次性 CLI 路径用。
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Line(_ Stream, text string) {
	fmt.Fprintln(s.W, text)
}

// execStream 跑一条外部命令，stdout/stderr 各一个读取协程并发转发到 sink，
// 任何一个流都不会饿死另一个。先回显 "$ cmd args..."，转写保持自明。
func execStream(ctx context.Context, sink Sink, name string, args ...string) error {
	sink.Line(StreamStdout, "$ "+name+" "+strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("pipe stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("pipe stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn %s: %w", name, err)
	}

	g := new(errgroup.Group)
	g.Go(func() error { return forwardLines(stdout, StreamStdout, sink) })
	g.Go(func() error { return forwardLines(stderr, StreamStderr, sink) })
	readErr := g.Wait()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("Command '%s' failed with status %d", name, exitErr.ExitCode())
		}
		return fmt.Errorf("run %s: %w", name, err)
	}
	return readErr
}

func forwardLines(r io.Reader, stream Stream, sink Sink) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		sink.Line(stream, sc.Text())
	}
	// 子进程被杀时管道读错误是预期内的，退出码那边已经报告
	if err := sc.Err(); err != nil && !errors.Is(err, io.ErrClosedPipe) {
		return fmt.Errorf("read %s: %w", stream, err)
	}
	return nil
}
