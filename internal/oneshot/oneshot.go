// Package oneshot 实现不进 TUI 的传统交互模式：扫描目录树，
// 对每条镜像声明用宽度自适应的提示逐个询问操作员怎么处理。
package oneshot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"podtui/internal/app"
	"podtui/internal/domain"
	"podtui/internal/logs"
	"podtui/internal/prompt"
	"podtui/internal/rebuild"
)

// LineReader 读一行操作员输入。生产实现包 stdin，测试喂脚本化输入。
type LineReader interface {
	ReadLine() (string, error)
}

// StdinReader 从标准输入读行。
type StdinReader struct {
	r *bufio.Reader
}

// NewStdinReader 创建标准输入读取器。
func NewStdinReader() *StdinReader {
	return &StdinReader{r: bufio.NewReader(os.Stdin)}
}

func (s *StdinReader) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Session 一次 one-shot 运行。
type Session struct {
	Core   *app.Core
	Runner *rebuild.Runner
	In     LineReader
	Out    io.Writer
	ErrOut io.Writer
	Width  func() int // 终端宽度来源
	Logger *logs.Logger
}

func (s *Session) width() int {
	if s.Width != nil {
		if w := s.Width(); w > 0 {
			return w
		}
	}
	return 80
}

// Run 扫描并逐条询问。每个镜像名只询问一次；'s' 把该镜像名后续全部跳过。
// 操作员中断（输入流关闭）时干净返回。
func (s *Session) Run(ctx context.Context, opts domain.ScanOptions) error {
	result, err := s.Core.Scan(ctx, opts)
	if err != nil {
		return err
	}

	processed := make(map[string]bool)
	for _, img := range result.Images {
		if processed[img.Image] {
			continue
		}
		if err := s.promptOne(ctx, img); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		processed[img.Image] = true
	}
	return nil
}

// promptOne 对一条声明循环提问，直到操作员给出一个结束该条目的选择。
func (s *Session) promptOne(ctx context.Context, img domain.DiscoveredImage) error {
	frags := prompt.BuildRefreshPrompt(img.Image, img.Container, img.SourceDir)

	for {
		fmt.Fprint(s.Out, prompt.Format(frags, s.width()))
		line, err := s.In.ReadLine()
		if err != nil {
			fmt.Fprintln(s.Out)
			return err
		}

		choice := strings.TrimSpace(line)
		if choice == "" {
			choice = prompt.DefaultChoice(frags)
		}

		switch choice {
		case "p":
			if err := s.pull(ctx, img.Image); err != nil {
				fmt.Fprintf(s.ErrOut, "Error pulling image: %v\n", err)
			}
			return nil
		case "N":
			return nil
		case "d":
			s.displayInfo(ctx, img)
		case "b":
			if err := s.build(ctx, img); err != nil {
				fmt.Fprintf(s.ErrOut, "Error building image: %v\n", err)
			}
			return nil
		case "s":
			// 上层按镜像名去重，这里直接结束该条目即可
			return nil
		case "?":
			s.printHelp()
		default:
			fmt.Fprintln(s.ErrOut, "Invalid input. Please enter p/N/d/b/s/?: ")
		}
	}
}

func (s *Session) sink() rebuild.Sink {
	return rebuild.WriterSink{W: s.Out}
}

func (s *Session) pull(ctx context.Context, image string) error {
	return s.Runner.Pull(ctx, s.sink(), image)
}

func (s *Session) build(ctx context.Context, img domain.DiscoveredImage) error {
	return s.Runner.Build(ctx, s.sink(), rebuild.Spec{
		Image:     img.Image,
		Container: img.Container,
		EntryPath: img.EntryPath,
		SourceDir: img.SourceDir,
	})
}

// displayInfo 打印镜像的基础信息、两个时间戳与构建文件有无。
func (s *Session) displayInfo(ctx context.Context, img domain.DiscoveredImage) {
	fmt.Fprintf(s.Out, "Image: %s\n", img.Image)
	fmt.Fprintf(s.Out, "Container name: %s\n", img.Container)
	fmt.Fprintf(s.Out, "Compose file: %s\n", img.EntryPath)

	rt := s.Core.Runtime()
	if created, err := rt.ImageCreated(ctx, img.Image); err != nil {
		fmt.Fprintf(s.Out, "Created: Error getting creation time - %v\n", err)
	} else {
		fmt.Fprintf(s.Out, "Created: %s\n", app.FormatAgo(created, app.Now()))
	}
	if pulled, err := rt.ImageModified(ctx, img.Image); err != nil {
		fmt.Fprintf(s.Out, "Pulled: Error getting pull time - %v\n", err)
	} else {
		fmt.Fprintf(s.Out, "Pulled: %s\n", app.FormatAgo(pulled, app.Now()))
	}

	fmt.Fprintf(s.Out, "Dockerfile exists: %t\n", rt.FileExistsAndReadable(filepath.Join(img.SourceDir, "Dockerfile")))
	fmt.Fprintf(s.Out, "Makefile exists: %t\n", rt.FileExistsAndReadable(filepath.Join(img.SourceDir, "Makefile")))
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.Out, "p = Pull image from upstream.")
	fmt.Fprintln(s.Out, "N = Do nothing, skip this image.")
	fmt.Fprintln(s.Out, "d = Display info (image name, docker-compose.yml path, upstream img create date, and img on-disk modify date).")
	fmt.Fprintln(s.Out, "b = Build image from the Dockerfile residing in same path as the docker-compose.yml.")
	fmt.Fprintln(s.Out, "s = Skip all subsequent images with this same name (regardless of container name).")
	fmt.Fprintln(s.Out, "? = Display this help.")
}
