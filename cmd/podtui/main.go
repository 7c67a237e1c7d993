// podtui 扫描一棵 compose/Quadlet 目录树并帮操作员刷新或重建镜像。
// 默认是逐条询问的一次性模式，--tui 进全屏界面，--simulate 只渲染一次视图。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/joho/godotenv"

	"podtui/internal/app"
	"podtui/internal/config"
	"podtui/internal/discovery"
	"podtui/internal/docker"
	"podtui/internal/domain"
	"podtui/internal/i18n"
	"podtui/internal/interrupt"
	"podtui/internal/logs"
	"podtui/internal/oneshot"
	"podtui/internal/podman"
	"podtui/internal/rebuild"
	"podtui/internal/simulate"
	"podtui/internal/ui"
)

// stringList 可重复传入的命令行参数。
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "podtui:", err)
		os.Exit(1)
	}
}

func run() error {
	// .env 不存在不算错误
	_ = godotenv.Load()
	i18n.Init()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var includes, excludes, buildArgs stringList
	flag.Var(&includes, "include", "regex a path must match to be scanned (repeatable)")
	flag.Var(&excludes, "exclude", "regex that excludes matching paths, wins over -include (repeatable)")
	flag.Var(&buildArgs, "build-arg", "--build-arg passed through to podman build (repeatable)")

	var (
		verbosity    = flag.Int("v", 0, "log verbosity, 0-2")
		tuiMode      = flag.Bool("tui", false, "start the full-screen interface")
		rebuildAll   = flag.Bool("rebuild-all", false, "enqueue every discovered target for rebuild and show progress")
		noCache      = flag.Bool("no-cache", false, "pass --no-cache to podman build")
		bufferLines  = flag.Int("buffer-lines", cfg.OutputLimit, "per-job output buffer size in lines")
		podmanBin    = flag.String("podman-bin", cfg.PodmanBin, "podman executable")
		storageRoot  = flag.String("storage-root", cfg.StorageRoot, "containers storage root, used to stat image manifests")
		useDocker    = flag.Bool("docker", false, "query timestamps via the Docker Engine API instead of the podman CLI")
		simulateMode = flag.String("simulate", "", "render one view to stdout and exit: container, image, folder or dockerfile")
		fixturePath  = flag.String("fixture", "", "serve image timestamps from a JSON fixture file")
	)
	flag.Parse()

	root := "."
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}

	logger := logs.New(*verbosity)

	runtime, err := pickRuntime(cfg, *fixturePath, *useDocker, *podmanBin, *storageRoot, logger)
	if err != nil {
		return err
	}
	core, err := app.New(discovery.NewEngine(logger), runtime, logger)
	if err != nil {
		return err
	}
	runner := &rebuild.Runner{
		Podman:    *podmanBin,
		BuildArgs: buildArgs,
		NoCache:   *noCache,
		Readable:  runtime.FileExistsAndReadable,
	}
	scanOpts := domain.ScanOptions{
		Root:            root,
		IncludePatterns: includes,
		ExcludePatterns: excludes,
	}

	// 中断信号取消根上下文：跑着的子进程被杀掉，队列以取消收场
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-interrupt.Signals{}.Subscribe()
		cancel()
	}()

	switch {
	case *simulateMode != "":
		mode, err := simulate.ParseViewMode(*simulateMode)
		if err != nil {
			return err
		}
		return simulate.Run(ctx, os.Stdout, core, scanOpts, mode)

	case *tuiMode || *rebuildAll:
		model := ui.New(core, runner, logger, ui.Options{
			Scan:        scanOpts,
			OutputLimit: *bufferLines,
			Tick:        cfg.TickInterval,
			RebuildAll:  *rebuildAll,
		})
		_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		return err

	default:
		session := &oneshot.Session{
			Core:   core,
			Runner: runner,
			In:     oneshot.NewStdinReader(),
			Out:    os.Stdout,
			ErrOut: os.Stderr,
			Width:  terminalWidth,
			Logger: logger,
		}
		return session.Run(ctx, scanOpts)
	}
}

func pickRuntime(cfg *config.Config, fixture string, useDocker bool, bin, storageRoot string, logger *logs.Logger) (podman.Runtime, error) {
	if fixture != "" {
		f, err := podman.LoadFixture(fixture)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	if useDocker {
		c, err := docker.New(cfg.DockerHost, cfg.RequestTimeout, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return podman.NewCLI(bin, storageRoot, cfg.RequestTimeout, logger), nil
}

func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
