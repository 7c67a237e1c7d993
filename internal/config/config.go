package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config 描述 podtui 运行所需的基础配置。
// 只关心 podman 调用方式与界面刷新参数，扫描路径等由命令行参数决定。
type Config struct {
	PodmanBin      string        // podman 可执行文件，默认 PATH 中的 "podman"
	StorageRoot    string        // 本地镜像存储根目录，用于 stat manifest 修改时间
	DockerHost     string        // 使用 Docker Engine API 变体时的守护进程地址
	RequestTimeout time.Duration // 与容器运行时通信的默认超时时间
	TickInterval   time.Duration // MVU 循环的定时刷新间隔
	OutputLimit    int           // 单个重建任务输出环形缓冲的默认行数上限
}

// DefaultOutputLimit 重建输出缓冲的默认行数。
const DefaultOutputLimit = 2000

// DefaultTickInterval 界面定时刷新间隔。
const DefaultTickInterval = 250 * time.Millisecond

// Load 从环境变量加载配置，并填充合理默认值。
func Load() (*Config, error) {
	cfg := &Config{
		PodmanBin:      envOr("PODTUI_PODMAN_BIN", "podman"),
		DockerHost:     os.Getenv("DOCKER_HOST"),
		RequestTimeout: 10 * time.Second,
		TickInterval:   DefaultTickInterval,
		OutputLimit:    DefaultOutputLimit,
	}

	cfg.StorageRoot = os.Getenv("PODTUI_STORAGE_ROOT")
	if cfg.StorageRoot == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.StorageRoot = filepath.Join(home, ".local", "share", "containers", "storage")
		}
	}

	if raw := os.Getenv("PODTUI_OUTPUT_LIMIT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.OutputLimit = n
		}
	}

	if raw := os.Getenv("PODTUI_REQUEST_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
