package ui

import (
	"time"

	"podtui/internal/domain"
	"podtui/internal/rebuild"
)

// scanDoneMsg 后台扫描命令的结果。
type scanDoneMsg struct {
	result      *domain.DiscoveryResult
	dockerfiles []domain.DockerfileInfo
	makefiles   []domain.MakefileInfo
	err         error
}

// tickMsg 定时刷新。重建期间用它驱动输出面板重绘。
type tickMsg time.Time

// rebuildEventMsg 队列执行器发来的一条生命周期事件。
type rebuildEventMsg rebuild.Event

// detailsMsg 展开行的镜像详情查询结果。
type detailsMsg struct {
	row     int
	details domain.ImageDetails
}

// clearStatusMsg 状态条消息到期。携带代号防止清掉更新的消息。
type clearStatusMsg struct {
	gen int
}
