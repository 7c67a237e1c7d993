package i18n

var zhMessages = &Messages{
	AppTitle: "podtui",
	Scanning: "正在扫描镜像声明...",
	ScanFail: "扫描失败",
	NoItems:  "没有发现镜像声明",
	Quit:     "退出",
	Back:     "返回",
	Help:     "帮助",
	Search:   "搜索",
	Export:   "导出日志",

	ViewContainers:  "按容器名",
	ViewImages:      "按镜像名",
	ViewFolders:     "按目录",
	ViewDockerfiles: "按 Dockerfile",
	ViewMakefiles:   "按 Makefile",

	Selected:    "已选",
	SelectAll:   "全选",
	Copied:      "已复制到剪贴板",
	Expand:      "详情",
	Rebuild:     "重建",
	NothingToDo: "没有选中任何重建目标",

	StatusPending: "等待",
	StatusRunning: "运行中",
	StatusDone:    "完成",
	StatusFailed:  "失败",

	JobLabel:       "任务:",
	StatusLabel:    "状态:",
	ImageLabel:     "镜像:",
	ContainerLabel: "容器:",
	SourceLabel:    "目录:",
	QueueDone:      "重建队列已结束",
	QueueCancelled: "重建队列已取消",
	Exported:       "Exported rebuild log to",
	NoMatches:      "没有匹配",

	ViewOptionsTitle: "视图选择 (Enter=选择, Esc=关闭)",
	WorkQueueTitle:   "工作队列 (Esc=关闭)",
	ExportTitle:      "导出重建日志",
	ExportHint:       "只接受相对路径 (Enter=写入, Esc=取消)",

	CreatedLabel:    "创建:",
	PulledLabel:     "拉取:",
	DockerfileLabel: "Dockerfile:",
	MakefileLabel:   "Makefile:",
}
