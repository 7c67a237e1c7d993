// Package styles 定义全局统一的 UI 样式
package styles

import "github.com/charmbracelet/lipgloss"

// 颜色常量
const (
	ColorPrimary   = "220" // 黄色 - 标题、高亮
	ColorSecondary = "81"  // 蓝色 - 键名、标签
	ColorSuccess   = "82"  // 绿色 - 成功、运行中
	ColorError     = "196" // 红色 - 错误
	ColorWarning   = "214" // 橙色 - 警告
	ColorMuted     = "245" // 灰色 - 次要信息、提示
	ColorText      = "252" // 白色 - 正常文本
	ColorBorder    = "240" // 深灰 - 边框
)

// ========== 通用基础样式 ==========

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimary)).
			Bold(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorText))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondary))

	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess)).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true)
)

// ========== 列表视图 ==========

var (
	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimary)).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess))

	DetailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted)).
			PaddingLeft(6)
)

// ========== 任务状态 ==========

var (
	StatusPendingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorMuted))

	StatusRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorWarning))

	StatusDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess))

	StatusFailedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorError))
)

// ========== 重建输出面板 ==========

var (
	GutterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorBorder))

	StderrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning))

	MatchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimary)).
			Underline(true)

	CurrentMatchStyle = lipgloss.NewStyle().
				Reverse(true).
				Bold(true)

	SidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color(ColorBorder)).
			PaddingRight(1)
)

// ========== 弹窗 ==========

var (
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(1, 2)

	ActiveRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimary)).
			Bold(true)

	FormErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))
)

// ========== 搜索与状态栏 ==========

var (
	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorSecondary)).
				Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimary))
)
