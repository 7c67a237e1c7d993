// Package components 提供视图层复用的小部件：弹窗叠加与弹窗盒子。
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"podtui/internal/ui/styles"
)

// OverlayCentered 把弹窗内容居中叠加到背景内容上。
// screenHeight 为 0 时用背景内容自身的行数定位。
func OverlayCentered(baseContent, overlayContent string, screenWidth, screenHeight int) string {
	if overlayContent == "" {
		return baseContent
	}

	baseLines := strings.Split(baseContent, "\n")
	overlayLines := strings.Split(overlayContent, "\n")

	totalHeight := screenHeight
	if totalHeight <= 0 {
		totalHeight = len(baseLines)
	}

	overlayWidth := 0
	for _, line := range overlayLines {
		if w := lipgloss.Width(line); w > overlayWidth {
			overlayWidth = w
		}
	}

	insertLine := 0
	if totalHeight > len(overlayLines) {
		insertLine = (totalHeight - len(overlayLines)) / 2
	}
	leftPadding := 0
	if screenWidth > overlayWidth {
		leftPadding = (screenWidth - overlayWidth) / 2
	}

	for len(baseLines) < totalHeight {
		baseLines = append(baseLines, "")
	}

	var out strings.Builder
	padding := strings.Repeat(" ", leftPadding)
	for i, base := range baseLines {
		if i > 0 {
			out.WriteString("\n")
		}
		if j := i - insertLine; j >= 0 && j < len(overlayLines) {
			out.WriteString(padding)
			out.WriteString(overlayLines[j])
		} else {
			out.WriteString(base)
		}
	}
	return out.String()
}

// ModalBox 渲染一个带标题的圆角弹窗盒子，宽度固定由调用方给定。
func ModalBox(title, content string, width int) string {
	parts := []string{styles.TitleStyle.Render(title), ""}
	parts = append(parts, content)
	body := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return styles.DialogStyle.Width(width).Render(body)
}
