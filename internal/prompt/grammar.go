// Package prompt 实现交互提示的语法片段模型与宽度自适应格式化。
// 一条提示由有序片段构成；终端放不下时按确定性规则截断可缩短片段，
// 动作快捷键等强制片段永远原样保留。
package prompt

// Kind 片段的语法角色。Verbiage 与 UserChoice 是固定词汇，从不缩短。
type Kind int

const (
	KindVerbiage Kind = iota
	KindUserChoice
	KindImage
	KindPath
	KindContainerName
	KindFileName
)

// Fragment 提示里的一个文本片段。
type Fragment struct {
	Text          string // 原始文本
	Shortened     string // Format 填充的截断替代文本，空表示尚未格式化
	Pos           int
	Prefix        string
	Suffix        string
	Kind          Kind
	Shortenable   bool
	Visible       bool
	DefaultChoice bool // 空输入时选中的快捷键
}

// refreshChoices 重建提示的动作快捷键，N 为默认。
var refreshChoices = []string{"p", "N", "d", "b", "s", "?"}

// BuildRefreshPrompt 组装 "Refresh {image} from {dir}? p/N/d/b/s/?: " 的片段序列。
// 容器名片段不显示，但 display_info 需要时能从序列里取到。
func BuildRefreshPrompt(image, container, sourceDir string) []Fragment {
	frags := []Fragment{
		{Text: "Refresh", Pos: 0, Suffix: " ", Kind: KindVerbiage, Visible: true},
		{Text: image, Pos: 1, Suffix: " ", Kind: KindImage, Shortenable: true, Visible: true},
		{Text: "from", Pos: 2, Suffix: " ", Kind: KindVerbiage, Visible: true},
		{Text: sourceDir, Pos: 3, Suffix: "? ", Kind: KindPath, Shortenable: true, Visible: true},
		{Text: container, Pos: 4, Kind: KindContainerName, Shortenable: true, Visible: false},
	}
	for i, choice := range refreshChoices {
		suffix := "/"
		if i == len(refreshChoices)-1 {
			suffix = ": "
		}
		frags = append(frags, Fragment{
			Text:          choice,
			Pos:           5 + i,
			Suffix:        suffix,
			Kind:          KindUserChoice,
			Visible:       true,
			DefaultChoice: choice == "N",
		})
	}
	return frags
}

// DefaultChoice 返回默认快捷键（没有则空串）。
func DefaultChoice(frags []Fragment) string {
	for _, f := range frags {
		if f.DefaultChoice {
			return f.Text
		}
	}
	return ""
}

// ContainerName 取出隐藏的容器名片段。
func ContainerName(frags []Fragment) string {
	for _, f := range frags {
		if f.Kind == KindContainerName {
			return f.Text
		}
	}
	return ""
}
