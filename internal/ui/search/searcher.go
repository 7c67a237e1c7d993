// Package search 为重建输出面板提供正则搜索。
// 匹配按行建索引，渲染方按行取命中区间做高亮。
package search

import (
	"regexp"
	"strings"
)

// Match 一个命中：行号与行内字节区间，均为 0-based。
type Match struct {
	Line  int
	Start int
	End   int
}

// Searcher 在一组输出行上的正则搜索状态。
type Searcher struct {
	query   string
	re      *regexp.Regexp
	matches []Match
	byLine  map[int][]int // 行号 → matches 下标
	current int           // -1 表示无当前命中
	err     error
}

// New 创建空搜索器。
func New() *Searcher {
	return &Searcher{current: -1}
}

// Search 编译 query 并扫描 lines。模式非法时保留错误、清空命中。
func (s *Searcher) Search(lines []string, query string) error {
	s.query = query
	s.re = nil
	s.matches = nil
	s.byLine = nil
	s.current = -1
	s.err = nil

	if query == "" {
		return nil
	}
	re, err := regexp.Compile(query)
	if err != nil {
		s.err = err
		return err
	}
	s.re = re
	s.scan(lines)
	if len(s.matches) > 0 {
		s.current = 0
	}
	return nil
}

// Rescan 输出有新行后重扫。当前命中若仍存在（同行同起点）则保持，
// 否则退到第一个命中。
func (s *Searcher) Rescan(lines []string) {
	if s.re == nil {
		return
	}
	var keepLine, keepStart int
	keep := false
	if m := s.Current(); m != nil {
		keepLine, keepStart = m.Line, m.Start
		keep = true
	}

	s.matches = nil
	s.byLine = nil
	s.scan(lines)

	s.current = -1
	if len(s.matches) == 0 {
		return
	}
	s.current = 0
	if keep {
		for i, m := range s.matches {
			if m.Line == keepLine && m.Start == keepStart {
				s.current = i
				break
			}
		}
	}
}

func (s *Searcher) scan(lines []string) {
	s.byLine = make(map[int][]int)
	for lineIdx, line := range lines {
		for _, loc := range s.re.FindAllStringIndex(line, -1) {
			s.byLine[lineIdx] = append(s.byLine[lineIdx], len(s.matches))
			s.matches = append(s.matches, Match{Line: lineIdx, Start: loc[0], End: loc[1]})
		}
	}
}

// Clear 清除搜索状态。
func (s *Searcher) Clear() {
	s.query = ""
	s.re = nil
	s.matches = nil
	s.byLine = nil
	s.current = -1
	s.err = nil
}

// Seek 从 fromLine 起定位最近的命中并设为当前。
// backward 为真时向上找，否则向下找；找不到就环回到另一端。
func (s *Searcher) Seek(fromLine int, backward bool) *Match {
	if len(s.matches) == 0 {
		return nil
	}
	if backward {
		for i := len(s.matches) - 1; i >= 0; i-- {
			if s.matches[i].Line <= fromLine {
				s.current = i
				return &s.matches[i]
			}
		}
		s.current = len(s.matches) - 1
	} else {
		for i, m := range s.matches {
			if m.Line >= fromLine {
				s.current = i
				return &s.matches[i]
			}
		}
		s.current = 0
	}
	return &s.matches[s.current]
}

// Next 跳到下一个命中，到尾环回。
func (s *Searcher) Next() *Match {
	if len(s.matches) == 0 {
		return nil
	}
	s.current = (s.current + 1) % len(s.matches)
	return &s.matches[s.current]
}

// Prev 跳到上一个命中，到头环回。
func (s *Searcher) Prev() *Match {
	if len(s.matches) == 0 {
		return nil
	}
	s.current--
	if s.current < 0 {
		s.current = len(s.matches) - 1
	}
	return &s.matches[s.current]
}

// Current 当前命中，无命中返回 nil。
func (s *Searcher) Current() *Match {
	if s.current < 0 || s.current >= len(s.matches) {
		return nil
	}
	return &s.matches[s.current]
}

// Query 当前搜索词。
func (s *Searcher) Query() string {
	return s.query
}

// Err 上次编译错误。
func (s *Searcher) Err() error {
	return s.err
}

// Active 是否有生效的搜索词。
func (s *Searcher) Active() bool {
	return s.re != nil
}

// MatchCount 命中总数。
func (s *Searcher) MatchCount() int {
	return len(s.matches)
}

// CurrentIndex 当前命中序号（1-based，用于 "match i/j" 展示）。
func (s *Searcher) CurrentIndex() int {
	if s.current < 0 {
		return 0
	}
	return s.current + 1
}

// MatchesOnLine 某行的全部命中。
func (s *Searcher) MatchesOnLine(lineIdx int) []Match {
	idxs := s.byLine[lineIdx]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]Match, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, s.matches[i])
	}
	return out
}

// IsCurrentMatchLine 某行是否是当前命中所在行。
func (s *Searcher) IsCurrentMatchLine(lineIdx int) bool {
	m := s.Current()
	return m != nil && m.Line == lineIdx
}

// NormalizeLine 把原始输出行整理成可搜索、可渲染的形态：
// 回车覆写只留最后一段（进度条行），制表符展开成四个空格。
func NormalizeLine(text string) string {
	if strings.ContainsRune(text, '\r') {
		segs := strings.Split(text, "\r")
		text = ""
		for i := len(segs) - 1; i >= 0; i-- {
			if segs[i] != "" {
				text = segs[i]
				break
			}
		}
	}
	return strings.ReplaceAll(text, "\t", "    ")
}
