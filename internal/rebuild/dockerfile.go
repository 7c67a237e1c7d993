package rebuild

import (
	"fmt"
	"os"
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"
)

// BaseImage 解析 Dockerfile，返回第一条 FROM 指令的镜像引用。
// 构建前先 pull 它，保证基础镜像是新的。scratch 与多阶段的阶段引用跳过。
func BaseImage(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	res, err := parser.Parse(f)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}

	stages := map[string]bool{}
	for _, node := range res.AST.Children {
		if !strings.EqualFold(node.Value, "from") {
			continue
		}
		ref, alias := fromArgs(node)
		if ref == "" {
			continue
		}
		if alias != "" {
			stages[strings.ToLower(alias)] = true
		}
		if ref == "scratch" || stages[strings.ToLower(ref)] {
			continue
		}
		return ref, nil
	}
	return "", nil
}

// fromArgs 取 FROM 的镜像引用与 AS 别名，--platform 等旗标跳过。
func fromArgs(node *parser.Node) (ref, alias string) {
	var parts []string
	for n := node.Next; n != nil; n = n.Next {
		parts = append(parts, n.Value)
	}
	i := 0
	for i < len(parts) && strings.HasPrefix(parts[i], "--") {
		i++
	}
	if i >= len(parts) {
		return "", ""
	}
	ref = parts[i]
	if i+2 < len(parts) && strings.EqualFold(parts[i+1], "as") {
		alias = parts[i+2]
	}
	return ref, alias
}
