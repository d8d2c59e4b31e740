package treeprinter

import (
	"fmt"
	"strings"
)

// Style 连接线样式
type Style int

const (
	StyleASCII   Style = 0
	StyleUnicode Style = 1
)

type MultiNode struct {
	Data     any // 节点数据，可以是任意类型
	Children []*MultiNode
}

// Add 追加一个子节点并返回它，方便链式构建
func (n *MultiNode) Add(data any) *MultiNode {
	child := &MultiNode{Data: data}
	n.Children = append(n.Children, child)
	return child
}

type MultiTreePrinter struct {
	Root     *MultiNode
	Style    Style
	FormatFn func(*MultiNode) string // 可选的自定义格式化函数
}

type connectors struct {
	last, branch, space string
}

func (s Style) connectors() connectors {
	if s == StyleUnicode {
		return connectors{last: "└── ", branch: "├── ", space: "│   "}
	}
	return connectors{last: "`-- ", branch: "|-- ", space: "|   "}
}

// PrintMultiTree 根节点单独一行，不带连接线
//
//	CFSR 0x00008200
//	├── UFSR 0x0000
//	├── BFSR 0x82
//	│   ├── BFARVALID
//	│   └── PRECISERR
//	└── MMFSR 0x00
func PrintMultiTree(printer MultiTreePrinter) string {
	if printer.Root == nil {
		return "tree is empty\n"
	}

	c := printer.Style.connectors()
	label := func(node *MultiNode) string {
		// 使用 FormatFn，如果没有就用默认 Data 的字符串
		if printer.FormatFn != nil {
			return printer.FormatFn(node)
		}
		return fmt.Sprintf("%v", node.Data)
	}

	var b strings.Builder
	var dfs func(node *MultiNode, prefix string, isLast bool)
	dfs = func(node *MultiNode, prefix string, isLast bool) {
		if node == nil {
			return
		}

		connector := c.branch
		childPrefix := prefix + c.space
		if isLast {
			connector = c.last
			childPrefix = prefix + "    "
		}
		fmt.Fprintf(&b, "%s%s%s\n", prefix, connector, label(node))

		for i, child := range node.Children {
			dfs(child, childPrefix, i == len(node.Children)-1)
		}
	}

	b.WriteString(label(printer.Root) + "\n")
	for i, child := range printer.Root.Children {
		dfs(child, "", i == len(printer.Root.Children)-1)
	}
	return b.String()
}
