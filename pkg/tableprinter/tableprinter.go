// Package tableprinter 把两列文本（短标签 + 长描述）渲染成固定总宽度的框线表格。
//
// 第 0 列宽度取最长标签，第 1 列拿走剩下的全部宽度：
//
//	c1 = Width - c0 - 3 - 4*Padding
//
// 3 是左右两条竖线加中间一条竖线，4*Padding 是两列各自两侧的留白。
// 描述按空白切词后贪心折行，一个词永远不会被拆开，超长的词自己占一行并溢出。
//
//	p := tableprinter.NewTablePrinter()
//	lines, err := p.Render(
//	    []string{"BFARVALID", "PRECISERR"},
//	    []string{"BFAR has valid contents", "A precise data access error has occurred"},
//	)
//
// ┌───────────┬──────── ... ─┐
// │ BFARVALID │ BFAR has ...  │
// ├───────────┼──────── ... ─┤
// │ PRECISERR │ A precise ... │
// └───────────┴──────── ... ─┘
package tableprinter

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"fault_tool/pkg/errorutil"
)

const (
	DefaultWidth   = 80
	DefaultPadding = 1
)

// Style 一套框线字符
type Style struct {
	Vertical            string
	Horizontal          string
	Junction            string
	TopJunction         string
	BottomJunction      string
	RightJunction       string
	LeftJunction        string
	TopRightJunction    string
	TopLeftJunction     string
	BottomRightJunction string
	BottomLeftJunction  string
}

var (
	// StylePlain 细线框，默认样式
	StylePlain = Style{
		Vertical:            "│",
		Horizontal:          "─",
		Junction:            "┼",
		TopJunction:         "┬",
		BottomJunction:      "┴",
		RightJunction:       "┤",
		LeftJunction:        "├",
		TopRightJunction:    "┐",
		TopLeftJunction:     "┌",
		BottomRightJunction: "┘",
		BottomLeftJunction:  "└",
	}

	// StyleASCII 只用 ASCII，给不支持 UTF-8 的串口终端用
	StyleASCII = Style{
		Vertical:            "|",
		Horizontal:          "-",
		Junction:            "+",
		TopJunction:         "+",
		BottomJunction:      "+",
		RightJunction:       "+",
		LeftJunction:        "+",
		TopRightJunction:    "+",
		TopLeftJunction:     "+",
		BottomRightJunction: "+",
		BottomLeftJunction:  "+",
	}
)

// StyleKind 内置样式名，实现 pflag.Value(String Set Type)
type StyleKind string

const (
	StyleKindPlain StyleKind = "plain"
	StyleKindASCII StyleKind = "ascii"
)

func (k *StyleKind) String() string { return string(*k) }

func (k *StyleKind) Set(val string) error {
	switch StyleKind(val) {
	case StyleKindPlain, StyleKindASCII:
		*k = StyleKind(val)
		return nil
	default:
		return fmt.Errorf("无效的表格样式: %s (plain|ascii)", val)
	}
}

func (k *StyleKind) Type() string {
	return "style"
}

// Style 未知的名字回落到 plain
func (k StyleKind) Style() Style {
	if k == StyleKindASCII {
		return StyleASCII
	}
	return StylePlain
}

// 列出所有的合法值
func (StyleKind) Values() []string {
	return []string{string(StyleKindPlain), string(StyleKindASCII)}
}

// 显示宽度，模糊宽度字符（框线）按 1 计算
var widthCond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// DisplayWidth 字符串在终端上占的列数
func DisplayWidth(s string) int {
	return widthCond.StringWidth(s)
}

// TablePrinter 表格配置，本身不保存渲染状态，可以重复使用
type TablePrinter struct {
	Width   int // 总宽度，包含边框
	Padding int // 每个单元格两侧的空格数
	Style   Style
}

func NewTablePrinter() TablePrinter {
	return TablePrinter{
		Width:   DefaultWidth,
		Padding: DefaultPadding,
		Style:   StylePlain,
	}
}

// ColumnWidths 计算两列的内容宽度（不含 padding）
func (p TablePrinter) ColumnWidths(labels []string) (c0, c1 int, err error) {
	for _, l := range labels {
		if w := DisplayWidth(l); w > c0 {
			c0 = w
		}
	}
	c1 = p.Width - c0 - (3 + 4*p.Padding)
	if c1 < 1 {
		return c0, c1, &errorutil.LayoutError{Width: p.Width, LabelWidth: c0, Padding: p.Padding}
	}
	return c0, c1, nil
}

// Render 渲染整张表，labels 和 descriptions 一一对应
// 空输入返回空结果，不画边框
func (p TablePrinter) Render(labels, descriptions []string) ([]string, error) {
	if len(labels) != len(descriptions) {
		return nil, &errorutil.LayoutError{
			Width:  p.Width,
			Reason: fmt.Sprintf("标签 %d 个，描述 %d 个，数量不一致", len(labels), len(descriptions)),
		}
	}
	if p.Padding < 0 {
		return nil, &errorutil.LayoutError{Width: p.Width, Padding: p.Padding, Reason: "padding 不能为负数"}
	}
	if len(labels) == 0 {
		return nil, nil
	}

	c0, c1, err := p.ColumnWidths(labels)
	if err != nil {
		return nil, err
	}

	s := p.Style
	out := []string{p.border(c0, c1, s.TopLeftJunction, s.TopJunction, s.TopRightJunction)}
	separator := p.border(c0, c1, s.LeftJunction, s.Junction, s.RightJunction)
	for i := range labels {
		out = append(out, p.entryRows(c0, c1, labels[i], descriptions[i])...)
		out = append(out, separator)
	}
	// 最后一个分隔线换成底边
	out[len(out)-1] = p.border(c0, c1, s.BottomLeftJunction, s.BottomJunction, s.BottomRightJunction)

	return out, nil
}

func (p TablePrinter) border(c0, c1 int, left, mid, right string) string {
	h := p.Style.Horizontal
	return left +
		strings.Repeat(h, c0+2*p.Padding) +
		mid +
		strings.Repeat(h, c1+2*p.Padding) +
		right
}

// 一个条目可能折成多行，只有第一行带标签
func (p TablePrinter) entryRows(c0, c1 int, label, desc string) []string {
	lines := Wrap(desc, c1)
	if len(lines) == 0 {
		lines = []string{""}
	}

	pad := strings.Repeat(" ", p.Padding)
	v := p.Style.Vertical
	rows := make([]string, 0, len(lines))
	for i, line := range lines {
		cell0 := ""
		if i == 0 {
			cell0 = label
		}
		rows = append(rows, v+pad+padRight(cell0, c0)+pad+v+pad+padRight(line, c1)+pad+v)
	}
	return rows
}

// padRight 按显示宽度补空格，超宽时原样返回
func padRight(s string, width int) string {
	if gap := width - DisplayWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// Wrap 贪心折行：当前行长度 + 1 个空格 + 下一个词 不超过 width 就接上，否则换行
// 词不会被拆开，比 width 还长的词单独占一行
//
//	Wrap("AAAA BBBB CCCC", 9) // ["AAAA BBBB", "CCCC"]
func Wrap(text string, width int) []string {
	var (
		lines []string
		cur   strings.Builder
		curW  int
	)
	for _, word := range strings.Fields(text) {
		w := DisplayWidth(word)
		if curW > 0 && curW+1+w > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curW = 0
		}
		if curW > 0 {
			cur.WriteByte(' ')
			curW++
		}
		cur.WriteString(word)
		curW += w
	}
	if curW > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
