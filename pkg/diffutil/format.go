package diffutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// 模糊宽度字符（框线）按 1 计算，不改全局的 DefaultCondition
var cond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// len(s): 字节宽度
// utf8.RuneCountInString(s): 字符数
// cond.StringWidth(s): 显示宽度
// 左列按显示宽度补齐，中文和框线混排时也能对齐
//
//	before     after
//	----------------
//	a       |  a
//	世界    ~  地球
func FormatSideBySide(diff []DiffLine, leftTitle, rightTitle string) string {
	maxWidth := cond.StringWidth(leftTitle)
	for _, d := range diff {
		maxWidth = max(maxWidth, cond.StringWidth(d.Left))
	}

	row := func(left, mark, right string) string {
		return cond.FillRight(left, maxWidth) + "  " + mark + "  " + right
	}

	header := row(leftTitle, " ", rightTitle)
	out := make([]string, 0, len(diff)+2)
	out = append(out, header, strings.Repeat("-", cond.StringWidth(header)))
	for _, d := range diff {
		out = append(out, row(d.Left, d.Mark, d.Right))
	}
	return strings.Join(out, "\n")
}
