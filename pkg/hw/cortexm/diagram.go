package cortexm

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"fault_tool/pkg/tableprinter"
	"fault_tool/pkg/toolutil/bit"
)

// DiagramSource 给出寄存器的位图，每个单元填字段的当前值
type DiagramSource interface {
	Diagram(reg *bit.Register) []string
}

// DiagramFunc 让普通函数实现 DiagramSource
type DiagramFunc func(reg *bit.Register) []string

func (f DiagramFunc) Diagram(reg *bit.Register) []string {
	return f(reg)
}

// 没解码过的字段按 0 显示
func valueOf(reg *bit.Register) func(name string) string {
	return func(name string) string {
		v, _ := reg.Value(name)
		return strconv.FormatUint(v, 10)
	}
}

var bfsrDiagram = DiagramFunc(func(reg *bit.Register) []string {
	v := valueOf(reg)
	return []string{
		"         │7 6 5 4│3 2 1 0│",
		"         ├─┬─┬─┬─┼─┬─┬─┬─┤",
		fmt.Sprintf("         │%s│ │%s│%s│%s│%s│%s│%s│",
			v("BFARVALID"), v("LSPERR"), v("STKERR"), v("UNSTKERR"),
			v("IMPRECISERR"), v("PRECISERR"), v("IBUSERR")),
		"         └▲┴▲┴▲┴▲┴▲┴▲┴▲┴▲┘",
		"BFARVALID─┘ │ │ │ │ │ │ └─IBUSERR",
		" reserved───┘ │ │ │ │ └───PRECISERR",
		"   LSPERR─────┘ │ │ └─────IMPRECISERR",
		"   STKERR───────┘ └───────UNSTKERR",
	}
})

var ufsrDiagram = DiagramFunc(func(reg *bit.Register) []string {
	v := valueOf(reg)
	return []string{
		"│15      │ 10 9 8│7     4│3 2 1 0│",
		"├────────┴───┬─┬─┼───────┼─┬─┬─┬─┤",
		fmt.Sprintf("│  reserved  │%s│%s│  res. │%s│%s│%s│%s│",
			v("DIVBYZERO"), v("UNALIGNED"),
			v("NOCP"), v("INVPC"), v("INVSTATE"), v("UNDEFINSTR")),
		"└────────────┴▲┴▲┴───────┴▲┴▲┴▲┴▲┘",
		"    DIVBYZERO─┘ │    NOCP─┘ │ │ │",
		"    UNALIGNED───┘   INVPC───┘ │ │",
		"                 INVSTATE─────┘ │",
		"               UNDEFINSTR───────┘",
	}
})

var mmfsrDiagram = DiagramFunc(func(reg *bit.Register) []string {
	v := valueOf(reg)
	return []string{
		"         │7 6 5 4│3 2 1 0│",
		"         ├─┬─┬─┬─┼─┬─┬─┬─┤",
		fmt.Sprintf("         │%s│ │%s│%s│%s│ │%s│%s│",
			v("MMARVALID"), v("MLSPERR"), v("MSTKERR"), v("MUNSTKERR"),
			v("DACCVIOL"), v("IACCVIOL")),
		"         └▲┴▲┴▲┴▲┴▲┴▲┴▲┴▲┘",
		"MMARVALID─┘ │ │ │ │ │ │ └─IACCVIOL",
		" Reserved───┘ │ │ │ │ └───DACCVIOL",
		"  MLSPERR─────┘ │ │ └─────Reserved",
		"  MSTKERR───────┘ └───────MUNSTKERR",
	}
})

// block 位图中的一组相邻位，第一行标题（位号）写在组的上方
type block struct {
	title  string
	fields []string // 每个单元对应的字段名，"" 为保留位
	cell   int      // 单元宽度，默认 1
	text   string   // 不为空时整组是一个保留区，不分单元
}

func (b block) cellWidth() int {
	if b.cell < 1 {
		return 1
	}
	return b.cell
}

func (b block) width() int {
	if b.text != "" || len(b.fields) == 0 {
		return max(tableprinter.DisplayWidth(b.title), tableprinter.DisplayWidth(b.text))
	}
	cw := b.cellWidth()
	return len(b.fields)*cw + len(b.fields) - 1
}

// pointer 位图底边上的 ▲ 以及它的说明文字
type pointer struct {
	col   int
	label string
}

// blockDiagram 由分组描述自动画位图和引线，字段一多手画就容易错位
//
//	       │31│30│29          2│1 0│
//	       ├──┼──┼─────────────┼─┬─┤
//	       │ 0│ 1│  reserved   │1│ │
//	       └─▲┴─▲┴─────────────┴▲┴─┘
//	DEBUGEVT─┘  │               └─VECTTBL
//	  FORCED────┘
type blockDiagram []block

func (d blockDiagram) Diagram(reg *bit.Register) []string {
	v := valueOf(reg)

	var (
		titles, tops, cells, bottoms []string
		pointers                     []pointer
	)
	col := 1
	for _, b := range d {
		w := b.width()
		titles = append(titles, padRight(b.title, w))

		if b.text != "" || len(b.fields) == 0 {
			tops = append(tops, strings.Repeat("─", w))
			cells = append(cells, center(b.text, w))
			bottoms = append(bottoms, strings.Repeat("─", w))
			col += w + 1
			continue
		}

		cw := b.cellWidth()
		var top, cell, bottom []string
		for i, name := range b.fields {
			top = append(top, strings.Repeat("─", cw))
			if name == "" {
				cell = append(cell, strings.Repeat(" ", cw))
				bottom = append(bottom, strings.Repeat("─", cw))
				continue
			}
			cell = append(cell, padLeft(v(name), cw))
			bottom = append(bottom, strings.Repeat("─", cw-1)+"▲")
			pointers = append(pointers, pointer{col: col + i*(cw+1) + cw - 1, label: name})
		}
		tops = append(tops, strings.Join(top, "┬"))
		cells = append(cells, strings.Join(cell, "│"))
		bottoms = append(bottoms, strings.Join(bottom, "┴"))
		col += w + 1
	}

	box := []string{
		"│" + strings.Join(titles, "│") + "│",
		"├" + strings.Join(tops, "┼") + "┤",
		"│" + strings.Join(cells, "│") + "│",
		"└" + strings.Join(bottoms, "┴") + "┘",
	}
	return legend(box, pointers)
}

// legend 左半边的引线向左拐，右半边的向右拐
// 左侧说明右对齐，右侧说明左对齐，整个图按需要向右缩进
func legend(box []string, pointers []pointer) []string {
	sort.Slice(pointers, func(i, j int) bool { return pointers[i].col < pointers[j].col })
	if len(pointers) == 0 {
		return box
	}

	n := (len(pointers) + 1) / 2
	left := append([]pointer(nil), pointers[:n]...)
	right := append([]pointer(nil), pointers[n:]...)
	// 右侧从最右边的引线开始画
	sort.Slice(right, func(i, j int) bool { return right[i].col > right[j].col })

	maxLeft := 0
	for _, p := range left {
		maxLeft = max(maxLeft, len(p.label))
	}
	indent := max(0, maxLeft+1-left[0].col)
	for i := range left {
		left[i].col += indent
	}
	for i := range right {
		right[i].col += indent
	}

	out := make([]string, 0, len(box)+n)
	pad := strings.Repeat(" ", indent)
	for _, line := range box {
		out = append(out, pad+line)
	}

	labelW := left[0].col - 1
	lineW := left[len(left)-1].col + 1
	rightStart := 0
	if len(right) > 0 {
		rightStart = right[0].col + 2
		maxRight := 0
		for _, p := range right {
			maxRight = max(maxRight, len(p.label))
		}
		lineW = rightStart + maxRight
	}

	for j := 0; j < max(len(left), len(right)); j++ {
		buf := []rune(strings.Repeat(" ", lineW))
		for k := j + 1; k < len(left); k++ {
			buf[left[k].col] = '│'
		}
		for k := j + 1; k < len(right); k++ {
			buf[right[k].col] = '│'
		}
		if j < len(left) {
			p := left[j]
			copy(buf[labelW-len(p.label):], []rune(p.label))
			for c := labelW; c < p.col; c++ {
				buf[c] = '─'
			}
			buf[p.col] = '┘'
		}
		if j < len(right) {
			p := right[j]
			buf[p.col] = '└'
			for c := p.col + 1; c < rightStart; c++ {
				buf[c] = '─'
			}
			copy(buf[rightStart:], []rune(p.label))
		}
		out = append(out, strings.TrimRight(string(buf), " "))
	}
	return out
}

var hfsrDiagram = blockDiagram{
	{title: "31", fields: []string{"DEBUGEVT"}, cell: 2},
	{title: "30", fields: []string{"FORCED"}, cell: 2},
	{title: "29          2", text: "reserved"},
	{title: "1 0", fields: []string{"VECTTBL", ""}},
}

var shcsrDiagram = blockDiagram{
	{title: "31      19", text: "reserved"},
	{title: "18 16", fields: []string{"USGFAULTENA", "BUSFAULTENA", "MEMFAULTENA"}},
	{title: "15   12", fields: []string{"SVCALLPENDED", "BUSFAULTPENDED", "MEMFAULTPENDED", "USGFAULTPENDED"}},
	{title: "11    8", fields: []string{"SYSTICKACT", "PENDSVACT", "", "MONITORACT"}},
	{title: "7     4", fields: []string{"SVCALLACT", "", "", ""}},
	{title: "3     0", fields: []string{"USGFAULTACT", "", "BUSFAULTACT", "MEMFAULTACT"}},
}

func padRight(s string, w int) string {
	if gap := w - tableprinter.DisplayWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func padLeft(s string, w int) string {
	if gap := w - tableprinter.DisplayWidth(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

// 多出来的一个空格放右边
func center(s string, w int) string {
	gap := w - tableprinter.DisplayWidth(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap/2) + s + strings.Repeat(" ", gap-gap/2)
}
