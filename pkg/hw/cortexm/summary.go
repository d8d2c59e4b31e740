package cortexm

import (
	"fmt"

	"fault_tool/pkg/report"
	"fault_tool/pkg/treeprinter"
)

// SummaryTree CFSR 的概览：三个子寄存器以及各自置位的字段
func SummaryTree(cfsr uint64) *treeprinter.MultiNode {
	root := &treeprinter.MultiNode{Data: report.ValueLine("CFSR", uint64(uint32(cfsr)), 8)}
	for _, p := range SplitCFSR(cfsr).Parts() {
		node := root.Add(report.ValueLine(p.Type.Name, p.Raw, p.Type.Size))
		for _, v := range p.Type.Decode(p.Raw).SetFields() {
			hi, lo := v.Field.Bits()
			node.Add(fmt.Sprintf("%s [%d:%d]", v.Field.Name, hi, lo))
		}
	}
	return root
}

// Summary
//
//	CFSR: 0x00008200
//	├── UFSR: 0x00
//	├── BFSR: 0x82
//	│   ├── BFARVALID [7:7]
//	│   └── PRECISERR [1:1]
//	└── MMFSR: 0x00
func Summary(cfsr uint64, style treeprinter.Style) string {
	return treeprinter.PrintMultiTree(treeprinter.MultiTreePrinter{
		Root:  SummaryTree(cfsr),
		Style: style,
	})
}
