package treeprinter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintMultiTreeUnicode(t *testing.T) {
	root := &MultiNode{Data: "CFSR 0x00008200"}
	root.Add("UFSR 0x0000")
	bfsr := root.Add("BFSR 0x82")
	bfsr.Add("BFARVALID")
	bfsr.Add("PRECISERR")
	root.Add("MMFSR 0x00")

	want := "CFSR 0x00008200\n" +
		"├── UFSR 0x0000\n" +
		"├── BFSR 0x82\n" +
		"│   ├── BFARVALID\n" +
		"│   └── PRECISERR\n" +
		"└── MMFSR 0x00\n"
	assert.Equal(t, want, PrintMultiTree(MultiTreePrinter{Root: root, Style: StyleUnicode}))
}

func TestPrintMultiTreeASCIIAndFormat(t *testing.T) {
	root := &MultiNode{Data: 1}
	last := root.Add(2)
	last.Add(3)

	got := PrintMultiTree(MultiTreePrinter{
		Root:     root,
		Style:    StyleASCII,
		FormatFn: func(n *MultiNode) string { return "n" + string(rune('0'+n.Data.(int))) },
	})
	assert.Equal(t, "n1\n`-- n2\n    `-- n3\n", got)
}

func TestPrintMultiTreeEmpty(t *testing.T) {
	assert.Equal(t, "tree is empty\n", PrintMultiTree(MultiTreePrinter{}))
	assert.Equal(t, "leaf\n", PrintMultiTree(MultiTreePrinter{Root: &MultiNode{Data: "leaf"}}))
}
