package cortexm

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fault_tool/internal/testutils"
	"fault_tool/pkg/errorutil"
	"fault_tool/pkg/report"
	"fault_tool/pkg/tableprinter"
	"fault_tool/pkg/toolutil/bit"
	"fault_tool/pkg/treeprinter"
)

func TestReportBFSRGolden(t *testing.T) {
	doc, err := BFSR.Report(0x82, DefaultOptions())
	require.NoError(t, err)
	testutils.AssertGolden(t, "bfsr_0x82.golden", doc.String())
}

func TestReportHFSRNarrowGolden(t *testing.T) {
	opts := Options{
		Table:    tableprinter.TablePrinter{Width: 60, Padding: 1, Style: tableprinter.StylePlain},
		Composer: report.Composer{Width: 60, HeaderChar: "=", SeparatorChar: "-"},
	}
	doc, err := HFSR.Report(0x40000002, opts)
	require.NoError(t, err)
	testutils.AssertGolden(t, "hfsr_0x40000002_w60.golden", doc.String())
}

func TestReportNothingSet(t *testing.T) {
	doc, err := BFSR.Report(0, DefaultOptions())
	require.NoError(t, err)

	// 4 + 8 行位图 + 3 + 空表 + 2
	assert.Len(t, doc, 17)
	assert.Equal(t, "BFSR: 0x00", doc[1])
	assert.Equal(t, "         │0│ │0│0│0│0│0│0│", doc[6])
	assert.Equal(t, "", doc[len(doc)-2])
	assert.Equal(t, strings.Repeat("=", 80), doc[len(doc)-1])
}

func TestReportLayoutError(t *testing.T) {
	opts := DefaultOptions()
	opts.Table.Width = 16
	doc, err := BFSR.Report(0x80, opts)
	assert.Nil(t, doc)

	var le *errorutil.LayoutError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 9, le.LabelWidth)
	assert.Equal(t, errorutil.CodeConfigError, errorutil.ExitCodeFromError(err))

	// 没有置位字段时不需要表格，也就不会有布局错误
	_, err = BFSR.Report(0, opts)
	assert.NoError(t, err)
}

func TestReportUFSRValueLine(t *testing.T) {
	doc, err := UFSR.Report(0x0301, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "UFSR: 0x301", doc[1])
	assert.Equal(t, "│  reserved  │1│1│  res. │0│0│0│1│", doc[6])
	assert.Contains(t, doc.String(), "│ DIVBYZERO  │")
	assert.Contains(t, doc.String(), "│ UNDEFINSTR │")
}

func TestHFSRDiagram(t *testing.T) {
	want := []string{
		"       │31│30│29          2│1 0│",
		"       ├──┼──┼─────────────┼─┬─┤",
		"       │ 0│ 1│  reserved   │1│ │",
		"       └─▲┴─▲┴─────────────┴▲┴─┘",
		"DEBUGEVT─┘  │               └─VECTTBL",
		"  FORCED────┘",
	}
	got := HFSR.Diagram.Diagram(HFSR.Decode(0x40000002))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("HFSR diagram mismatch (-want +got):\n%s", diff)
	}
}

func TestSHCSRDiagram(t *testing.T) {
	want := []string{
		"   │31      19│18 16│15   12│11    8│7     4│3     0│",
		"   ├──────────┼─┬─┬─┼─┬─┬─┬─┼─┬─┬─┬─┼─┬─┬─┬─┼─┬─┬─┬─┤",
		"   │ reserved │1│1│1│0│0│0│0│0│0│ │0│0│ │ │ │0│ │1│0│",
		"   └──────────┴▲┴▲┴▲┴▲┴▲┴▲┴▲┴▲┴▲┴─┴▲┴▲┴─┴─┴─┴▲┴─┴▲┴▲┘",
		"   USGFAULTENA─┘ │ │ │ │ │ │ │ │   │ │       │   │ └─MEMFAULTACT",
		"   BUSFAULTENA───┘ │ │ │ │ │ │ │   │ │       │   └───BUSFAULTACT",
		"   MEMFAULTENA─────┘ │ │ │ │ │ │   │ │       └───────USGFAULTACT",
		"  SVCALLPENDED───────┘ │ │ │ │ │   │ └───────────────SVCALLACT",
		"BUSFAULTPENDED─────────┘ │ │ │ │   └─────────────────MONITORACT",
		"MEMFAULTPENDED───────────┘ │ │ └─────────────────────PENDSVACT",
		"USGFAULTPENDED─────────────┘ └───────────────────────SYSTICKACT",
	}
	got := SHCSR.Diagram.Diagram(SHCSR.Decode(0x00070002))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SHCSR diagram mismatch (-want +got):\n%s", diff)
	}
}

// 位图的形状和值无关，每一行的显示宽度固定
func TestDiagramShapeIndependentOfValue(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, rt := range Registers() {
		base := rt.Diagram.Diagram(rt.Decode(0))
		for _, raw := range []uint64{^uint64(0), r.Uint64(), r.Uint64(), 0x82} {
			got := rt.Diagram.Diagram(rt.Decode(raw))
			require.Len(t, got, len(base), "%s 0x%X", rt.Name, raw)
			for i := range base {
				assert.Equal(t, tableprinter.DisplayWidth(base[i]), tableprinter.DisplayWidth(got[i]),
					"%s 0x%X line %d", rt.Name, raw, i)
			}
		}
		// 位图不能超过默认宽度
		for _, line := range base {
			assert.LessOrEqual(t, tableprinter.DisplayWidth(line), report.DefaultWidth, rt.Name)
		}
	}
}

// 每个带名字的字段在位图里都有一个 ▲ 和一个说明
func TestDiagramNamesEveryField(t *testing.T) {
	for _, rt := range []*RegisterType{HFSR, SHCSR} {
		lines := rt.Diagram.Diagram(rt.Decode(0))
		all := strings.Join(lines, "\n")
		assert.Equal(t, rt.Catalog.Len(), strings.Count(lines[3], "▲"), rt.Name)
		for _, f := range rt.Catalog.Fields() {
			assert.Contains(t, all, f.Name, rt.Name)
		}
	}
}

func TestCatalogs(t *testing.T) {
	widths := map[string]int{"UFSR": 16, "BFSR": 8, "MMFSR": 8, "HFSR": 32, "SHCSR": 32}
	for _, rt := range Registers() {
		var seen uint64
		for _, f := range rt.Catalog.Fields() {
			hi, lo := f.Bits()
			assert.Equal(t, hi, lo, "%s.%s 是单比特字段", rt.Name, f.Name)
			assert.Less(t, hi, widths[rt.Name], "%s.%s 超出寄存器宽度", rt.Name, f.Name)
			assert.Zero(t, seen&f.Mask, "%s.%s 和其它字段重叠", rt.Name, f.Name)
			assert.NotEmpty(t, f.Description, "%s.%s", rt.Name, f.Name)
			seen |= f.Mask
		}
	}
	assert.Equal(t, 7, BFSR.Catalog.Len())
	assert.Equal(t, 6, UFSR.Catalog.Len())
	assert.Equal(t, 6, MMFSR.Catalog.Len())
}

func TestLookup(t *testing.T) {
	rt, ok := Lookup("bfsr")
	require.True(t, ok)
	assert.Same(t, BFSR, rt)

	rt, ok = Lookup(" Shcsr ")
	require.True(t, ok)
	assert.Same(t, SHCSR, rt)

	_, ok = Lookup("CFSR")
	assert.False(t, ok)

	_, err := MustLookup("xpsr")
	assert.ErrorContains(t, err, "UFSR, BFSR, MMFSR, HFSR, SHCSR")

	assert.Equal(t, []string{"UFSR", "BFSR", "MMFSR", "HFSR", "SHCSR"}, Names())

	// 返回的是副本，修改它不影响注册表
	rs := Registers()
	rs[0] = nil
	assert.Same(t, UFSR, Registers()[0])
}

// 每次 Decode 都是独立的实例
func TestDecodeIndependent(t *testing.T) {
	a := BFSR.Decode(0x80)
	b := BFSR.Decode(0x02)
	va, _ := a.Value("BFARVALID")
	vb, _ := b.Value("BFARVALID")
	assert.Equal(t, uint64(1), va)
	assert.Equal(t, uint64(0), vb)
	assert.Same(t, a.Catalog(), b.Catalog())
}

func TestSplitCFSR(t *testing.T) {
	c := SplitCFSR(0x00028200)
	assert.Equal(t, CFSR{UFSR: 0x0002, BFSR: 0x82, MMFSR: 0x00}, c)

	// 高于 32 位的部分丢弃
	assert.Equal(t, SplitCFSR(0xFFFF_FFFF), SplitCFSR(0x1_FFFF_FFFF))

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		raw := uint64(r.Uint32())
		c := SplitCFSR(raw)
		back := bit.RestoreFieldToOffset(c.UFSR, CfsrUfsrStart) |
			bit.RestoreFieldToOffset(c.BFSR, CfsrBfsrStart) |
			bit.RestoreFieldToOffset(c.MMFSR, CfsrMmfsrStart)
		assert.Equal(t, raw, back)
	}

	var names []string
	for _, p := range c.Parts() {
		names = append(names, p.Type.Name)
	}
	assert.Equal(t, []string{"UFSR", "BFSR", "MMFSR"}, names)
}

func TestReportCFSR(t *testing.T) {
	doc, err := ReportCFSR(0x00028200, DefaultOptions())
	require.NoError(t, err)

	var values []string
	for _, line := range doc {
		if strings.HasSuffix(strings.SplitN(line, ":", 2)[0], "FSR") {
			values = append(values, line)
		}
	}
	assert.Equal(t, []string{"UFSR: 0x02", "BFSR: 0x82", "MMFSR: 0x00"}, values)

	// 上一个报告的结尾和下一个报告的开头之间空一行
	rule := strings.Repeat("=", report.DefaultWidth)
	for i, line := range doc {
		if line == "BFSR: 0x82" || line == "MMFSR: 0x00" {
			assert.Equal(t, []string{rule, "", rule}, []string(doc[i-3:i]), line)
		}
	}

	bfsr, err := BFSR.Report(0x82, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, doc.String(), bfsr.String())
}

func TestFindFields(t *testing.T) {
	names := func(refs []FieldRef) []string {
		var out []string
		for _, r := range refs {
			out = append(out, r.Register.Name+"."+r.Field.Name)
		}
		return out
	}

	assert.Equal(t, []string{"SHCSR.BUSFAULTACT", "SHCSR.BUSFAULTENA", "SHCSR.BUSFAULTPENDED"},
		names(FindFields("bus")))
	assert.Equal(t, []string{"MMFSR.IACCVIOL", "BFSR.IBUSERR", "BFSR.IMPRECISERR", "UFSR.INVPC", "UFSR.INVSTATE"},
		names(FindFields("I")))
	assert.Empty(t, FindFields("xyz"))
	assert.Len(t, FindFields(""), 7+6+6+3+14)

	assert.Equal(t, []string{"HFSR.FORCED"}, names(FindField("forced")))
	assert.Nil(t, FindField("FORCE"))
}

func TestSummary(t *testing.T) {
	want := "CFSR: 0x00008200\n" +
		"├── UFSR: 0x00\n" +
		"├── BFSR: 0x82\n" +
		"│   ├── BFARVALID [7:7]\n" +
		"│   └── PRECISERR [1:1]\n" +
		"└── MMFSR: 0x00\n"
	assert.Equal(t, want, Summary(0x8200, treeprinter.StyleUnicode))

	ascii := Summary(0x0001_0000, treeprinter.StyleASCII)
	assert.Contains(t, ascii, "|-- UFSR: 0x01\n|   `-- UNDEFINSTR [0:0]\n")
}
