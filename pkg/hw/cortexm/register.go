package cortexm

import (
	"fmt"
	"strings"

	"fault_tool/pkg/logutil"
	"fault_tool/pkg/report"
	"fault_tool/pkg/tableprinter"
	"fault_tool/pkg/toolutil/bit"
)

// RegisterType 一种寄存器的静态描述，所有实例共享
type RegisterType struct {
	Name    string
	Size    int // 原始值补零后的十六进制位数
	Catalog *bit.Catalog
	Diagram DiagramSource
	Doc     string
}

var (
	UFSR = &RegisterType{
		Name: "UFSR", Size: 2, Catalog: ufsrCatalog, Diagram: ufsrDiagram,
		Doc: "UsageFault Status Register, CFSR[31:16]",
	}
	BFSR = &RegisterType{
		Name: "BFSR", Size: 2, Catalog: bfsrCatalog, Diagram: bfsrDiagram,
		Doc: "BusFault Status Register, CFSR[15:8]",
	}
	MMFSR = &RegisterType{
		Name: "MMFSR", Size: 2, Catalog: mmfsrCatalog, Diagram: mmfsrDiagram,
		Doc: "MemManage Fault Status Register, CFSR[7:0]",
	}
	HFSR = &RegisterType{
		Name: "HFSR", Size: 8, Catalog: hfsrCatalog, Diagram: hfsrDiagram,
		Doc: "HardFault Status Register, 0xE000ED2C",
	}
	SHCSR = &RegisterType{
		Name: "SHCSR", Size: 8, Catalog: shcsrCatalog, Diagram: shcsrDiagram,
		Doc: "System Handler Control and State Register, 0xE000ED24",
	}
)

// 显示顺序
var registry = []*RegisterType{UFSR, BFSR, MMFSR, HFSR, SHCSR}

// Registers 按固定顺序返回所有寄存器类型
func Registers() []*RegisterType {
	return append([]*RegisterType(nil), registry...)
}

// Names UFSR BFSR MMFSR HFSR SHCSR
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, rt := range registry {
		names = append(names, rt.Name)
	}
	return names
}

// Lookup 名字不区分大小写
func Lookup(name string) (*RegisterType, bool) {
	for _, rt := range registry {
		if strings.EqualFold(rt.Name, strings.TrimSpace(name)) {
			return rt, true
		}
	}
	return nil, false
}

// MustLookup 找不到时返回带候选列表的错误
func MustLookup(name string) (*RegisterType, error) {
	rt, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("未知寄存器: %s (可选: %s)", name, strings.Join(Names(), ", "))
	}
	return rt, nil
}

// Decode 每次调用都创建新的 Register，调用之间不共享状态
func (rt *RegisterType) Decode(raw uint64) *bit.Register {
	reg := bit.NewRegister(rt.Catalog)
	reg.Decode(raw)
	return reg
}

// Options 报告的排版参数
type Options struct {
	Table    tableprinter.TablePrinter
	Composer report.Composer
}

func DefaultOptions() Options {
	return Options{
		Table:    tableprinter.NewTablePrinter(),
		Composer: report.NewComposer(),
	}
}

// Report 解码并生成完整的报告，表格放不下时返回 LayoutError 并且不输出任何内容
func (rt *RegisterType) Report(raw uint64, opts Options) (report.Document, error) {
	reg := rt.Decode(raw)
	set := reg.SetFields()
	logutil.Debug("%s 0x%X: %d 个字段置位", rt.Name, raw, len(set))

	labels, descs := bit.Labels(set)
	table, err := opts.Table.Render(labels, descs)
	if err != nil {
		return nil, fmt.Errorf("%s 0x%X: %w", rt.Name, raw, err)
	}
	return opts.Composer.Compose(rt.Name, raw, rt.Size, rt.Diagram.Diagram(reg), table), nil
}

// CFSR 拆出来的三个子寄存器值
type CFSR struct {
	UFSR  uint64
	BFSR  uint64
	MMFSR uint64
}

// SplitCFSR 高于 32 位的部分直接丢弃
func SplitCFSR(cfsr uint64) CFSR {
	v := uint32(cfsr)
	return CFSR{
		UFSR:  uint64(bit.ExtractBits(v, CfsrUfsrStart, 16)),
		BFSR:  uint64(bit.ExtractBits(v, CfsrBfsrStart, 8)),
		MMFSR: uint64(bit.ExtractBits(v, CfsrMmfsrStart, 8)),
	}
}

// Parts 按 UFSR BFSR MMFSR 的顺序
func (c CFSR) Parts() []Part {
	return []Part{
		{Type: UFSR, Raw: c.UFSR},
		{Type: BFSR, Raw: c.BFSR},
		{Type: MMFSR, Raw: c.MMFSR},
	}
}

type Part struct {
	Type *RegisterType
	Raw  uint64
}

// ReportCFSR 三个子寄存器的报告依次拼接，报告之间空一行
func ReportCFSR(cfsr uint64, opts Options) (report.Document, error) {
	var doc report.Document
	for i, p := range SplitCFSR(cfsr).Parts() {
		d, err := p.Type.Report(p.Raw, opts)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			doc = append(doc, "")
		}
		doc = append(doc, d...)
	}
	return doc, nil
}
