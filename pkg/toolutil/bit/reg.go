package bit

import (
	"fmt"
	"strings"
)

// Field 寄存器中的一个位或者一段位
// 目录构建完成后 Mask/Shift/Description 不再修改
type Field struct {
	Name        string
	Mask        uint64
	Shift       uint8
	Description string
}

// NewField 连续位段的快捷构造，掩码由起始位和长度推出
//
//	bit.NewField("BFARVALID", 7, 1, "BFAR has valid contents")
//	// Mask: 0x80 Shift: 7
func NewField(name string, start, width byte, desc string) *Field {
	return &Field{
		Name:        name,
		Mask:        MaskOf(start, width),
		Shift:       start,
		Description: desc,
	}
}

// Extract (raw & mask) >> shift
func (f *Field) Extract(raw uint64) uint64 {
	return (raw & f.Mask) >> f.Shift
}

// Bits 返回字段覆盖的位区间
func (f *Field) Bits() (hi, lo int) {
	return MaskRange(f.Mask)
}

type FieldValue struct {
	Field *Field // 保留引用
	Value uint64
}

func (v FieldValue) String() string {
	hi, lo := v.Field.Bits()
	return v.Field.Name + fmt.Sprintf("=0x%X [bits %d:%d]", v.Value, hi, lo)
}

// Catalog 有序的字段目录，只读，可以被多个 Register 共享
type Catalog struct {
	fields []*Field
	index  map[string]int
}

// NewCatalog 按给定顺序构建目录，顺序只影响显示
func NewCatalog(fields ...*Field) (*Catalog, error) {
	c := &Catalog{
		fields: make([]*Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f == nil || f.Name == "" {
			return nil, fmt.Errorf("字段名不能为空 (第 %d 个字段)", len(c.fields))
		}
		if f.Shift >= 64 {
			return nil, fmt.Errorf("字段 %s 的移位 %d 超出 64 位", f.Name, f.Shift)
		}
		if _, dup := c.index[f.Name]; dup {
			return nil, fmt.Errorf("字段名重复: %s", f.Name)
		}
		c.index[f.Name] = len(c.fields)
		c.fields = append(c.fields, f)
	}
	return c, nil
}

// MustCatalog 静态数据使用，出错直接 panic
func MustCatalog(fields ...*Field) *Catalog {
	c, err := NewCatalog(fields...)
	if err != nil {
		panic(err)
	}
	return c
}

// Fields 返回副本，调用者改切片不会影响目录
func (c *Catalog) Fields() []*Field {
	out := make([]*Field, len(c.fields))
	copy(out, c.fields)
	return out
}

func (c *Catalog) Len() int {
	return len(c.fields)
}

func (c *Catalog) Lookup(name string) (*Field, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.fields[i], true
}

// Register 持有一个目录引用和最近一次解码的结果
// 每个实例只属于一个调用者，并发解码请各自创建实例
//
//	reg := bit.NewRegister(catalog)
//	reg.Decode(0x82)
//	for _, v := range reg.SetFields() {
//	    fmt.Println(v)
//	}
//
// BFARVALID=0x1 [bits 7:7]
// PRECISERR=0x1 [bits 1:1]
type Register struct {
	catalog *Catalog
	raw     uint64
	decoded bool
	values  []uint64
}

func NewRegister(c *Catalog) *Register {
	return &Register{catalog: c}
}

func (r *Register) Catalog() *Catalog {
	return r.catalog
}

// Decode 覆盖原始值和所有字段值，相同的 raw 结果相同
// 没有字段覆盖的高位直接忽略
func (r *Register) Decode(raw uint64) {
	if r.values == nil {
		r.values = make([]uint64, len(r.catalog.fields))
	}
	r.raw = raw
	r.decoded = true
	for i, f := range r.catalog.fields {
		r.values[i] = f.Extract(raw)
	}
}

// Raw 还没有解码过时第二个返回值为 false
func (r *Register) Raw() (uint64, bool) {
	return r.raw, r.decoded
}

func (r *Register) Value(name string) (uint64, bool) {
	i, ok := r.catalog.index[name]
	if !ok || !r.decoded {
		return 0, false
	}
	return r.values[i], true
}

// Values 按目录顺序返回所有字段
func (r *Register) Values() []FieldValue {
	if !r.decoded {
		return nil
	}
	out := make([]FieldValue, 0, len(r.values))
	for i, f := range r.catalog.fields {
		out = append(out, FieldValue{Field: f, Value: r.values[i]})
	}
	return out
}

// SetFields 按目录顺序返回值非 0 的字段，没解码过返回空
func (r *Register) SetFields() []FieldValue {
	var out []FieldValue
	for _, v := range r.Values() {
		if v.Value != 0 {
			out = append(out, v)
		}
	}
	return out
}

// Labels 拆成表格需要的两列
func Labels(vals []FieldValue) (labels, descriptions []string) {
	labels = make([]string, 0, len(vals))
	descriptions = make([]string, 0, len(vals))
	for _, v := range vals {
		labels = append(labels, v.Field.Name)
		descriptions = append(descriptions, v.Field.Description)
	}
	return labels, descriptions
}

// 对齐的格式化输出
//
//	BFARVALID   = 0x1 [bits  7:7]
//	LSPERR      = 0x0 [bits  5:5]
func FormatFieldValues(vals []FieldValue) string {
	maxNameLen := 0
	for _, v := range vals {
		if l := len(v.Field.Name); l > maxNameLen {
			maxNameLen = l
		}
	}

	var b strings.Builder
	for _, v := range vals {
		hi, lo := v.Field.Bits()
		fmt.Fprintf(&b, "%-*s = 0x%X [bits %2d:%d]\n", maxNameLen, v.Field.Name, v.Value, hi, lo)
	}
	return b.String()
}

// 把字段值重新装回原始值，只对连续掩码有意义
func PackFields(vals []FieldValue) uint64 {
	var out uint64
	for _, v := range vals {
		out |= RestoreFieldToOffset(v.Value, v.Field.Shift) & v.Field.Mask
	}
	return out
}
