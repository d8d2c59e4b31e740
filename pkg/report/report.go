package report

import (
	"fmt"
	"strings"
)

const (
	DefaultWidth         = 80
	DefaultHeaderChar    = "="
	DefaultSeparatorChar = "-"
)

// Document 最终输出的文本行
type Document []string

func (d Document) Lines() []string {
	return []string(d)
}

// String 以换行连接，末尾带一个换行
func (d Document) String() string {
	if len(d) == 0 {
		return ""
	}
	return strings.Join(d, "\n") + "\n"
}

// Composer 把寄存器名、原始值、位图和描述表拼成一个带框的文档
type Composer struct {
	Width         int
	HeaderChar    string
	SeparatorChar string
}

func NewComposer() Composer {
	return Composer{
		Width:         DefaultWidth,
		HeaderChar:    DefaultHeaderChar,
		SeparatorChar: DefaultSeparatorChar,
	}
}

// ValueLine "BFSR: 0x82"，size 是补零后的十六进制位数
func ValueLine(name string, raw uint64, size int) string {
	return fmt.Sprintf("%s: 0x%0*X", name, size, raw)
}

// Compose 位图和表格原样输出，不检查宽度
//
//	====...
//	BFSR: 0x82
//	----...
//
//	<diagram>
//
//	----...
//
//	<table>
//
//	====...
func (c Composer) Compose(name string, raw uint64, size int, diagram, table []string) Document {
	// 宽度为负时按 0 处理，分隔线为空行
	width := max(c.Width, 0)
	header := strings.Repeat(c.HeaderChar, width)
	separator := strings.Repeat(c.SeparatorChar, width)

	doc := make(Document, 0, len(diagram)+len(table)+9)
	doc = append(doc, header, ValueLine(name, raw, size), separator, "")
	doc = append(doc, diagram...)
	doc = append(doc, "", separator, "")
	doc = append(doc, table...)
	doc = append(doc, "", header)
	return doc
}
