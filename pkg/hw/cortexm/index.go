package cortexm

import (
	"strings"
	"sync"

	"github.com/armon/go-radix"

	"fault_tool/pkg/toolutil/bit"
)

// FieldRef 一个字段以及它所在的寄存器
type FieldRef struct {
	Register *RegisterType
	Field    *bit.Field
}

var (
	indexOnce  sync.Once
	fieldIndex *radix.Tree
)

// 键是大写的字段名，值是 []FieldRef（不同寄存器允许同名字段）
func index() *radix.Tree {
	indexOnce.Do(func() {
		fieldIndex = radix.New()
		for _, rt := range Registers() {
			for _, f := range rt.Catalog.Fields() {
				key := strings.ToUpper(f.Name)
				var refs []FieldRef
				if v, ok := fieldIndex.Get(key); ok {
					refs = v.([]FieldRef)
				}
				fieldIndex.Insert(key, append(refs, FieldRef{Register: rt, Field: f}))
			}
		}
	})
	return fieldIndex
}

// FindFields 按前缀查找字段，结果按字段名排序，前缀为空返回全部
//
//	FindFields("bus") // BUSFAULTACT BUSFAULTENA BUSFAULTPENDED
func FindFields(prefix string) []FieldRef {
	var out []FieldRef
	index().WalkPrefix(strings.ToUpper(strings.TrimSpace(prefix)), func(_ string, v interface{}) bool {
		out = append(out, v.([]FieldRef)...)
		return false
	})
	return out
}

// FindField 精确查找
func FindField(name string) []FieldRef {
	v, ok := index().Get(strings.ToUpper(strings.TrimSpace(name)))
	if !ok {
		return nil
	}
	return append([]FieldRef(nil), v.([]FieldRef)...)
}
