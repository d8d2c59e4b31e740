package qqjson

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"fault_tool/pkg/toolutil/bit"
)

type JSONFormat string

const (
	JSONFormatOne JSONFormat = "one"
	JSONFormatMul JSONFormat = "mul"
)

// 为了让 VarP 接收自定义类型，实现 flag.Value 接口(String Set Type)即可：
func (f *JSONFormat) String() string { return string(*f) }

func (f *JSONFormat) Set(val string) error {
	switch val {
	case string(JSONFormatMul), string(JSONFormatOne):
		*f = JSONFormat(val)
		return nil
	default:
		return fmt.Errorf("无效的 jsonformat 值: %s", val)
	}
}

func (f *JSONFormat) Type() string {
	return "jsonformat" // 这个字符串用于帮助文档与类型提示
}

// 列出所有的合法值
func (JSONFormat) Values() []string {
	return []string{
		string(JSONFormatMul),
		string(JSONFormatOne),
	}
}

type JSONFormatter func([]byte) []byte

// 保持键的原始顺序，不经过 map
var JsonFormatters = map[JSONFormat]JSONFormatter{
	JSONFormatMul: func(v []byte) []byte {
		return pretty.PrettyOptions(v, &pretty.Options{Width: 80, Indent: "    "})
	},
	JSONFormatOne: func(v []byte) []byte { return append(pretty.Ugly(v), '\n') },
}

// 字段名里出现 . [ ] 这几个字符时要转义，否则 sjson 会当成路径
func qJsonEscapeAndJoin(paths []string) string {
	escaped := make([]string, len(paths))
	for i, p := range paths {
		p = strings.ReplaceAll(p, ".", `\.`)
		p = strings.ReplaceAll(p, "[", `\[`)
		p = strings.ReplaceAll(p, "]", `\]`)
		escaped[i] = p
	}
	return strings.Join(escaped, ".")
}

// RegisterJSON 一个寄存器的解码结果
//
//	{
//	    "register": "BFSR",
//	    "raw": 130,
//	    "hex": "0x82",
//	    "fields": {
//	        "BFARVALID": {"value": 1, "mask": "0x80", "shift": 7, "bits": "7:7", "set": true, "description": "..."},
//	        ...
//	    },
//	    "set": ["BFARVALID", "PRECISERR"]
//	}
func RegisterJSON(name string, raw uint64, size int, vals []bit.FieldValue) (string, error) {
	doc := "{}"
	var err error

	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.Set(doc, path, v)
		}
	}
	setRaw := func(path, v string) {
		if err == nil {
			doc, err = sjson.SetRaw(doc, path, v)
		}
	}

	set("register", name)
	set("raw", raw)
	set("hex", fmt.Sprintf("0x%0*X", size, raw))
	setRaw("fields", "{}")
	setRaw("set", "[]")
	for _, v := range vals {
		hi, lo := v.Field.Bits()
		base := qJsonEscapeAndJoin([]string{"fields", v.Field.Name})
		set(base+".value", v.Value)
		set(base+".mask", fmt.Sprintf("0x%X", v.Field.Mask))
		set(base+".shift", v.Field.Shift)
		set(base+".bits", fmt.Sprintf("%d:%d", hi, lo))
		set(base+".set", v.Value != 0)
		set(base+".description", v.Field.Description)
		if v.Value != 0 {
			set("set.-1", v.Field.Name)
		}
	}
	if err != nil {
		return "", fmt.Errorf("构建 %s 的 JSON 失败: %w", name, err)
	}
	return doc, nil
}

// CombineJSON 把几个寄存器文档放进 registers 数组，用于 CFSR
func CombineJSON(name string, raw uint64, size int, docs []string) (string, error) {
	doc, err := sjson.Set("{}", "register", name)
	if err == nil {
		doc, err = sjson.Set(doc, "raw", raw)
	}
	if err == nil {
		doc, err = sjson.Set(doc, "hex", fmt.Sprintf("0x%0*X", size, raw))
	}
	if err == nil {
		doc, err = sjson.SetRaw(doc, "registers", "[]")
	}
	for _, d := range docs {
		if err != nil {
			break
		}
		doc, err = sjson.SetRaw(doc, "registers.-1", d)
	}
	if err != nil {
		return "", fmt.Errorf("构建 %s 的 JSON 失败: %w", name, err)
	}
	return doc, nil
}

// Query 路径为空时返回整个文档
func Query(doc, path string) (gjson.Result, error) {
	if !gjson.Valid(doc) {
		return gjson.Result{}, fmt.Errorf("输入内容不是有效的 JSON")
	}
	if strings.TrimSpace(path) == "" {
		return gjson.Parse(doc), nil
	}
	res := gjson.Get(doc, path)
	if !res.Exists() {
		return gjson.Result{}, fmt.Errorf("字段 %q 不存在", path)
	}
	return res, nil
}

// Render 按 mul/one 输出，末尾带换行
func Render(doc string, format JSONFormat) ([]byte, error) {
	f, ok := JsonFormatters[format]
	if !ok {
		return nil, fmt.Errorf("不支持的选项内容: %s", format)
	}
	return f([]byte(doc)), nil
}
