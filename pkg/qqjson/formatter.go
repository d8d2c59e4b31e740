package qqjson

import (
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"

	"fault_tool/pkg/sh"
)

type OutputFormatter interface {
	Format(w io.Writer, res gjson.Result, varName string, jsonFormat JSONFormat) error
	// 可选: 用于错误退出前执行的清理
	Cleanup(w io.Writer, varName string)
}

type BashFormatter struct{}

func (f BashFormatter) Format(w io.Writer, res gjson.Result, varName string, _ JSONFormat) error {
	return outputBash(w, varName, res)
}

// 失败时把变量清掉，调用方 eval 之后可以用 ${var@A} 判断
func (f BashFormatter) Cleanup(w io.Writer, varName string) {
	if varName == "" {
		varName = "RESULT"
	}
	fmt.Fprintf(w, "unset -v %s\n", varName)
}

type TextFormatter struct{}

func (f TextFormatter) Format(w io.Writer, res gjson.Result, _ string, jsonFormat JSONFormat) error {
	return outputText(w, res, jsonFormat)
}

func (f TextFormatter) Cleanup(io.Writer, string) {
	// 空实现，不做任何事
}

var formatters = map[string]OutputFormatter{
	"sh":   BashFormatter{},
	"json": TextFormatter{},
}

// Formatter json 或 sh
func Formatter(name string) (OutputFormatter, error) {
	f, ok := formatters[name]
	if !ok {
		return nil, fmt.Errorf("不支持的格式: %s", name)
	}
	return f, nil
}

// 使用 declare 确保是局部变量
//
//	unset -v RESULT ; declare -A RESULT=(
//	    [$'register']=$'BFSR'
//	    ...
//	)
func outputBash(w io.Writer, name string, res gjson.Result) error {
	if name == "" {
		name = "RESULT"
	}

	if res.IsArray() {
		var parts []string
		res.ForEach(func(_, v gjson.Result) bool {
			parts = append(parts, sh.BashANSIQuote(v.String()))
			return true
		})
		_, err := fmt.Fprintf(w, "unset -v %s ; declare -a %s=(%s)\n", name, name, strings.Join(parts, " "))
		return err
	}

	if res.IsObject() {
		var b strings.Builder
		fmt.Fprintf(&b, "unset -v %s ; declare -A %s=(\n", name, name)
		res.ForEach(func(k, v gjson.Result) bool {
			fmt.Fprintf(&b, "    [%s]=%s\n", sh.BashANSIQuote(k.String()), sh.BashANSIQuote(v.String()))
			return true
		})
		b.WriteString(")\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	// 原始值(确保是局部变量)
	_, err := fmt.Fprintf(w, "unset -v %s ; declare %s=%s\n", name, name, sh.BashANSIQuote(res.String()))
	return err
}

// 字符串这类标量直接打印值，对象和数组按 mul/one 美化
func outputText(w io.Writer, res gjson.Result, jsonFormat JSONFormat) error {
	if !res.IsObject() && !res.IsArray() {
		_, err := fmt.Fprintln(w, res.String())
		return err
	}
	out, err := Render(res.Raw, jsonFormat)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
