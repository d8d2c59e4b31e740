package sh

import (
	"fmt"
	"strings"
)

// 下面用来测试
// $'\a\b\t\n\v\f\r\E\\\'\000\001ABC中文'
// BashANSIQuote 将任意字符串转为 $'...' 形式的 ANSI-C 样式安全字符串
func BashANSIQuote(s string) string {
	var b strings.Builder
	b.WriteString("$'")

	for _, r := range s {
		switch r {
		case 27: // Escape (ASCII 27)
			b.WriteString(`\E`)
		case '\a':
			b.WriteString(`\a`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\v':
			b.WriteString(`\v`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		default:
			if r < 32 || r == 127 {
				// 对不可打印字符使用 \ooo 八进制转义
				b.WriteString(fmt.Sprintf(`\%03o`, r))
			} else {
				b.WriteRune(r)
			}
		}
	}

	b.WriteString("'")
	return b.String()
}

// BuildCommandLineQuoted 调试日志里记录完整的命令行，复制出来可以直接重放
func BuildCommandLineQuoted(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = BashANSIQuote(arg)
	}
	return strings.Join(quoted, " ")
}
