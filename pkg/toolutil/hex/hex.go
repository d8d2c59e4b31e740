package hex

import (
	"strconv"
	"strings"

	"fault_tool/pkg/errorutil"
)

func cleanToken(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // 去除 BOM
	return s
}

func parseHex(token string, bits int) (uint64, error) {
	s := strings.TrimPrefix(strings.ToLower(cleanToken(token)), "0x")
	v, err := strconv.ParseUint(s, 16, bits)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok {
			err = ne.Err
		}
		return 0, &errorutil.ParseError{Token: token, Err: err}
	}
	return v, nil
}

// ParseRegValue 解析命令行传入的寄存器值
// 支持十进制和 0x 前缀的十六进制，和 Go 字面量一样也接受 0b/0o 前缀和 _ 分隔符
//
//	ParseRegValue("0x8200")  // 33280
//	ParseRegValue("130")     // 130
//	ParseRegValue("0x_82")   // 130
//
// 失败时返回 *errorutil.ParseError，带上原始输入
func ParseRegValue(token string) (uint64, error) {
	s := cleanToken(token)
	if s == "" {
		return 0, &errorutil.ParseError{Token: token, Err: strconv.ErrSyntax}
	}
	// 前导 0 的十进制（例如 0130）按照十进制处理，不当成八进制
	if len(s) > 1 && s[0] == '0' && isDigits(s) {
		s = strings.TrimLeft(s, "0")
		if s == "" {
			s = "0"
		}
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok {
			err = ne.Err
		}
		return 0, &errorutil.ParseError{Token: token, Err: err}
	}
	return v, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ParseHexToUint32 按十六进制解析，不要求 0x 前缀（调试器 dump 出来的 00008200 这种）
// 故障寄存器都是 32 位，超出范围返回 *errorutil.ParseError
func ParseHexToUint32(s string) (uint32, error) {
	v, err := parseHex(s, 32)
	return uint32(v), err
}
