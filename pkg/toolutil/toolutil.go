package toolutil

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// 读取文件并返回按行拆分的字符串列表，适用于所有操作系统
func ReadFileToLines(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("无法打开文件 %s: %w", filePath, err)
	}

	// 使用 defer + 匿名函数捕获 file.Close() 错误
	var closeErr error
	defer func() {
		if cerr := file.Close(); cerr != nil {
			closeErr = fmt.Errorf("关闭文件 %s 失败: %w", filePath, cerr)
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		// 自动处理不同操作系统的换行符
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}

	readErr := scanner.Err()
	if readErr != nil {
		readErr = fmt.Errorf("读取文件 %s 出错: %w", filePath, readErr)
	}

	if readErr != nil || closeErr != nil {
		return lines, errors.Join(readErr, closeErr)
	}

	return lines, nil
}

// SplitTokens 从多行文本里取出寄存器值
// # 之后是注释，空白和逗号都算分隔符
//
//	# HardFault dump
//	0x00008200, 0x00020000
//	0x40000000  # HFSR
func SplitTokens(lines []string) []string {
	var tokens []string
	for _, line := range lines {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		tokens = append(tokens, strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})...)
	}
	return tokens
}

// ReadValueTokens 读取值文件，"-" 表示标准输入
func ReadValueTokens(filePath string) ([]string, error) {
	if filePath == "-" {
		var lines []string
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("读取标准输入出错: %w", err)
		}
		return SplitTokens(lines), nil
	}

	lines, err := ReadFileToLines(filePath)
	if err != nil {
		return nil, err
	}
	return SplitTokens(lines), nil
}
