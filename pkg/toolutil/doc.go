// Package toolutil 读取寄存器值的输入文件
//
// 用法示例:
//
//  1. 按行读取文件
//     lines, err := ReadFileToLines("dump.txt")
//
//  2. 从多行文本里拆出寄存器值
//     tokens := SplitTokens([]string{
//     "# HardFault dump",
//     "0x00008200, 0x00020000",
//     "0x40000000  # HFSR",
//     })
//     // [0x00008200 0x00020000 0x40000000]
//
//  3. 命令行 -f 参数，"-" 表示从标准输入读取
//     tokens, err := ReadValueTokens("-")
//
// 位运算和整数解析分别在 bit 和 hex 子包里
package toolutil
