package bit

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

type Uint interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// 提取 val 中 [start:start+width) 范围的字段
// v16 := uint16(0b1011001111001010)
// fmt.Printf("%08b\n", ExtractBits(v16, 4, 4))  // 输出 1100
// v64 := uint64(0x0FAB_CDEF_0000_1234)
// fmt.Printf("%x\n", ExtractBits(v64, 16, 8))  // 提取 bits 23:16
func ExtractBits[T Uint](val T, start, width byte) T {
	var mask T = (1 << width) - 1
	return (val >> start) & mask
}

// 把字段放回 start 起始位位置（等价于还原为原始结构一部分）
// cfsr := uint32(0x00028200)
// ufsr := ExtractBits(cfsr, 16, 16)      // 0x0002
// bfsr := ExtractBits(cfsr, 8, 8)        // 0x82
// 还原：RestoreFieldToOffset(ufsr, 16) | RestoreFieldToOffset(bfsr, 8)
func RestoreFieldToOffset[T constraints.Unsigned](val T, offset byte) T {
	return val << offset
}

// MaskOf 生成 [start:start+width) 的连续掩码
func MaskOf(start, width byte) uint64 {
	if width >= 64 {
		return ^uint64(0) << start
	}
	return ((uint64(1) << width) - 1) << start
}

// MaskRange 掩码覆盖的最高位和最低位，掩码为 0 时返回 0,0
// 稀疏掩码也只看首尾两位
func MaskRange(mask uint64) (hi, lo int) {
	if mask == 0 {
		return 0, 0
	}
	return 63 - bits.LeadingZeros64(mask), bits.TrailingZeros64(mask)
}
