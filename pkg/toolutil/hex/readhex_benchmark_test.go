package hex

import (
	"testing"
)

const testHexStr = "0x1A2B3C\n"

func BenchmarkParseHexToUint32(b *testing.B) {
	for b.Loop() {
		_, err := ParseHexToUint32(testHexStr)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseRegValue_Hex(b *testing.B) {
	for b.Loop() {
		_, err := ParseRegValue(testHexStr)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseRegValue_Decimal(b *testing.B) {
	for b.Loop() {
		_, err := ParseRegValue("33280")
		if err != nil {
			b.Fatal(err)
		}
	}
}
