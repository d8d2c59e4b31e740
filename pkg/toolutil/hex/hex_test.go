package hex

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"fault_tool/pkg/errorutil"
)

func TestParseRegValue(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"0x80", 0x80},
		{"0X8200", 0x8200},
		{"128", 128},
		{"  0x82\n", 0x82},
		{"0130", 130},
		{"0", 0},
		{"000", 0},
		{"0b1000_0010", 0x82},
		{"0x_FFFF_FFFF", 0xFFFFFFFF},
		{"\uFEFF0x40", 0x40},
		{"0xFFFFFFFFFFFFFFFF", 0xFFFFFFFFFFFFFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRegValue(tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRegValueErrors(t *testing.T) {
	for _, in := range []string{"", "zz", "0xZZ", "-1", "1.5", "0x10000000000000000"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseRegValue(in)
			var pe *errorutil.ParseError
			if assert.True(t, errors.As(err, &pe), "应该返回 ParseError: %v", err) {
				assert.Equal(t, in, pe.Token)
			}
		})
	}
}

func TestParseHexToUint32(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"deadbeef", 0xDEADBEEF},
		{"00008200", 0x8200},
		{"82", 0x82},
		{"0x40000000", 0x40000000},
		{" 0X82\n", 0x82},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexToUint32(tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, in := range []string{"", "zz", "1_0", "100000000"} {
		_, err := ParseHexToUint32(in)
		var pe *errorutil.ParseError
		if assert.True(t, errors.As(err, &pe), "应该返回 ParseError: %q", in) {
			assert.Equal(t, in, pe.Token)
		}
	}
}
