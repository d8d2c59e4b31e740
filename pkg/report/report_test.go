package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeLayout(t *testing.T) {
	c := Composer{Width: 10, HeaderChar: "=", SeparatorChar: "-"}
	doc := c.Compose("BFSR", 0x82, 2, []string{"d1", "d2"}, []string{"t1"})

	want := Document{
		"==========",
		"BFSR: 0x82",
		"----------",
		"",
		"d1",
		"d2",
		"",
		"----------",
		"",
		"t1",
		"",
		"==========",
	}
	assert.Equal(t, want, doc)
}

func TestValueLinePadding(t *testing.T) {
	assert.Equal(t, "BFSR: 0x00", ValueLine("BFSR", 0, 2))
	assert.Equal(t, "HFSR: 0x40000000", ValueLine("HFSR", 0x40000000, 8))
	assert.Equal(t, "SHCSR: 0x00070000", ValueLine("SHCSR", 0x70000, 8))
	assert.Equal(t, "UFSR: 0x200", ValueLine("UFSR", 0x200, 2), "补零宽度只是最小宽度")
	assert.Equal(t, "MMFSR: 0xAB", ValueLine("MMFSR", 0xab, 2), "大写十六进制")
}

func TestComposeEmptyTable(t *testing.T) {
	doc := NewComposer().Compose("HFSR", 0, 8, []string{"diagram"}, nil)
	assert.Len(t, doc, 10)
	assert.Equal(t, strings.Repeat("=", 80), doc[0])
	assert.Equal(t, strings.Repeat("-", 80), doc[2])
	assert.Equal(t, []string{"", strings.Repeat("=", 80)}, doc.Lines()[8:])
}

func TestComposeNegativeWidth(t *testing.T) {
	c := Composer{Width: -5, HeaderChar: "=", SeparatorChar: "-"}
	var doc Document
	assert.NotPanics(t, func() { doc = c.Compose("BFSR", 0x82, 2, []string{"d1"}, nil) })
	assert.Equal(t, "", doc[0])
	assert.Equal(t, "BFSR: 0x82", doc[1])
	assert.Equal(t, "", doc[len(doc)-1])
}

func TestComposeDeterministic(t *testing.T) {
	c := NewComposer()
	diagram := []string{"│7 6 5 4│3 2 1 0│"}
	table := []string{"┌─┬─┐", "└─┴─┘"}

	first := c.Compose("BFSR", 0x82, 2, diagram, table).String()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Compose("BFSR", 0x82, 2, diagram, table).String())
	}
	assert.True(t, strings.HasSuffix(first, "\n"))
	assert.Equal(t, "", Document(nil).String())
}
