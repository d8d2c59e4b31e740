package logutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"DEBUG", DEBUG, false},
		{"info", INFO, false},
		{" Warn ", WARN, false},
		{"error", ERROR, false},
		{"trace", WARN, true},
		{"", WARN, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// LogLevel 作为 flag 值使用
func TestLogLevelFlagValue(t *testing.T) {
	level := WARN
	assert.Equal(t, "WARN", level.String())
	assert.Equal(t, "loglevel", level.Type())

	require.NoError(t, level.Set("debug"))
	assert.Equal(t, DEBUG, level)
	assert.Equal(t, "DEBUG", level.String())

	assert.Error(t, level.Set("verbose"))
	assert.Equal(t, DEBUG, level, "失败时不能修改原值")
}

func TestLoggerFiltersByLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fault.log")
	require.NoError(t, InitLogger(path, INFO))

	Debug("不应该出现 %d", 1)
	Info("decoded %s", "BFSR")
	Warn("bad token %q", "zz")
	require.NoError(t, CloseLogger())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.NotContains(t, out, "不应该出现")
	assert.Contains(t, out, "[INFO] decoded BFSR")
	assert.Contains(t, out, `[WARN] bad token "zz"`)
	assert.True(t, strings.Contains(out, "logutil_test.go:"), "需要带上调用者的文件名")

	assert.True(t, Enabled(ERROR))
	assert.True(t, Enabled(INFO))
	assert.False(t, Enabled(DEBUG))

	require.NoError(t, InitLogger("stderr", WARN))
	assert.False(t, Enabled(INFO))
}
