package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fault_tool/internal/testutils"
	"fault_tool/pkg/errorutil"
	"fault_tool/pkg/initutil"
	"fault_tool/pkg/tableprinter"
)

func run(t *testing.T, args ...string) (string, initutil.Config, error) {
	t.Helper()
	t.Setenv(initutil.ConfigEnv, filepath.Join(t.TempDir(), "absent.conf"))
	cfg := initutil.DefaultConfig()
	out, _, err := testutils.ExecuteCommand(newRootCmd(&cfg), args...)
	return out, cfg, err
}

func golden(t *testing.T, name string) string {
	t.Helper()
	root, err := testutils.ProjectRoot()
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(root, "pkg", "hw", "cortexm", "testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestRootDefaults(t *testing.T) {
	out, cfg, err := run(t, "bfsr", "0x82")
	require.NoError(t, err)
	assert.Equal(t, initutil.DefaultConfig(), cfg)
	assert.Equal(t, golden(t, "bfsr_0x82.golden"), out)
}

func TestRootWidthFlag(t *testing.T) {
	out, cfg, err := run(t, "--width", "60", "hfsr", "0x40000002")
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Width)
	assert.Equal(t, golden(t, "hfsr_0x40000002_w60.golden"), out)
}

func TestRootConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), initutil.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("width=60;\nstyle=ascii;\nformat=json;\n"), 0o644))

	// 命令行显式给出的参数优先
	out, cfg, err := run(t, "-c", path, "--style", "plain", "-F", "one", "bfsr", "0x82", "-q", "raw")
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Width)
	assert.Equal(t, tableprinter.StyleKindPlain, cfg.Style)
	assert.Equal(t, initutil.FormatJSON, cfg.Format)
	assert.Equal(t, "130\n", out)
}

func TestRootInvalidConfig(t *testing.T) {
	_, _, err := run(t, "--width", "0", "bfsr", "0x82")
	assert.Equal(t, errorutil.CodeConfigError, errorutil.ExitCodeFromError(err))

	_, _, err = run(t, "-c", filepath.Join(t.TempDir(), "missing.conf"), "bfsr", "0x82")
	assert.Equal(t, errorutil.CodeIOError, errorutil.ExitCodeFromError(err))

	_, _, err = run(t, "--format", "yaml", "bfsr", "0x82")
	assert.Error(t, err)
}

func TestRootLayoutError(t *testing.T) {
	_, _, err := run(t, "-w", "16", "bfsr", "0x80")
	assert.Equal(t, errorutil.CodeConfigError, errorutil.ExitCodeFromError(err))
}

func TestReportErrorText(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "dump.txt")
	_, cfg, err := run(t, "bfsr", "-f", missing)
	require.Error(t, err)

	var buf bytes.Buffer
	code := reportError(&buf, cfg, err)
	assert.Equal(t, errorutil.CodeIOError, code)
	assert.True(t, strings.HasPrefix(buf.String(), "faultdec: 读取寄存器值失败: "), buf.String())
	assert.Contains(t, buf.String(), "dump.txt")
}

func TestReportErrorJSON(t *testing.T) {
	_, cfg, err := run(t, "-t", "json", "bfsr")
	require.Error(t, err)
	assert.Equal(t, initutil.FormatJSON, cfg.Format)

	var buf bytes.Buffer
	code := reportError(&buf, cfg, err)
	assert.Equal(t, errorutil.CodeMissingInput, code)
	doc := testutils.DecodeJSON[map[string]any](t, buf.String())
	assert.Equal(t, float64(errorutil.CodeMissingInput), doc["code"])
	assert.Equal(t, "缺少寄存器值", doc["message"])
}
