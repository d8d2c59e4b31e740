package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"fault_tool/pkg/diffutil"
)

// UPDATE_GOLDEN=1 go test ./... 重新生成 golden 文件
const UpdateGoldenEnv = "UPDATE_GOLDEN"

// ProjectRoot 从当前工作目录向上找 go.mod
// go test 会进入每个包的目录执行，不能假设工作目录
func ProjectRoot() (string, error) {
	curPath, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("获取当前工作目录失败: %v", err)
	}

	dir := filepath.Clean(filepath.FromSlash(curPath))
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s 以及上级目录中都没有 go.mod", curPath)
		}
		dir = parent
	}
}

// ReadGolden 读取当前包 testdata 下的文件
func ReadGolden(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("读取 golden 文件 %s 失败: %v", name, err)
	}
	return string(data)
}

// AssertGolden 不一致时并排打印差异
func AssertGolden(t *testing.T, name, got string) {
	t.Helper()
	path := filepath.Join("testdata", name)
	if os.Getenv(UpdateGoldenEnv) == "1" {
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("写入 golden 文件 %s 失败: %v", path, err)
		}
		return
	}

	want := ReadGolden(t, name)
	if want == got {
		return
	}
	diff := diffutil.CompareLines(splitLines(want), splitLines(got))
	t.Errorf("%s 不一致:\n%s", name, diffutil.FormatSideBySide(diff, "* golden", "* got"))
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// ExecuteCommand 在进程内执行 cobra 命令，返回标准输出和标准错误
func ExecuteCommand(root *cobra.Command, args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

// DecodeJSON 把命令输出解析成指定的结构体
func DecodeJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(s), &result); err != nil {
		t.Fatalf("输出不是有效的 JSON: %v\n%s", err, s)
	}
	return result
}
