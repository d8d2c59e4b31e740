package errorutil

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	CodeSuccess = 0 // 成功执行

	// 60–69: 用户输入或调用错误
	CodeInvalidUsage = 64 // 命令行用法错误（参数不合法、寄存器值无法解析等）
	CodeMissingInput = 65 // 缺失必须输入（如寄存器值）
	CodeInvalidData  = 66 // 用户输入格式错误（数据非法）

	// 70–79: 程序自身或依赖错误
	CodeCmdFailed   = 70 // 命令执行失败（catch-all）
	CodeIOError     = 72 // 文件或设备读写失败
	CodeInternalErr = 74 // 内部 bug、panic、未捕捉异常

	// 80–89: 配置相关错误
	CodeConfigError = 80 // 配置有误（宽度放不下表格等）
)

// omitempty 的作用是空字段不出现
type ExitErrorWithCode struct {
	Code    int    `json:"code"`              // 框架/业务层级错误码
	Message string `json:"message,omitempty"` // 可读消息
	Err     error  `json:"-"`
}

func (e *ExitErrorWithCode) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Exit with code: %d", e.Code)
}

func (e *ExitErrorWithCode) Unwrap() error {
	return e.Err
}

func NewExitError(code int, err error) error {
	return &ExitErrorWithCode{Code: code, Err: err}
}

// 带错误消息的错误
func NewExitErrorWithMessage(code int, message string, err error) error {
	return &ExitErrorWithCode{Code: code, Message: message, Err: err}
}

// ParseError 寄存器原始值不是合法的整数字面量
// 只影响当前这个输入，批量输入中的其它值照常处理
type ParseError struct {
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("无法解析寄存器值 %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("无法解析寄存器值 %q", e.Token)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LayoutError 指定的总宽度放不下最长的标签和最小的内容列
type LayoutError struct {
	Width      int // 请求的总宽度
	LabelWidth int // 最长标签的显示宽度
	Padding    int
	Reason     string
}

func (e *LayoutError) Error() string {
	if e.Reason != "" {
		return "表格布局错误: " + e.Reason
	}
	return fmt.Sprintf("表格布局错误: 宽度 %d 放不下标签宽度 %d (padding %d)，至少需要 %d",
		e.Width, e.LabelWidth, e.Padding, MinTableWidth(e.LabelWidth, e.Padding))
}

// MinTableWidth 内容列至少要有 1 个字符
func MinTableWidth(labelWidth, padding int) int {
	return labelWidth + 3 + 4*padding + 1
}

// os.Exit(errorutil.ExitCodeFromError(err))
// errors.Join 的情况下取第一个能识别的错误
func ExitCodeFromError(err error) int {
	if err == nil {
		return CodeSuccess
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return CodeInvalidUsage
	}
	var layoutErr *LayoutError
	if errors.As(err, &layoutErr) {
		return CodeConfigError
	}
	var exitErr *ExitErrorWithCode
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return CodeInternalErr
}

// msg := errorutil.UserMessage(err)
func UserMessage(err error) string {
	var exitErr *ExitErrorWithCode
	if errors.As(err, &exitErr) && exitErr.Message != "" {
		return exitErr.Message
	}
	return ""
}

// 判断当前的错误是否是带退出码的错误
func HasExitCode(err error) bool {
	var exitErr *ExitErrorWithCode
	return errors.As(err, &exitErr)
}

// 提取原始错误
func RootError(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

// Text 文本格式下给用户看的错误，可读消息放在前面
//
//	读取寄存器值失败: 无法打开文件 dump.txt: no such file or directory
func Text(err error) string {
	if !HasExitCode(err) {
		return err.Error()
	}
	msg, detail := UserMessage(err), err.Error()
	if msg == "" || msg == detail {
		return detail
	}
	return msg + ": " + detail
}

func (e *ExitErrorWithCode) JSON() string {
	type jsonErr struct {
		Code    int    `json:"code"`
		Message string `json:"message,omitempty"`
		Err     string `json:"error,omitempty"`
	}

	data := jsonErr{
		Code:    e.Code,
		Message: e.Message,
	}
	if e.Err != nil {
		data.Err = e.Err.Error()
	}
	jsonBytes, _ := json.Marshal(data)
	return string(jsonBytes)
}

// FormatErrorAndCode 把任意错误整理成 JSON 和退出码
func FormatErrorAndCode(err error) (string, int) {
	code := ExitCodeFromError(err)
	var exitErr *ExitErrorWithCode
	if errors.As(err, &exitErr) {
		return exitErr.JSON(), code
	}
	// 构建一个临时 ExitErrorWithCode 对象，并直接调用其 JSON() 方法
	return (&ExitErrorWithCode{
		Code:    code,
		Message: "执行失败",
		Err:     err,
	}).JSON(), code
}
