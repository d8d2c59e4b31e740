package initutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"fault_tool/pkg/errorutil"
	"fault_tool/pkg/logutil"
	"fault_tool/pkg/qqjson"
	"fault_tool/pkg/report"
	"fault_tool/pkg/tableprinter"
	"fault_tool/pkg/toolutil"
)

const (
	ConfigFileName = "faultdec.conf"
	ConfigEnv      = "FAULTDEC_CONFIG"
)

// OutputFormat 报告的输出格式，实现 pflag.Value
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatSh   OutputFormat = "sh"
)

func (f *OutputFormat) String() string { return string(*f) }

func (f *OutputFormat) Set(val string) error {
	switch OutputFormat(val) {
	case FormatText, FormatJSON, FormatSh:
		*f = OutputFormat(val)
		return nil
	default:
		return fmt.Errorf("无效的输出格式: %s (text|json|sh)", val)
	}
}

func (f *OutputFormat) Type() string {
	return "format"
}

func (OutputFormat) Values() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatSh)}
}

// Config 排版和输出相关的全部参数
// 优先级: 命令行 > 配置文件 > 默认值
type Config struct {
	Width         int
	Padding       int
	HeaderChar    string
	SeparatorChar string
	Style         tableprinter.StyleKind
	Format        OutputFormat
	JSONFormat    qqjson.JSONFormat
}

func DefaultConfig() Config {
	return Config{
		Width:         tableprinter.DefaultWidth,
		Padding:       tableprinter.DefaultPadding,
		HeaderChar:    report.DefaultHeaderChar,
		SeparatorChar: report.DefaultSeparatorChar,
		Style:         tableprinter.StyleKindPlain,
		Format:        FormatText,
		JSONFormat:    qqjson.JSONFormatMul,
	}
}

// 行首的 key=value; 才算，# 开头的行被忽略
func configRegexp(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(key) + `=([^;\r\n]*)`)
}

// 取字符串值，找不到时返回默认值
func extractStrConfig(content, key, defaultVal string) string {
	m := configRegexp(key).FindStringSubmatch(content)
	if len(m) < 2 {
		return defaultVal
	}
	return strings.TrimSpace(m[1])
}

// 取整数值，找不到或者不是整数时返回默认值
func extractIntConfig(content, key string, defaultVal int) int {
	s := extractStrConfig(content, key, "")
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		logutil.Warn("配置项 %s=%s 不是整数，使用默认值 %d", key, s, defaultVal)
		return defaultVal
	}
	return v
}

// ParseConfig 用配置文件内容覆盖 base
//
//	# faultdec.conf
//	width=100;
//	padding=1;
//	header_char=#;
//	separator_char=~;
//	style=ascii;
//	format=text;
//	jsonformat=one;
func ParseConfig(content string, base Config) (Config, error) {
	c := base
	c.Width = extractIntConfig(content, "width", c.Width)
	c.Padding = extractIntConfig(content, "padding", c.Padding)
	c.HeaderChar = extractStrConfig(content, "header_char", c.HeaderChar)
	c.SeparatorChar = extractStrConfig(content, "separator_char", c.SeparatorChar)

	var errs []error
	if s := extractStrConfig(content, "style", ""); s != "" {
		errs = append(errs, c.Style.Set(s))
	}
	if s := extractStrConfig(content, "format", ""); s != "" {
		errs = append(errs, c.Format.Set(s))
	}
	if s := extractStrConfig(content, "jsonformat", ""); s != "" {
		errs = append(errs, c.JSONFormat.Set(s))
	}
	if err := errors.Join(errs...); err != nil {
		return base, err
	}
	return c, nil
}

// DefaultConfigPath 环境变量优先，其次是可执行文件所在目录
func DefaultConfigPath() string {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p
	}
	execPath, err := os.Executable()
	if err != nil {
		logutil.Debug("无法获取执行路径: %s", err)
		return ""
	}
	return filepath.Join(filepath.Dir(filepath.FromSlash(execPath)), ConfigFileName)
}

// LoadConfig path 为空时查找默认位置，默认位置没有文件不算错误
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil && !explicit {
		logutil.Debug("没有配置文件 %s，使用默认值", path)
		return cfg, nil
	}

	lines, err := toolutil.ReadFileToLines(path)
	if err != nil {
		return cfg, errorutil.NewExitErrorWithMessage(errorutil.CodeIOError, "读取配置文件失败", err)
	}
	cfg, err = ParseConfig(strings.Join(lines, "\n"), cfg)
	if err != nil {
		return cfg, errorutil.NewExitErrorWithMessage(errorutil.CodeConfigError,
			fmt.Sprintf("配置文件 %s 有误", path), err)
	}
	logutil.Info("config %s: %+v", path, cfg)
	return cfg, nil
}

// Validate 表格能否放下要等知道标签之后才能判断，这里只查明显的错误
func (c Config) Validate() error {
	var errs []error
	if c.Width < 1 {
		errs = append(errs, fmt.Errorf("width 必须大于 0: %d", c.Width))
	}
	if c.Padding < 0 {
		errs = append(errs, fmt.Errorf("padding 不能为负数: %d", c.Padding))
	}
	if tableprinter.DisplayWidth(c.HeaderChar) != 1 {
		errs = append(errs, fmt.Errorf("header_char 必须是单个字符: %q", c.HeaderChar))
	}
	if tableprinter.DisplayWidth(c.SeparatorChar) != 1 {
		errs = append(errs, fmt.Errorf("separator_char 必须是单个字符: %q", c.SeparatorChar))
	}
	if err := errors.Join(errs...); err != nil {
		return errorutil.NewExitErrorWithMessage(errorutil.CodeConfigError, "配置无效", err)
	}
	return nil
}

func (c Config) TablePrinter() tableprinter.TablePrinter {
	return tableprinter.TablePrinter{
		Width:   c.Width,
		Padding: c.Padding,
		Style:   c.Style.Style(),
	}
}

func (c Config) Composer() report.Composer {
	return report.Composer{
		Width:         c.Width,
		HeaderChar:    c.HeaderChar,
		SeparatorChar: c.SeparatorChar,
	}
}
