package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"fault_tool/pkg/errorutil"
	"fault_tool/pkg/hw/cortexm"
	"fault_tool/pkg/initutil"
	"fault_tool/pkg/logutil"
	"fault_tool/pkg/qqjson"
	"fault_tool/pkg/sh"
	"fault_tool/pkg/tableprinter"
)

const TOOL_VERSION = "1.0.0+20261018"

// 命令行上的全局参数，只有显式给出的才覆盖配置文件
type globalFlags struct {
	logLevel   logutil.LogLevel
	logFile    string
	configFile string
	width      int
	padding    int
	style      tableprinter.StyleKind
	format     initutil.OutputFormat
	jsonFormat qqjson.JSONFormat
}

func (g *globalFlags) bind(fs *pflag.FlagSet) {
	def := initutil.DefaultConfig()
	g.logLevel = logutil.WARN
	g.style = def.Style
	g.format = def.Format
	g.jsonFormat = def.JSONFormat

	// 屁股后面带P的函数才支持短选项
	fs.VarP(&g.logLevel, "log-level", "e", "日志等级(DEBUG/INFO/WARN/ERROR)")
	fs.StringVarP(&g.logFile, "log-file", "l", "stderr", "日志文件名(stdout/stderr 表示标准输出/标准错误)")
	fs.StringVarP(&g.configFile, "config", "c", "", "配置文件路径(默认 $"+initutil.ConfigEnv+" 或者程序所在目录的 "+initutil.ConfigFileName+")")
	fs.IntVarP(&g.width, "width", "w", def.Width, "表格总宽度")
	fs.IntVar(&g.padding, "padding", def.Padding, "表格单元格左右留白")
	fs.Var(&g.style, "style", "表格样式(plain/ascii)")
	fs.VarP(&g.format, "format", "t", "输出格式(text/json/sh)")
	fs.VarP(&g.jsonFormat, "jsonformat", "F", "json 输出样式(mul 多行/one 单行)")
}

// apply 配置文件的值被命令行上显式给出的参数覆盖
func (g *globalFlags) apply(fs *pflag.FlagSet, cfg initutil.Config) initutil.Config {
	if fs.Changed("width") {
		cfg.Width = g.width
	}
	if fs.Changed("padding") {
		cfg.Padding = g.padding
	}
	if fs.Changed("style") {
		cfg.Style = g.style
	}
	if fs.Changed("format") {
		cfg.Format = g.format
	}
	if fs.Changed("jsonformat") {
		cfg.JSONFormat = g.jsonFormat
	}
	return cfg
}

func newRootCmd(cfg *initutil.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "faultdec",
		Short: fmt.Sprintf("Faultdec v%s 解码 Cortex-M 的故障状态寄存器(CFSR/UFSR/BFSR/MMFSR/HFSR/SHCSR)", TOOL_VERSION),
		Long: "   __             _  _      _            \n" +
			"  / _| __ _ _  _ | || |_ __| | ___  __   \n" +
			" |  _|/ _` | || || ||  _/ _` |/ -_)/ _|  \n" +
			" |_|  \\__,_|\\_,_||_| \\__\\__,_|\\___|\\__|  \n" +
			fmt.Sprintf("\nFaultdec v%s 解码 Cortex-M 的故障状态寄存器，输出位图和置位字段的说明\n", TOOL_VERSION),
		Version: TOOL_VERSION,
	}

	g := &globalFlags{}
	g.bind(rootCmd.PersistentFlags())
	rootCmd.AddCommand(cortexm.Commands(cfg)...)

	// 阻止 Cobra 在命令参数错误时输出帮助
	rootCmd.SilenceUsage = true
	// 阻止Cobra自动打印RunEs返回的错误内容
	rootCmd.SilenceErrors = true

	// PersistentPreRunE 回调，这个钩子会在用户的命令解析完成、flag 值填充后执行
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := logutil.InitLogger(g.logFile, g.logLevel); err != nil {
			return errorutil.NewExitError(errorutil.CodeIOError, err)
		}
		if logutil.Enabled(logutil.DEBUG) {
			logutil.Debug("命令行: %s", sh.BuildCommandLineQuoted(os.Args))
		}

		loaded, err := initutil.LoadConfig(g.configFile)
		if err != nil {
			return err
		}
		loaded = g.apply(cmd.Flags(), loaded)
		if err := loaded.Validate(); err != nil {
			return err
		}
		*cfg = loaded
		return nil
	}
	return rootCmd
}

// 错误输出到标准错误，json 格式下输出结构化的错误方便脚本处理
func reportError(w io.Writer, cfg initutil.Config, err error) int {
	logutil.Debug("根因: %v", errorutil.RootError(err))
	if cfg.Format == initutil.FormatJSON {
		msg, code := errorutil.FormatErrorAndCode(err)
		fmt.Fprintln(w, msg)
		return code
	}
	fmt.Fprintf(w, "faultdec: %s\n", errorutil.Text(err))
	return errorutil.ExitCodeFromError(err)
}

func main() {
	cfg := initutil.DefaultConfig()
	rootCmd := newRootCmd(&cfg)

	if err := rootCmd.Execute(); err != nil {
		logutil.Error("命令执行失败: %v", err)
		code := reportError(os.Stderr, cfg, err)
		logutil.CloseLogger()
		os.Exit(code)
	}

	// 不要用defer，因为defer是在函数返回前执行的，而不是os.Exit()执行前执行
	logutil.CloseLogger()
	os.Exit(errorutil.CodeSuccess)
}
