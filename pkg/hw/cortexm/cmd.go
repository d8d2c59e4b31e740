package cortexm

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"fault_tool/pkg/diffutil"
	"fault_tool/pkg/errorutil"
	"fault_tool/pkg/initutil"
	"fault_tool/pkg/logutil"
	"fault_tool/pkg/qqjson"
	"fault_tool/pkg/tableprinter"
	"fault_tool/pkg/toolutil"
	"fault_tool/pkg/toolutil/bit"
	"fault_tool/pkg/toolutil/hex"
	"fault_tool/pkg/treeprinter"
)

// target 可以解码的对象：单个寄存器或者 CFSR
type target struct {
	name  string
	size  int
	text  func(raw uint64, cfg initutil.Config) (string, error)
	json  func(raw uint64) (string, error)
	lines func(raw uint64) []string // diff 使用的字段列表
}

func registerTarget(rt *RegisterType, all bool) target {
	return target{
		name: rt.Name,
		size: rt.Size,
		text: func(raw uint64, cfg initutil.Config) (string, error) {
			doc, err := rt.Report(raw, optionsOf(cfg))
			if err != nil {
				return "", err
			}
			out := doc.String()
			if all {
				out += "\n" + bit.FormatFieldValues(rt.Decode(raw).Values())
			}
			return out, nil
		},
		json: func(raw uint64) (string, error) {
			return qqjson.RegisterJSON(rt.Name, raw, rt.Size, rt.Decode(raw).Values())
		},
		lines: func(raw uint64) []string {
			return strings.Split(strings.TrimSuffix(bit.FormatFieldValues(rt.Decode(raw).Values()), "\n"), "\n")
		},
	}
}

func cfsrTarget(all, tree bool) target {
	return target{
		name: "CFSR",
		size: 8,
		text: func(raw uint64, cfg initutil.Config) (string, error) {
			if tree {
				return Summary(raw, treeStyle(cfg)), nil
			}
			var b strings.Builder
			for i, p := range SplitCFSR(raw).Parts() {
				s, err := registerTarget(p.Type, all).text(p.Raw, cfg)
				if err != nil {
					return "", err
				}
				if i > 0 {
					b.WriteString("\n")
				}
				b.WriteString(s)
			}
			return b.String(), nil
		},
		json: func(raw uint64) (string, error) {
			var docs []string
			for _, p := range SplitCFSR(raw).Parts() {
				d, err := qqjson.RegisterJSON(p.Type.Name, p.Raw, p.Type.Size, p.Type.Decode(p.Raw).Values())
				if err != nil {
					return "", err
				}
				docs = append(docs, d)
			}
			return qqjson.CombineJSON("CFSR", uint64(uint32(raw)), 8, docs)
		},
		lines: func(raw uint64) []string {
			var out []string
			for _, p := range SplitCFSR(raw).Parts() {
				for _, line := range registerTarget(p.Type, false).lines(p.Raw) {
					out = append(out, p.Type.Name+"."+line)
				}
			}
			return out
		},
	}
}

func optionsOf(cfg initutil.Config) Options {
	return Options{Table: cfg.TablePrinter(), Composer: cfg.Composer()}
}

func treeStyle(cfg initutil.Config) treeprinter.Style {
	if cfg.Style == tableprinter.StyleKindASCII {
		return treeprinter.StyleASCII
	}
	return treeprinter.StyleUnicode
}

// 解码类命令共用的参数
type decodeOptions struct {
	all     bool
	query   string
	varName string
	file    string
	hex     bool
}

func (o *decodeOptions) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.all, "all", false, "在报告后面列出所有字段的值（包括为 0 的字段）")
	cmd.Flags().StringVarP(&o.query, "query", "q", "", "json/sh 格式下用 gjson 路径取值，例如 set 或 fields.BFARVALID.value")
	cmd.Flags().StringVarP(&o.varName, "varname", "v", "RESULT", "sh 输出变量名")
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "从文件读取寄存器值，- 表示标准输入，# 之后是注释")
	cmd.Flags().BoolVar(&o.hex, "hex", false, "值一律按十六进制解析，可以省略 0x，例如 00008200")
}

// parse --hex 时按 32 位十六进制解析
func (o *decodeOptions) parse(token string) (uint64, error) {
	if o.hex {
		v, err := hex.ParseHexToUint32(token)
		return uint64(v), err
	}
	return hex.ParseRegValue(token)
}

// 命令行参数和文件里的值合在一起
func (o *decodeOptions) tokens(args []string) ([]string, error) {
	tokens := append([]string(nil), args...)
	if o.file != "" {
		more, err := toolutil.ReadValueTokens(o.file)
		if err != nil {
			return nil, errorutil.NewExitErrorWithMessage(errorutil.CodeIOError, "读取寄存器值失败", err)
		}
		tokens = append(tokens, more...)
	}
	if len(tokens) == 0 {
		return nil, errorutil.NewExitErrorWithMessage(errorutil.CodeMissingInput, "缺少寄存器值", nil)
	}
	return tokens, nil
}

// runDecode 某个值解析失败只跳过这个值，其它值照常输出，最后把错误合在一起返回
// 布局错误对所有值都一样，直接返回
func runDecode(w io.Writer, cfg initutil.Config, t target, tokens []string, o decodeOptions) error {
	var errs []error
	for _, tok := range tokens {
		raw, err := o.parse(tok)
		if err != nil {
			logutil.Warn("%s: %v", t.name, err)
			errs = append(errs, err)
			continue
		}
		logutil.Debug("decode %s %s -> 0x%X", t.name, tok, raw)

		if err := writeTarget(w, cfg, t, raw, o); err != nil {
			return errors.Join(append(errs, err)...)
		}
	}
	return errors.Join(errs...)
}

func writeTarget(w io.Writer, cfg initutil.Config, t target, raw uint64, o decodeOptions) error {
	if cfg.Format == initutil.FormatText {
		s, err := t.text(raw, cfg)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s)
		return err
	}

	f, err := qqjson.Formatter(string(cfg.Format))
	if err != nil {
		return errorutil.NewExitError(errorutil.CodeInvalidUsage, err)
	}
	doc, err := t.json(raw)
	if err == nil {
		res, qerr := qqjson.Query(doc, o.query)
		if qerr == nil {
			return f.Format(w, res, o.varName, cfg.JSONFormat)
		}
		err = qerr
	}
	f.Cleanup(w, o.varName)
	return errorutil.NewExitError(errorutil.CodeInvalidData, err)
}

// 解码命令的 RunE，cfg 在根命令的 PersistentPreRunE 里填好
func decodeRunE(cfg *initutil.Config, o *decodeOptions, pick func(args []string) (target, []string, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		t, rest, err := pick(args)
		if err != nil {
			return err
		}
		tokens, err := o.tokens(rest)
		if err != nil {
			return err
		}
		return runDecode(cmd.OutOrStdout(), *cfg, t, tokens, *o)
	}
}

// 寄存器名可以是 CFSR
func lookupTarget(name string, all bool) (target, error) {
	if strings.EqualFold(strings.TrimSpace(name), "CFSR") {
		return cfsrTarget(all, false), nil
	}
	rt, err := MustLookup(name)
	if err != nil {
		return target{}, errorutil.NewExitError(errorutil.CodeInvalidUsage, err)
	}
	return registerTarget(rt, all), nil
}

// DecodeCmd faultdec decode <REG> <value>...
func DecodeCmd(cfg *initutil.Config) *cobra.Command {
	o := &decodeOptions{}
	cmd := &cobra.Command{
		Use:   "decode <REG> [value...]",
		Short: "解码指定寄存器的值",
		Long: `解码指定寄存器的值，REG 可以是 ` + strings.Join(append(Names(), "CFSR"), " ") + `

Examples:
  faultdec decode bfsr 0x82
  faultdec decode HFSR 0x40000000 -t json -q set
  faultdec decode cfsr -f dump.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: decodeRunE(cfg, o, func(args []string) (target, []string, error) {
			t, err := lookupTarget(args[0], o.all)
			return t, args[1:], err
		}),
	}
	o.bind(cmd)
	return cmd
}

// RegisterCmds bfsr ufsr mmfsr hfsr shcsr 的快捷命令
func RegisterCmds(cfg *initutil.Config) []*cobra.Command {
	var cmds []*cobra.Command
	for _, rt := range Registers() {
		o := &decodeOptions{}
		cmd := &cobra.Command{
			Use:   strings.ToLower(rt.Name) + " [value...]",
			Short: "解码 " + rt.Doc,
			RunE: decodeRunE(cfg, o, func(args []string) (target, []string, error) {
				return registerTarget(rt, o.all), args, nil
			}),
		}
		o.bind(cmd)
		cmds = append(cmds, cmd)
	}
	return cmds
}

// CfsrCmd 拆成 UFSR BFSR MMFSR 三个报告
func CfsrCmd(cfg *initutil.Config) *cobra.Command {
	o := &decodeOptions{}
	var tree bool
	cmd := &cobra.Command{
		Use:   "cfsr [value...]",
		Short: "解码 Configurable Fault Status Register (UFSR | BFSR | MMFSR)",
		Long: `解码 Configurable Fault Status Register

CFSR = UFSR[31:16] | BFSR[15:8] | MMFSR[7:0]，按 UFSR BFSR MMFSR 的顺序输出三个报告。
--tree 只输出一棵概览树:

CFSR: 0x00008200
├── UFSR: 0x00
├── BFSR: 0x82
│   ├── BFARVALID [7:7]
│   └── PRECISERR [1:1]
└── MMFSR: 0x00`,
		RunE: decodeRunE(cfg, o, func(args []string) (target, []string, error) {
			return cfsrTarget(o.all, tree), args, nil
		}),
	}
	o.bind(cmd)
	cmd.Flags().BoolVar(&tree, "tree", false, "只输出置位字段的概览树")
	return cmd
}

// DiffCmd 比较同一个寄存器的两个值
func DiffCmd(cfg *initutil.Config) *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "diff <REG> <before> <after>",
		Short: "并排比较同一个寄存器的两个值",
		Long: `并排比较同一个寄存器的两个值，默认比较字段列表，--full 比较完整报告

Examples:
  faultdec diff bfsr 0x82 0x02
  faultdec diff cfsr 0x00008200 0x00028200`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := lookupTarget(args[0], false)
			if err != nil {
				return err
			}

			var raws [2]uint64
			var errs []error
			for i, tok := range args[1:] {
				raws[i], err = hex.ParseRegValue(tok)
				errs = append(errs, err)
			}
			if err := errors.Join(errs...); err != nil {
				return err
			}

			before, after := t.lines(raws[0]), t.lines(raws[1])
			if full {
				b, err := t.text(raws[0], *cfg)
				if err != nil {
					return err
				}
				a, err := t.text(raws[1], *cfg)
				if err != nil {
					return err
				}
				before = strings.Split(strings.TrimSuffix(b, "\n"), "\n")
				after = strings.Split(strings.TrimSuffix(a, "\n"), "\n")
			}

			diff := diffutil.CompareLines(before, after)
			if !diffutil.HasChanges(diff) {
				logutil.Info("%s 0x%X 和 0x%X 没有差别", t.name, raws[0], raws[1])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), diffutil.FormatSideBySide(diff,
				fmt.Sprintf("%s: 0x%0*X", t.name, t.size, raws[0]),
				fmt.Sprintf("%s: 0x%0*X", t.name, t.size, raws[1])))
			return err
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "比较完整的报告而不是字段列表")
	return cmd
}

// LookupCmd 按前缀查字段
func LookupCmd(cfg *initutil.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup [prefix]",
		Short: "按字段名前缀查找字段所在的寄存器和位置",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			refs := FindFields(prefix)
			if len(refs) == 0 {
				return errorutil.NewExitErrorWithMessage(errorutil.CodeInvalidData,
					fmt.Sprintf("没有以 %q 开头的字段", prefix), nil)
			}

			var labels, descs []string
			for _, r := range refs {
				hi, lo := r.Field.Bits()
				labels = append(labels, r.Register.Name+"."+r.Field.Name)
				descs = append(descs, fmt.Sprintf("[bits %d:%d] %s", hi, lo, r.Field.Description))
			}
			lines, err := cfg.TablePrinter().Render(labels, descs)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
			return err
		},
	}
}

// ListCmd 列出支持的寄存器
func ListCmd(cfg *initutil.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出支持的寄存器",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var labels, descs []string
			for _, rt := range Registers() {
				var names []string
				for _, f := range rt.Catalog.Fields() {
					names = append(names, f.Name)
				}
				labels = append(labels, rt.Name)
				descs = append(descs, fmt.Sprintf("%s. %d 个字段: %s", rt.Doc, rt.Catalog.Len(), strings.Join(names, " ")))
			}
			lines, err := cfg.TablePrinter().Render(labels, descs)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
			return err
		},
	}
}

// Commands 挂到根命令下的全部子命令
func Commands(cfg *initutil.Config) []*cobra.Command {
	cmds := []*cobra.Command{DecodeCmd(cfg), CfsrCmd(cfg), DiffCmd(cfg), LookupCmd(cfg), ListCmd(cfg)}
	return append(cmds, RegisterCmds(cfg)...)
}
