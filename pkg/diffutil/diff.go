package diffutil

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	MarkEqual   = "|"
	MarkInsert  = "+"
	MarkDelete  = "-"
	MarkChanged = "~"
)

type DiffLine struct {
	Left  string
	Right string
	Mark  string // "|", "+", "-", "~"
}

// CompareLines 按行比较，空行也参与比较
// 相邻的删除和插入两两配对成修改行，多出来的仍然是删除或插入
func CompareLines(before, after []string) []DiffLine {
	dmp := diffmatchpatch.New()
	text1, text2, lineArray := dmp.DiffLinesToChars(joinLines(before), joinLines(after))
	diffs := dmp.DiffMain(text1, text2, false)
	dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var result []DiffLine
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		if d.Type == diffmatchpatch.DiffDelete &&
			i+1 < len(diffs) &&
			diffs[i+1].Type == diffmatchpatch.DiffInsert {

			delLines := splitLines(d.Text)
			insLines := splitLines(diffs[i+1].Text)
			for j := range max(len(delLines), len(insLines)) {
				switch {
				case j >= len(insLines):
					result = append(result, DiffLine{Left: delLines[j], Mark: MarkDelete})
				case j >= len(delLines):
					result = append(result, DiffLine{Right: insLines[j], Mark: MarkInsert})
				default:
					result = append(result, DiffLine{Left: delLines[j], Right: insLines[j], Mark: MarkChanged})
				}
			}
			i++
			continue
		}

		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				result = append(result, DiffLine{Left: line, Right: line, Mark: MarkEqual})
			case diffmatchpatch.DiffDelete:
				result = append(result, DiffLine{Left: line, Mark: MarkDelete})
			case diffmatchpatch.DiffInsert:
				result = append(result, DiffLine{Right: line, Mark: MarkInsert})
			}
		}
	}
	return result
}

// HasChanges 除了相同行以外还有别的
func HasChanges(diff []DiffLine) bool {
	for _, d := range diff {
		if d.Mark != MarkEqual {
			return true
		}
	}
	return false
}

// 每行都以换行结尾，行模式比较时最后一行才不会和其他行不同
func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
