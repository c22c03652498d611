package languages

import "strings"

// LineKind 是单行分类结果。
type LineKind int

const (
	// NotComment 表示该行不是注释（可能是代码，也可能是空白，空白由调用方判定）。
	NotComment LineKind = iota
	// Comment 表示该行整体按注释处理。
	Comment
)

// String 返回分类名称，便于日志与测试输出。
func (k LineKind) String() string {
	if k == Comment {
		return "comment"
	}
	return "not-comment"
}

// Classify 对一行（已去除首尾空白）做注释判定，并推进块注释状态。
//
// 状态机只有两个状态：
// - inBlock=true：只检查 BlockEnd（子串匹配），本行无论如何都算注释
// - inBlock=false：先检查 BlockStart 前缀，再检查 Line 前缀
//
// 同一行先打开再关闭块注释时不会回到块外，下一行仍被视为注释。
func (s CommentSyntax) Classify(line string, inBlock *bool) LineKind {
	if *inBlock {
		if s.BlockEnd != "" && strings.Contains(line, s.BlockEnd) {
			*inBlock = false
		}
		return Comment
	}

	if s.BlockStart != "" && strings.HasPrefix(line, s.BlockStart) {
		*inBlock = true
		return Comment
	}

	if s.Line != "" && strings.HasPrefix(line, s.Line) {
		return Comment
	}

	return NotComment
}
