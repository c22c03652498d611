package languages

import (
	"io"
	"os"
	"strings"
)

// inferCandidates 是内容推断时的候选语法，顺序即平票时的优先级。
var inferCandidates = [...]CommentSyntax{
	{Line: "//", BlockStart: "/*", BlockEnd: "*/"},
	{Line: "#"},
	{Line: "--", BlockStart: "/*", BlockEnd: "*/"},
	{BlockStart: "<!--", BlockEnd: "-->"},
	{BlockStart: "/*", BlockEnd: "*/"},
	{Line: "%"},
	{Line: "!"},
	{Line: "REM"},
	{Line: "'"},
}

// Candidates 返回推断候选列表的副本。
func Candidates() []CommentSyntax {
	return append([]CommentSyntax(nil), inferCandidates[:]...)
}

// Infer 读取文件内容推断注释语法，文件不可读时返回空语法。
func Infer(path string) CommentSyntax {
	file, err := os.Open(path)
	if err != nil {
		return noComments
	}
	defer file.Close()

	return InferReader(file)
}

// InferReader 用所有候选语法并行分类同一份内容，
// 统计每个候选判为注释的行数，取最大者；平票取候选顺序靠前者。
// 所有计数都为 0 时返回空语法。读错误时以已读到的部分为准。
func InferReader(reader io.Reader) CommentSyntax {
	var (
		inBlock [len(inferCandidates)]bool
		counts  [len(inferCandidates)]int
	)

	_ = ForEachLine(reader, func(raw string) {
		line := strings.TrimSpace(raw)
		for i := range inferCandidates {
			if inferCandidates[i].Classify(line, &inBlock[i]) == Comment {
				counts[i]++
			}
		}
	})

	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	if counts[best] == 0 {
		return noComments
	}
	return inferCandidates[best]
}
