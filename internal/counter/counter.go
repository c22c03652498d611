// Package counter 负责单文件统计：二进制探测、语言识别、注释语法解析与逐行累计。
// 该层只关心一个文件，不负责目录遍历与聚合。
package counter

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"sourcelines/internal/languages"
	"sourcelines/internal/model"
)

// BinarySampleSize 是二进制探测读取的字节数。
const BinarySampleSize = 8 * 1024

// SkipReason 说明文件为什么被计为全 0。
type SkipReason string

const (
	// NotSkipped 表示文件被正常统计。
	NotSkipped SkipReason = ""
	// SkipBinary 表示前 8 KiB 中含有 NUL 字节。
	SkipBinary SkipReason = "binary"
	// SkipUnreadable 表示文件无法打开或读取失败。
	SkipUnreadable SkipReason = "unreadable"
)

// Result 是 ScanFileDetailed 的完整产物。
type Result struct {
	Language string
	Syntax   languages.CommentSyntax
	Stats    model.Stats
	Skip     SkipReason
	Err      error
}

// ScanFile 统计单个文件。任何失败都退化为全 0 统计，不返回错误。
func ScanFile(path string) model.Stats {
	return ScanFileDetailed(path).Stats
}

// ScanFileDetailed 与 ScanFile 统计口径一致，额外返回语言、注释语法与跳过原因，便于日志与展示。
func ScanFileDetailed(path string) Result {
	result := Result{Language: languages.Detect(path)}

	binary, err := IsBinary(path)
	if err == nil && binary {
		result.Skip = SkipBinary
		return result
	}

	result.Syntax = languages.Resolve(result.Language, path)

	file, err := os.Open(path)
	if err != nil {
		result.Skip = SkipUnreadable
		result.Err = err
		return result
	}
	defer file.Close()

	stats, err := Count(file, result.Syntax)
	if err != nil {
		// 读到一半失败时不保留部分结果。
		result.Skip = SkipUnreadable
		result.Err = err
		return result
	}

	result.Stats = stats
	return result
}

// Count 以给定注释语法流式统计 reader 的内容。
// 每次调用都从块注释外开始，状态不会跨调用保留。
func Count(reader io.Reader, syntax languages.CommentSyntax) (model.Stats, error) {
	var stats model.Stats
	inBlock := false

	err := languages.ForEachLine(reader, func(raw string) {
		stats.RawLOC++
		stats.Bytes += int64(len(raw))
		stats.Chars += int64(utf8.RuneCountInString(raw))
		stats.Words += int64(len(strings.Fields(raw)))

		trimmed := strings.TrimSpace(raw)
		kind := syntax.Classify(trimmed, &inBlock)
		if trimmed != "" && kind == languages.NotComment {
			stats.ActualLOC++
		}
	})
	if err != nil {
		return model.Stats{}, err
	}
	return stats, nil
}

// IsBinary 读取文件开头至多 BinarySampleSize 字节，判断是否含有 NUL 字节。
func IsBinary(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	sample := make([]byte, BinarySampleSize)
	n, err := io.ReadFull(file, sample)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	return HasNullByte(sample[:n]), nil
}

// HasNullByte 判断采样数据中是否含有 NUL 字节。
func HasNullByte(sample []byte) bool {
	return bytes.IndexByte(sample, 0) >= 0
}
