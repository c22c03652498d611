// Package report 提供 sourcelines 的输出能力。
// 当前实现支持逐行统计格式（可着色）和 JSON 格式（含文件导出）。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sourcelines/internal/model"
)

// SumLabel 是汇总行的名称。
const SumLabel = "(sum)"

// Options 控制逐行输出的内容。
type Options struct {
	Columns Columns
	// Verbose 与 Sum 同时开启时仍输出每个参数；目录参数额外输出按语言拆分的行。
	Verbose bool
	// Sum 在末尾输出汇总行。
	Sum   bool
	Color bool
}

// PrintRows 按参数顺序输出统计行。
//
// 每列按 "%8d "（千行列为 "%8.3f "）输出，随后是 "<语言> 名称"，
// 汇总行的名称固定为 "<*> (sum)"，目录下的语言行只有 "<语言>"。
func PrintRows(writer io.Writer, result model.ScanResult, options Options) error {
	columns := options.Columns.Resolve()
	colors := newPalette(writer, options.Color)

	if options.Verbose || !options.Sum {
		for _, entry := range result.Entries {
			line := formatRow(colors, columns, entry.Stats, entry.Language, entry.Path, false)
			if _, err := fmt.Fprintln(writer, line); err != nil {
				return err
			}

			if !entry.IsDir || !options.Verbose {
				continue
			}
			for _, item := range sortLanguages(entry.Languages, columns) {
				line := formatRow(colors, columns, item.Stats, item.Language, "", false)
				if _, err := fmt.Fprintln(writer, colors.paint(colors.muted, line)); err != nil {
					return err
				}
			}
		}
	}

	if options.Sum {
		line := formatRow(colors, columns, result.Total.Stats, "*", SumLabel, true)
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}
	return nil
}

// formatRow 拼接一行输出。name 为空代表语言汇总行。
func formatRow(colors palette, columns Columns, stats model.Stats, language string, name string, isSum bool) string {
	var builder strings.Builder

	// 语言汇总行整体变暗，各列不再单独着色。
	cell := func(style lipgloss.Style, text string) {
		if name == "" {
			builder.WriteString(text)
		} else {
			builder.WriteString(colors.paint(style, text))
		}
		builder.WriteString(" ")
	}

	if columns.ActualKLOC {
		cell(colors.actual, klocs(stats.ActualLOC))
	}
	if columns.ActualLOC {
		cell(colors.actual, fmt.Sprintf("%8d", stats.ActualLOC))
	}
	if columns.RawKLOC {
		cell(colors.raw, klocs(stats.RawLOC))
	}
	if columns.RawLOC {
		cell(colors.raw, fmt.Sprintf("%8d", stats.RawLOC))
	}
	if columns.Words {
		cell(colors.words, fmt.Sprintf("%8d", stats.Words))
	}
	if columns.Chars {
		cell(colors.chars, fmt.Sprintf("%8d", stats.Chars))
	}
	if columns.Bytes {
		cell(colors.bytes, fmt.Sprintf("%8d", stats.Bytes))
	}

	switch {
	case isSum:
		builder.WriteString(colors.paint(colors.sum, "<*> "+name))
	case name == "":
		builder.WriteString("<" + language + ">")
	default:
		builder.WriteString(colors.paint(colors.lang, "<"+language+">"))
		builder.WriteString(" " + name)
	}

	return strings.TrimRight(builder.String(), " ")
}

func klocs(value int64) string {
	return fmt.Sprintf("%8.3f", float64(value)/1000.0)
}

// sortLanguages 去掉全 0 的语言，按第一列降序、语言名升序排列。
func sortLanguages(items []model.LanguageStats, columns Columns) []model.LanguageStats {
	sorted := make([]model.LanguageStats, 0, len(items))
	for _, item := range items {
		if !item.Stats.IsZero() {
			sorted = append(sorted, item)
		}
	}

	sort.SliceStable(sorted, func(i int, j int) bool {
		left := columns.SortKey(sorted[i].Stats)
		right := columns.SortKey(sorted[j].Stats)
		if left != right {
			return left > right
		}
		return sorted[i].Language < sorted[j].Language
	})
	return sorted
}

// PrintJSON 把扫描结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(append(content, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteJSONFile 将 JSON 结果导出到指定路径。
// 如果目录不存在会自动创建。
func WriteJSONFile(path string, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}
