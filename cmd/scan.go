package cmd

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"sourcelines/internal/config"
	"sourcelines/internal/filter"
	"sourcelines/internal/report"
	"sourcelines/internal/scanner"

	"github.com/spf13/cobra"
)

// scanOptions 存放统计命令的可配置参数。
type scanOptions struct {
	recursive      bool
	sum            bool
	verbose        bool
	color          bool
	followSymlinks bool
	exclude        []string
	include        []string
	columns        report.Columns
	format         string
	output         string
	workers        int
}

func newScanOptions() *scanOptions {
	return &scanOptions{
		format:  "table",
		workers: runtime.NumCPU(),
	}
}

// bindFlags 把统计参数注册到根命令。
// 示例：
//
//	sourcelines -rs .
//	sourcelines -rvs --exclude '*.md' src
//	sourcelines -kK -r . --format json --output result.json
func (o *scanOptions) bindFlags(command *cobra.Command) {
	flags := command.Flags()
	flags.BoolVarP(&o.recursive, "recursive", "r", false, "递归处理目录")
	flags.BoolVarP(&o.sum, "sum", "s", false, "在末尾输出汇总行")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "与 -s 同时使用时仍输出每一项；目录额外输出按语言拆分的汇总")
	flags.BoolVarP(&o.color, "color", "C", false, "使用 ANSI 颜色输出")
	flags.StringArrayVar(&o.exclude, "exclude", nil, "排除匹配该通配符的文件或目录（可重复）")
	flags.StringArrayVar(&o.include, "include", nil, "包含匹配该通配符的文件或目录，优先于排除（可重复）")
	flags.BoolVarP(&o.columns.ActualKLOC, "actual-klocs", "k", false, "显示有效千行数（actual loc / 1000）")
	flags.BoolVarP(&o.columns.ActualLOC, "actual-loc", "l", false, "显示有效行数")
	flags.BoolVarP(&o.columns.RawKLOC, "raw-klocs", "K", false, "显示原始千行数（raw loc / 1000）")
	flags.BoolVarP(&o.columns.RawLOC, "raw-locs", "R", false, "显示原始行数")
	flags.BoolVarP(&o.followSymlinks, "follow-symlinks", "L", false, "递归时跟随符号链接")
	flags.BoolVarP(&o.columns.Words, "words", "w", false, "显示单词数")
	flags.BoolVarP(&o.columns.Chars, "chars", "c", false, "显示字符数")
	flags.BoolVarP(&o.columns.Bytes, "bytes", "b", false, "显示字节数")
	flags.StringVar(&o.format, "format", o.format, "输出格式: table 或 json")
	flags.StringVar(&o.output, "output", o.output, "同时把 JSON 结果导出到该路径")
	flags.IntVar(&o.workers, "workers", o.workers, "并发统计文件的 worker 数量")
}

// runScan 执行统计并输出结果。
func runScan(cmd *cobra.Command, args []string, options *scanOptions, global *globalOptions) error {
	format := strings.ToLower(strings.TrimSpace(options.format))
	if format != "table" && format != "json" {
		return errors.New("unsupported format, allowed values: table, json")
	}

	cfg, err := global.loadConfig()
	if err != nil {
		return err
	}

	workers := options.workers
	if !cmd.Flags().Changed("workers") && cfg.Workers > 0 {
		workers = cfg.Workers
	}
	if workers <= 0 {
		return errors.New("workers must be greater than 0")
	}

	paths := args
	recursive := options.recursive
	verbose := options.verbose
	if len(paths) == 0 {
		paths = []string{"."}
		recursive = true
		verbose = true
	}

	service := scanner.NewService(scanner.Options{
		Recursive:      recursive,
		FollowSymlinks: options.followSymlinks || cfg.FollowSymlinks,
		Workers:        workers,
		Filter:         newFilter(cfg, options),
		Logger:         global.logger(cmd.ErrOrStderr()),
	})
	result, err := service.Scan(cmd.Context(), paths)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	switch format {
	case "json":
		if err := report.PrintJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	default:
		if err := report.PrintRows(cmd.OutOrStdout(), result, report.Options{
			Columns: options.columns,
			Verbose: verbose,
			Sum:     options.sum,
			Color:   options.color || cfg.ColorEnabled(cmd.OutOrStdout()),
		}); err != nil {
			return err
		}
	}

	outputPath := strings.TrimSpace(options.output)
	if outputPath == "" {
		return nil
	}
	if err := report.WriteJSONFile(outputPath, result); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "JSON exported to %s\n", outputPath)
	return nil
}

// newFilter 合并配置文件与命令行中的排除/包含模式。
func newFilter(cfg *config.Config, options *scanOptions) *filter.Filter {
	return filter.New(
		slices.Concat(cfg.Exclude, options.exclude),
		slices.Concat(cfg.Include, options.include),
	)
}
