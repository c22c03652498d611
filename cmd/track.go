package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"sourcelines/internal/model"
	"sourcelines/internal/report"
	"sourcelines/internal/scanner"
	"sourcelines/internal/store"

	"github.com/spf13/cobra"
)

// trackOptions 存放 track 子命令的参数。
type trackOptions struct {
	list    bool
	limit   int
	dbPath  string
	workers int
}

// newTrackCmd 创建 track 子命令。
// 示例：
//
//	sourcelines track .
//	sourcelines track ./project --list --limit 5
func newTrackCmd(version string, global *globalOptions) *cobra.Command {
	options := &trackOptions{limit: 10}

	trackCmd := &cobra.Command{
		Use:   "track [dir]",
		Short: "递归统计目录并记录快照，与上一次快照对比",
		Long: "track 递归统计目录，把全局总计与各语言统计写入 SQLite 数据库，\n" +
			"并输出与同一目录上一次快照的差值。--list 只列出历史快照。",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrack(cmd, args, version, options, global)
		},
	}

	trackCmd.Flags().BoolVar(&options.list, "list", false, "列出该目录的历史快照")
	trackCmd.Flags().IntVar(&options.limit, "limit", options.limit, "--list 时最多显示的快照数量，0 表示不限")
	trackCmd.Flags().StringVar(&options.dbPath, "db", "", "快照数据库路径（默认 ~/.config/sourcelines/history.db）")
	trackCmd.Flags().IntVar(&options.workers, "workers", 0, "并发统计文件的 worker 数量，0 表示按配置或 CPU 数")

	return trackCmd
}

func runTrack(cmd *cobra.Command, args []string, version string, options *trackOptions, global *globalOptions) error {
	cfg, err := global.loadConfig()
	if err != nil {
		return err
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	root, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolve absolute path: %w", err)
	}

	dbPath := strings.TrimSpace(options.dbPath)
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if options.list {
		snapshots, err := db.ListSnapshots(root, options.limit)
		if err != nil {
			return err
		}
		return printSnapshots(cmd, root, snapshots)
	}

	workers := options.workers
	if workers <= 0 {
		workers = cfg.Workers
	}
	service := scanner.NewService(scanner.Options{
		Recursive:      true,
		FollowSymlinks: cfg.FollowSymlinks,
		Workers:        workers,
		Filter:         newFilter(cfg, &scanOptions{}),
		Logger:         global.logger(cmd.ErrOrStderr()),
	})
	result, err := service.Scan(cmd.Context(), []string{root})
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	snapshotID, err := db.RecordSnapshot(root, version, result, time.Now())
	if err != nil {
		return err
	}

	previous, err := db.PreviousSnapshot(root, snapshotID)
	if err != nil {
		return err
	}
	var before []model.LanguageStats
	if previous != nil {
		if before, err = db.LanguageStats(previous.ID); err != nil {
			return err
		}
	}

	return printComparison(cmd, cfg.ColorEnabled(cmd.OutOrStdout()), root, snapshotID, previous, result, before)
}

// printSnapshots 输出历史快照列表。
func printSnapshots(cmd *cobra.Command, root string, snapshots []store.Snapshot) error {
	out := cmd.OutOrStdout()
	if len(snapshots) == 0 {
		_, err := fmt.Fprintf(out, "no snapshots for %s\n", root)
		return err
	}

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(writer, "ID\tTAKEN AT\tVERSION\tFILES\tACTUAL\tRAW\tWORDS\tCHARS\tBYTES"); err != nil {
		return err
	}
	for _, item := range snapshots {
		if _, err := fmt.Fprintf(
			writer,
			"%d\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			item.ID,
			item.TakenAt.Local().Format(time.DateTime),
			item.Version,
			item.Total.Files,
			item.Total.ActualLOC,
			item.Total.RawLOC,
			item.Total.Words,
			item.Total.Chars,
			item.Total.Bytes,
		); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// printComparison 输出本次快照各语言的统计以及相对上一次快照的差值。
func printComparison(
	cmd *cobra.Command,
	color bool,
	root string,
	snapshotID int64,
	previous *store.Snapshot,
	result model.ScanResult,
	before []model.LanguageStats,
) error {
	out := cmd.OutOrStdout()
	if previous == nil {
		if _, err := fmt.Fprintf(out, "snapshot #%d for %s (first snapshot)\n\n", snapshotID, root); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(out, "snapshot #%d for %s (compared with #%d)\n\n", snapshotID, root, previous.ID); err != nil {
			return err
		}
	}

	previousByLanguage := make(map[string]model.LanguageStats, len(before))
	for _, item := range before {
		previousByLanguage[item.Language] = item
	}

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(writer, "LANGUAGE\tFILES\tACTUAL\tΔ ACTUAL\tRAW\tΔ RAW"); err != nil {
		return err
	}

	rows := append([]model.LanguageStats(nil), result.Languages...)
	// 上一次存在、这一次消失的语言以 0 行展示，便于看到删除。
	for _, item := range before {
		if !containsLanguage(rows, item.Language) {
			rows = append(rows, model.LanguageStats{Language: item.Language})
		}
	}

	for _, item := range rows {
		old := previousByLanguage[item.Language]
		if err := writeComparisonRow(writer, out, color, item.Language, item.Files, item.Stats, old.Stats); err != nil {
			return err
		}
	}

	var oldTotal model.Stats
	if previous != nil {
		oldTotal = previous.Total.Stats
	}
	if err := writeComparisonRow(writer, out, color, scanner.DirLanguage, result.Total.Files, result.Total.Stats, oldTotal); err != nil {
		return err
	}
	return writer.Flush()
}

func writeComparisonRow(writer io.Writer, out io.Writer, color bool, language string, files int64, current model.Stats, old model.Stats) error {
	_, err := fmt.Fprintf(
		writer,
		"%s\t%d\t%d\t%s\t%d\t%s\n",
		language,
		files,
		current.ActualLOC,
		report.Trend(out, current.ActualLOC-old.ActualLOC, color),
		current.RawLOC,
		report.Trend(out, current.RawLOC-old.RawLOC, color),
	)
	return err
}

func containsLanguage(items []model.LanguageStats, language string) bool {
	for _, item := range items {
		if item.Language == language {
			return true
		}
	}
	return false
}
