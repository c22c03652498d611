// Package scanner 提供目录遍历与并发扫描调度能力。
// 该层负责遍历、过滤、任务分发、并发执行和结果聚合，不负责行分类细节。
package scanner

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"sourcelines/internal/counter"
	"sourcelines/internal/filter"
	"sourcelines/internal/model"
)

// DirLanguage 是目录参数行使用的语言占位符。
const DirLanguage = "*"

// ErrNoPaths 在没有任何待扫描路径时返回。
var ErrNoPaths = errors.New("no paths to scan")

// Options 控制一次扫描的遍历策略。
type Options struct {
	// Recursive 为 false 时目录参数只统计其直接包含的普通文件。
	Recursive bool
	// FollowSymlinks 为 false 时目录中的符号链接会被跳过。
	FollowSymlinks bool
	// Workers 是并发统计文件的数量，<=0 时取 CPU 数。
	Workers int
	// Filter 作用于目录项名称，nil 表示不过滤。
	Filter *filter.Filter
	// Logger 非空时记录被跳过的文件与读取失败的目录。
	Logger *log.Logger
}

// Service 是扫描服务对象。
type Service struct {
	options Options
}

// scanTask 表示一个待统计文件任务。
type scanTask struct {
	entry int
	path  string
}

// taskResult 表示 worker 的执行产物。
type taskResult struct {
	task   scanTask
	result counter.Result
}

// NewService 创建扫描服务。
func NewService(options Options) *Service {
	if options.Workers <= 0 {
		options.Workers = runtime.NumCPU()
	}
	return &Service{options: options}
}

// Scan 依次处理命令行参数（文件或目录），并发统计所有文件后聚合。
// 单个文件或目录的失败只会让对应部分计为 0，唯一会返回的错误是 ctx 被取消。
func (s *Service) Scan(ctx context.Context, paths []string) (model.ScanResult, error) {
	var result model.ScanResult
	if len(paths) == 0 {
		return result, ErrNoPaths
	}

	result.Entries = make([]model.Entry, len(paths))
	for i, path := range paths {
		result.Entries[i] = model.Entry{Path: path}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			result.Entries[i].IsDir = true
			result.Entries[i].Language = DirLanguage
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	tasks := make(chan scanTask, s.options.Workers*4)
	results := make(chan taskResult, s.options.Workers*4)

	group.Go(func() error {
		defer close(tasks)
		return s.enqueueTasks(groupCtx, result.Entries, tasks)
	})

	workers, workersCtx := errgroup.WithContext(groupCtx)
	for i := 0; i < s.options.Workers; i++ {
		workers.Go(func() error {
			return s.runWorker(workersCtx, tasks, results)
		})
	}
	group.Go(func() error {
		defer close(results)
		return workers.Wait()
	})

	collected := make([]taskResult, 0)
	for item := range results {
		collected = append(collected, item)
	}

	if err := group.Wait(); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	s.buildSummaries(&result, collected)
	return result, nil
}

// enqueueTasks 把每个参数展开成文件任务。
func (s *Service) enqueueTasks(ctx context.Context, entries []model.Entry, tasks chan<- scanTask) error {
	for i, entry := range entries {
		if !entry.IsDir {
			if err := send(ctx, tasks, scanTask{entry: i, path: entry.Path}); err != nil {
				return err
			}
			continue
		}

		visited := make(map[string]struct{})
		if resolved, err := filepath.EvalSymlinks(entry.Path); err == nil {
			visited[resolved] = struct{}{}
		}

		err := s.walkDir(ctx, entry.Path, visited, func(path string) error {
			return send(ctx, tasks, scanTask{entry: i, path: path})
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// walkDir 遍历一个目录。目录读取失败按“没有条目”处理。
func (s *Service) walkDir(ctx context.Context, dir string, visited map[string]struct{}, visit func(string) error) error {
	items, err := os.ReadDir(dir)
	if err != nil {
		s.logf("skip directory %s: %v", dir, err)
		return nil
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := item.Name()
		if s.options.Filter.Skip(name) {
			continue
		}

		path := filepath.Join(dir, name)
		if item.Type()&fs.ModeSymlink != 0 && !s.options.FollowSymlinks {
			continue
		}

		// os.Stat 会跟随符号链接，悬空链接直接忽略。
		info, statErr := os.Stat(path)
		if statErr != nil {
			continue
		}

		switch {
		case info.IsDir():
			if !s.options.Recursive {
				continue
			}
			if s.options.FollowSymlinks {
				resolved, evalErr := filepath.EvalSymlinks(path)
				if evalErr != nil {
					continue
				}
				if _, seen := visited[resolved]; seen {
					continue
				}
				visited[resolved] = struct{}{}
			}
			if err := s.walkDir(ctx, path, visited, visit); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			if err := visit(path); err != nil {
				return err
			}
		}
	}
	return nil
}

// runWorker 执行真实的文件统计。
func (s *Service) runWorker(ctx context.Context, tasks <-chan scanTask, results chan<- taskResult) error {
	for task := range tasks {
		item := taskResult{task: task, result: counter.ScanFileDetailed(task.path)}
		switch item.result.Skip {
		case counter.SkipBinary:
			s.logf("skip %s: binary content", task.path)
		case counter.SkipUnreadable:
			s.logf("skip %s: %v", task.path, item.result.Err)
		}

		select {
		case results <- item:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// buildSummaries 计算参数级、语言级汇总和总计信息。
// 先按路径排序再折叠，保证输出顺序稳定；数值本身与顺序无关。
func (s *Service) buildSummaries(result *model.ScanResult, collected []taskResult) {
	sort.Slice(collected, func(i int, j int) bool {
		if collected[i].task.entry != collected[j].task.entry {
			return collected[i].task.entry < collected[j].task.entry
		}
		return collected[i].task.path < collected[j].task.path
	})

	byLanguage := make(map[string]*model.LanguageStats)
	byEntry := make([]map[string]*model.LanguageStats, len(result.Entries))
	result.Files = make([]model.FileStats, 0, len(collected))
	result.Total = model.TotalStats{}

	for _, item := range collected {
		language := item.result.Language
		stats := item.result.Stats

		result.Files = append(result.Files, model.FileStats{
			Path:     filepath.ToSlash(item.task.path),
			Language: language,
			Stats:    stats,
		})
		result.Total.AddFileStats(stats)
		addLanguage(byLanguage, language, stats)

		entry := &result.Entries[item.task.entry]
		entry.Stats.Add(stats)
		if !entry.IsDir {
			entry.Language = language
			continue
		}
		if byEntry[item.task.entry] == nil {
			byEntry[item.task.entry] = make(map[string]*model.LanguageStats)
		}
		addLanguage(byEntry[item.task.entry], language, stats)
	}

	result.Languages = flattenLanguages(byLanguage)
	for i := range result.Entries {
		if result.Entries[i].IsDir {
			result.Entries[i].Languages = flattenLanguages(byEntry[i])
		}
	}
}

func addLanguage(summaries map[string]*model.LanguageStats, language string, stats model.Stats) {
	summary, ok := summaries[language]
	if !ok {
		summary = &model.LanguageStats{Language: language}
		summaries[language] = summary
	}
	summary.Files++
	summary.Stats.Add(stats)
}

func flattenLanguages(summaries map[string]*model.LanguageStats) []model.LanguageStats {
	items := make([]model.LanguageStats, 0, len(summaries))
	for _, item := range summaries {
		items = append(items, *item)
	}
	sort.Slice(items, func(i int, j int) bool {
		return items[i].Language < items[j].Language
	})
	return items
}

func send(ctx context.Context, tasks chan<- scanTask, task scanTask) error {
	select {
	case tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) logf(format string, args ...any) {
	if s.options.Logger != nil {
		s.options.Logger.Printf(format, args...)
	}
}
