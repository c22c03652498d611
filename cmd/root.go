// Package cmd 提供 sourcelines 的命令行入口与子命令编排。
package cmd

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"

	"sourcelines/internal/config"
	"sourcelines/internal/languages"

	"github.com/spf13/cobra"
)

// globalOptions 存放所有子命令共享的参数。
type globalOptions struct {
	configPath string
	debug      bool
}

// loadConfig 读取配置文件。
func (o *globalOptions) loadConfig() (*config.Config, error) {
	return config.Load(o.configPath)
}

// logger 在 --debug 时返回写入 stderr 的日志器，否则返回 nil。
func (o *globalOptions) logger(writer io.Writer) *log.Logger {
	if !o.debug {
		return nil
	}
	return log.New(writer, "sourcelines: ", 0)
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入；Ctrl-C 会取消正在进行的扫描。
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry := languages.NewRegistry()
	rootCmd := newRootCmd(version, registry)
	return rootCmd.ExecuteContext(ctx)
}

// newRootCmd 创建根命令并注册全部子命令。
// 根命令本身负责统计，子命令提供语言列表、版本与历史快照。
func newRootCmd(version string, registry *languages.Registry) *cobra.Command {
	global := &globalOptions{}
	options := newScanOptions()

	rootCmd := &cobra.Command{
		Use:   "sourcelines [flags] [file|dir ...]",
		Short: "统计源码的有效行数、原始行数、单词数、字符数与字节数",
		Long: "sourcelines 按语言识别文件并剔除注释与空白行，统计有效代码行（actual loc）、\n" +
			"原始行数（raw loc）、单词数、字符数与字节数。\n" +
			"不带参数运行等价于 sourcelines -rv .",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, options, global)
		},
	}

	rootCmd.PersistentFlags().StringVar(&global.configPath, "config", "", "配置文件路径（默认 ~/.config/sourcelines/config.yaml）")
	rootCmd.PersistentFlags().BoolVar(&global.debug, "debug", false, "在 stderr 输出被跳过的文件")
	options.bindFlags(rootCmd)

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(registry))
	rootCmd.AddCommand(newTrackCmd(version, global))

	return rootCmd
}
