package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newVersionCmd 创建 version 子命令。
// 命令示例：sourcelines version
func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示当前版本号",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "sourcelines version %s\n", version)
			return err
		},
	}
}
