package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"sourcelines/internal/languages"

	"github.com/spf13/cobra"
)

// newLanguageCmd 创建 language 子命令。
// 命令用于展示内置的语言、后缀、shebang 关键字以及注释语法。
func newLanguageCmd(registry *languages.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "展示内置语言、后缀及注释语法",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "LANGUAGE\tEXTENSIONS\tSHEBANG\tLINE\tBLOCK"); err != nil {
				return err
			}

			for _, item := range registry.Languages() {
				if _, err := fmt.Fprintf(
					writer,
					"%s\t%s\t%s\t%s\t%s\n",
					item.Name,
					orDash(strings.Join(item.Extensions, ", ")),
					orDash(strings.Join(item.Interpreters, ", ")),
					lineMarker(item),
					blockMarker(item),
				); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}

func lineMarker(item languages.LanguageDescriptor) string {
	if item.Inferred {
		return "(inferred)"
	}
	return orDash(item.Syntax.Line)
}

func blockMarker(item languages.LanguageDescriptor) string {
	if item.Inferred {
		return "(inferred)"
	}
	if !item.Syntax.HasBlock() {
		return "-"
	}
	return item.Syntax.BlockStart + " " + item.Syntax.BlockEnd
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
