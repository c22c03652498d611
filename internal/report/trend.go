package report

import (
	"fmt"
	"io"
)

// Trend 返回带箭头的差值文本：增加为 "▲ +n"，减少为 "▼ -n"，不变为 "─"。
// 代码行数的增减没有好坏之分，颜色只区分方向。
func Trend(writer io.Writer, delta int64, color bool) string {
	colors := newPalette(writer, color)
	switch {
	case delta > 0:
		return colors.paint(colors.up, fmt.Sprintf("▲ +%d", delta))
	case delta < 0:
		return colors.paint(colors.down, fmt.Sprintf("▼ %d", delta))
	default:
		return colors.paint(colors.muted, "─")
	}
}
