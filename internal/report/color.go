package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// palette 保存各列的样式。color 为 false 时原样输出文本。
type palette struct {
	color  bool
	actual lipgloss.Style
	raw    lipgloss.Style
	words  lipgloss.Style
	chars  lipgloss.Style
	bytes  lipgloss.Style
	lang   lipgloss.Style
	sum    lipgloss.Style
	muted  lipgloss.Style
	up     lipgloss.Style
	down   lipgloss.Style
}

// newPalette 为 writer 创建样式。
// 着色时强制使用 ANSI 16 色配置，即使输出被重定向也保留转义序列。
func newPalette(writer io.Writer, color bool) palette {
	renderer := lipgloss.NewRenderer(writer)
	renderer.SetColorProfile(termenv.ANSI)
	style := func(code string) lipgloss.Style {
		return renderer.NewStyle().Foreground(lipgloss.Color(code))
	}

	return palette{
		color:  color,
		actual: style("6"),
		raw:    style("2"),
		words:  style("3"),
		chars:  style("5"),
		bytes:  style("4"),
		lang:   style("2"),
		sum:    style("6"),
		muted:  renderer.NewStyle().Faint(true),
		up:     style("2"),
		down:   style("1"),
	}
}

func (p palette) paint(style lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return style.Render(text)
}
