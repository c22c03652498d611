// Package filter 根据 include/exclude 通配符决定目录项是否参与扫描。
// 模式只与目录项的文件名（不含父目录）匹配。
package filter

import (
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes 是内置排除模式，除非 include 中出现同名模式。
var DefaultExcludes = []string{
	"*~",
	"~*",
	"*$",
	"$*",
	".git",
	".svn",
	"*.bak",
	"*.lock",
	"*.log",
	"*.tmp",
	"_build",
	"build",
	"builddir",
	"node_modules",
	"target",
}

// Filter 保存生效的排除/包含模式。零值不排除任何东西。
type Filter struct {
	excludes []string
	includes []string
}

// New 由 DefaultExcludes、额外排除模式与包含模式构建过滤器。
// 与某个 include 文本完全相同的 exclude 会被移除，空模式忽略。
func New(excludes []string, includes []string) *Filter {
	f := &Filter{}

	for _, pattern := range includes {
		if pattern = strings.TrimSpace(pattern); pattern != "" {
			f.includes = append(f.includes, pattern)
		}
	}

	all := make([]string, 0, len(DefaultExcludes)+len(excludes))
	all = append(all, DefaultExcludes...)
	all = append(all, excludes...)
	for _, pattern := range all {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" || slices.Contains(f.includes, pattern) {
			continue
		}
		f.excludes = append(f.excludes, pattern)
	}

	return f
}

// Excludes 返回生效的排除模式。
func (f *Filter) Excludes() []string {
	return append([]string(nil), f.excludes...)
}

// Includes 返回包含模式。
func (f *Filter) Includes() []string {
	return append([]string(nil), f.includes...)
}

// Skip 判断该文件名是否应被跳过。
// include 只用于“救回”被排除的名字，不会限制未被排除的名字。
func (f *Filter) Skip(name string) bool {
	if f == nil || !matchAny(f.excludes, name) {
		return false
	}
	if len(f.includes) == 0 {
		return true
	}
	return !matchAny(f.includes, name)
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if Match(pattern, name) {
			return true
		}
	}
	return false
}

// Match 判断 name 是否匹配 pattern，非法通配符按字面量比较。
func Match(pattern string, name string) bool {
	if !doublestar.ValidatePattern(pattern) {
		return pattern == name
	}
	matched, err := doublestar.Match(pattern, name)
	if err != nil {
		return pattern == name
	}
	return matched
}
