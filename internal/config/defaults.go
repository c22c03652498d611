// Package config 负责加载 sourcelines 的配置文件与默认值。
package config

// DefaultConfigDir 是配置目录。
const DefaultConfigDir = "~/.config/sourcelines"

// DefaultConfigName 是配置文件名（不含后缀）。
const DefaultConfigName = "config"

// DefaultDBName 是 track 子命令使用的 SQLite 文件名。
const DefaultDBName = "history.db"

// EnvPrefix 是环境变量前缀，例如 SOURCELINES_WORKERS=4。
const EnvPrefix = "SOURCELINES"

// 颜色模式。
const (
	ColorNever  = "never"
	ColorAuto   = "auto"
	ColorAlways = "always"
)

// DefaultColor 与命令行默认一致：不着色，除非显式 -C。
const DefaultColor = ColorNever

// DefaultWorkers 为 0 表示按 CPU 数决定。
const DefaultWorkers = 0
