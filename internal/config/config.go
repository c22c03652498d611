package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
)

// Config 是 sourcelines 的顶层配置。
// 命令行参数总是覆盖这里的值。
type Config struct {
	Exclude        []string `mapstructure:"exclude"`
	Include        []string `mapstructure:"include"`
	FollowSymlinks bool     `mapstructure:"follow_symlinks"`
	Workers        int      `mapstructure:"workers"`
	Color          string   `mapstructure:"color"`
	DBPath         string   `mapstructure:"db_path"`
}

// expandPath 把开头的 ~ 替换为用户主目录。
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load 读取指定路径（为空时读取默认目录）的配置并补齐默认值。
// 默认位置的配置文件不存在不算错误；显式指定的文件不存在则报错。
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("exclude", []string{})
	v.SetDefault("include", []string{})
	v.SetDefault("follow_symlinks", false)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("color", DefaultColor)
	v.SetDefault("db_path", filepath.Join(DefaultConfigDir, DefaultDBName))

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))
	switch cfg.Color {
	case ColorNever, ColorAuto, ColorAlways:
	case "":
		cfg.Color = DefaultColor
	default:
		return nil, fmt.Errorf("invalid color mode %q, allowed values: never, auto, always", cfg.Color)
	}

	if cfg.Workers < 0 {
		return nil, errors.New("workers must not be negative")
	}

	cfg.DBPath = expandPath(cfg.DBPath)
	return &cfg, nil
}

// ColorEnabled 根据颜色模式与输出是否为终端决定是否着色。
// auto 模式下只有 *os.File 且指向终端时才着色。
func (c *Config) ColorEnabled(out io.Writer) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorAuto:
		file, ok := out.(*os.File)
		if !ok {
			return false
		}
		return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
	default:
		return false
	}
}

// Dir 返回展开后的配置目录。
func Dir() string {
	return expandPath(DefaultConfigDir)
}
