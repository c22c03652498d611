// Package model 定义 sourcelines 的核心数据模型。
// 这些结构会被计数器、扫描器、输出层和命令层共同使用。
package model

// Stats 表示一组文件级统计值。
//
// 注意：
// - ActualLOC 只统计非空白且非注释的行
// - RawLOC 统计全部物理行（空白行、注释行都计入）
// - Words/Chars/Bytes 对每一行都累计，与行分类无关
type Stats struct {
	ActualLOC int64 `json:"actual_loc"`
	RawLOC    int64 `json:"raw_loc"`
	Words     int64 `json:"words"`
	Chars     int64 `json:"chars"`
	Bytes     int64 `json:"bytes"`
}

// Add 将另一个统计结果叠加到当前对象。
// 按字段相加，满足交换律与结合律，因此聚合结果与遍历顺序无关。
func (s *Stats) Add(other Stats) {
	s.ActualLOC += other.ActualLOC
	s.RawLOC += other.RawLOC
	s.Words += other.Words
	s.Chars += other.Chars
	s.Bytes += other.Bytes
}

// Plus 返回两个统计值之和，不修改接收者。
func (s Stats) Plus(other Stats) Stats {
	s.Add(other)
	return s
}

// IsZero 判断所有计数是否都为 0。
func (s Stats) IsZero() bool {
	return s == Stats{}
}

// FileStats 表示单文件扫描结果。
type FileStats struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Stats    Stats  `json:"stats"`
}

// LanguageStats 表示某个语言的聚合结果。
type LanguageStats struct {
	Language string `json:"language"`
	Files    int64  `json:"files"`
	Stats    Stats  `json:"stats"`
}

// Entry 对应命令行上的一个参数（文件或目录）。
// 目录参数的 Language 固定为 "*"，并附带该目录下按语言拆分的汇总。
type Entry struct {
	Path      string          `json:"path"`
	Language  string          `json:"language"`
	IsDir     bool            `json:"is_dir"`
	Stats     Stats           `json:"stats"`
	Languages []LanguageStats `json:"languages,omitempty"`
}

// TotalStats 表示全局总计信息。
// 在 Stats 基础上额外增加 Files 字段，表示本次参与统计的文件数量。
type TotalStats struct {
	Files int64 `json:"files"`
	Stats
}

// AddFileStats 累加一个文件的统计值到全局总计中。
func (t *TotalStats) AddFileStats(other Stats) {
	t.Files++
	t.Stats.Add(other)
}

// ScanResult 是一次扫描的完整输出模型。
// 包含参数级明细、文件级明细、语言级汇总与全局总计。
type ScanResult struct {
	Entries   []Entry         `json:"entries"`
	Files     []FileStats     `json:"files"`
	Languages []LanguageStats `json:"languages"`
	Total     TotalStats      `json:"total"`
}
