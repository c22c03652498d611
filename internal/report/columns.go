package report

import "sourcelines/internal/model"

// Columns 描述输出哪些统计列，顺序固定：
// actual klocs, actual loc, raw klocs, raw loc, words, chars, bytes。
type Columns struct {
	ActualKLOC bool
	ActualLOC  bool
	RawKLOC    bool
	RawLOC     bool
	Words      bool
	Chars      bool
	Bytes      bool
}

// DefaultColumns 是未指定任何列时的输出列。
var DefaultColumns = Columns{
	ActualLOC: true,
	RawLOC:    true,
	Words:     true,
	Chars:     true,
	Bytes:     true,
}

// Resolve 补齐默认列，并在 klocs 与 loc 同时出现时只保留 klocs。
func (c Columns) Resolve() Columns {
	if c == (Columns{}) {
		return DefaultColumns
	}
	if c.ActualKLOC && c.ActualLOC {
		c.ActualLOC = false
	}
	if c.RawKLOC && c.RawLOC {
		c.RawLOC = false
	}
	return c
}

// SortKey 返回第一列可见列对应的计数，用于语言汇总行排序。
func (c Columns) SortKey(stats model.Stats) int64 {
	switch {
	case c.ActualKLOC, c.ActualLOC:
		return stats.ActualLOC
	case c.RawKLOC, c.RawLOC:
		return stats.RawLOC
	case c.Words:
		return stats.Words
	case c.Chars:
		return stats.Chars
	default:
		return stats.Bytes
	}
}
