package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sourcelines/internal/model"
)

// totalRow 是 language_stats 中保存全局总计的行名。
// 语言名来自后缀或固定表，后缀不含点号，因此不会与真实语言冲突。
const totalRow = ".total"

// Snapshot 表示某个根路径在某一时刻的统计快照。
type Snapshot struct {
	ID      int64            `json:"id"`
	TakenAt time.Time        `json:"taken_at"`
	Root    string           `json:"root"`
	Version string           `json:"version"`
	Total   model.TotalStats `json:"total"`
}

// RecordSnapshot 在一个事务中写入快照、全局总计与各语言统计，返回快照 ID。
func (db *DB) RecordSnapshot(root string, version string, result model.ScanResult, takenAt time.Time) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted, err := tx.Exec(
		"INSERT INTO snapshots (taken_at, root, version) VALUES (?, ?, ?)",
		takenAt.UTC().Format(time.RFC3339), root, version,
	)
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}
	snapshotID, err := inserted.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("snapshot id: %w", err)
	}

	rows := make([]model.LanguageStats, 0, len(result.Languages)+1)
	rows = append(rows, model.LanguageStats{
		Language: totalRow,
		Files:    result.Total.Files,
		Stats:    result.Total.Stats,
	})
	rows = append(rows, result.Languages...)

	for _, row := range rows {
		if _, err := tx.Exec(
			`INSERT INTO language_stats
			(snapshot_id, language, files, actual_loc, raw_loc, words, chars, bytes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			snapshotID, row.Language, row.Files,
			row.Stats.ActualLOC, row.Stats.RawLOC, row.Stats.Words, row.Stats.Chars, row.Stats.Bytes,
		); err != nil {
			return 0, fmt.Errorf("insert language %s: %w", row.Language, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit snapshot: %w", err)
	}
	return snapshotID, nil
}

// selectSnapshots 把快照与其全局总计行连接查询。
const selectSnapshots = `SELECT s.id, s.taken_at, s.root, s.version,
		l.files, l.actual_loc, l.raw_loc, l.words, l.chars, l.bytes
	FROM snapshots s
	JOIN language_stats l ON l.snapshot_id = s.id AND l.language = '` + totalRow + `'`

// rowScanner 同时适配 *sql.Row 与 *sql.Rows。
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var (
		item    Snapshot
		takenAt string
	)
	err := row.Scan(
		&item.ID, &takenAt, &item.Root, &item.Version,
		&item.Total.Files, &item.Total.ActualLOC, &item.Total.RawLOC,
		&item.Total.Words, &item.Total.Chars, &item.Total.Bytes,
	)
	if err != nil {
		return item, err
	}
	item.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return item, nil
}

// ListSnapshots 返回某个根路径最近的 limit 个快照（新的在前），limit<=0 表示不限。
func (db *DB) ListSnapshots(root string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := db.conn.Query(selectSnapshots+" WHERE s.root = ? ORDER BY s.id DESC LIMIT ?", root, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]Snapshot, 0)
	for rows.Next() {
		item, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snapshots = append(snapshots, item)
	}
	return snapshots, rows.Err()
}

// PreviousSnapshot 返回 id 之前最近的同根路径快照，不存在时返回 nil。
func (db *DB) PreviousSnapshot(root string, id int64) (*Snapshot, error) {
	row := db.conn.QueryRow(selectSnapshots+" WHERE s.root = ? AND s.id < ? ORDER BY s.id DESC LIMIT 1", root, id)
	item, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query previous snapshot: %w", err)
	}
	return &item, nil
}

// LanguageStats 返回快照中各语言的统计（不含全局总计），按语言名排序。
func (db *DB) LanguageStats(snapshotID int64) ([]model.LanguageStats, error) {
	rows, err := db.conn.Query(
		`SELECT language, files, actual_loc, raw_loc, words, chars, bytes
		FROM language_stats
		WHERE snapshot_id = ? AND language <> ?
		ORDER BY language`,
		snapshotID, totalRow,
	)
	if err != nil {
		return nil, fmt.Errorf("query language stats: %w", err)
	}
	defer rows.Close()

	items := make([]model.LanguageStats, 0)
	for rows.Next() {
		var item model.LanguageStats
		if err := rows.Scan(
			&item.Language, &item.Files,
			&item.Stats.ActualLOC, &item.Stats.RawLOC, &item.Stats.Words, &item.Stats.Chars, &item.Stats.Bytes,
		); err != nil {
			return nil, fmt.Errorf("scan language stats: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
