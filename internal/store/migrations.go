package store

import "fmt"

// currentSchemaVersion 是最新的表结构版本。
const currentSchemaVersion = 1

// Migrate 把表结构升级到最新版本。
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// 没有记录代表全新数据库。
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 创建快照表与语言统计表。
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			taken_at TEXT NOT NULL,
			root     TEXT NOT NULL,
			version  TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS language_stats (
			snapshot_id INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			language    TEXT NOT NULL,
			files       INTEGER NOT NULL,
			actual_loc  INTEGER NOT NULL,
			raw_loc     INTEGER NOT NULL,
			words       INTEGER NOT NULL,
			chars       INTEGER NOT NULL,
			bytes       INTEGER NOT NULL,
			PRIMARY KEY (snapshot_id, language)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_root ON snapshots(root, id)`,
		`DELETE FROM schema_version`,
		fmt.Sprintf(`INSERT INTO schema_version (version) VALUES (%d)`, currentSchemaVersion),
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	for _, statement := range statements {
		if _, err := tx.Exec(statement); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
