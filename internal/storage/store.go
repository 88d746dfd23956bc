// Package storage は文字列キー付き永続スロットへの読み書きを提供する。
//
// ブラウザ版のlocalStorageと同じ契約を保つ: スロットの値はコレクション全体を
// シリアライズしたJSONテキストであり、保存はスロット単位の全置換（last-write-wins）、
// スロット間のトランザクションは存在しない。
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// スロットキー定義。1スロットに1コレクションのJSON配列が格納される。
const (
	// SlotActionItems はアクションアイテム配列のスロットキー。
	SlotActionItems = "taskboard-action-items"
	// SlotCalendarEvents はカレンダーイベント配列のスロットキー。
	SlotCalendarEvents = "taskboard-calendar-events"
	// SlotSnapshots はスナップショット配列のスロットキー。
	SlotSnapshots = "taskboard-snapshots"
)

// SlotStore は文字列キー付きスロットの読み書きインターフェース。
type SlotStore interface {
	// Get は指定キーのスロット値を取得する。スロットが存在しない場合はfound=falseを返す。
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Put は指定キーのスロット値を全置換で書き込む。
	Put(ctx context.Context, key, value string) error
}

// PostgresSlotStore はPostgreSQLのstorage_slotsテーブルを使用したスロットストア。
type PostgresSlotStore struct {
	db *sql.DB
}

// NewPostgresSlotStore はPostgresSlotStoreを生成する。
func NewPostgresSlotStore(db *sql.DB) *PostgresSlotStore {
	return &PostgresSlotStore{db: db}
}

// Get は指定キーのスロット値を取得する。スロットが存在しない場合はfound=falseを返す。
func (s *PostgresSlotStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM storage_slots WHERE key = $1`,
		key,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("スロットの取得に失敗しました: %w", err)
	}

	return value, true, nil
}

// Put は指定キーのスロット値をUPSERTで全置換する。
func (s *PostgresSlotStore) Put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO storage_slots (key, value, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("スロットの書き込みに失敗しました: %w", err)
	}
	return nil
}

// compile-time interface check
var _ SlotStore = (*PostgresSlotStore)(nil)
