package storage

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hitoshi/taskboard/internal/model"
)

// Load は指定スロットのJSON値をTへデシリアライズして返す。
// スロットが存在しない場合、読み取りに失敗した場合、デシリアライズに
// 失敗した場合はいずれも呼び出し側へエラーを伝播せず、fallbackを返す。
// 失敗は警告ログにのみ記録される。
func Load[T any](ctx context.Context, store SlotStore, key string, fallback T) T {
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		slog.Warn("スロットの読み込みに失敗したためフォールバック値を使用します",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return fallback
	}
	if !found {
		return fallback
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		slog.Warn("スロット値の解析に失敗したためフォールバック値を使用します",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return fallback
	}

	return value
}

// Save は値をJSONへシリアライズして指定スロットへ書き込む。
// 失敗時はStorageErrorを返すが、呼び出し元のメモリ上の変更は巻き戻さない。
// メモリと永続ストアは次回の保存成功まで乖離しうる（at-most-effort方式）。
func Save[T any](ctx context.Context, store SlotStore, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return model.NewStorageSaveError(key, err)
	}

	if err := store.Put(ctx, key, string(raw)); err != nil {
		return model.NewStorageSaveError(key, err)
	}

	return nil
}
