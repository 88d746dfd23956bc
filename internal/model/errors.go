// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, storage, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation        = "VALIDATION_FAILED"
	ErrCodeInvalidDate       = "INVALID_DATE"
	ErrCodeInvalidStatus     = "INVALID_STATUS"
	ErrCodeItemNotFound      = "ITEM_NOT_FOUND"
	ErrCodeEventNotFound     = "EVENT_NOT_FOUND"
	ErrCodeSnapshotNotFound  = "SNAPSHOT_NOT_FOUND"
	ErrCodeStorageSaveFailed = "STORAGE_SAVE_FAILED"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
)

// NewValidationError は必須項目不足などの入力検証エラーを生成する。
// 検証エラーはいかなる変更・永続化よりも前に検出される。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  message,
		Category: "validation",
		Action:   "必須項目をすべて入力してください。",
	}
}

// NewInvalidDateError は日付形式エラーを生成する。
func NewInvalidDateError(date string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidDate,
		Message:  fmt.Sprintf("無効な日付です: %s", date),
		Category: "validation",
		Action:   "日付は YYYY-MM-DD 形式で指定してください。",
	}
}

// NewInvalidStatusError は無効なステータスエラーを生成する。
func NewInvalidStatusError(status string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidStatus,
		Message:  fmt.Sprintf("無効なステータスです: %s", status),
		Category: "validation",
		Action:   "ステータスには Not Started、In Progress、Blocked、Done のいずれかを指定してください。",
	}
}

// NewItemNotFoundError はアクションアイテム未検出エラーを生成する。
func NewItemNotFoundError(itemID string) *APIError {
	return &APIError{
		Code:     ErrCodeItemNotFound,
		Message:  fmt.Sprintf("指定されたアクションアイテムが見つかりません: %s", itemID),
		Category: "validation",
		Action:   "アイテムIDを確認してください。",
	}
}

// NewEventNotFoundError はカレンダーイベント未検出エラーを生成する。
func NewEventNotFoundError(eventID string) *APIError {
	return &APIError{
		Code:     ErrCodeEventNotFound,
		Message:  fmt.Sprintf("指定されたカレンダーイベントが見つかりません: %s", eventID),
		Category: "validation",
		Action:   "イベントIDを確認してください。",
	}
}

// NewSnapshotNotFoundError はスナップショット未検出エラーを生成する。
func NewSnapshotNotFoundError(snapshotID string) *APIError {
	return &APIError{
		Code:     ErrCodeSnapshotNotFound,
		Message:  fmt.Sprintf("指定されたスナップショットが見つかりません: %s", snapshotID),
		Category: "validation",
		Action:   "スナップショットIDを確認してください。",
	}
}

// NewStorageSaveError は永続化失敗エラーを生成する。
// メモリ上の変更は巻き戻されないため、次回保存成功まで
// メモリと永続ストアの内容が乖離する可能性がある。
func NewStorageSaveError(key string, cause error) *APIError {
	return &APIError{
		Code:     ErrCodeStorageSaveFailed,
		Message:  fmt.Sprintf("データの保存に失敗しました（%s）: %v", key, cause),
		Category: "storage",
		Action:   "操作内容はメモリ上に反映されています。しばらく待ってから再度保存してください。",
	}
}

// NewUnauthorizedError は認可拒否エラーを生成する。
func NewUnauthorizedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  reason,
		Category: "auth",
		Action:   "管理者にアクセス許可を依頼してください。",
	}
}
