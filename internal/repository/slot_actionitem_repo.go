package repository

import (
	"context"
	"sync"
	"time"

	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/storage"
)

// SlotActionItemRepo は永続スロットを使用したアクションアイテムリポジトリ。
// ブラウザ版と異なりHTTPハンドラーから並行に呼ばれるため、
// コレクションはミューテックスで保護する。
type SlotActionItemRepo struct {
	store storage.SlotStore
	seed  []model.ActionItem // スロット未作成時の初期値

	mu    sync.Mutex
	items []model.ActionItem
}

// NewSlotActionItemRepo はSlotActionItemRepoを生成する。
// seedはスロットが存在しない場合の初期コレクションを指定する（空可）。
func NewSlotActionItemRepo(store storage.SlotStore, seed []model.ActionItem) *SlotActionItemRepo {
	return &SlotActionItemRepo{store: store, seed: seed}
}

// Load は永続スロットからコレクションを復元する。
// 旧形式（owner + taskforce）のアイテムはこの時点でOwners配列へ正規化される。
func (r *SlotActionItemRepo) Load(ctx context.Context) error {
	loaded := storage.Load(ctx, r.store, storage.SlotActionItems, r.seed)

	for i := range loaded {
		loaded[i].Normalize()
	}

	r.mu.Lock()
	r.items = loaded
	r.mu.Unlock()
	return nil
}

// List はコレクション全体を現在の順序のコピーで返す。
func (r *SlotActionItemRepo) List(ctx context.Context) []model.ActionItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return model.CloneActionItems(r.items)
}

// FindByID は指定IDのアイテムのコピーを取得する。見つからない場合はnilを返す。
func (r *SlotActionItemRepo) FindByID(ctx context.Context, id string) *model.ActionItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			cloned := model.CloneActionItems(r.items[i : i+1])
			return &cloned[0]
		}
	}
	return nil
}

// Add はアイテムをコレクションの先頭へ挿入し（新しい順）、全体を永続化する。
func (r *SlotActionItemRepo) Add(ctx context.Context, item model.ActionItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.LastUpdated.IsZero() {
		item.LastUpdated = time.Now()
	}

	r.items = append([]model.ActionItem{item}, r.items...)
	return r.persist(ctx)
}

// Update は指定IDのアイテムへpatchをマージし、lastUpdatedを更新して永続化する。
// 該当IDが存在しない場合は何もせずnil, nilを返す（冪等）。
func (r *SlotActionItemRepo) Update(ctx context.Context, id string, patch ActionItemPatch) (*model.ActionItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}

		item := &r.items[i]
		if patch.Description != nil {
			item.Description = *patch.Description
		}
		if patch.Owners != nil {
			item.Owners = append([]string(nil), patch.Owners...)
		}
		if patch.Date != nil {
			item.Date = *patch.Date
		}
		if patch.Status != nil {
			item.Status = *patch.Status
		}
		if patch.Notes != nil {
			item.Notes = *patch.Notes
		}
		if patch.LatestUpdate != nil {
			item.LatestUpdate = *patch.LatestUpdate
		}
		if patch.NextSteps != nil {
			item.NextSteps = *patch.NextSteps
		}

		// lastUpdatedは単調非減少を保つ
		now := time.Now()
		if now.After(item.LastUpdated) {
			item.LastUpdated = now
		}

		cloned := model.CloneActionItems(r.items[i : i+1])
		return &cloned[0], r.persist(ctx)
	}

	return nil, nil
}

// Remove は指定IDのアイテムを取り除き、全体を永続化する。冪等。
func (r *SlotActionItemRepo) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := r.items[:0:0]
	for _, item := range r.items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == len(r.items) {
		return nil
	}

	r.items = filtered
	return r.persist(ctx)
}

// persist はコレクション全体をスロットへ書き込む。呼び出し側でロック済みであること。
// 失敗してもメモリ上のコレクションは変更されたまま維持される。
func (r *SlotActionItemRepo) persist(ctx context.Context) error {
	return storage.Save(ctx, r.store, storage.SlotActionItems, r.items)
}

// compile-time interface check
var _ ActionItemRepository = (*SlotActionItemRepo)(nil)
