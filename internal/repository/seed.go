package repository

import (
	"time"

	"github.com/hitoshi/taskboard/internal/model"
)

// SeedActionItems は初回起動時に投入するデモ用アクションアイテムを返す。
// SEED_DEMO_DATA が有効で、かつスロットが未作成の場合にのみ使用される。
func SeedActionItems() []model.ActionItem {
	now := time.Now()
	return []model.ActionItem{
		{
			ID:          "item-1",
			Description: "Define AI implementation roadmap for Q1 2026",
			Owners:      []string{"Sarah Chen", "Michael Brooks"},
			Date:        "2025-12-20",
			Status:      model.StatusInProgress,
			Notes:       "Stakeholder alignment meeting scheduled for next week. Draft roadmap under review.",
			LastUpdated: now,
		},
		{
			ID:          "item-2",
			Description: "Complete vendor evaluation for AI platform selection",
			Owners:      []string{"Michael Brooks", "Emily Watson"},
			Date:        "2025-12-18",
			Status:      model.StatusDone,
			Notes:       "Final report submitted. Recommendation: Azure OpenAI for initial POC.",
			LastUpdated: now,
		},
		{
			ID:          "item-3",
			Description: "Develop proof of concept for document automation",
			Owners:      []string{"Emily Watson", "David Lee", "Sarah Chen"},
			Date:        "2026-01-15",
			Status:      model.StatusNotStarted,
			Notes:       "Pending approval from steering committee. Budget allocated.",
			LastUpdated: now,
		},
	}
}
