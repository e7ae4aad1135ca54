package services

import (
	"study-note-manager/models"
)

// HistoryLimit 每个用户保留的最近浏览条数
const HistoryLimit = 10

// NormalizeHistory 规整历史记录：按 id 去重（保留靠前的），最多保留
// HistoryLimit 条，顺序保持提交时的先后（最新在前由客户端保证）
func NormalizeHistory(entries []models.HistoryEntry) []models.HistoryEntry {
	seen := make(map[string]bool, len(entries))
	normalized := make([]models.HistoryEntry, 0, HistoryLimit)

	for _, e := range entries {
		if e.ID == "" || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		normalized = append(normalized, e)
		if len(normalized) == HistoryLimit {
			break
		}
	}
	return normalized
}

// PushHistory 把一条浏览记录放到最前面：先移除同 id 旧记录，
// 再截断到 HistoryLimit 条
func PushHistory(entries []models.HistoryEntry, entry models.HistoryEntry) []models.HistoryEntry {
	updated := make([]models.HistoryEntry, 0, len(entries)+1)
	updated = append(updated, entry)
	for _, e := range entries {
		if e.ID == entry.ID {
			continue
		}
		updated = append(updated, e)
	}
	if len(updated) > HistoryLimit {
		updated = updated[:HistoryLimit]
	}
	return updated
}
