package services

import (
	"fmt"
	"testing"

	"study-note-manager/models"
)

func TestPushHistoryRing(t *testing.T) {
	var history []models.HistoryEntry

	// 连续浏览 15 个不同题目，只保留最近 10 条，最新在前
	for i := 0; i < 15; i++ {
		history = PushHistory(history, models.HistoryEntry{
			ID:    fmt.Sprintf("q_%d", i),
			Title: fmt.Sprintf("题目%d", i),
		})
	}

	if len(history) != HistoryLimit {
		t.Fatalf("history length = %d, want %d", len(history), HistoryLimit)
	}
	if history[0].ID != "q_14" {
		t.Errorf("最新记录应在最前，got %s", history[0].ID)
	}
	if history[HistoryLimit-1].ID != "q_5" {
		t.Errorf("最旧保留记录应为 q_5，got %s", history[HistoryLimit-1].ID)
	}
}

func TestPushHistoryFewerThanLimit(t *testing.T) {
	var history []models.HistoryEntry
	for i := 0; i < 3; i++ {
		history = PushHistory(history, models.HistoryEntry{ID: fmt.Sprintf("q_%d", i)})
	}
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
}

func TestPushHistoryDeduplicates(t *testing.T) {
	var history []models.HistoryEntry
	history = PushHistory(history, models.HistoryEntry{ID: "q_1", AccessTime: "t1"})
	history = PushHistory(history, models.HistoryEntry{ID: "q_2", AccessTime: "t2"})
	history = PushHistory(history, models.HistoryEntry{ID: "q_1", AccessTime: "t3"})

	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].ID != "q_1" || history[0].AccessTime != "t3" {
		t.Errorf("重复浏览应把记录移到最前并更新访问时间, got %+v", history[0])
	}
	if history[1].ID != "q_2" {
		t.Errorf("history[1].ID = %s, want q_2", history[1].ID)
	}
}

func TestNormalizeHistory(t *testing.T) {
	var entries []models.HistoryEntry
	for i := 0; i < 12; i++ {
		entries = append(entries, models.HistoryEntry{ID: fmt.Sprintf("q_%d", i%6)})
	}
	entries = append(entries, models.HistoryEntry{ID: ""})

	normalized := NormalizeHistory(entries)

	if len(normalized) != 6 {
		t.Fatalf("normalized length = %d, want 6", len(normalized))
	}
	seen := make(map[string]bool)
	for _, e := range normalized {
		if e.ID == "" {
			t.Error("空 id 不应保留")
		}
		if seen[e.ID] {
			t.Errorf("重复 id %s", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestNormalizeHistoryCapsAtLimit(t *testing.T) {
	var entries []models.HistoryEntry
	for i := 0; i < 25; i++ {
		entries = append(entries, models.HistoryEntry{ID: fmt.Sprintf("q_%d", i)})
	}

	normalized := NormalizeHistory(entries)
	if len(normalized) != HistoryLimit {
		t.Fatalf("normalized length = %d, want %d", len(normalized), HistoryLimit)
	}
	if normalized[0].ID != "q_0" {
		t.Errorf("应保留靠前的记录, got %s", normalized[0].ID)
	}
}
