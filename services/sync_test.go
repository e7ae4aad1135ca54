package services

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"study-note-manager/models"
)

func TestSyncRoundTrip(t *testing.T) {
	store := newTestStore(t)
	sync := NewSyncService(store)

	questions := []models.Question{{ID: "q_1", Title: "第一题", CreatedBy: "alice"}}
	history := []models.HistoryEntry{{ID: "q_1", Title: "第一题", AccessTime: "2024-05-01T10:00:00Z"}}
	tags := []string{"重要", "自定义"}
	annotations := map[string]models.AnnotationSet{
		"q_1": {"span_1716000000": "这里是重点"},
	}

	_, err := sync.Upload("alice", models.SyncPayload{
		Questions:   &questions,
		History:     &history,
		Tags:        &tags,
		Annotations: annotations,
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	snapshot := sync.Download("alice")
	if !reflect.DeepEqual(snapshot.Questions, questions) {
		t.Errorf("questions 往返不一致: %v", snapshot.Questions)
	}
	if !reflect.DeepEqual(snapshot.History, history) {
		t.Errorf("history 往返不一致: %v", snapshot.History)
	}
	if !reflect.DeepEqual(snapshot.Tags, tags) {
		t.Errorf("tags 往返不一致: %v", snapshot.Tags)
	}
	if !reflect.DeepEqual(snapshot.Annotations, annotations) {
		t.Errorf("annotations 往返不一致: %v", snapshot.Annotations)
	}
	if snapshot.Timestamp == "" {
		t.Error("快照应携带时间戳")
	}
}

func TestSyncPartialUploadLeavesOthersUntouched(t *testing.T) {
	store := newTestStore(t)
	sync := NewSyncService(store)

	oldHistory := []models.HistoryEntry{{ID: "q_9", Title: "旧记录"}}
	oldTags := []string{"旧标签"}
	store.WriteHistory("alice", oldHistory)
	store.WriteTags("alice", oldTags)

	// 只上传题目，历史和标签字段省略
	questions := []models.Question{{ID: "q_1", Title: "新题", CreatedBy: "alice"}}
	if _, err := sync.Upload("alice", models.SyncPayload{Questions: &questions}); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	snapshot := sync.Download("alice")
	if !reflect.DeepEqual(snapshot.Questions, questions) {
		t.Errorf("questions = %v", snapshot.Questions)
	}
	if !reflect.DeepEqual(snapshot.History, oldHistory) {
		t.Errorf("省略的 history 不应被改动, got %v", snapshot.History)
	}
	if !reflect.DeepEqual(snapshot.Tags, oldTags) {
		t.Errorf("省略的 tags 不应被改动, got %v", snapshot.Tags)
	}
}

func TestSyncEmptyArrayOverwrites(t *testing.T) {
	store := newTestStore(t)
	sync := NewSyncService(store)

	store.WriteQuestions("alice", []models.Question{{ID: "q_1", CreatedBy: "alice"}})

	// 显式提交空数组属于有效上传，应清空分区
	empty := []models.Question{}
	if _, err := sync.Upload("alice", models.SyncPayload{Questions: &empty}); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if got := store.ReadQuestions("alice"); len(got) != 0 {
		t.Errorf("空数组上传应清空分区, got %v", got)
	}
}

func TestSyncConflictDetection(t *testing.T) {
	store := newTestStore(t)
	sync := NewSyncService(store)

	store.WriteQuestions("alice", []models.Question{{ID: "q_1", Title: "服务端版本", CreatedBy: "alice"}})

	// 基准时间早于服务端数据的修改时间，上传应被拒绝并返回服务端快照
	stale := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	questions := []models.Question{{ID: "q_1", Title: "客户端版本", CreatedBy: "alice"}}
	_, err := sync.Upload("alice", models.SyncPayload{
		Questions:     &questions,
		BaseTimestamp: stale,
	})

	var conflict *SyncConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("应返回 SyncConflictError, got %v", err)
	}
	if len(conflict.Snapshot.Questions) != 1 || conflict.Snapshot.Questions[0].Title != "服务端版本" {
		t.Errorf("冲突响应应携带服务端快照, got %v", conflict.Snapshot.Questions)
	}
	if got := store.ReadQuestions("alice"); got[0].Title != "服务端版本" {
		t.Errorf("冲突时不应写入任何数据, got %v", got)
	}

	// 基准时间不早于服务端数据时正常写入
	fresh := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	if _, err := sync.Upload("alice", models.SyncPayload{
		Questions:     &questions,
		BaseTimestamp: fresh,
	}); err != nil {
		t.Fatalf("基准时间最新时上传应成功: %v", err)
	}
	if got := store.ReadQuestions("alice"); got[0].Title != "客户端版本" {
		t.Errorf("上传后应为客户端版本, got %v", got)
	}
}

func TestSyncUploadNormalizesHistory(t *testing.T) {
	store := newTestStore(t)
	sync := NewSyncService(store)

	var history []models.HistoryEntry
	for i := 0; i < 15; i++ {
		history = append(history, models.HistoryEntry{ID: "q_" + string(rune('a'+i))})
	}
	history = append(history, history[0]) // 重复 id

	if _, err := sync.Upload("alice", models.SyncPayload{History: &history}); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	got := store.ReadHistory("alice")
	if len(got) != HistoryLimit {
		t.Errorf("上传的历史应被截断为 %d 条, got %d", HistoryLimit, len(got))
	}
}
