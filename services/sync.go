package services

import (
	"fmt"
	"time"

	"study-note-manager/models"
)

// SyncConflictError 上传基准时间戳落后于服务端数据时返回，
// 携带当前服务端快照供客户端合并
type SyncConflictError struct {
	Snapshot models.Snapshot
}

func (e *SyncConflictError) Error() string {
	return "服务端数据已更新，请先下载合并"
}

// SyncService 客户端快照与服务端分区之间的同步
type SyncService struct {
	store *RecordStore
}

func NewSyncService(store *RecordStore) *SyncService {
	return &SyncService{store: store}
}

// Upload 把客户端快照写入服务端分区。
// 各字段独立可选：nil 字段对应的分区保持不变，非 nil 字段整体替换分区；
// 批注按题目逐个文件写入，只覆盖提交中出现的题目。
// 提交了 baseTimestamp 且服务端数据在该时间之后有变更时拒绝写入，
// 返回 SyncConflictError 让客户端先合并再上传。
func (s *SyncService) Upload(userID string, payload models.SyncPayload) (string, error) {
	if payload.BaseTimestamp != "" {
		base, err := time.Parse(time.RFC3339, payload.BaseTimestamp)
		if err != nil {
			return "", fmt.Errorf("无效的基准时间戳: %w", err)
		}
		if modified := s.store.LastModified(userID); modified.After(base) {
			return "", &SyncConflictError{Snapshot: s.Download(userID)}
		}
	}

	if payload.Questions != nil {
		if err := s.store.WriteQuestions(userID, *payload.Questions); err != nil {
			return "", err
		}
	}
	if payload.History != nil {
		if err := s.store.WriteHistory(userID, NormalizeHistory(*payload.History)); err != nil {
			return "", err
		}
	}
	if payload.Tags != nil {
		if err := s.store.WriteTags(userID, *payload.Tags); err != nil {
			return "", err
		}
	}
	for questionID, annotations := range payload.Annotations {
		if err := s.store.WriteAnnotations(userID, questionID, annotations); err != nil {
			return "", err
		}
	}

	return time.Now().UTC().Format(time.RFC3339), nil
}

// Download 组装用户当前的完整快照，批注按题目 id 重新拼成映射
func (s *SyncService) Download(userID string) models.Snapshot {
	annotations := make(map[string]models.AnnotationSet)
	for _, questionID := range s.store.AnnotationQuestionIDs(userID) {
		annotations[questionID] = s.store.ReadAnnotations(userID, questionID)
	}

	return models.Snapshot{
		Questions:   s.store.ReadQuestions(userID),
		History:     s.store.ReadHistory(userID),
		Tags:        s.store.ReadTags(userID),
		Annotations: annotations,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}
