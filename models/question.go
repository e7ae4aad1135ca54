package models

// Question 题目记录，按用户分区存储为 JSON 文件
// 时间字段保持客户端提交的 ISO 字符串原样，服务端补齐时用 RFC3339
type Question struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Content     string   `json:"content"`
	Summary     string   `json:"summary"`
	Example     string   `json:"example"`
	Thinking    string   `json:"thinking"`
	Notes       string   `json:"notes"`
	Tags        []string `json:"tags"`
	CreatedBy   string   `json:"createdBy"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`

	// OwnerID 仅在管理员聚合视图中填充，表示记录来自哪个用户的分区
	OwnerID string `json:"ownerId,omitempty"`
}

// HistoryEntry 最近浏览记录，id 即题目 id
type HistoryEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	AccessTime  string `json:"accessTime"`
}

// AnnotationSet 高亮批注：高亮标识 -> 批注内容
type AnnotationSet map[string]string

// SyncPayload 同步上传请求体，各字段均可省略；
// 指针为 nil 表示客户端未提交该类数据，对应分区保持不变
type SyncPayload struct {
	Questions   *[]Question              `json:"questions"`
	History     *[]HistoryEntry          `json:"history"`
	Tags        *[]string                `json:"tags"`
	Annotations map[string]AnnotationSet `json:"annotations"`

	// BaseTimestamp 客户端上次下载时的服务端时间戳，可选；
	// 提供时若服务端数据在此之后有变更，上传会被拒绝并返回当前快照
	BaseTimestamp string `json:"baseTimestamp,omitempty"`
}

// Snapshot 某个用户全部数据的快照，同步下载的响应体
type Snapshot struct {
	Questions   []Question               `json:"questions"`
	History     []HistoryEntry           `json:"history"`
	Tags        []string                 `json:"tags"`
	Annotations map[string]AnnotationSet `json:"annotations"`
	Timestamp   string                   `json:"timestamp"`
}
