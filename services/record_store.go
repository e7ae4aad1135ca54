package services

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"study-note-manager/models"
)

const (
	kindQuestions   = "questions"
	kindHistory     = "history"
	kindTags        = "tags"
	kindAnnotations = "annotations"
)

// DefaultTags 标签分区不存在时的默认标签
func DefaultTags() []string {
	return []string{"重要", "难点", "易错", "常考"}
}

// RecordStore 按用户分区的 JSON 文件存储
// 每个分区一把锁，读改写在锁内完成；写入走临时文件加 rename，
// 保证单个分区不会出现半写状态
type RecordStore struct {
	baseDir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRecordStore(baseDir string) (*RecordStore, error) {
	for _, kind := range []string{kindQuestions, kindHistory, kindTags, kindAnnotations} {
		if err := os.MkdirAll(filepath.Join(baseDir, kind), 0o755); err != nil {
			return nil, err
		}
	}
	return &RecordStore{
		baseDir: baseDir,
		locks:   make(map[string]*sync.Mutex),
	}, nil
}

func (s *RecordStore) lock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

func (s *RecordStore) partitionPath(kind, userID string) string {
	return filepath.Join(s.baseDir, kind, userID+".json")
}

func (s *RecordStore) annotationPath(userID, questionID string) string {
	return filepath.Join(s.baseDir, kindAnnotations, userID+"_"+questionID+".json")
}

// readJSON 读取分区文件；文件不存在或损坏时返回错误，由调用方降级为空集合
func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// writeJSON 原子写入：先写临时文件再 rename 覆盖
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// ========== 题目 ==========

// ReadQuestions 读取用户的题目分区，不存在或读取失败时返回空列表
func (s *RecordStore) ReadQuestions(userID string) []models.Question {
	var questions []models.Question
	if err := readJSON(s.partitionPath(kindQuestions, userID), &questions); err != nil {
		return []models.Question{}
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return questions
}

// WriteQuestions 整体替换用户的题目分区
func (s *RecordStore) WriteQuestions(userID string, questions []models.Question) error {
	l := s.lock(kindQuestions + "/" + userID)
	l.Lock()
	defer l.Unlock()
	return writeJSON(s.partitionPath(kindQuestions, userID), questions)
}

// UpdateQuestions 在分区锁内执行读-改-写；fn 返回错误时不落盘
func (s *RecordStore) UpdateQuestions(userID string, fn func([]models.Question) ([]models.Question, error)) error {
	l := s.lock(kindQuestions + "/" + userID)
	l.Lock()
	defer l.Unlock()

	questions := s.ReadQuestions(userID)
	updated, err := fn(questions)
	if err != nil {
		return err
	}
	return writeJSON(s.partitionPath(kindQuestions, userID), updated)
}

// AllQuestions 管理员聚合视图：扫描所有用户的题目分区，
// 每条记录标记来源分区的用户 id；单个分区读取失败时跳过继续
func (s *RecordStore) AllQuestions() []models.Question {
	all := []models.Question{}

	entries, err := os.ReadDir(filepath.Join(s.baseDir, kindQuestions))
	if err != nil {
		return all
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ownerID := strings.TrimSuffix(name, ".json")

		var questions []models.Question
		if err := readJSON(filepath.Join(s.baseDir, kindQuestions, name), &questions); err != nil {
			log.Printf("跳过无法读取的题目分区 %s: %v", name, err)
			continue
		}
		for _, q := range questions {
			q.OwnerID = ownerID
			all = append(all, q)
		}
	}
	return all
}

// DeleteQuestionEverywhere 管理员删除：从所有用户的题目、历史分区
// 和批注文件中移除指定题目；单个用户处理失败时继续处理其他用户
func (s *RecordStore) DeleteQuestionEverywhere(questionID string) {
	for _, userID := range s.userIDs() {
		err := s.UpdateQuestions(userID, func(questions []models.Question) ([]models.Question, error) {
			filtered := questions[:0]
			for _, q := range questions {
				if q.ID != questionID {
					filtered = append(filtered, q)
				}
			}
			return filtered, nil
		})
		if err != nil {
			log.Printf("处理用户 %s 的题目数据时出错: %v", userID, err)
		}

		err = s.UpdateHistory(userID, func(history []models.HistoryEntry) ([]models.HistoryEntry, error) {
			filtered := history[:0]
			for _, h := range history {
				if h.ID != questionID {
					filtered = append(filtered, h)
				}
			}
			return filtered, nil
		})
		if err != nil {
			log.Printf("处理用户 %s 的历史数据时出错: %v", userID, err)
		}

		// 批注文件可能不存在，忽略错误
		_ = s.DeleteAnnotations(userID, questionID)
	}
}

// userIDs 遍历各类分区目录得到所有出现过的用户 id
func (s *RecordStore) userIDs() []string {
	seen := make(map[string]bool)
	for _, kind := range []string{kindQuestions, kindHistory, kindTags} {
		entries, err := os.ReadDir(filepath.Join(s.baseDir, kind))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".json") {
				continue
			}
			seen[strings.TrimSuffix(name, ".json")] = true
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ========== 历史记录 ==========

func (s *RecordStore) ReadHistory(userID string) []models.HistoryEntry {
	var history []models.HistoryEntry
	if err := readJSON(s.partitionPath(kindHistory, userID), &history); err != nil {
		return []models.HistoryEntry{}
	}
	if history == nil {
		history = []models.HistoryEntry{}
	}
	return history
}

func (s *RecordStore) WriteHistory(userID string, history []models.HistoryEntry) error {
	l := s.lock(kindHistory + "/" + userID)
	l.Lock()
	defer l.Unlock()
	return writeJSON(s.partitionPath(kindHistory, userID), history)
}

func (s *RecordStore) UpdateHistory(userID string, fn func([]models.HistoryEntry) ([]models.HistoryEntry, error)) error {
	l := s.lock(kindHistory + "/" + userID)
	l.Lock()
	defer l.Unlock()

	history := s.ReadHistory(userID)
	updated, err := fn(history)
	if err != nil {
		return err
	}
	return writeJSON(s.partitionPath(kindHistory, userID), updated)
}

// ========== 标签 ==========

// ReadTags 读取用户标签，分区不存在时返回默认标签
func (s *RecordStore) ReadTags(userID string) []string {
	var tags []string
	if err := readJSON(s.partitionPath(kindTags, userID), &tags); err != nil {
		return DefaultTags()
	}
	if tags == nil {
		tags = []string{}
	}
	return tags
}

func (s *RecordStore) WriteTags(userID string, tags []string) error {
	l := s.lock(kindTags + "/" + userID)
	l.Lock()
	defer l.Unlock()
	return writeJSON(s.partitionPath(kindTags, userID), tags)
}

// ========== 批注 ==========

// ReadAnnotations 读取某个题目的批注集合，不存在时返回空集合
func (s *RecordStore) ReadAnnotations(userID, questionID string) models.AnnotationSet {
	var annotations models.AnnotationSet
	if err := readJSON(s.annotationPath(userID, questionID), &annotations); err != nil {
		return models.AnnotationSet{}
	}
	if annotations == nil {
		annotations = models.AnnotationSet{}
	}
	return annotations
}

func (s *RecordStore) WriteAnnotations(userID, questionID string, annotations models.AnnotationSet) error {
	l := s.lock(kindAnnotations + "/" + userID + "_" + questionID)
	l.Lock()
	defer l.Unlock()
	return writeJSON(s.annotationPath(userID, questionID), annotations)
}

func (s *RecordStore) DeleteAnnotations(userID, questionID string) error {
	err := os.Remove(s.annotationPath(userID, questionID))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// AnnotationQuestionIDs 列出用户存在批注文件的题目 id
func (s *RecordStore) AnnotationQuestionIDs(userID string) []string {
	entries, err := os.ReadDir(filepath.Join(s.baseDir, kindAnnotations))
	if err != nil {
		return nil
	}

	prefix := userID + "_"
	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".json"))
	}
	sort.Strings(ids)
	return ids
}

// ========== 分类配置 ==========

func (s *RecordStore) configPath() string {
	return filepath.Join(s.baseDir, "config.json")
}

// ReadCategories 读取全局分类配置，不存在时返回默认分类
func (s *RecordStore) ReadCategories() map[string]models.Category {
	var cfg models.CategoryConfig
	if err := readJSON(s.configPath(), &cfg); err != nil || cfg.Categories == nil {
		return models.DefaultCategories()
	}
	return cfg.Categories
}

// WriteCategories 保存分类配置并记录操作者
func (s *RecordStore) WriteCategories(categories map[string]models.Category, updatedBy string) error {
	l := s.lock("config")
	l.Lock()
	defer l.Unlock()

	cfg := models.CategoryConfig{
		Categories: categories,
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
		UpdatedBy:  updatedBy,
	}
	return writeJSON(s.configPath(), cfg)
}

// ========== 分区版本 ==========

// LastModified 用户各分区的最近修改时间，用于同步冲突检测；
// 没有任何分区时返回零值
func (s *RecordStore) LastModified(userID string) time.Time {
	var latest time.Time

	paths := []string{
		s.partitionPath(kindQuestions, userID),
		s.partitionPath(kindHistory, userID),
		s.partitionPath(kindTags, userID),
	}
	for _, questionID := range s.AnnotationQuestionIDs(userID) {
		paths = append(paths, s.annotationPath(userID, questionID))
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	return latest
}
