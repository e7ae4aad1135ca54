package models

// Category 分类配置项，subcategories 为该大类下的小类列表
type Category struct {
	Name          string   `json:"name"`
	Icon          string   `json:"icon"`
	Subcategories []string `json:"subcategories"`
}

// CategoryConfig 全局分类配置文件内容
type CategoryConfig struct {
	Categories map[string]Category `json:"categories"`
	UpdatedAt  string              `json:"updatedAt,omitempty"`
	UpdatedBy  string              `json:"updatedBy,omitempty"`
}

// DefaultCategories 默认分类配置
func DefaultCategories() map[string]Category {
	return map[string]Category{
		"申论": {
			Name:          "申论",
			Icon:          "fas fa-file-alt",
			Subcategories: []string{"概括归纳", "提出对策", "分析原因", "综合分析", "公文写作", "大作文"},
		},
		"行测": {
			Name:          "行测",
			Icon:          "fas fa-calculator",
			Subcategories: []string{"政治常识", "常识", "言语", "数量", "判断", "资料"},
		},
	}
}
