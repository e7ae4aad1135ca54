package services

import (
	"study-note-manager/models"
)

// 访问控制：纯函数，只依据调用者身份和题目本身做判断，不产生副作用。
//
// 查看采用宽松策略：任何通过认证的调用者都可以查看题目，
// 读取本身已按用户分区隔离，管理员聚合接口另走管理员校验。

// CanView 是否允许查看题目
func CanView(caller Identity, q models.Question) bool {
	return true
}

// CanEdit 是否允许修改题目：
// 管理员、题目创建者，以及没有记录创建者的历史遗留题目
func CanEdit(caller Identity, q models.Question) bool {
	if caller.IsAdmin() {
		return true
	}
	if q.CreatedBy == "" {
		// 早期数据没有 createdBy，放开编辑避免锁死
		return true
	}
	return q.CreatedBy == caller.ID
}

// CanDelete 删除权限与编辑权限一致，没有单独的删除层级
func CanDelete(caller Identity, q models.Question) bool {
	return CanEdit(caller, q)
}
