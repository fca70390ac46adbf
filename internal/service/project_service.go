package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sci-archive/backend/internal/dto"
	"sci-archive/backend/internal/model"
	"sci-archive/backend/internal/repository"
	"sci-archive/backend/internal/storage"
)

// ── 项目模块业务错误 ──

var (
	ErrProjectNotFound     = errors.New("项目不存在")
	ErrDocumentNotFound    = errors.New("文档不存在")
	ErrSupervisorNotFound  = errors.New("指导教师不存在")
	ErrReviewerNotFound    = errors.New("评审人不存在")
	ErrNoPermission        = errors.New("无权操作")
	ErrInvalidStatus       = errors.New("无效的项目状态")
	ErrInvalidMarks        = errors.New("分数必须在 0 到 100 之间")
	ErrInvalidDocumentType = errors.New("无效的文档类型")
)

// ProjectService 项目生命周期业务接口
//
// 所有写操作以显式的调用者身份（ID + 角色）入参，鉴权经 Allow 策略表；
// 状态流转只发生在 Review 内，其他路径不得改写 status / marks。
type ProjectService interface {
	Create(ctx context.Context, req *dto.ProjectRequest, callerID string, callerRole model.Role) (*dto.ProjectResponse, error)
	Update(ctx context.Context, projectID string, req *dto.ProjectRequest, callerID string, callerRole model.Role) (*dto.ProjectResponse, error)
	UploadDocument(ctx context.Context, projectID, fileName string, data []byte, req *dto.UploadDocumentRequest, callerID string, callerRole model.Role) (*dto.DocumentResponse, error)
	Review(ctx context.Context, projectID string, req *dto.ProjectReviewRequest, reviewerID string) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, projectID, callerID string, callerRole model.Role) error
	DeleteDocument(ctx context.Context, documentID, callerID string, callerRole model.Role) error
	DownloadDocument(ctx context.Context, documentID string) ([]byte, *dto.DocumentResponse, error)
	ListByStudent(ctx context.Context, studentID string) ([]dto.ProjectResponse, error)
	ListBySupervisor(ctx context.Context, supervisorID string) ([]dto.ProjectResponse, error)
	ListAll(ctx context.Context, req *dto.ProjectListRequest) ([]dto.ProjectResponse, error)
	GetByID(ctx context.Context, projectID string) (*dto.ProjectResponse, error)
	ListDocuments(ctx context.Context, projectID string) ([]dto.DocumentResponse, error)
}

type projectService struct {
	repo   *repository.Repository
	store  storage.Store
	logger *zap.Logger
}

// NewProjectService 创建 ProjectService 实例
func NewProjectService(repo *repository.Repository, store storage.Store, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, store: store, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *projectService) Create(ctx context.Context, req *dto.ProjectRequest, callerID string, callerRole model.Role) (*dto.ProjectResponse, error) {
	if !Allow(ActionCreateProject, callerRole, callerID, "") {
		return nil, ErrNoPermission
	}

	// 指导教师可选，但给出时必须存在
	var supervisorID *string
	if req.SupervisorID != nil && *req.SupervisorID != "" {
		supervisor, err := s.repo.User.GetByID(ctx, *req.SupervisorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSupervisorNotFound
			}
			s.logger.Error("查询指导教师失败", zap.String("id", *req.SupervisorID), zap.Error(err))
			return nil, err
		}
		supervisorID = &supervisor.UserID
	}

	now := time.Now()
	project := &model.Project{
		Title:        req.Title,
		Description:  req.Description,
		Course:       req.Course,
		AcademicYear: req.AcademicYear,
		Semester:     req.Semester,
		StudentID:    callerID,
		SupervisorID: supervisorID,
		Status:       model.StatusSubmitted,
		SubmittedAt:  now,
		UpdatedAt:    now,
	}

	if err := s.repo.Project.Create(ctx, project); err != nil {
		s.logger.Error("创建项目失败", zap.Error(err))
		return nil, err
	}

	// 重新加载以获取关联数据（学生、指导教师）
	created, err := s.repo.Project.GetByID(ctx, project.ProjectID)
	if err != nil {
		return nil, err
	}

	return toProjectResponse(created), nil
}

// ────────────────────── Update ──────────────────────

// Update 由归属学生覆盖描述性字段；不提供 status / marks 的直接写入
// 当前未按状态锁定更新（终态项目仍可被学生修改，与归档前的原行为一致）
func (s *projectService) Update(ctx context.Context, projectID string, req *dto.ProjectRequest, callerID string, callerRole model.Role) (*dto.ProjectResponse, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !Allow(ActionUpdateProject, callerRole, callerID, project.StudentID) {
		return nil, ErrNoPermission
	}

	project.Title = req.Title
	project.Description = req.Description
	project.Course = req.Course
	project.AcademicYear = req.AcademicYear
	project.Semester = req.Semester

	if req.SupervisorID != nil && *req.SupervisorID != "" {
		supervisor, err := s.repo.User.GetByID(ctx, *req.SupervisorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSupervisorNotFound
			}
			s.logger.Error("查询指导教师失败", zap.String("id", *req.SupervisorID), zap.Error(err))
			return nil, err
		}
		project.SupervisorID = &supervisor.UserID
	}

	project.UpdatedAt = time.Now()

	if err := s.repo.Project.Update(ctx, project); err != nil {
		s.logger.Error("更新项目失败", zap.String("id", projectID), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Project.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return toProjectResponse(updated), nil
}

// ────────────────────── UploadDocument ──────────────────────

// UploadDocument 先写存储再落库；落库失败时存储对象成为孤儿，
// 由带外清理回收（两步之间无两阶段提交）。上传不改变项目状态。
func (s *projectService) UploadDocument(ctx context.Context, projectID, fileName string, data []byte, req *dto.UploadDocumentRequest, callerID string, callerRole model.Role) (*dto.DocumentResponse, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !Allow(ActionUploadDocument, callerRole, callerID, project.StudentID) {
		return nil, ErrNoPermission
	}

	docType, ok := model.ParseDocumentType(req.DocumentType)
	if !ok {
		return nil, ErrInvalidDocumentType
	}

	locator, err := s.store.Put(ctx, projectScope(projectID), fileName, data)
	if err != nil {
		s.logger.Error("写入文件存储失败", zap.String("project_id", projectID), zap.Error(err))
		return nil, fmt.Errorf("写入文件存储失败: %w", err)
	}

	var description *string
	if req.Description != "" {
		description = &req.Description
	}

	doc := &model.Document{
		FileName:     fileName,
		Locator:      locator,
		DocumentType: docType,
		FileType:     fileExtension(fileName),
		FileSize:     int64(len(data)),
		Description:  description,
		ProjectID:    projectID,
		UploadedAt:   time.Now(),
	}

	if err := s.repo.Document.Create(ctx, doc); err != nil {
		s.logger.Error("保存文档记录失败，存储对象将由带外清理回收",
			zap.String("locator", locator), zap.Error(err))
		return nil, err
	}

	return toDocumentResponse(doc), nil
}

// ────────────────────── Review ──────────────────────

// Review 讲师/管理员评审：写入状态、评语、分数与评审时间
// 首位评审人自动成为指导教师（已有指导教师时不覆盖）
// 所有校验先于任何修改执行，校验失败时项目保持原样
func (s *projectService) Review(ctx context.Context, projectID string, req *dto.ProjectReviewRequest, reviewerID string) (*dto.ProjectResponse, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	reviewer, err := s.repo.User.GetByID(ctx, reviewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewerNotFound
		}
		s.logger.Error("查询评审人失败", zap.String("id", reviewerID), zap.Error(err))
		return nil, err
	}

	if !Allow(ActionReviewProject, reviewer.Role, reviewerID, "") {
		return nil, ErrNoPermission
	}

	status, ok := model.ParseReviewStatus(req.Status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	// 上游虽有绑定校验，此处为信任边界，必须复核
	if req.Marks != nil && (*req.Marks < 0 || *req.Marks > 100) {
		return nil, ErrInvalidMarks
	}

	now := time.Now()
	project.Status = status
	project.LecturerComments = req.Comments
	project.Marks = req.Marks
	project.ReviewedAt = &now
	project.UpdatedAt = now

	if project.SupervisorID == nil {
		project.SupervisorID = &reviewer.UserID
	}

	if err := s.repo.Project.Update(ctx, project); err != nil {
		s.logger.Error("评审项目失败", zap.String("id", projectID), zap.Error(err))
		return nil, err
	}

	reviewed, err := s.repo.Project.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return toProjectResponse(reviewed), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 归属学生删除项目：先逐个删除文档存储对象（尽力而为，
// 单个失败仅告警不中断），再删除文档记录与项目记录
func (s *projectService) Delete(ctx context.Context, projectID, callerID string, callerRole model.Role) error {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return err
	}

	if !Allow(ActionDeleteProject, callerRole, callerID, project.StudentID) {
		return ErrNoPermission
	}

	docs, err := s.repo.Document.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("查询项目文档失败", zap.String("project_id", projectID), zap.Error(err))
		return err
	}

	for _, doc := range docs {
		if err := s.store.Delete(ctx, doc.Locator); err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("删除存储对象失败，继续删除项目",
				zap.String("document_id", doc.DocumentID),
				zap.String("locator", doc.Locator),
				zap.Error(err))
		}
	}

	if err := s.repo.Document.DeleteByProject(ctx, projectID); err != nil {
		s.logger.Error("删除文档记录失败", zap.String("project_id", projectID), zap.Error(err))
		return err
	}

	if err := s.repo.Project.Delete(ctx, projectID); err != nil {
		s.logger.Error("删除项目失败", zap.String("id", projectID), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── DeleteDocument ──────────────────────

// DeleteDocument 归属校验取文档父项目的 student_id，而非文档自身
func (s *projectService) DeleteDocument(ctx context.Context, documentID, callerID string, callerRole model.Role) error {
	doc, err := s.getDocument(ctx, documentID)
	if err != nil {
		return err
	}

	project, err := s.getProject(ctx, doc.ProjectID)
	if err != nil {
		return err
	}

	if !Allow(ActionDeleteDocument, callerRole, callerID, project.StudentID) {
		return ErrNoPermission
	}

	if err := s.store.Delete(ctx, doc.Locator); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.Error("删除存储对象失败", zap.String("locator", doc.Locator), zap.Error(err))
		return fmt.Errorf("删除文件存储对象失败: %w", err)
	}

	if err := s.repo.Document.Delete(ctx, documentID); err != nil {
		s.logger.Error("删除文档记录失败", zap.String("id", documentID), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── DownloadDocument ──────────────────────

func (s *projectService) DownloadDocument(ctx context.Context, documentID string) ([]byte, *dto.DocumentResponse, error) {
	doc, err := s.getDocument(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.store.Get(ctx, doc.Locator)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrDocumentNotFound
		}
		s.logger.Error("读取存储对象失败", zap.String("locator", doc.Locator), zap.Error(err))
		return nil, nil, fmt.Errorf("读取文件存储对象失败: %w", err)
	}

	return data, toDocumentResponse(doc), nil
}

// ────────────────────── 查询操作 ──────────────────────

func (s *projectService) ListByStudent(ctx context.Context, studentID string) ([]dto.ProjectResponse, error) {
	projects, err := s.repo.Project.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生项目失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return toProjectResponses(projects), nil
}

func (s *projectService) ListBySupervisor(ctx context.Context, supervisorID string) ([]dto.ProjectResponse, error) {
	projects, err := s.repo.Project.ListBySupervisor(ctx, supervisorID)
	if err != nil {
		s.logger.Error("查询指导项目失败", zap.String("supervisor_id", supervisorID), zap.Error(err))
		return nil, err
	}
	return toProjectResponses(projects), nil
}

// ListAll 全量归档查询，支持单属性过滤
// 优先级：status > 学年+学期 > 学年 > 课程（复合搜索不在范围内）
func (s *projectService) ListAll(ctx context.Context, req *dto.ProjectListRequest) ([]dto.ProjectResponse, error) {
	var (
		projects []model.Project
		err      error
	)

	switch {
	case req != nil && req.Status != "":
		status, ok := model.ParseProjectStatus(req.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		projects, err = s.repo.Project.ListByStatus(ctx, status)
	case req != nil && req.AcademicYear != "" && req.Semester != "":
		projects, err = s.repo.Project.ListByAcademicYearAndSemester(ctx, req.AcademicYear, req.Semester)
	case req != nil && req.AcademicYear != "":
		projects, err = s.repo.Project.ListByAcademicYear(ctx, req.AcademicYear)
	case req != nil && req.Course != "":
		projects, err = s.repo.Project.ListByCourse(ctx, req.Course)
	default:
		projects, err = s.repo.Project.ListAll(ctx)
	}

	if err != nil {
		s.logger.Error("查询项目归档失败", zap.Error(err))
		return nil, err
	}
	return toProjectResponses(projects), nil
}

func (s *projectService) GetByID(ctx context.Context, projectID string) (*dto.ProjectResponse, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

func (s *projectService) ListDocuments(ctx context.Context, projectID string) ([]dto.DocumentResponse, error) {
	docs, err := s.repo.Document.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("查询项目文档失败", zap.String("project_id", projectID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		result = append(result, *toDocumentResponse(&docs[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

func (s *projectService) getProject(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return project, nil
}

func (s *projectService) getDocument(ctx context.Context, id string) (*model.Document, error) {
	doc, err := s.repo.Document.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		s.logger.Error("查询文档失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return doc, nil
}

// projectScope 文档存储的作用域前缀，按项目隔离
func projectScope(projectID string) string {
	return "projects/" + projectID
}

// fileExtension 取文件名最后一个 . 之后的子串作为扩展名
// 无 . 或 . 位于首字符时返回空串（"Makefile" → ""，".gitignore" → ""）
func fileExtension(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx > 0 {
		return fileName[idx+1:]
	}
	return ""
}

// toProjectResponse 将 model.Project 转换为 dto.ProjectResponse
func toProjectResponse(p *model.Project) *dto.ProjectResponse {
	resp := &dto.ProjectResponse{
		ID:               p.ProjectID,
		Title:            p.Title,
		Description:      p.Description,
		Course:           p.Course,
		AcademicYear:     p.AcademicYear,
		Semester:         p.Semester,
		Status:           string(p.Status),
		StudentID:        p.StudentID,
		SupervisorID:     p.SupervisorID,
		LecturerComments: p.LecturerComments,
		Marks:            p.Marks,
		SubmittedAt:      p.SubmittedAt.Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt.Format(time.RFC3339),
	}
	if p.ReviewedAt != nil {
		reviewed := p.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &reviewed
	}
	if p.Student != nil {
		resp.Student = toUserResponse(p.Student)
	}
	if p.Supervisor != nil {
		resp.Supervisor = toUserResponse(p.Supervisor)
	}
	return resp
}

func toProjectResponses(projects []model.Project) []dto.ProjectResponse {
	result := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		result = append(result, *toProjectResponse(&projects[i]))
	}
	return result
}

// toDocumentResponse 将 model.Document 转换为 dto.DocumentResponse
func toDocumentResponse(d *model.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:           d.DocumentID,
		FileName:     d.FileName,
		DocumentType: string(d.DocumentType),
		FileType:     d.FileType,
		FileSize:     d.FileSize,
		Description:  d.Description,
		ProjectID:    d.ProjectID,
		UploadedAt:   d.UploadedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/project_service.go
