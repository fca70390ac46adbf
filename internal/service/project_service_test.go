package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"sci-archive/backend/internal/dto"
	"sci-archive/backend/internal/model"
	"sci-archive/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestProjectService() (ProjectService, *mockProjectRepo, *mockDocumentRepo, *mockUserRepo, *mockStore) {
	userRepo := newMockUserRepo()
	projRepo := newMockProjectRepo()
	docRepo := newMockDocumentRepo()
	store := newMockStore()

	staffID := "T-1001"
	userRepo.users["student-001"] = &model.User{
		UserID: "student-001", Username: "zhangsan", Email: "zhangsan@sci.edu",
		FullName: "张三", Role: model.RoleStudent, Active: true,
	}
	userRepo.users["student-002"] = &model.User{
		UserID: "student-002", Username: "lisi", Email: "lisi@sci.edu",
		FullName: "李四", Role: model.RoleStudent, Active: true,
	}
	userRepo.users["lecturer-001"] = &model.User{
		UserID: "lecturer-001", Username: "wanglaoshi", Email: "wang@sci.edu",
		FullName: "王老师", StaffID: &staffID, Role: model.RoleLecturer, Active: true,
	}
	userRepo.users["lecturer-002"] = &model.User{
		UserID: "lecturer-002", Username: "zhaolaoshi", Email: "zhao@sci.edu",
		FullName: "赵老师", Role: model.RoleLecturer, Active: true,
	}
	userRepo.users["admin-001"] = &model.User{
		UserID: "admin-001", Username: "admin", Email: "admin@sci.edu",
		FullName: "管理员", Role: model.RoleAdmin, Active: true,
	}

	repo := &repository.Repository{
		User:     userRepo,
		Project:  projRepo,
		Document: docRepo,
	}
	svc := NewProjectService(repo, store, zap.NewNop())
	return svc, projRepo, docRepo, userRepo, store
}

func createTestProject(t *testing.T, svc ProjectService, studentID string) *dto.ProjectResponse {
	t.Helper()
	req := &dto.ProjectRequest{
		Title:        "毕业设计归档系统",
		Description:  "基于 Web 的项目归档",
		Course:       "软件工程",
		AcademicYear: "2025-2026",
		Semester:     "第一学期",
	}
	project, err := svc.Create(context.Background(), req, studentID, model.RoleStudent)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	return project
}

// ── Create 测试 ──

func TestProjectService_Create_Success(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()

	project := createTestProject(t, svc, "student-001")

	if project.Status != string(model.StatusSubmitted) {
		t.Errorf("新建项目状态应为 SUBMITTED，实际=%s", project.Status)
	}
	if project.StudentID != "student-001" {
		t.Errorf("项目归属应为调用者，实际=%s", project.StudentID)
	}
	if project.SubmittedAt == "" {
		t.Error("SubmittedAt 应被填充")
	}
	if project.Marks != nil || project.ReviewedAt != nil {
		t.Error("新建项目不应携带分数与评审时间")
	}
}

func TestProjectService_Create_WithSupervisor(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()

	supervisorID := "lecturer-001"
	req := &dto.ProjectRequest{Title: "实验项目", SupervisorID: &supervisorID}

	project, err := svc.Create(context.Background(), req, "student-001", model.RoleStudent)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if project.SupervisorID == nil || *project.SupervisorID != "lecturer-001" {
		t.Errorf("期望 SupervisorID=lecturer-001，实际=%v", project.SupervisorID)
	}
}

func TestProjectService_Create_SupervisorNotFound(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()

	supervisorID := "nonexistent"
	req := &dto.ProjectRequest{Title: "实验项目", SupervisorID: &supervisorID}

	_, err := svc.Create(context.Background(), req, "student-001", model.RoleStudent)
	if !errors.Is(err, ErrSupervisorNotFound) {
		t.Errorf("期望 ErrSupervisorNotFound，实际: %v", err)
	}
}

func TestProjectService_Create_NonStudentForbidden(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()

	req := &dto.ProjectRequest{Title: "实验项目"}

	if _, err := svc.Create(context.Background(), req, "lecturer-001", model.RoleLecturer); !errors.Is(err, ErrNoPermission) {
		t.Errorf("讲师创建项目应被拒，实际: %v", err)
	}
	if _, err := svc.Create(context.Background(), req, "admin-001", model.RoleAdmin); !errors.Is(err, ErrNoPermission) {
		t.Errorf("管理员创建项目应被拒，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestProjectService_Update_Success(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	req := &dto.ProjectRequest{Title: "修改后的标题", Course: "数据库系统"}
	updated, err := svc.Update(context.Background(), project.ID, req, "student-001", model.RoleStudent)
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.Title != "修改后的标题" {
		t.Errorf("期望Title=修改后的标题，实际=%s", updated.Title)
	}
	if updated.Course != "数据库系统" {
		t.Errorf("期望Course=数据库系统，实际=%s", updated.Course)
	}
	if updated.Status != string(model.StatusSubmitted) {
		t.Errorf("Update 不得改变项目状态，实际=%s", updated.Status)
	}
}

func TestProjectService_Update_NonOwnerForbidden(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	req := &dto.ProjectRequest{Title: "越权修改"}
	_, err := svc.Update(context.Background(), project.ID, req, "student-002", model.RoleStudent)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("非归属学生更新应被拒，实际: %v", err)
	}
}

func TestProjectService_Update_NotFound(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()

	req := &dto.ProjectRequest{Title: "不存在的项目"}
	_, err := svc.Update(context.Background(), "nonexistent", req, "student-001", model.RoleStudent)
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("期望 ErrProjectNotFound，实际: %v", err)
	}
}

// ── UploadDocument 测试 ──

func TestProjectService_UploadDocument_Success(t *testing.T) {
	svc, _, _, _, store := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	data := []byte("final report content")
	req := &dto.UploadDocumentRequest{DocumentType: "FINAL_REPORT", Description: "终稿"}

	doc, err := svc.UploadDocument(context.Background(), project.ID, "report.pdf", data, req, "student-001", model.RoleStudent)
	if err != nil {
		t.Fatalf("UploadDocument 应成功: %v", err)
	}
	if doc.DocumentType != "FINAL_REPORT" {
		t.Errorf("期望DocumentType=FINAL_REPORT，实际=%s", doc.DocumentType)
	}
	if doc.FileType != "pdf" {
		t.Errorf("期望FileType=pdf，实际=%s", doc.FileType)
	}
	if doc.FileSize != int64(len(data)) {
		t.Errorf("期望FileSize=%d，实际=%d", len(data), doc.FileSize)
	}
	if len(store.objects) != 1 {
		t.Errorf("存储中应有 1 个对象，实际=%d", len(store.objects))
	}
}

func TestProjectService_UploadDocument_FileTypeDerivation(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	cases := []struct {
		fileName string
		fileType string
	}{
		{"report.final.pdf", "pdf"},
		{"slides.PPTX", "PPTX"},
		{"Makefile", ""},
		{".gitignore", ""},
		{"archive.tar.gz", "gz"},
	}

	req := &dto.UploadDocumentRequest{DocumentType: "OTHER"}
	for _, tc := range cases {
		doc, err := svc.UploadDocument(context.Background(), project.ID, tc.fileName, []byte("x"), req, "student-001", model.RoleStudent)
		if err != nil {
			t.Fatalf("UploadDocument(%s) 应成功: %v", tc.fileName, err)
		}
		if doc.FileType != tc.fileType {
			t.Errorf("%s: 期望FileType=%q，实际=%q", tc.fileName, tc.fileType, doc.FileType)
		}
	}
}

func TestProjectService_UploadDocument_InvalidType(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	req := &dto.UploadDocumentRequest{DocumentType: "HOMEWORK"}
	_, err := svc.UploadDocument(context.Background(), project.ID, "a.pdf", []byte("x"), req, "student-001", model.RoleStudent)
	if !errors.Is(err, ErrInvalidDocumentType) {
		t.Errorf("期望 ErrInvalidDocumentType，实际: %v", err)
	}
}

func TestProjectService_UploadDocument_NonOwnerForbidden(t *testing.T) {
	svc, _, _, _, store := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	req := &dto.UploadDocumentRequest{DocumentType: "OTHER"}
	_, err := svc.UploadDocument(context.Background(), project.ID, "a.pdf", []byte("x"), req, "student-002", model.RoleStudent)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("非归属学生上传文档应被拒，实际: %v", err)
	}
	if len(store.objects) != 0 {
		t.Error("被拒的上传不应写入存储")
	}
}

// ── Review 测试 ──

func TestProjectService_Review_Success(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	comments := "结构清晰，通过"
	marks := 88
	req := &dto.ProjectReviewRequest{Status: "APPROVED", Comments: &comments, Marks: &marks}

	reviewed, err := svc.Review(context.Background(), project.ID, req, "lecturer-001")
	if err != nil {
		t.Fatalf("Review 应成功: %v", err)
	}
	if reviewed.Status != string(model.StatusApproved) {
		t.Errorf("期望Status=APPROVED，实际=%s", reviewed.Status)
	}
	if reviewed.Marks == nil || *reviewed.Marks != 88 {
		t.Errorf("期望Marks=88，实际=%v", reviewed.Marks)
	}
	if reviewed.LecturerComments == nil || *reviewed.LecturerComments != comments {
		t.Errorf("期望Comments=%q，实际=%v", comments, reviewed.LecturerComments)
	}
	if reviewed.ReviewedAt == nil {
		t.Error("ReviewedAt 应被填充")
	}
	// 首位评审人自动成为指导教师
	if reviewed.SupervisorID == nil || *reviewed.SupervisorID != "lecturer-001" {
		t.Errorf("首位评审人应成为指导教师，实际=%v", reviewed.SupervisorID)
	}
}

func TestProjectService_Review_DoesNotOverwriteSupervisor(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	first := &dto.ProjectReviewRequest{Status: "NEEDS_REVISION"}
	if _, err := svc.Review(context.Background(), project.ID, first, "lecturer-001"); err != nil {
		t.Fatalf("首次评审应成功: %v", err)
	}

	second := &dto.ProjectReviewRequest{Status: "APPROVED"}
	reviewed, err := svc.Review(context.Background(), project.ID, second, "lecturer-002")
	if err != nil {
		t.Fatalf("二次评审应成功: %v", err)
	}
	if reviewed.SupervisorID == nil || *reviewed.SupervisorID != "lecturer-001" {
		t.Errorf("二次评审不应覆盖既有指导教师，实际=%v", reviewed.SupervisorID)
	}
	if reviewed.Status != string(model.StatusApproved) {
		t.Errorf("期望Status=APPROVED，实际=%s", reviewed.Status)
	}
}

func TestProjectService_Review_InvalidStatusLeavesProjectUnmodified(t *testing.T) {
	svc, projRepo, _, _, _ := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	// SUBMITTED 不是合法的评审目标状态
	req := &dto.ProjectReviewRequest{Status: "SUBMITTED"}
	_, err := svc.Review(context.Background(), project.ID, req, "lecturer-001")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("期望 ErrInvalidStatus，实际: %v", err)
	}

	stored := projRepo.projects[project.ID]
	if stored.Status != model.StatusSubmitted || stored.Marks != nil || stored.ReviewedAt != nil || stored.SupervisorID != nil {
		t.Error("校验失败的评审不得留下任何修改")
	}
}

func TestProjectService_Review_MarksOutOfRange(t *testing.T) {
	svc, projRepo, _, _, _ := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	for _, marks := range []int{-1, 101} {
		m := marks
		req := &dto.ProjectReviewRequest{Status: "APPROVED", Marks: &m}
		_, err := svc.Review(context.Background(), project.ID, req, "lecturer-001")
		if !errors.Is(err, ErrInvalidMarks) {
			t.Errorf("marks=%d: 期望 ErrInvalidMarks，实际: %v", marks, err)
		}
	}

	stored := projRepo.projects[project.ID]
	if stored.Status != model.StatusSubmitted || stored.Marks != nil {
		t.Error("分数越界的评审不得留下任何修改")
	}
}

func TestProjectService_Review_MarksBoundaries(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()

	for _, marks := range []int{0, 100} {
		project := createTestProject(t, svc, "student-001")
		m := marks
		req := &dto.ProjectReviewRequest{Status: "APPROVED", Marks: &m}
		reviewed, err := svc.Review(context.Background(), project.ID, req, "lecturer-001")
		if err != nil {
			t.Fatalf("marks=%d 应为合法边界值: %v", marks, err)
		}
		if reviewed.Marks == nil || *reviewed.Marks != marks {
			t.Errorf("期望Marks=%d，实际=%v", marks, reviewed.Marks)
		}
	}
}

func TestProjectService_Review_StudentForbidden(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	req := &dto.ProjectReviewRequest{Status: "APPROVED"}
	_, err := svc.Review(context.Background(), project.ID, req, "student-002")
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("学生评审应被拒，实际: %v", err)
	}
}

func TestProjectService_Review_ReviewerNotFound(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	req := &dto.ProjectReviewRequest{Status: "APPROVED"}
	_, err := svc.Review(context.Background(), project.ID, req, "nonexistent")
	if !errors.Is(err, ErrReviewerNotFound) {
		t.Errorf("期望 ErrReviewerNotFound，实际: %v", err)
	}
}

func TestProjectService_Review_AdminAllowed(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	req := &dto.ProjectReviewRequest{Status: "REJECTED"}
	reviewed, err := svc.Review(context.Background(), project.ID, req, "admin-001")
	if err != nil {
		t.Fatalf("管理员评审应成功: %v", err)
	}
	if reviewed.Status != string(model.StatusRejected) {
		t.Errorf("期望Status=REJECTED，实际=%s", reviewed.Status)
	}
}

// ── Delete 测试 ──

func TestProjectService_Delete_CascadesDocuments(t *testing.T) {
	svc, projRepo, docRepo, _, store := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	req := &dto.UploadDocumentRequest{DocumentType: "SOURCE_CODE"}
	for _, name := range []string{"a.zip", "b.zip"} {
		if _, err := svc.UploadDocument(context.Background(), project.ID, name, []byte("x"), req, "student-001", model.RoleStudent); err != nil {
			t.Fatalf("UploadDocument 应成功: %v", err)
		}
	}

	if err := svc.Delete(context.Background(), project.ID, "student-001", model.RoleStudent); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	if len(projRepo.projects) != 0 {
		t.Error("项目记录应被删除")
	}
	if len(docRepo.docs) != 0 {
		t.Error("文档记录应被级联删除")
	}
	if len(store.objects) != 0 {
		t.Error("存储对象应被级联删除")
	}
}

func TestProjectService_Delete_SurvivesStorageFailure(t *testing.T) {
	svc, projRepo, docRepo, _, store := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	req := &dto.UploadDocumentRequest{DocumentType: "SOURCE_CODE"}
	if _, err := svc.UploadDocument(context.Background(), project.ID, "a.zip", []byte("x"), req, "student-001", model.RoleStudent); err != nil {
		t.Fatalf("UploadDocument 应成功: %v", err)
	}

	// 存储不可用时仍应完成记录删除（对象留给带外清理）
	store.deleteErr = errors.New("storage unavailable")
	if err := svc.Delete(context.Background(), project.ID, "student-001", model.RoleStudent); err != nil {
		t.Fatalf("存储删除失败不应中断项目删除: %v", err)
	}
	if len(projRepo.projects) != 0 || len(docRepo.docs) != 0 {
		t.Error("项目与文档记录应被删除")
	}
}

func TestProjectService_Delete_NonOwnerForbidden(t *testing.T) {
	svc, projRepo, _, _, _ := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	if err := svc.Delete(context.Background(), project.ID, "student-002", model.RoleStudent); !errors.Is(err, ErrNoPermission) {
		t.Errorf("非归属学生删除应被拒，实际: %v", err)
	}
	if err := svc.Delete(context.Background(), project.ID, "admin-001", model.RoleAdmin); !errors.Is(err, ErrNoPermission) {
		t.Errorf("管理员删除应被拒，实际: %v", err)
	}
	if len(projRepo.projects) != 1 {
		t.Error("被拒的删除不得移除项目")
	}
}

// ── DeleteDocument 测试 ──

func TestProjectService_DeleteDocument_Success(t *testing.T) {
	svc, _, docRepo, _, store := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	req := &dto.UploadDocumentRequest{DocumentType: "USER_MANUAL"}
	doc, err := svc.UploadDocument(context.Background(), project.ID, "manual.docx", []byte("x"), req, "student-001", model.RoleStudent)
	if err != nil {
		t.Fatalf("UploadDocument 应成功: %v", err)
	}

	if err := svc.DeleteDocument(context.Background(), doc.ID, "student-001", model.RoleStudent); err != nil {
		t.Fatalf("DeleteDocument 应成功: %v", err)
	}
	if len(docRepo.docs) != 0 || len(store.objects) != 0 {
		t.Error("文档记录与存储对象均应被删除")
	}
}

func TestProjectService_DeleteDocument_OwnershipFromParentProject(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	req := &dto.UploadDocumentRequest{DocumentType: "USER_MANUAL"}
	doc, err := svc.UploadDocument(context.Background(), project.ID, "manual.docx", []byte("x"), req, "student-001", model.RoleStudent)
	if err != nil {
		t.Fatalf("UploadDocument 应成功: %v", err)
	}

	if err := svc.DeleteDocument(context.Background(), doc.ID, "student-002", model.RoleStudent); !errors.Is(err, ErrNoPermission) {
		t.Errorf("非归属学生删除文档应被拒，实际: %v", err)
	}
}

func TestProjectService_DeleteDocument_NotFound(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()

	err := svc.DeleteDocument(context.Background(), "nonexistent", "student-001", model.RoleStudent)
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("期望 ErrDocumentNotFound，实际: %v", err)
	}
}

// ── DownloadDocument 测试 ──

func TestProjectService_DownloadDocument_RoundTrip(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	content := []byte("design document body")
	req := &dto.UploadDocumentRequest{DocumentType: "SOFTWARE_DESIGN_DOCUMENT"}
	doc, err := svc.UploadDocument(context.Background(), project.ID, "design.pdf", content, req, "student-001", model.RoleStudent)
	if err != nil {
		t.Fatalf("UploadDocument 应成功: %v", err)
	}

	data, meta, err := svc.DownloadDocument(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("DownloadDocument 应成功: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Error("下载内容应与上传内容一致")
	}
	if meta.FileName != "design.pdf" {
		t.Errorf("期望FileName=design.pdf，实际=%s", meta.FileName)
	}
}

func TestProjectService_DownloadDocument_BlobMissing(t *testing.T) {
	svc, _, _, _, store := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")

	req := &dto.UploadDocumentRequest{DocumentType: "OTHER"}
	doc, err := svc.UploadDocument(context.Background(), project.ID, "a.txt", []byte("x"), req, "student-001", model.RoleStudent)
	if err != nil {
		t.Fatalf("UploadDocument 应成功: %v", err)
	}

	// 存储对象丢失时映射为文档不存在
	store.objects = map[string][]byte{}
	_, _, err = svc.DownloadDocument(context.Background(), doc.ID)
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("期望 ErrDocumentNotFound，实际: %v", err)
	}
}

// ── 查询测试 ──

func TestProjectService_ListByStudent(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()
	createTestProject(t, svc, "student-001")
	createTestProject(t, svc, "student-001")
	createTestProject(t, svc, "student-002")

	projects, err := svc.ListByStudent(context.Background(), "student-001")
	if err != nil {
		t.Fatalf("ListByStudent 应成功: %v", err)
	}
	if len(projects) != 2 {
		t.Errorf("期望 2 个项目，实际=%d", len(projects))
	}
}

func TestProjectService_ListBySupervisor(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")
	createTestProject(t, svc, "student-002")

	req := &dto.ProjectReviewRequest{Status: "UNDER_REVIEW"}
	if _, err := svc.Review(context.Background(), project.ID, req, "lecturer-001"); err != nil {
		t.Fatalf("Review 应成功: %v", err)
	}

	projects, err := svc.ListBySupervisor(context.Background(), "lecturer-001")
	if err != nil {
		t.Fatalf("ListBySupervisor 应成功: %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("期望 1 个指导项目，实际=%d", len(projects))
	}
}

func TestProjectService_ListAll_StatusFilter(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()
	project := createTestProject(t, svc, "student-001")
	createTestProject(t, svc, "student-002")

	req := &dto.ProjectReviewRequest{Status: "APPROVED"}
	if _, err := svc.Review(context.Background(), project.ID, req, "lecturer-001"); err != nil {
		t.Fatalf("Review 应成功: %v", err)
	}

	approved, err := svc.ListAll(context.Background(), &dto.ProjectListRequest{Status: "APPROVED"})
	if err != nil {
		t.Fatalf("ListAll 应成功: %v", err)
	}
	if len(approved) != 1 {
		t.Errorf("期望 1 个已通过项目，实际=%d", len(approved))
	}

	// 状态过滤大小写不敏感
	lower, err := svc.ListAll(context.Background(), &dto.ProjectListRequest{Status: "approved"})
	if err != nil {
		t.Fatalf("ListAll 应成功: %v", err)
	}
	if len(lower) != 1 {
		t.Errorf("小写状态过滤应等价，实际=%d", len(lower))
	}
}

func TestProjectService_ListAll_InvalidStatus(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()

	_, err := svc.ListAll(context.Background(), &dto.ProjectListRequest{Status: "ARCHIVED"})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("期望 ErrInvalidStatus，实际: %v", err)
	}
}

func TestProjectService_ListAll_FilterPrecedence(t *testing.T) {
	svc, projRepo, _, _, _ := setupTestProjectService()

	now := time.Now()
	projRepo.projects["p1"] = &model.Project{
		ProjectID: "p1", Title: "项目一", StudentID: "student-001",
		AcademicYear: "2025-2026", Semester: "第一学期", Course: "软件工程",
		Status: model.StatusSubmitted, SubmittedAt: now, UpdatedAt: now,
	}
	projRepo.projects["p2"] = &model.Project{
		ProjectID: "p2", Title: "项目二", StudentID: "student-002",
		AcademicYear: "2025-2026", Semester: "第二学期", Course: "数据库系统",
		Status: model.StatusSubmitted, SubmittedAt: now, UpdatedAt: now,
	}

	bySemester, err := svc.ListAll(context.Background(), &dto.ProjectListRequest{
		AcademicYear: "2025-2026", Semester: "第一学期",
	})
	if err != nil {
		t.Fatalf("ListAll 应成功: %v", err)
	}
	if len(bySemester) != 1 || bySemester[0].ID != "p1" {
		t.Errorf("学年+学期过滤应命中 p1，实际=%v", bySemester)
	}

	byYear, err := svc.ListAll(context.Background(), &dto.ProjectListRequest{AcademicYear: "2025-2026"})
	if err != nil {
		t.Fatalf("ListAll 应成功: %v", err)
	}
	if len(byYear) != 2 {
		t.Errorf("学年过滤应命中 2 个项目，实际=%d", len(byYear))
	}

	byCourse, err := svc.ListAll(context.Background(), &dto.ProjectListRequest{Course: "数据库系统"})
	if err != nil {
		t.Fatalf("ListAll 应成功: %v", err)
	}
	if len(byCourse) != 1 || byCourse[0].ID != "p2" {
		t.Errorf("课程过滤应命中 p2，实际=%v", byCourse)
	}

	all, err := svc.ListAll(context.Background(), &dto.ProjectListRequest{})
	if err != nil {
		t.Fatalf("ListAll 应成功: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("无过滤条件应返回全量，实际=%d", len(all))
	}
}

func TestProjectService_GetByID_NotFound(t *testing.T) {
	svc, _, _, _, _ := setupTestProjectService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("期望 ErrProjectNotFound，实际: %v", err)
	}
}

// ── 端到端场景 ──

// 学生提交 → 上传文档 → 讲师评审 → 查询归档 → 学生删除
func TestProjectService_Lifecycle(t *testing.T) {
	svc, projRepo, docRepo, _, store := setupTestProjectService()

	project := createTestProject(t, svc, "student-001")

	req := &dto.UploadDocumentRequest{DocumentType: "FINAL_REPORT"}
	if _, err := svc.UploadDocument(context.Background(), project.ID, "final.pdf", []byte("report"), req, "student-001", model.RoleStudent); err != nil {
		t.Fatalf("UploadDocument 应成功: %v", err)
	}

	marks := 92
	review := &dto.ProjectReviewRequest{Status: "APPROVED", Marks: &marks}
	reviewed, err := svc.Review(context.Background(), project.ID, review, "lecturer-001")
	if err != nil {
		t.Fatalf("Review 应成功: %v", err)
	}
	if reviewed.Status != string(model.StatusApproved) {
		t.Errorf("期望Status=APPROVED，实际=%s", reviewed.Status)
	}

	docs, err := svc.ListDocuments(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("ListDocuments 应成功: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("期望 1 个文档，实际=%d", len(docs))
	}

	if err := svc.Delete(context.Background(), project.ID, "student-001", model.RoleStudent); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if len(projRepo.projects) != 0 || len(docRepo.docs) != 0 || len(store.objects) != 0 {
		t.Error("删除后不应残留任何记录或存储对象")
	}
}

// ── fileExtension 单元测试 ──

func TestFileExtension(t *testing.T) {
	cases := map[string]string{
		"report.pdf":       "pdf",
		"report.final.pdf": "pdf",
		"Makefile":         "",
		".gitignore":       "",
		"":                 "",
		"a.":               "",
	}
	for fileName, want := range cases {
		if got := fileExtension(fileName); got != want {
			t.Errorf("fileExtension(%q) = %q，期望 %q", fileName, got, want)
		}
	}
}
