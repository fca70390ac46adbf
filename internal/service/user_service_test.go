package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"sci-archive/backend/internal/model"
	"sci-archive/backend/internal/repository"
)

func setupTestUserService() (UserService, *mockUserRepo) {
	userRepo := newMockUserRepo()

	staffID := "T-1001"
	userRepo.users["student-001"] = &model.User{
		UserID: "student-001", Username: "zhangsan", Email: "zhangsan@sci.edu",
		FullName: "张三", Role: model.RoleStudent, Active: true,
	}
	userRepo.users["lecturer-001"] = &model.User{
		UserID: "lecturer-001", Username: "wanglaoshi", Email: "wang@sci.edu",
		FullName: "王老师", StaffID: &staffID, Role: model.RoleLecturer, Active: true,
	}
	userRepo.users["lecturer-retired"] = &model.User{
		UserID: "lecturer-retired", Username: "retired", Email: "retired@sci.edu",
		FullName: "退休讲师", Role: model.RoleLecturer, Active: false,
	}

	repo := &repository.Repository{User: userRepo}
	svc := NewUserService(repo, zap.NewNop())
	return svc, userRepo
}

func TestUserService_GetByID(t *testing.T) {
	svc, _ := setupTestUserService()

	user, err := svc.GetByID(context.Background(), "lecturer-001")
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if user.FullName != "王老师" {
		t.Errorf("期望FullName=王老师，实际=%s", user.FullName)
	}

	if _, err := svc.GetByID(context.Background(), "nonexistent"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// 讲师列表只包含在职讲师
func TestUserService_ListLecturers(t *testing.T) {
	svc, _ := setupTestUserService()

	lecturers, err := svc.ListLecturers(context.Background())
	if err != nil {
		t.Fatalf("ListLecturers 应成功: %v", err)
	}
	if len(lecturers) != 1 {
		t.Fatalf("期望 1 位在职讲师，实际=%d", len(lecturers))
	}
	if lecturers[0].ID != "lecturer-001" {
		t.Errorf("期望讲师=lecturer-001，实际=%s", lecturers[0].ID)
	}
}

func TestUserService_ListAll(t *testing.T) {
	svc, _ := setupTestUserService()

	users, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll 应成功: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("期望 3 个用户，实际=%d", len(users))
	}
}
