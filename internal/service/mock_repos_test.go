package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"sci-archive/backend/internal/model"
	"sci-archive/backend/internal/storage"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByRoleActive(_ context.Context, role model.Role) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role && u.Active {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

// ── Mock ProjectRepository ──

type mockProjectRepo struct {
	projects map[string]*model.Project
	seq      int
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.Project)}
}

func (m *mockProjectRepo) Create(_ context.Context, project *model.Project) error {
	if project.ProjectID == "" {
		m.seq++
		project.ProjectID = fmt.Sprintf("proj-%d", m.seq)
	}
	m.projects[project.ProjectID] = project
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	if p, ok := m.projects[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) Update(_ context.Context, project *model.Project) error {
	if _, ok := m.projects[project.ProjectID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.projects[project.ProjectID] = project
	return nil
}

func (m *mockProjectRepo) Delete(_ context.Context, id string) error {
	delete(m.projects, id)
	return nil
}

func (m *mockProjectRepo) ListByStudent(_ context.Context, studentID string) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if p.StudentID == studentID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) ListBySupervisor(_ context.Context, supervisorID string) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if p.SupervisorID != nil && *p.SupervisorID == supervisorID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) ListByStatus(_ context.Context, status model.ProjectStatus) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if p.Status == status {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) ListByAcademicYear(_ context.Context, academicYear string) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if p.AcademicYear == academicYear {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) ListByCourse(_ context.Context, course string) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if p.Course == course {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) ListByAcademicYearAndSemester(_ context.Context, academicYear, semester string) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if p.AcademicYear == academicYear && p.Semester == semester {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) ListAll(_ context.Context) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		result = append(result, *p)
	}
	return result, nil
}

// ── Mock DocumentRepository ──

type mockDocumentRepo struct {
	docs map[string]*model.Document
	seq  int
}

func newMockDocumentRepo() *mockDocumentRepo {
	return &mockDocumentRepo{docs: make(map[string]*model.Document)}
}

func (m *mockDocumentRepo) Create(_ context.Context, doc *model.Document) error {
	if doc.DocumentID == "" {
		m.seq++
		doc.DocumentID = fmt.Sprintf("doc-%d", m.seq)
	}
	m.docs[doc.DocumentID] = doc
	return nil
}

func (m *mockDocumentRepo) GetByID(_ context.Context, id string) (*model.Document, error) {
	if d, ok := m.docs[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDocumentRepo) ListByProject(_ context.Context, projectID string) ([]model.Document, error) {
	var result []model.Document
	for _, d := range m.docs {
		if d.ProjectID == projectID {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (m *mockDocumentRepo) Delete(_ context.Context, id string) error {
	delete(m.docs, id)
	return nil
}

func (m *mockDocumentRepo) DeleteByProject(_ context.Context, projectID string) error {
	for id, d := range m.docs {
		if d.ProjectID == projectID {
			delete(m.docs, id)
		}
	}
	return nil
}

// ── Mock storage.Store ──

// mockStore 内存存储，支持注入失败以验证降级路径
type mockStore struct {
	objects   map[string][]byte
	putErr    error
	getErr    error
	deleteErr error
}

func newMockStore() *mockStore {
	return &mockStore{objects: make(map[string][]byte)}
}

func (m *mockStore) Put(_ context.Context, scope, fileName string, data []byte) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	locator := scope + "/" + fileName
	m.objects[locator] = data
	return locator, nil
}

func (m *mockStore) Get(_ context.Context, locator string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if data, ok := m.objects[locator]; ok {
		return data, nil
	}
	return nil, storage.ErrNotFound
}

func (m *mockStore) Delete(_ context.Context, locator string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.objects[locator]; !ok {
		return storage.ErrNotFound
	}
	delete(m.objects, locator)
	return nil
}
