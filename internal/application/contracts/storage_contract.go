package contracts

import (
	"context"
	"io"
)

// UploadRequest 上传请求
type UploadRequest struct {
	File io.Reader // 文件内容，nil 表示请求中缺少文件
	Path string    // 客户端提供的目标路径
}

// UploadResult 上传结果
type UploadResult struct {
	Path     string `json:"path"`      // 存储根目录下的绝对路径
	Size     int64  `json:"size"`      // 写入字节数
	MIMEType string `json:"mime_type"` // 内容嗅探得到的类型
}

// DeleteResult 删除结果
type DeleteResult struct {
	Path    string `json:"path"`
	Deleted bool   `json:"deleted"` // false 表示文件原本就不存在
}

// StorageService 文件存储服务接口
// 错误均为 *errors.ServiceError：输入问题为 ErrorCodeInvalidRequest，文件系统失败为 ErrorCodeInternalError。
type StorageService interface {
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
	Delete(ctx context.Context, path string) (*DeleteResult, error)
}
