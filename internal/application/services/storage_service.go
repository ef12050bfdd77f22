package services

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/easayliu/pdf-store/internal/application/contracts"
	"github.com/easayliu/pdf-store/internal/infrastructure/filesystem"
	"github.com/easayliu/pdf-store/internal/infrastructure/metrics"
	apperrors "github.com/easayliu/pdf-store/internal/shared/errors"
	"github.com/easayliu/pdf-store/pkg/logger"
	"github.com/gabriel-vasile/mimetype"
)

// sniffLength MIME 嗅探读取的头部字节数
const sniffLength = 3072

const (
	opUpload = "upload"
	opDelete = "delete"
)

// FileStore 存储后端
type FileStore interface {
	Resolve(clientPath string) (filesystem.ResolvedPath, error)
	Save(ctx context.Context, p filesystem.ResolvedPath, r io.Reader) (int64, error)
	Remove(ctx context.Context, p filesystem.ResolvedPath) (bool, error)
}

// StorageService 上传与删除
type StorageService struct {
	store        FileStore
	metrics      *metrics.StorageMetrics
	allowedTypes []string
}

// NewStorageService 创建存储服务
// allowedTypes 为空时接受任意类型
func NewStorageService(store FileStore, m *metrics.StorageMetrics, allowedTypes []string) *StorageService {
	return &StorageService{
		store:        store,
		metrics:      m,
		allowedTypes: allowedTypes,
	}
}

var _ contracts.StorageService = (*StorageService)(nil)

// Upload 保存上传文件，同名文件直接覆盖
func (s *StorageService) Upload(ctx context.Context, req contracts.UploadRequest) (result *contracts.UploadResult, err error) {
	start := time.Now()
	defer func() { s.observe(opUpload, start, err) }()

	if req.File == nil {
		return nil, apperrors.NewValidationError("No file part")
	}
	if req.Path == "" {
		return nil, apperrors.NewValidationError("Missing file or path")
	}

	target, err := s.store.Resolve(req.Path)
	if err != nil {
		return nil, err
	}

	body := bufio.NewReaderSize(req.File, sniffLength)
	head, peekErr := body.Peek(sniffLength)
	if peekErr != nil && peekErr != io.EOF && peekErr != bufio.ErrBufferFull {
		return nil, apperrors.NewOperationError(peekErr)
	}
	mtype := mimetype.Detect(head)

	if !s.typeAllowed(mtype) {
		return nil, apperrors.NewServiceErrorWithDetails(apperrors.ErrorCodeInvalidRequest,
			"Unsupported file type", map[string]interface{}{"mime_type": mtype.String()})
	}

	written, err := s.store.Save(ctx, target, body)
	if err != nil {
		logger.Error("Upload failed", "path", target.Abs(), "error", err)
		return nil, apperrors.NewOperationError(err)
	}
	s.metrics.AddBytesWritten(written)

	logger.Info("File uploaded",
		"client_path", req.Path,
		"path", target.Abs(),
		"size", written,
		"mime_type", mtype.String(),
		"duration", time.Since(start))

	return &contracts.UploadResult{
		Path:     target.Abs(),
		Size:     written,
		MIMEType: mtype.String(),
	}, nil
}

// Delete 删除文件，文件不存在视为成功
func (s *StorageService) Delete(ctx context.Context, path string) (result *contracts.DeleteResult, err error) {
	start := time.Now()
	defer func() { s.observe(opDelete, start, err) }()

	if path == "" {
		return nil, apperrors.NewValidationError("Missing path")
	}

	target, err := s.store.Resolve(path)
	if err != nil {
		return nil, err
	}

	removed, err := s.store.Remove(ctx, target)
	if err != nil {
		logger.Error("Delete failed", "path", target.Abs(), "error", err)
		return nil, apperrors.NewOperationError(err)
	}

	if removed {
		logger.Info("File deleted", "client_path", path, "path", target.Abs())
	} else {
		logger.Info("File not found on delete", "client_path", path, "path", target.Abs())
	}

	return &contracts.DeleteResult{Path: target.Abs(), Deleted: removed}, nil
}

func (s *StorageService) typeAllowed(mtype *mimetype.MIME) bool {
	if len(s.allowedTypes) == 0 {
		return true
	}
	for _, allowed := range s.allowedTypes {
		if mtype.Is(allowed) {
			return true
		}
	}
	return false
}

func (s *StorageService) observe(operation string, start time.Time, err error) {
	status := metrics.StatusSuccess
	switch {
	case err == nil:
	case apperrors.IsValidationError(err):
		status = metrics.StatusValidationError
	default:
		status = metrics.StatusOperationError
	}
	s.metrics.ObserveOperation(operation, status, time.Since(start))
}
