package handlers

import (
	"errors"
	"net/http"

	"github.com/easayliu/pdf-store/internal/application/contracts"
	apperrors "github.com/easayliu/pdf-store/internal/shared/errors"
	"github.com/gin-gonic/gin"
)

// 响应消息
const (
	MsgUploaded        = "File uploaded successfully"
	MsgDeleted         = "File deleted successfully"
	MsgAlreadyDeleted  = "File not found, may have been already deleted"
	msgPayloadTooLarge = "File too large"
)

// UploadResponse 上传响应
type UploadResponse struct {
	Message string `json:"message" example:"File uploaded successfully"`
	Path    string `json:"path" example:"/opt/pdf-store/pdfs/report.pdf"`
}

// DeleteResponse 删除响应
type DeleteResponse struct {
	Message string `json:"message" example:"File deleted successfully"`
	Deleted bool   `json:"deleted" example:"true"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error string `json:"error" example:"Missing path"`
	Code  string `json:"code" example:"INVALID_REQUEST"`
}

// StorageHandler 上传/删除处理器
type StorageHandler struct {
	storage        contracts.StorageService
	maxUploadBytes int64
}

// NewStorageHandler 创建处理器，maxUploadBytes 为 0 表示不限制请求体大小
func NewStorageHandler(storage contracts.StorageService, maxUploadBytes int64) *StorageHandler {
	return &StorageHandler{
		storage:        storage,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload 上传文件
// @Summary 上传文件
// @Description 保存到存储目录，path 只保留文件名部分，同名文件直接覆盖
// @Tags 文件
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "文件内容"
// @Param path formData string true "目标路径，如 pdfs/emploi_du_temps.pdf"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} ErrorResponse "缺少文件或路径"
// @Failure 413 {object} ErrorResponse "文件超过大小限制"
// @Failure 500 {object} ErrorResponse "写入失败"
// @Router /upload [post]
func (h *StorageHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			_ = c.Error(apperrors.NewServiceErrorWithDetails(apperrors.ErrorCodePayloadTooLarge,
				msgPayloadTooLarge, map[string]interface{}{"limit_bytes": tooLarge.Limit}))
			return
		}
		_ = c.Error(apperrors.NewValidationError("No file part"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		_ = c.Error(apperrors.NewOperationError(err))
		return
	}
	defer file.Close()

	result, err := h.storage.Upload(c.Request.Context(), contracts.UploadRequest{
		File: file,
		Path: c.PostForm("path"),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Message: MsgUploaded,
		Path:    result.Path,
	})
}

// Delete 删除文件
// @Summary 删除文件
// @Description 删除存储目录中的文件，文件不存在也返回成功
// @Tags 文件
// @Accept multipart/form-data
// @Accept x-www-form-urlencoded
// @Produce json
// @Param path formData string true "目标路径"
// @Success 200 {object} DeleteResponse
// @Failure 400 {object} ErrorResponse "缺少路径"
// @Failure 500 {object} ErrorResponse "删除失败"
// @Router /delete [post]
func (h *StorageHandler) Delete(c *gin.Context) {
	result, err := h.storage.Delete(c.Request.Context(), c.PostForm("path"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	message := MsgDeleted
	if !result.Deleted {
		message = MsgAlreadyDeleted
	}

	c.JSON(http.StatusOK, DeleteResponse{
		Message: message,
		Deleted: result.Deleted,
	})
}
