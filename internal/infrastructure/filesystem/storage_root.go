package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/easayliu/pdf-store/pkg/logger"
)

// DirectoryError 目录错误
type DirectoryError struct {
	Path   string
	Reason string
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("目录错误: %s - %s", e.Path, e.Reason)
}

// executablePath 便于测试替换
var executablePath = os.Executable

// ResolveStorageRoot 解析存储根目录
// 相对路径以可执行文件所在目录为基准，与进程的工作目录无关。
func ResolveStorageRoot(dir string) (string, error) {
	if dir == "" {
		return "", &DirectoryError{Path: dir, Reason: "路径为空"}
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}

	exe, err := executablePath()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Join(filepath.Dir(exe), dir), nil
}

// EnsureDirectory 确保目录存在且可用
func EnsureDirectory(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return &DirectoryError{Path: path, Reason: "路径存在但不是目录"}
		}
		logger.Debug("Storage root exists", "path", path)
		return nil
	}

	if !os.IsNotExist(err) {
		return &DirectoryError{Path: path, Reason: fmt.Sprintf("检查目录失败: %v", err)}
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return &DirectoryError{Path: path, Reason: fmt.Sprintf("创建目录失败: %v", err)}
	}

	logger.Info("Created storage root", "path", path)
	return nil
}
