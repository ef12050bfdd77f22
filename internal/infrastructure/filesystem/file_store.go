package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/easayliu/pdf-store/pkg/logger"
	"github.com/google/uuid"
)

const fileMode os.FileMode = 0o644

// FileStore 存储根目录下的文件读写
//
// 所有操作都经由 os.Root 句柄完成，根目录内预先存在的符号链接
// 不会把写入或删除带出根目录。同名文件的替换与删除通过 KeyedMutex 串行化。
type FileStore struct {
	confiner *PathConfiner
	root     *os.Root
	locks    *KeyedMutex
}

// NewFileStore 打开存储根目录，rootDir 必须是已存在的绝对路径
func NewFileStore(rootDir string) (*FileStore, error) {
	confiner, err := NewPathConfiner(rootDir)
	if err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(confiner.Root())
	if err != nil {
		return nil, fmt.Errorf("open storage root: %w", err)
	}

	return &FileStore{
		confiner: confiner,
		root:     root,
		locks:    NewKeyedMutex(),
	}, nil
}

// Resolve 约束客户端路径
func (s *FileStore) Resolve(clientPath string) (ResolvedPath, error) {
	return s.confiner.Confine(clientPath)
}

// RootDir 存储根目录
func (s *FileStore) RootDir() string {
	return s.confiner.Root()
}

// Save 写入文件，已存在则无条件覆盖
// 内容先写入临时文件并 fsync，再在文件名锁内 rename 到目标，读者不会看到半写入的文件。
func (s *FileStore) Save(ctx context.Context, p ResolvedPath, r io.Reader) (int64, error) {
	if err := s.checkResolved(p); err != nil {
		return 0, err
	}

	tmpName := tempPrefix + uuid.NewString() + ".tmp"
	f, err := s.root.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if err != nil {
		return 0, err
	}

	committed := false
	defer func() {
		if !committed {
			if rmErr := s.root.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				logger.Warn("Failed to remove temp file", "name", tmpName, "error", rmErr)
			}
		}
	}()

	written, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		return written, err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return written, err
	}
	if err := f.Close(); err != nil {
		return written, err
	}

	if err := ctx.Err(); err != nil {
		return written, err
	}

	unlock := s.locks.Lock(p.Name)
	defer unlock()

	if err := s.root.Rename(tmpName, p.Name); err != nil {
		return written, err
	}
	committed = true

	return written, nil
}

// Remove 删除文件，文件不存在时返回 (false, nil)
func (s *FileStore) Remove(ctx context.Context, p ResolvedPath) (bool, error) {
	if err := s.checkResolved(p); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	unlock := s.locks.Lock(p.Name)
	defer unlock()

	info, err := s.root.Lstat(p.Name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", p.Name)
	}

	if err := s.root.Remove(p.Name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SweepTemp 清理早于 maxAge 的上传临时文件，返回删除数量
func (s *FileStore) SweepTemp(maxAge time.Duration) (int, error) {
	entries, err := fs.ReadDir(s.root.FS(), ".")
	if err != nil {
		return 0, fmt.Errorf("read storage root: %w", err)
	}

	now := time.Now()
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) <= maxAge {
			continue
		}
		if err := s.root.Remove(entry.Name()); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logger.Warn("Failed to sweep temp file", "name", entry.Name(), "error", err)
			}
			continue
		}
		removed++
		logger.Debug("Swept temp file", "name", entry.Name(), "age", now.Sub(info.ModTime()))
	}
	return removed, nil
}

// Close 关闭根目录句柄
func (s *FileStore) Close() error {
	return s.root.Close()
}

func (s *FileStore) checkResolved(p ResolvedPath) error {
	if p.Root != s.confiner.Root() || BaseName(p.Name) != p.Name {
		return fmt.Errorf("path %q is not confined to %s", p.Abs(), s.confiner.Root())
	}
	return nil
}
