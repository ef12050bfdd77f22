package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	apperrors "github.com/easayliu/pdf-store/internal/shared/errors"
)

const (
	// maxNameLength 大多数文件系统单个路径组件的上限（字节）
	maxNameLength = 255

	// tempPrefix 上传临时文件前缀，客户端不可使用
	tempPrefix = ".upload-"
)

// traversalReplacer 去除两种分隔符风格的上级目录标记
var traversalReplacer = strings.NewReplacer("../", "", `..\`, "")

// ResolvedPath 受限于存储根目录的路径，Name 是单一路径组件
type ResolvedPath struct {
	Root string
	Name string
}

// Abs 绝对路径
func (p ResolvedPath) Abs() string {
	return filepath.Join(p.Root, p.Name)
}

func (p ResolvedPath) String() string {
	return p.Abs()
}

// PathConfiner 路径约束器 - 把客户端路径映射为存储根目录下的直接子路径
type PathConfiner struct {
	root string
}

// NewPathConfiner 创建路径约束器，root 必须是绝对路径
func NewPathConfiner(root string) (*PathConfiner, error) {
	if !filepath.IsAbs(root) {
		return nil, fmt.Errorf("storage root must be absolute: %s", root)
	}
	return &PathConfiner{root: filepath.Clean(root)}, nil
}

// Root 存储根目录
func (c *PathConfiner) Root() string {
	return c.root
}

// Confine 约束客户端路径
//  1. 移除所有 "../" 与 "..\"
//  2. 两种分隔符都视为目录分隔，只保留最后一段
//  3. 拼接到存储根目录
//
// 任何输入都只会返回 ValidationError 或 filepath.Dir(Abs()) == Root 的路径。
func (c *PathConfiner) Confine(clientPath string) (ResolvedPath, error) {
	name := BaseName(clientPath)

	if err := validateName(name); err != nil {
		return ResolvedPath{}, err
	}

	return ResolvedPath{Root: c.root, Name: name}, nil
}

// BaseName 剥离遍历标记后取最后一个路径组件
func BaseName(clientPath string) string {
	stripped := traversalReplacer.Replace(clientPath)
	stripped = strings.ReplaceAll(stripped, `\`, "/")
	if i := strings.LastIndex(stripped, "/"); i >= 0 {
		stripped = stripped[i+1:]
	}
	return stripped
}

func validateName(name string) error {
	switch name {
	case "", ".", "..":
		return apperrors.NewServiceErrorWithDetails(apperrors.ErrorCodeInvalidRequest,
			"Invalid path", map[string]interface{}{"reason": "empty file name"})
	}

	if len(name) > maxNameLength {
		return apperrors.NewServiceErrorWithDetails(apperrors.ErrorCodeInvalidRequest,
			"Invalid path", map[string]interface{}{"reason": fmt.Sprintf("file name longer than %d bytes", maxNameLength)})
	}

	if strings.HasPrefix(name, tempPrefix) {
		return apperrors.NewServiceErrorWithDetails(apperrors.ErrorCodeInvalidRequest,
			"Invalid path", map[string]interface{}{"reason": "reserved file name"})
	}

	for _, r := range name {
		if unicode.IsControl(r) || isZeroWidthChar(r) {
			return apperrors.NewServiceErrorWithDetails(apperrors.ErrorCodeInvalidRequest,
				"Invalid path", map[string]interface{}{"reason": fmt.Sprintf("file name contains U+%04X", r)})
		}
	}

	return nil
}

func isZeroWidthChar(r rune) bool {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\u2060', '\ufeff':
		return true
	}
	return false
}
