package logger

import (
	"strconv"
	"strings"
	"unicode"
)

// maxValueLength 单个日志值的最大长度，超出部分截断
const maxValueLength = 512

var sensitiveKeys = []string{
	"token",
	"password",
	"passwd",
	"secret",
	"api_key",
	"apikey",
	"authorization",
	"cookie",
}

// SanitizeValue 清理日志值
// 规则:
//   - 敏感键名（token/password/cookie 等）的值替换为掩码
//   - 字符串中的控制字符转义，防止客户端路径伪造日志行
//   - 超长字符串截断
func SanitizeValue(key string, value interface{}) interface{} {
	if IsSensitiveKey(key) {
		return "***MASKED***"
	}

	str, ok := value.(string)
	if !ok {
		return value
	}
	return EscapeString(str)
}

// SanitizeArgs 批量清理slog日志参数
// slog使用键值对格式: key1, value1, key2, value2, ...
func SanitizeArgs(args ...any) []any {
	if len(args) == 0 {
		return args
	}

	result := make([]any, len(args))
	for i := 0; i < len(args); i += 2 {
		result[i] = args[i]
		if i+1 >= len(args) {
			break
		}
		if key, ok := args[i].(string); ok {
			result[i+1] = SanitizeValue(key, args[i+1])
		} else {
			result[i+1] = args[i+1]
		}
	}
	return result
}

// EscapeString 转义控制字符和零宽字符并截断
func EscapeString(s string) string {
	needsEscape := false
	for _, r := range s {
		if unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			needsEscape = true
			break
		}
	}

	if needsEscape {
		var b strings.Builder
		for _, r := range s {
			if unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
				q := strconv.QuoteRuneToASCII(r)
				b.WriteString(q[1 : len(q)-1])
				continue
			}
			b.WriteRune(r)
		}
		s = b.String()
	}

	if len(s) > maxValueLength {
		s = s[:maxValueLength] + "...(truncated)"
	}
	return s
}

// IsSensitiveKey 判断键名是否为敏感字段
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, sk := range sensitiveKeys {
		if strings.Contains(keyLower, sk) {
			return true
		}
	}
	return false
}
