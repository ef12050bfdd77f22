package filesystem

import (
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/easayliu/pdf-store/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfiner(t *testing.T) *PathConfiner {
	t.Helper()
	c, err := NewPathConfiner(t.TempDir())
	require.NoError(t, err)
	return c
}

func TestNewPathConfiner_RequiresAbsolute(t *testing.T) {
	_, err := NewPathConfiner("pdfs")
	assert.Error(t, err)
}

func TestPathConfiner_Confine(t *testing.T) {
	c := newTestConfiner(t)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "普通文件名", input: "report.pdf", want: "report.pdf"},
		{name: "客户端带目录前缀", input: "pdfs/emploi_du_temps.pdf", want: "emploi_du_temps.pdf"},
		{name: "正斜杠遍历", input: "../../etc/passwd", want: "passwd"},
		{name: "反斜杠遍历", input: `..\..\secrets`, want: "secrets"},
		{name: "中间遍历", input: "a/b/../../c", want: "c"},
		{name: "绝对路径", input: "/etc/shadow", want: "shadow"},
		{name: "Windows绝对路径", input: `C:\Windows\win.ini`, want: "win.ini"},
		{name: "剥离后重组的遍历", input: "....//x.pdf", want: "x.pdf"},
		{name: "混合分隔符", input: `a\b/c\d.pdf`, want: "d.pdf"},
		{name: "中文文件名", input: "课程/课程表.pdf", want: "课程表.pdf"},
		{name: "文件名中的双点", input: "v1..2.pdf", want: "v1..2.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Confine(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
			assert.Equal(t, filepath.Join(c.Root(), tt.want), got.Abs())
			assert.Equal(t, c.Root(), filepath.Dir(got.Abs()))
		})
	}
}

func TestPathConfiner_RejectsDegenerateNames(t *testing.T) {
	c := newTestConfiner(t)

	inputs := []string{
		"",
		"../",
		`..\`,
		"../../",
		"dir/",
		".",
		"..",
		"a/..",
		"/",
		"bad\x00name.pdf",
		"tab\tname.pdf",
		"zero\u200bwidth.pdf",
		".upload-1234.tmp",
		strings.Repeat("a", maxNameLength+1),
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := c.Confine(in)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err), "expected ValidationError, got %v", err)
		})
	}
}

// 对任意输入：要么 ValidationError，要么结果的父目录恰好是存储根目录
func TestPathConfiner_ConfinementProperty(t *testing.T) {
	c := newTestConfiner(t)

	pieces := []string{"..", ".", "/", `\`, "a", "..", "../", `..\`, "etc", "passwd", "", " ", "...."}
	var inputs []string
	for _, a := range pieces {
		for _, b := range pieces {
			for _, d := range pieces {
				inputs = append(inputs, a+b+d, a+"/"+b+`\`+d)
			}
		}
	}

	for _, in := range inputs {
		got, err := c.Confine(in)
		if err != nil {
			assert.True(t, apperrors.IsValidationError(err), "input %q", in)
			continue
		}
		assert.Equal(t, c.Root(), filepath.Dir(got.Abs()), "input %q escaped to %q", in, got.Abs())
		assert.NotContains(t, got.Name, "/", "input %q", in)
		assert.NotContains(t, got.Name, `\`, "input %q", in)
	}
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "x", BaseName("../x"))
	assert.Equal(t, "", BaseName("dir/"))
	assert.Equal(t, "..", BaseName(".."))
}
