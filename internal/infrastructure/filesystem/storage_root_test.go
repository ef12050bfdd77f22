package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveStorageRoot(t *testing.T) {
	binDir := t.TempDir()
	exe := filepath.Join(binDir, "pdf-store")
	if err := os.WriteFile(exe, []byte("bin"), 0o755); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	// EvalSymlinks 会展开 TempDir 本身可能存在的符号链接
	wantBase, err := filepath.EvalSymlinks(binDir)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	orig := executablePath
	executablePath = func() (string, error) { return exe, nil }
	t.Cleanup(func() { executablePath = orig })

	tests := []struct {
		name    string
		dir     string
		want    string
		wantErr bool
	}{
		{name: "相对路径基于可执行文件目录", dir: "pdfs", want: filepath.Join(wantBase, "pdfs")},
		{name: "绝对路径保持不变", dir: "/srv/pdfs/", want: filepath.Clean("/srv/pdfs/")},
		{name: "空路径", dir: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveStorageRoot(tt.dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveStorageRoot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ResolveStorageRoot() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveStorageRoot_ExecutableError(t *testing.T) {
	orig := executablePath
	executablePath = func() (string, error) { return "", errors.New("no exe") }
	t.Cleanup(func() { executablePath = orig })

	if _, err := ResolveStorageRoot("pdfs"); err == nil {
		t.Error("expected error when executable path is unknown")
	}
}

func TestEnsureDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		setup   func() error
		wantErr bool
	}{
		{
			name:    "创建新目录",
			path:    filepath.Join(tmpDir, "pdfs"),
			setup:   func() error { return nil },
			wantErr: false,
		},
		{
			name: "目录已存在",
			path: filepath.Join(tmpDir, "existing_dir"),
			setup: func() error {
				return os.MkdirAll(filepath.Join(tmpDir, "existing_dir"), 0o755)
			},
			wantErr: false,
		},
		{
			name: "路径是文件而非目录",
			path: filepath.Join(tmpDir, "test_file"),
			setup: func() error {
				return os.WriteFile(filepath.Join(tmpDir, "test_file"), []byte("test"), 0o644)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.setup(); err != nil {
				t.Fatalf("Setup failed: %v", err)
			}

			err := EnsureDirectory(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("EnsureDirectory() error = %v, wantErr %v", err, tt.wantErr)
			}

			if !tt.wantErr {
				if info, err := os.Stat(tt.path); err != nil || !info.IsDir() {
					t.Errorf("目录未创建: %s", tt.path)
				}
			}
		})
	}
}
