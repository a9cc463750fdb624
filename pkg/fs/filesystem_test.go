package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_Interface(t *testing.T) {
	var _ FileSystemAPI = &OSFileSystem{}
}

func TestOSFileSystem_ReadWriteFile(t *testing.T) {
	fs := &OSFileSystem{}
	tempDir := t.TempDir()

	testFile := filepath.Join(tempDir, "session.json")
	testData := []byte(`{"wallet_address":"0x0"}`)

	if err := fs.WriteFile(testFile, testData, 0600); err != nil {
		t.Errorf("WriteFile failed: %v", err)
	}

	readData, err := fs.ReadFile(testFile)
	if err != nil {
		t.Errorf("ReadFile failed: %v", err)
	}
	if string(readData) != string(testData) {
		t.Errorf("ReadFile returned incorrect data. Expected: %s, Got: %s", testData, readData)
	}

	info, err := fs.Stat(testFile)
	if err != nil {
		t.Errorf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}
}

func TestOSFileSystem_ReadFile_NotExist(t *testing.T) {
	fs := &OSFileSystem{}

	_, err := fs.ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("ReadFile should return error for non-existent file")
	}
	if !os.IsNotExist(err) {
		t.Errorf("ReadFile should return os.ErrNotExist, got: %v", err)
	}
}

func TestOSFileSystem_MkdirAllAndRemove(t *testing.T) {
	fs := &OSFileSystem{}
	tempDir := t.TempDir()

	nested := filepath.Join(tempDir, "a", "b")
	if err := fs.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	testFile := filepath.Join(nested, "file.txt")
	if err := fs.WriteFile(testFile, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := fs.Remove(testFile); err != nil {
		t.Errorf("Remove failed: %v", err)
	}
	if _, err := fs.Stat(testFile); !os.IsNotExist(err) {
		t.Errorf("expected file to be gone, got: %v", err)
	}
}

func TestMockFileSystem(t *testing.T) {
	mockFS := NewMockFileSystem()

	t.Run("read and write", func(t *testing.T) {
		if err := mockFS.WriteFile("/data/session.json", []byte("content"), 0600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		data, err := mockFS.ReadFile("/data/session.json")
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if string(data) != "content" {
			t.Errorf("unexpected content: %s", data)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := mockFS.ReadFile("/data/missing.json")
		if !os.IsNotExist(err) {
			t.Errorf("expected os.ErrNotExist, got: %v", err)
		}
	})

	t.Run("remove", func(t *testing.T) {
		mockFS.AddFile("/data/stale.json", []byte("x"))
		if err := mockFS.Remove("/data/stale.json"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if err := mockFS.Remove("/data/stale.json"); !os.IsNotExist(err) {
			t.Errorf("expected os.ErrNotExist on second remove, got: %v", err)
		}
	})

	t.Run("injected failures", func(t *testing.T) {
		failing := NewMockFileSystem()
		failing.SetWriteFileResultFunc(func(string) error {
			return os.ErrPermission
		})
		if err := failing.WriteFile("/data/x", nil, 0600); !os.IsPermission(err) {
			t.Errorf("expected os.ErrPermission, got: %v", err)
		}
	})
}
