package fs

import (
	"os"
	"time"
)

// MockFileSystem is an in-memory implementation of FileSystemAPI for tests
type MockFileSystem struct {
	files           map[string][]byte
	dirs            map[string]bool
	readFileResult  func(string) ([]byte, error)
	writeFileResult func(string) error
}

// NewMockFileSystem creates a new mock file system
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (fs *MockFileSystem) ReadFile(filename string) ([]byte, error) {
	if fs.readFileResult != nil {
		return fs.readFileResult(filename)
	}
	if content, exists := fs.files[filename]; exists {
		return content, nil
	}
	return nil, os.ErrNotExist
}

func (fs *MockFileSystem) WriteFile(filename string, data []byte, perm os.FileMode) error {
	if fs.writeFileResult != nil {
		if err := fs.writeFileResult(filename); err != nil {
			return err
		}
	}
	fs.files[filename] = data
	return nil
}

func (fs *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	fs.dirs[path] = true
	return nil
}

func (fs *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if content, exists := fs.files[name]; exists {
		return &mockFileInfo{name: name, isDir: false, size: int64(len(content))}, nil
	}
	if _, exists := fs.dirs[name]; exists {
		return &mockFileInfo{name: name, isDir: true, size: 0}, nil
	}
	return nil, os.ErrNotExist
}

func (fs *MockFileSystem) Remove(name string) error {
	if _, exists := fs.files[name]; !exists {
		if _, dirExists := fs.dirs[name]; !dirExists {
			return os.ErrNotExist
		}
	}
	delete(fs.files, name)
	delete(fs.dirs, name)
	return nil
}

// Helper methods for testing

func (fs *MockFileSystem) AddFile(filename string, content []byte) {
	fs.files[filename] = content
}

// SetReadFileResultFunc sets a custom function to handle ReadFile calls
func (fs *MockFileSystem) SetReadFileResultFunc(fn func(string) ([]byte, error)) {
	fs.readFileResult = fn
}

// SetWriteFileResultFunc sets a custom function to fail WriteFile calls
func (fs *MockFileSystem) SetWriteFileResultFunc(fn func(string) error) {
	fs.writeFileResult = fn
}

// mockFileInfo implements os.FileInfo for testing
type mockFileInfo struct {
	name  string
	isDir bool
	size  int64
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return 0644 }
func (m *mockFileInfo) ModTime() time.Time { return time.Now() }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }
