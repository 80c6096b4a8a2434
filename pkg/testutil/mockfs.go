package testutil

import (
	"io/fs"

	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/stretchr/testify/mock"
)

// MockFS implements types.FS for failure injection
type MockFS struct {
	mock.Mock
}

var _ types.FS = (*MockFS)(nil)

func (m *MockFS) Stat(name string) (fs.FileInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fs.FileInfo), args.Error(1)
}

func (m *MockFS) Lstat(name string) (fs.FileInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fs.FileInfo), args.Error(1)
}

func (m *MockFS) Readlink(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

func (m *MockFS) ReadFile(name string) ([]byte, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	args := m.Called(path, perm)
	return args.Error(0)
}

func (m *MockFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	args := m.Called(name, data, perm)
	return args.Error(0)
}

func (m *MockFS) AppendFile(name string, data []byte, perm fs.FileMode) error {
	args := m.Called(name, data, perm)
	return args.Error(0)
}

func (m *MockFS) Symlink(oldname, newname string) error {
	args := m.Called(oldname, newname)
	return args.Error(0)
}

func (m *MockFS) Rename(oldpath, newpath string) error {
	args := m.Called(oldpath, newpath)
	return args.Error(0)
}

func (m *MockFS) Remove(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockFS) RemoveAll(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockFS) Copy(src, dst string) error {
	args := m.Called(src, dst)
	return args.Error(0)
}
