package storage

import (
	"io/fs"

	internalStorage "github.com/litebase/blockfs/internal/storage"
)

// The FileSystem struct is used to abstract the underlying file system
// implementation. This allows the block layer to store its block files on a
// local disk or in an object storage bucket without knowing which.
//
// FileSystem holds no per-file state and may be shared by any number of
// goroutines. Operations on the same path are not serialized.
type FileSystem struct {
	driver FileSystemDriver
}

// The FileSystemDriver interface defines the methods that must be implemented
// by a file system driver. Missing paths are reported with errors that match
// fs.ErrNotExist, existing directories on Mkdir with fs.ErrExist.
type FileSystemDriver interface {
	Mkdir(path string, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(path string) ([]internalStorage.DirEntry, error)
	ReadFile(path string) ([]byte, error)
	Remove(path string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
	Stat(path string) (internalStorage.FileInfo, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
}

func NewFileSystem(driver FileSystemDriver) *FileSystem {
	return &FileSystem{
		driver: driver,
	}
}

func (fs *FileSystem) Driver() FileSystemDriver {
	return fs.driver
}

func (fs *FileSystem) Mkdir(path string, perm fs.FileMode) error {
	return fs.driver.Mkdir(path, perm)
}

func (fs *FileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return fs.driver.MkdirAll(path, perm)
}

func (fs *FileSystem) ReadDir(path string) ([]internalStorage.DirEntry, error) {
	return fs.driver.ReadDir(path)
}

func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	return fs.driver.ReadFile(path)
}

func (fs *FileSystem) Remove(path string) error {
	return fs.driver.Remove(path)
}

func (fs *FileSystem) RemoveAll(path string) error {
	return fs.driver.RemoveAll(path)
}

func (fs *FileSystem) Rename(oldpath, newpath string) error {
	return fs.driver.Rename(oldpath, newpath)
}

func (fs *FileSystem) Stat(path string) (internalStorage.FileInfo, error) {
	return fs.driver.Stat(path)
}

func (fs *FileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return fs.driver.WriteFile(path, data, perm)
}
