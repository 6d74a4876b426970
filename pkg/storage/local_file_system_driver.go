package storage

import (
	"io/fs"
	"os"
	"strings"

	internalStorage "github.com/litebase/blockfs/internal/storage"
)

// LocalFileSystemDriver stores files on the local disk. Paths are used as
// given when no base path is set, otherwise they are resolved below it.
type LocalFileSystemDriver struct {
	basePath string
	sync     bool
}

// NewLocalFileSystemDriver creates a driver rooted at basePath. When sync is
// true every WriteFile is flushed to stable storage before it returns.
func NewLocalFileSystemDriver(basePath string, sync bool) *LocalFileSystemDriver {
	return &LocalFileSystemDriver{
		basePath: strings.TrimRight(basePath, "/"),
		sync:     sync,
	}
}

func (fs *LocalFileSystemDriver) Mkdir(path string, perm fs.FileMode) error {
	return os.Mkdir(fs.Path(path), perm)
}

func (fs *LocalFileSystemDriver) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(fs.Path(path), perm)
}

func (fs *LocalFileSystemDriver) Path(path string) string {
	if fs.basePath == "" {
		return path
	}

	var builder strings.Builder

	builder.Grow(len(fs.basePath) + 1 + len(path))
	builder.WriteString(fs.basePath)
	builder.WriteString("/")
	builder.WriteString(strings.TrimLeft(path, "/"))

	return builder.String()
}

func (fs *LocalFileSystemDriver) ReadDir(path string) ([]internalStorage.DirEntry, error) {
	entries, err := os.ReadDir(fs.Path(path))

	if err != nil {
		return nil, err
	}

	dirEntries := make([]internalStorage.DirEntry, 0, len(entries))

	for _, entry := range entries {
		info, err := entry.Info()

		if err != nil {
			// The entry was removed between the listing and the stat.
			if os.IsNotExist(err) {
				continue
			}

			return nil, err
		}

		dirEntries = append(dirEntries, internalStorage.NewDirEntry(
			entry.Name(),
			entry.IsDir(),
			info,
		))
	}

	return dirEntries, nil
}

func (fs *LocalFileSystemDriver) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(fs.Path(path))
}

func (fs *LocalFileSystemDriver) Remove(path string) error {
	return os.Remove(fs.Path(path))
}

func (fs *LocalFileSystemDriver) RemoveAll(path string) error {
	return os.RemoveAll(fs.Path(path))
}

func (fs *LocalFileSystemDriver) Rename(oldpath, newpath string) error {
	return os.Rename(fs.Path(oldpath), fs.Path(newpath))
}

func (fs *LocalFileSystemDriver) Stat(path string) (internalStorage.FileInfo, error) {
	info, err := os.Stat(fs.Path(path))

	if err != nil {
		return nil, err
	}

	return info, nil
}

// WriteFile replaces the contents of the file at path with data.
func (fs *LocalFileSystemDriver) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if !fs.sync {
		return os.WriteFile(fs.Path(path), data, perm)
	}

	file, err := os.OpenFile(fs.Path(path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)

	if err != nil {
		return err
	}

	_, err = file.Write(data)

	if err == nil {
		err = file.Sync()
	}

	if closeErr := file.Close(); err == nil {
		err = closeErr
	}

	return err
}
