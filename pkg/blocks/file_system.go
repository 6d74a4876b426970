package blocks

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/litebase/blockfs/pkg/storage"
)

// FileSystem opens virtual files whose blocks are stored through a
// storage.FileSystem. It keeps no state of its own; two FileSystem values over
// the same storage see the same files.
type FileSystem struct {
	storage *storage.FileSystem
}

func NewFileSystem(storage *storage.FileSystem) *FileSystem {
	return &FileSystem{
		storage: storage,
	}
}

// Delete removes the virtual file name: its block directory with everything
// in it, and a plain file with the same name if one exists. Deleting a file
// that does not exist is not an error.
func (bfs *FileSystem) Delete(name string) error {
	dir := BlockDir(name)

	if err := bfs.storage.RemoveAll(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Failed to remove block directory", "path", dir, "error", err)
		return ioError("remove", dir, err)
	}

	if err := bfs.storage.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Failed to remove file", "path", name, "error", err)
		return ioError("remove", name, err)
	}

	return nil
}

// Exists reports whether the block directory of name exists.
func (bfs *FileSystem) Exists(name string) (bool, error) {
	_, err := bfs.storage.Stat(BlockDir(name))

	if err == nil {
		return true, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, ioError("stat", BlockDir(name), err)
}

// Open returns a handle for the virtual file name, creating its block
// directory when it does not exist yet. Opening the same name again is
// harmless.
func (bfs *FileSystem) Open(name string) (*File, error) {
	if err := bfs.ensureBlockDir(name); err != nil {
		return nil, err
	}

	return &File{
		fs:   bfs,
		name: name,
	}, nil
}

// Rename moves the virtual file oldname, with all of its blocks, to newname.
func (bfs *FileSystem) Rename(oldname, newname string) error {
	oldDir, newDir := BlockDir(oldname), BlockDir(newname)

	if len(newDir) >= MaxPathLength {
		return fmt.Errorf("%w: %q", ErrPathTooLong, newDir)
	}

	if err := bfs.storage.Rename(oldDir, newDir); err != nil {
		slog.Error("Failed to rename block directory", "from", oldDir, "to", newDir, "error", err)
		return ioError("rename", oldDir, err)
	}

	return nil
}

// Storage returns the file system the blocks are stored in.
func (bfs *FileSystem) Storage() *storage.FileSystem {
	return bfs.storage
}

func (bfs *FileSystem) ensureBlockDir(name string) error {
	dir := BlockDir(name)

	if len(dir) >= MaxPathLength {
		return fmt.Errorf("%w: %q", ErrPathTooLong, dir)
	}

	err := bfs.storage.Mkdir(dir, blockDirPerm)

	if err == nil || errors.Is(err, fs.ErrExist) {
		return nil
	}

	slog.Error("Failed to create block directory", "path", dir, "error", err)

	return ioError("mkdir", dir, err)
}
