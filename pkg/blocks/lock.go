package blocks

import (
	"errors"
	"log/slog"

	"github.com/alexflint/go-filemutex"
	"github.com/litebase/blockfs/pkg/storage"
)

// Lock is an exclusive advisory lock on a virtual file, held through a lock
// file in its block directory. Readers and writers that do not take the lock
// are not blocked by it.
type Lock struct {
	mutex *filemutex.FileMutex
	path  string
}

// Lock blocks until it holds the exclusive lock on the virtual file name. The
// lock is only available when blocks are stored on the local file system.
func (bfs *FileSystem) Lock(name string) (*Lock, error) {
	lock, err := bfs.newLock(name)

	if err != nil {
		return nil, err
	}

	if err := lock.mutex.Lock(); err != nil {
		lock.mutex.Close()
		return nil, ioError("lock", lock.path, err)
	}

	return lock, nil
}

// TryLock is like Lock but returns ErrLocked instead of waiting when the lock
// is held elsewhere.
func (bfs *FileSystem) TryLock(name string) (*Lock, error) {
	lock, err := bfs.newLock(name)

	if err != nil {
		return nil, err
	}

	if err := lock.mutex.TryLock(); err != nil {
		lock.mutex.Close()

		if errors.Is(err, filemutex.AlreadyLocked) {
			return nil, ErrLocked
		}

		return nil, ioError("lock", lock.path, err)
	}

	return lock, nil
}

func (bfs *FileSystem) newLock(name string) (*Lock, error) {
	driver, ok := bfs.storage.Driver().(*storage.LocalFileSystemDriver)

	if !ok {
		return nil, ErrLockUnsupported
	}

	if err := bfs.ensureBlockDir(name); err != nil {
		return nil, err
	}

	path := driver.Path(BlockDir(name) + "/" + lockFileName)

	mutex, err := filemutex.New(path)

	if err != nil {
		slog.Error("Failed to open lock file", "path", path, "error", err)
		return nil, ioError("open", path, err)
	}

	return &Lock{mutex: mutex, path: path}, nil
}

// Unlock releases the lock. The Lock must not be used afterwards.
func (l *Lock) Unlock() error {
	err := l.mutex.Unlock()

	if closeErr := l.mutex.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return ioError("unlock", l.path, err)
	}

	return nil
}
