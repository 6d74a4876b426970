// Package vfs exposes virtual files to SQLite as a VFS. Depending on its
// backend a VFS stores each database, journal and temporary file either as a
// block directory through pkg/blocks or as a plain file on the local disk.
package vfs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/litebase/blockfs/pkg/blocks"
	"github.com/litebase/blockfs/pkg/config"
	"github.com/psanford/sqlite3vfs"
)

// Backend selects where a VFS keeps its files.
type Backend string

const (
	// BackendBlocks stores every file as a block directory.
	BackendBlocks Backend = config.BackendBlocks

	// BackendDefault stores every file as a plain file on the local disk.
	BackendDefault Backend = config.BackendDefault
)

// SectorSize is the sector size reported for block backed files.
const SectorSize = blocks.BlockSize

// ErrAlreadyRegistered is returned when a name is taken by another VFS.
// SQLite keeps the first VFS registered under a name for the life of the
// process.
var ErrAlreadyRegistered = errors.New("vfs: name already registered")

var (
	vfsMutex = &sync.Mutex{}
	vfsMap   = make(map[string]*VFS)
)

type Options struct {
	Backend Backend

	// FileSystem holds the block files. Required for BackendBlocks.
	FileSystem *blocks.FileSystem

	// Locking enables SQLite's lock protocol between connections of this
	// process. Files of the default backend are always locked. Without it,
	// block backed files accept every lock request.
	Locking bool

	// Logger receives a record for every VFS and file operation. Nothing is
	// logged when it is nil.
	Logger *slog.Logger
}

// VFS implements sqlite3vfs.VFS.
type VFS struct {
	backend    Backend
	fileSystem *blocks.FileSystem
	locks      *lockTable
	logger     *slog.Logger
}

// New returns a VFS for opts. It must be registered before SQLite can use it.
func New(opts Options) (*VFS, error) {
	switch opts.Backend {
	case BackendBlocks:
		if opts.FileSystem == nil {
			return nil, errors.New("vfs: the blocks backend requires a file system")
		}
	case BackendDefault:
	default:
		return nil, fmt.Errorf("vfs: unknown backend %q", opts.Backend)
	}

	logger := opts.Logger

	if logger == nil {
		logger = discardLogger()
	}

	v := &VFS{
		backend:    opts.Backend,
		fileSystem: opts.FileSystem,
		logger:     logger,
	}

	if opts.Locking || opts.Backend == BackendDefault {
		v.locks = newLockTable()
	}

	return v, nil
}

// Register makes v available to SQLite under name. Registering the same VFS
// again is a no-op; registering a different VFS under a taken name returns
// ErrAlreadyRegistered.
func Register(name string, v *VFS) error {
	vfsMutex.Lock()
	defer vfsMutex.Unlock()

	if name == "" {
		return errors.New("vfs: name cannot be empty")
	}

	if registered, ok := vfsMap[name]; ok {
		if registered == v {
			return nil
		}

		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, name)
	}

	if err := sqlite3vfs.RegisterVFS(name, v); err != nil {
		slog.Error("Failed to register VFS", "name", name, "error", err)
		return err
	}

	vfsMap[name] = v

	return nil
}

// IsRegistered reports whether a VFS was registered under name.
func IsRegistered(name string) bool {
	vfsMutex.Lock()
	defer vfsMutex.Unlock()

	_, ok := vfsMap[name]

	return ok
}

func (v *VFS) Backend() Backend {
	return v.backend
}

func (v *VFS) Open(name string, flags sqlite3vfs.OpenFlag) (sqlite3vfs.File, sqlite3vfs.OpenFlag, error) {
	if name == "" {
		name = "temp_file_" + uuid.NewString()
	}

	var file sqlite3vfs.File
	var err error

	switch v.backend {
	case BackendBlocks:
		file, err = v.openBlockFile(name, flags)
	default:
		file, err = v.openOSFile(name, flags)
	}

	if err != nil {
		v.logger.Error("Failed to open file", "op", "OPEN", "file", name, "backend", v.backend, "error", err)
		return nil, 0, sqlite3vfs.CantOpenError
	}

	v.logger.Info("File opened", "op", "OPEN", "file", name, "backend", v.backend, "flags", int(flags))

	return file, flags, nil
}

func (v *VFS) openBlockFile(name string, flags sqlite3vfs.OpenFlag) (sqlite3vfs.File, error) {
	file, err := v.fileSystem.Open(name)

	if err != nil {
		return nil, err
	}

	return &blockFile{
		deleteOnClose: flags&sqlite3vfs.OpenDeleteOnClose != 0,
		file:          file,
		lock:          v.newFileLock(name),
		vfs:           v,
	}, nil
}

func (v *VFS) openOSFile(name string, flags sqlite3vfs.OpenFlag) (sqlite3vfs.File, error) {
	var fileFlags int

	if flags&sqlite3vfs.OpenExclusive != 0 {
		fileFlags |= os.O_EXCL
	}

	if flags&sqlite3vfs.OpenCreate != 0 {
		fileFlags |= os.O_CREATE
	}

	if flags&sqlite3vfs.OpenReadOnly != 0 {
		fileFlags |= os.O_RDONLY
	}

	if flags&sqlite3vfs.OpenReadWrite != 0 {
		fileFlags |= os.O_RDWR
	}

	f, err := os.OpenFile(name, fileFlags, 0644)

	if err != nil {
		return nil, err
	}

	return &osFile{
		deleteOnClose: flags&sqlite3vfs.OpenDeleteOnClose != 0,
		file:          f,
		lock:          v.newFileLock(name),
		name:          name,
		vfs:           v,
	}, nil
}

// Delete removes the file name. With the blocks backend this removes the
// block directory and any plain file of the same name.
func (v *VFS) Delete(name string, dirSync bool) error {
	var err error

	switch v.backend {
	case BackendBlocks:
		err = v.fileSystem.Delete(name)
	default:
		err = os.Remove(name)

		if errors.Is(err, fs.ErrNotExist) {
			err = nil
		}

		if err == nil && dirSync {
			err = syncDir(filepath.Dir(name))
		}
	}

	if err != nil {
		v.logger.Error("Failed to delete file", "op", "DELETE", "file", name, "error", err)
		return err
	}

	v.logger.Info("File deleted", "op", "DELETE", "file", name, "dir_sync", dirSync)

	return nil
}

// Access reports whether name exists. Files that exist are readable and
// writable.
func (v *VFS) Access(name string, flags sqlite3vfs.AccessFlag) (bool, error) {
	exists, err := v.exists(name)

	if err != nil {
		v.logger.Error("Failed to check access", "op", "ACCESS", "file", name, "error", err)
		return false, err
	}

	v.logger.Debug("Access checked", "op", "ACCESS", "file", name, "flags", int(flags), "granted", exists)

	return exists, nil
}

func (v *VFS) exists(name string) (bool, error) {
	if v.backend == BackendBlocks {
		exists, err := v.fileSystem.Exists(name)

		if err != nil || exists {
			return exists, err
		}

		_, err = v.fileSystem.Storage().Stat(name)

		if err == nil {
			return true, nil
		}

		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, err
	}

	_, err := os.Stat(name)

	if err == nil {
		return true, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// FullPathname returns name unchanged for the blocks backend, where the
// storage driver resolves paths, and the absolute path otherwise.
func (v *VFS) FullPathname(name string) string {
	path := name

	if v.backend == BackendDefault {
		if abs, err := filepath.Abs(name); err == nil {
			path = abs
		}
	}

	v.logger.Debug("Full path resolved", "op", "FULLPATH", "file", name, "path", path)

	return path
}

func (v *VFS) newFileLock(name string) *fileLock {
	if v.locks == nil {
		return nil
	}

	return v.locks.open(name)
}

func syncDir(path string) error {
	dir, err := os.Open(path)

	if err != nil {
		return err
	}

	defer dir.Close()

	return dir.Sync()
}
