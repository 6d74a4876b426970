package vfs

import (
	"errors"
	"io/fs"
	"os"

	"github.com/psanford/sqlite3vfs"
)

// osFile implements sqlite3vfs.File over a plain file on the local disk.
type osFile struct {
	deleteOnClose bool
	file          *os.File
	lock          *fileLock
	name          string
	vfs           *VFS
}

func (f *osFile) Close() error {
	f.lock.Close()

	if err := f.file.Close(); err != nil {
		f.vfs.logger.Error("Failed to close file", "op", "CLOSE", "file", f.name, "error", err)
		return err
	}

	if f.deleteOnClose {
		if err := os.Remove(f.name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			f.vfs.logger.Error("Failed to delete file on close", "op", "CLOSE", "file", f.name, "error", err)
			return err
		}
	}

	f.vfs.logger.Info("File closed", "op", "CLOSE", "file", f.name, "deleted", f.deleteOnClose)

	return nil
}

// ReadAt returns io.EOF on a short read; sqlite3vfs zero fills the rest.
func (f *osFile) ReadAt(p []byte, off int64) (int, error) {
	n, err := f.file.ReadAt(p, off)

	f.vfs.logger.Debug("Read", "op", "READ", "file", f.name, "offset", off, "length", len(p), "read", n)

	return n, err
}

func (f *osFile) WriteAt(p []byte, off int64) (int, error) {
	n, err := f.file.WriteAt(p, off)

	if err != nil {
		f.vfs.logger.Error("Failed to write", "op", "WRITE", "file", f.name, "offset", off, "length", len(p), "error", err)
		return n, err
	}

	f.vfs.logger.Debug("Write", "op", "WRITE", "file", f.name, "offset", off, "length", len(p))

	return n, nil
}

func (f *osFile) Truncate(size int64) error {
	if err := f.file.Truncate(size); err != nil {
		f.vfs.logger.Error("Failed to truncate", "op", "TRUNCATE", "file", f.name, "size", size, "error", err)
		return err
	}

	f.vfs.logger.Info("Truncated", "op", "TRUNCATE", "file", f.name, "size", size)

	return nil
}

func (f *osFile) Sync(flag sqlite3vfs.SyncType) error {
	err := f.file.Sync()

	if err != nil {
		f.vfs.logger.Error("Failed to sync", "op", "SYNC", "file", f.name, "error", err)
		return err
	}

	f.vfs.logger.Debug("Sync", "op", "SYNC", "file", f.name, "flags", int(flag))

	return nil
}

func (f *osFile) FileSize() (int64, error) {
	info, err := f.file.Stat()

	if err != nil {
		f.vfs.logger.Error("Failed to get file size", "op", "FILESIZE", "file", f.name, "error", err)
		return 0, err
	}

	f.vfs.logger.Debug("File size", "op", "FILESIZE", "file", f.name, "size", info.Size())

	return info.Size(), nil
}

func (f *osFile) Lock(level sqlite3vfs.LockType) error {
	err := f.lock.Lock(level)

	f.vfs.logger.Debug("Lock", "op", "LOCK", "file", f.name, "level", int(level), "busy", err != nil)

	return err
}

func (f *osFile) Unlock(level sqlite3vfs.LockType) error {
	f.vfs.logger.Debug("Unlock", "op", "UNLOCK", "file", f.name, "level", int(level))

	return f.lock.Unlock(level)
}

func (f *osFile) CheckReservedLock() (bool, error) {
	reserved, err := f.lock.CheckReservedLock()

	f.vfs.logger.Debug("Reserved lock checked", "op", "CHECK_RESERVED", "file", f.name, "reserved", reserved)

	return reserved, err
}

func (f *osFile) SectorSize() int64 {
	return SectorSize
}

func (f *osFile) DeviceCharacteristics() sqlite3vfs.DeviceCharacteristic {
	return 0
}
