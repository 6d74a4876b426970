package vfs

import (
	"github.com/litebase/blockfs/pkg/blocks"
	"github.com/psanford/sqlite3vfs"
)

// blockFile implements sqlite3vfs.File over a virtual block file. Writes go
// straight to storage, so Sync has nothing to flush.
type blockFile struct {
	deleteOnClose bool
	file          *blocks.File
	lock          *fileLock
	vfs           *VFS
}

func (f *blockFile) Close() error {
	name := f.file.Name()

	if f.lock != nil {
		f.lock.Close()
	}

	if err := f.file.Close(); err != nil {
		f.vfs.logger.Error("Failed to close file", "op", "CLOSE", "file", name, "error", err)
		return err
	}

	if f.deleteOnClose {
		if err := f.vfs.fileSystem.Delete(name); err != nil {
			f.vfs.logger.Error("Failed to delete file on close", "op", "CLOSE", "file", name, "error", err)
			return err
		}
	}

	f.vfs.logger.Info("File closed", "op", "CLOSE", "file", name, "deleted", f.deleteOnClose)

	return nil
}

func (f *blockFile) ReadAt(p []byte, off int64) (int, error) {
	n, err := f.file.ReadAt(p, off)

	if err != nil {
		f.vfs.logger.Error("Failed to read", "op", "READ", "file", f.file.Name(), "offset", off, "length", len(p), "error", err)
		return n, err
	}

	f.vfs.logger.Debug("Read", "op", "READ", "file", f.file.Name(), "offset", off, "length", len(p))

	return n, nil
}

func (f *blockFile) WriteAt(p []byte, off int64) (int, error) {
	n, err := f.file.WriteAt(p, off)

	if err != nil {
		f.vfs.logger.Error("Failed to write", "op", "WRITE", "file", f.file.Name(), "offset", off, "length", len(p), "error", err)
		return n, err
	}

	f.vfs.logger.Debug("Write", "op", "WRITE", "file", f.file.Name(), "offset", off, "length", len(p))

	return n, nil
}

func (f *blockFile) Truncate(size int64) error {
	if err := f.file.Truncate(size); err != nil {
		f.vfs.logger.Error("Failed to truncate", "op", "TRUNCATE", "file", f.file.Name(), "size", size, "error", err)
		return err
	}

	f.vfs.logger.Info("Truncated", "op", "TRUNCATE", "file", f.file.Name(), "size", size)

	return nil
}

func (f *blockFile) Sync(flag sqlite3vfs.SyncType) error {
	f.vfs.logger.Debug("Sync", "op", "SYNC", "file", f.file.Name(), "flags", int(flag))

	return nil
}

func (f *blockFile) FileSize() (int64, error) {
	size, err := f.file.Size()

	if err != nil {
		f.vfs.logger.Error("Failed to get file size", "op", "FILESIZE", "file", f.file.Name(), "error", err)
		return 0, err
	}

	f.vfs.logger.Debug("File size", "op", "FILESIZE", "file", f.file.Name(), "size", size)

	return size, nil
}

func (f *blockFile) Lock(level sqlite3vfs.LockType) error {
	var err error

	if f.lock != nil {
		err = f.lock.Lock(level)
	}

	f.vfs.logger.Debug("Lock", "op", "LOCK", "file", f.file.Name(), "level", int(level), "busy", err != nil)

	return err
}

func (f *blockFile) Unlock(level sqlite3vfs.LockType) error {
	var err error

	if f.lock != nil {
		err = f.lock.Unlock(level)
	}

	f.vfs.logger.Debug("Unlock", "op", "UNLOCK", "file", f.file.Name(), "level", int(level))

	return err
}

func (f *blockFile) CheckReservedLock() (bool, error) {
	if f.lock == nil {
		f.vfs.logger.Debug("Reserved lock checked", "op", "CHECK_RESERVED", "file", f.file.Name(), "reserved", false)
		return false, nil
	}

	reserved, err := f.lock.CheckReservedLock()

	f.vfs.logger.Debug("Reserved lock checked", "op", "CHECK_RESERVED", "file", f.file.Name(), "reserved", reserved)

	return reserved, err
}

func (f *blockFile) SectorSize() int64 {
	f.vfs.logger.Debug("Sector size", "op", "SECTOR_SIZE", "file", f.file.Name(), "size", SectorSize)

	return SectorSize
}

func (f *blockFile) DeviceCharacteristics() sqlite3vfs.DeviceCharacteristic {
	characteristics := sqlite3vfs.IocapAtomic4K | sqlite3vfs.IocapSafeAppend

	f.vfs.logger.Debug("Device characteristics", "op", "DEVICE_CHARS", "file", f.file.Name(), "flags", int(characteristics))

	return characteristics
}
