package blocks

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for a negative offset, length, size or
	// block index.
	ErrInvalidArgument = errors.New("blocks: invalid argument")

	// ErrPathTooLong is returned when a block path would reach MaxPathLength.
	ErrPathTooLong = errors.New("blocks: path too long")

	// ErrIO wraps every failure of the underlying file system other than a
	// missing block file.
	ErrIO = errors.New("blocks: i/o error")

	// ErrLockUnsupported is returned by Lock when the storage driver cannot
	// hold advisory locks.
	ErrLockUnsupported = errors.New("blocks: locking not supported by storage driver")

	// ErrLocked is returned by TryLock when another holder has the lock.
	ErrLocked = errors.New("blocks: virtual file is locked")
)

// ioError wraps err so that it matches both ErrIO and the original cause.
func ioError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}
