package blocks

import (
	"os"
	"sync/atomic"
)

// File is an open virtual file. It holds only the name of the file; every
// call resolves block paths again and goes straight to storage, so data
// written through one File is visible to every other File with the same name.
//
// File does not serialize its callers. Two concurrent writes that touch the
// same block may lose one of the updates; callers that write concurrently
// must hold the lock returned by FileSystem.Lock.
type File struct {
	closed atomic.Bool
	fs     *FileSystem
	name   string
}

// Close releases the handle. Every earlier write is already in storage, so
// there is nothing to flush. Closing twice is not an error.
func (f *File) Close() error {
	f.closed.Store(true)

	return nil
}

func (f *File) Name() string {
	return f.name
}

func (f *File) checkOpen() error {
	if f.closed.Load() {
		return os.ErrClosed
	}

	return nil
}
