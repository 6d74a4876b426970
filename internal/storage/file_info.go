package storage

import "time"

// FileInfo is the subset of fs.FileInfo that every driver can report. An
// *os.File stat result satisfies it as is.
type FileInfo interface {
	IsDir() bool
	ModTime() time.Time
	Name() string
	Size() int64
}
