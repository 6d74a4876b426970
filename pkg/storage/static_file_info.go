package storage

import (
	"io/fs"
	"strings"
	"time"
)

// StaticFileInfo implements fs.FileInfo for drivers that have no os.FileInfo
// to hand back, such as object storage. Names ending in a slash are reported
// as directories.
type StaticFileInfo struct {
	StaticName    string
	StaticSize    int64
	StaticModTime time.Time
}

func NewStaticFileInfo(name string, size int64, modTime time.Time) StaticFileInfo {
	return StaticFileInfo{
		StaticName:    name,
		StaticSize:    size,
		StaticModTime: modTime,
	}
}

func (fi StaticFileInfo) IsDir() bool {
	return strings.HasSuffix(fi.StaticName, "/")
}

func (fi StaticFileInfo) Name() string {
	return strings.TrimSuffix(fi.StaticName, "/")
}

func (fi StaticFileInfo) Size() int64 {
	return fi.StaticSize
}

func (fi StaticFileInfo) Mode() fs.FileMode {
	if fi.IsDir() {
		return fs.ModeDir | 0750
	}

	return 0600
}

func (fi StaticFileInfo) ModTime() time.Time {
	return fi.StaticModTime
}

func (fi StaticFileInfo) Sys() any {
	return nil
}
