package storage

// DirEntry is a single entry of a directory listing returned by a file system
// driver. Drivers fill in the file info so callers can size entries without a
// second round trip per entry.
type DirEntry struct {
	info  FileInfo
	isDir bool
	name  string
}

func NewDirEntry(name string, isDir bool, info FileInfo) DirEntry {
	return DirEntry{
		info:  info,
		isDir: isDir,
		name:  name,
	}
}

func (d DirEntry) Info() FileInfo {
	return d.info
}

func (d DirEntry) IsDir() bool {
	return d.isDir
}

func (d DirEntry) Name() string {
	return d.name
}

// Size returns the size of the entry, or zero when the driver did not report
// file info for it.
func (d DirEntry) Size() int64 {
	if d.info == nil {
		return 0
	}

	return d.info.Size()
}
