package blocks

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
)

// ReadAt reads len(p) bytes of the virtual file starting at off. Ranges that
// were never written, including anything past the end of the file, read as
// zeros, so ReadAt fills p completely unless it returns an error.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if err := f.checkOpen(); err != nil {
		return 0, err
	}

	spans, err := Spans(off, int64(len(p)))

	if err != nil {
		return 0, err
	}

	var n int64

	for _, span := range spans {
		if err := f.readSpan(span, p[n:n+span.Length]); err != nil {
			return 0, err
		}

		n += span.Length
	}

	return len(p), nil
}

// Read returns length bytes of the virtual file starting at offset.
func (f *File) Read(length int, offset int64) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidArgument, length)
	}

	data := make([]byte, length)

	if _, err := f.ReadAt(data, offset); err != nil {
		return nil, err
	}

	return data, nil
}

func (f *File) readSpan(span Span, dst []byte) error {
	data, err := f.readBlock(span.Index)

	if err != nil {
		return err
	}

	copied := 0

	if span.Offset < int64(len(data)) {
		copied = copy(dst, data[span.Offset:])
	}

	clear(dst[copied:])

	return nil
}

// readBlock returns the stored contents of block index. A missing block is
// returned as nil with no error.
func (f *File) readBlock(index int64) ([]byte, error) {
	path, err := BlockPath(f.name, index)

	if err != nil {
		return nil, err
	}

	data, err := f.fs.storage.ReadFile(path)

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		slog.Error("Failed to read block", "path", path, "error", err)

		return nil, ioError("read", path, err)
	}

	if int64(len(data)) > BlockSize {
		data = data[:BlockSize]
	}

	return data, nil
}
