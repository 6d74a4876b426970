package blocks

import "log/slog"

// WriteAt writes p to the virtual file at off and returns len(p).
//
// A span that covers a whole block replaces the block file. Any other span
// reads the block, patches it and writes all BlockSize bytes back, so a
// partially written block is always stored at full size.
//
// On error WriteAt returns 0. Blocks written before the failing one stay
// written.
func (f *File) WriteAt(p []byte, off int64) (int, error) {
	if err := f.checkOpen(); err != nil {
		return 0, err
	}

	spans, err := Spans(off, int64(len(p)))

	if err != nil {
		return 0, err
	}

	var n int64

	for _, span := range spans {
		if err := f.writeSpan(span, p[n:n+span.Length]); err != nil {
			return 0, err
		}

		n += span.Length
	}

	return len(p), nil
}

func (f *File) Write(data []byte, offset int64) (int, error) {
	return f.WriteAt(data, offset)
}

func (f *File) writeSpan(span Span, src []byte) error {
	if span.Full() {
		return f.writeBlock(span.Index, src)
	}

	existing, err := f.readBlock(span.Index)

	if err != nil {
		return err
	}

	block := make([]byte, BlockSize)
	copy(block, existing)
	copy(block[span.Offset:], src)

	return f.writeBlock(span.Index, block)
}

// writeBlock replaces block index with data.
func (f *File) writeBlock(index int64, data []byte) error {
	path, err := BlockPath(f.name, index)

	if err != nil {
		return err
	}

	if err := f.fs.storage.WriteFile(path, data, blockFilePerm); err != nil {
		slog.Error("Failed to write block", "path", path, "error", err)
		return ioError("write", path, err)
	}

	return nil
}
