package blocks

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
)

// Truncate changes the logical size of the virtual file to size.
//
// Block files past the new end are removed. When size does not fall on a
// block boundary the block that holds the new last byte is rewritten with
// exactly size % BlockSize bytes, zero extended if it was shorter or missing.
// This is the only way a block file ends up shorter than BlockSize.
// Truncating to the current size, or truncating twice, leaves the same
// blocks behind.
func (f *File) Truncate(size int64) error {
	if err := f.checkOpen(); err != nil {
		return err
	}

	if size < 0 {
		return fmt.Errorf("%w: size %d", ErrInvalidArgument, size)
	}

	entries, err := f.listBlocks()

	if err != nil {
		return err
	}

	lastBlock := size / BlockSize

	if size%BlockSize != 0 {
		lastBlock++
	}

	for _, entry := range entries {
		if entry.Index < lastBlock {
			continue
		}

		if err := f.removeBlock(entry.Index); err != nil {
			return err
		}
	}

	tail := size % BlockSize

	if tail == 0 {
		return nil
	}

	index := (size - 1) / BlockSize

	existing, err := f.readBlock(index)

	if err != nil {
		return err
	}

	block := make([]byte, tail)
	copy(block, existing)

	return f.writeBlock(index, block)
}

func (f *File) removeBlock(index int64) error {
	path, err := BlockPath(f.name, index)

	if err != nil {
		return err
	}

	err = f.fs.storage.Remove(path)

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Failed to remove block", "path", path, "error", err)
		return ioError("remove", path, err)
	}

	return nil
}
