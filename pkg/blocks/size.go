package blocks

import (
	"cmp"
	"errors"
	"io/fs"
	"log/slog"

	"golang.org/x/exp/slices"
)

// BlockInfo describes a block file that exists.
type BlockInfo struct {
	Index int64
	Size  int64
}

// Size returns the logical size of the virtual file: the largest
// index*BlockSize + length over the block files that exist, or 0 when there
// are none. It is computed from a single listing of the block directory on
// every call.
func (f *File) Size() (int64, error) {
	if err := f.checkOpen(); err != nil {
		return 0, err
	}

	blocks, err := f.listBlocks()

	if err != nil {
		return 0, err
	}

	var size int64

	for _, block := range blocks {
		size = max(size, block.Index*BlockSize+min(block.Size, BlockSize))
	}

	return size, nil
}

// Blocks returns the block files of the virtual file ordered by index.
func (f *File) Blocks() ([]BlockInfo, error) {
	if err := f.checkOpen(); err != nil {
		return nil, err
	}

	return f.listBlocks()
}

// listBlocks reads the block directory once. Entries that are not block
// files are skipped.
func (f *File) listBlocks() ([]BlockInfo, error) {
	dir := BlockDir(f.name)

	dirEntries, err := f.fs.storage.ReadDir(dir)

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		slog.Error("Failed to list block directory", "path", dir, "error", err)

		return nil, ioError("readdir", dir, err)
	}

	entries := make([]BlockInfo, 0, len(dirEntries))

	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}

		index, ok := ParseBlockName(dirEntry.Name())

		if !ok {
			continue
		}

		entries = append(entries, BlockInfo{Index: index, Size: dirEntry.Size()})
	}

	slices.SortFunc(entries, func(a, b BlockInfo) int {
		return cmp.Compare(a.Index, b.Index)
	})

	return entries, nil
}
