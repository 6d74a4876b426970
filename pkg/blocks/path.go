package blocks

import (
	"fmt"
	"strconv"
	"strings"
)

// BlockDir returns the directory that holds the blocks of the virtual file
// name.
func BlockDir(name string) string {
	return name + BlockDirSuffix
}

// BlockPath returns the path of block index of the virtual file name,
// relative to the storage root. ErrPathTooLong is returned when that path
// reaches MaxPathLength.
func BlockPath(name string, index int64) (string, error) {
	if index < 0 {
		return "", fmt.Errorf("%w: block index %d", ErrInvalidArgument, index)
	}

	var builder strings.Builder

	dir := BlockDir(name)

	builder.Grow(len(dir) + 1 + len(blockFilePrefix) + blockFileDigits)
	builder.WriteString(dir)
	builder.WriteByte('/')
	builder.WriteString(BlockFileName(index))

	if builder.Len() >= MaxPathLength {
		return "", fmt.Errorf("%w: block %d of %q", ErrPathTooLong, index, name)
	}

	return builder.String(), nil
}

// BlockFileName returns the name of block index within its block directory.
func BlockFileName(index int64) string {
	return fmt.Sprintf("%s%0*d", blockFilePrefix, blockFileDigits, index)
}

// ParseBlockName returns the block index encoded in a block file name. Names
// that BlockFileName would not produce are rejected.
func ParseBlockName(name string) (int64, bool) {
	digits, ok := strings.CutPrefix(name, blockFilePrefix)

	if !ok || len(digits) < blockFileDigits {
		return 0, false
	}

	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}

	index, err := strconv.ParseInt(digits, 10, 64)

	if err != nil {
		return 0, false
	}

	// block_0000001 is not a name we write.
	if BlockFileName(index) != name {
		return 0, false
	}

	return index, true
}
