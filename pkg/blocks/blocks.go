/*
Package blocks presents a byte addressable virtual file that is stored as a
directory of fixed size block files.

A virtual file named "data.db" is kept in the directory "data.db.blocks". Block
n of the file lives in "data.db.blocks/block_NNNNNN", where NNNNNN is n as a six
digit, zero padded decimal number. A block file holds at most BlockSize bytes.
A missing block file reads as BlockSize zero bytes, and a short block file
reads as its contents followed by zeros.

The size of a virtual file is not stored anywhere. It is derived from the block
files that exist: the end of the highest addressed byte they hold.

Every operation is synchronous and touches one block file at a time. There is
no locking between callers; see FileSystem.Lock for the opt-in advisory lock.
*/
package blocks

const (
	// BlockSize is the size of a block in bytes.
	BlockSize int64 = 4096

	// MaxPathLength is the length, in bytes, that a block path must stay
	// below. It applies to the path relative to the storage root; a local
	// driver with a data path adds that prefix on disk.
	MaxPathLength = 1024

	// BlockDirSuffix is appended to a virtual file name to name its block
	// directory.
	BlockDirSuffix = ".blocks"

	blockFilePrefix = "block_"
	blockFileDigits = 6
	lockFileName    = ".lock"

	blockDirPerm  = 0755
	blockFilePerm = 0644
)
