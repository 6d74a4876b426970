package blocks_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/litebase/blockfs/internal/test"
	"github.com/litebase/blockfs/pkg/blocks"
	"github.com/litebase/blockfs/pkg/storage"
)

// fileSystems returns a block file system for every storage driver.
func fileSystems(t *testing.T) map[string]*blocks.FileSystem {
	objectStorage, _ := test.ObjectFileSystem(t)

	return map[string]*blocks.FileSystem{
		"local":  test.BlockFileSystem(t),
		"object": blocks.NewFileSystem(objectStorage),
	}
}

func openFile(t *testing.T, bfs *blocks.FileSystem, name string) *blocks.File {
	t.Helper()

	file, err := bfs.Open(name)

	if err != nil {
		t.Fatalf("Open(%q) returned an error: %v", name, err)
	}

	t.Cleanup(func() { file.Close() })

	return file
}

func fileSize(t *testing.T, file *blocks.File) int64 {
	t.Helper()

	size, err := file.Size()

	if err != nil {
		t.Fatalf("Size() returned an error: %v", err)
	}

	return size
}

func readAt(t *testing.T, file *blocks.File, length int, offset int64) []byte {
	t.Helper()

	data := make([]byte, length)

	for i := range data {
		data[i] = 0xff
	}

	n, err := file.ReadAt(data, offset)

	if err != nil {
		t.Fatalf("ReadAt(%d, %d) returned an error: %v", length, offset, err)
	}

	if n != length {
		t.Fatalf("ReadAt(%d, %d) read %d bytes", length, offset, n)
	}

	return data
}

func writeAt(t *testing.T, file *blocks.File, data []byte, offset int64) {
	t.Helper()

	n, err := file.WriteAt(data, offset)

	if err != nil {
		t.Fatalf("WriteAt(%d, %d) returned an error: %v", len(data), offset, err)
	}

	if n != len(data) {
		t.Fatalf("WriteAt(%d, %d) wrote %d bytes", len(data), offset, n)
	}
}

func pattern(length int, seed byte) []byte {
	data := make([]byte, length)

	for i := range data {
		data[i] = seed + byte(i%251)
	}

	return data
}

func TestFile(t *testing.T) {
	for driver, bfs := range fileSystems(t) {
		t.Run(driver, func(t *testing.T) {
			t.Run("NewFileIsEmpty", func(t *testing.T) {
				file := openFile(t, bfs, "empty.db")

				if size := fileSize(t, file); size != 0 {
					t.Errorf("Size() = %d, want 0", size)
				}

				if data := readAt(t, file, 100, 0); !bytes.Equal(data, make([]byte, 100)) {
					t.Error("ReadAt() of a new file did not return zeros")
				}
			})

			t.Run("ReadPastEndIsZero", func(t *testing.T) {
				file := openFile(t, bfs, "past-end.db")

				writeAt(t, file, []byte("abc"), 0)

				if data := readAt(t, file, 10, 8000); !bytes.Equal(data, make([]byte, 10)) {
					t.Errorf("ReadAt() past the end = %v, want zeros", data)
				}

				data := readAt(t, file, 6, 0)

				if !bytes.Equal(data, []byte{'a', 'b', 'c', 0, 0, 0}) {
					t.Errorf("ReadAt() = %v, want abc followed by zeros", data)
				}
			})

			t.Run("SmallWrite", func(t *testing.T) {
				file := openFile(t, bfs, "hello.db")

				n, err := file.WriteAt([]byte("Hello, World!"), 0)

				if err != nil || n != 13 {
					t.Fatalf("WriteAt() = %d, %v, want 13, nil", n, err)
				}

				if data := readAt(t, file, 13, 0); string(data) != "Hello, World!" {
					t.Errorf("ReadAt() = %q, want %q", data, "Hello, World!")
				}

				if size := fileSize(t, file); size != blocks.BlockSize {
					t.Errorf("Size() = %d, want %d", size, blocks.BlockSize)
				}
			})

			t.Run("RoundTripAcrossBlocks", func(t *testing.T) {
				file := openFile(t, bfs, "round-trip.db")
				data := pattern(8192, 1)

				writeAt(t, file, data, 0)

				if got := readAt(t, file, 8192, 0); !bytes.Equal(got, data) {
					t.Error("ReadAt() did not return the written data")
				}

				writeAt(t, file, []byte("WXYZ"), 4094)

				if got := readAt(t, file, 4, 4094); string(got) != "WXYZ" {
					t.Errorf("ReadAt() across a boundary = %q, want %q", got, "WXYZ")
				}

				// Bytes around the patched range are untouched.
				if got := readAt(t, file, 10, 4084); !bytes.Equal(got, data[4084:4094]) {
					t.Error("ReadAt() before the patch changed")
				}

				if got := readAt(t, file, 10, 4098); !bytes.Equal(got, data[4098:4108]) {
					t.Error("ReadAt() after the patch changed")
				}

				if size := fileSize(t, file); size != 8192 {
					t.Errorf("Size() = %d, want 8192", size)
				}
			})

			t.Run("SparseWrites", func(t *testing.T) {
				file := openFile(t, bfs, "sparse.db")

				writeAt(t, file, pattern(100, 1), 0)
				writeAt(t, file, pattern(200, 7), 5000)

				if got := readAt(t, file, 4, 104); !bytes.Equal(got, make([]byte, 4)) {
					t.Errorf("ReadAt() of a gap = %v, want zeros", got)
				}

				if got := readAt(t, file, 200, 5000); !bytes.Equal(got, pattern(200, 7)) {
					t.Error("ReadAt() of the second write did not return its data")
				}

				if size := fileSize(t, file); size != 2*blocks.BlockSize {
					t.Errorf("Size() = %d, want %d", size, 2*blocks.BlockSize)
				}
			})

			t.Run("UnwrittenBlocksAreZero", func(t *testing.T) {
				file := openFile(t, bfs, "hole.db")

				writeAt(t, file, []byte("end"), 3*blocks.BlockSize)

				if got := readAt(t, file, int(2*blocks.BlockSize), 0); !bytes.Equal(got, make([]byte, 2*blocks.BlockSize)) {
					t.Error("ReadAt() of unwritten blocks did not return zeros")
				}

				if size := fileSize(t, file); size != 4*blocks.BlockSize {
					t.Errorf("Size() = %d, want %d", size, 4*blocks.BlockSize)
				}
			})

			t.Run("SizeBeyondTenThousandBlocks", func(t *testing.T) {
				file := openFile(t, bfs, "large.db")

				writeAt(t, file, []byte("x"), 10001*blocks.BlockSize)

				if size := fileSize(t, file); size != 10002*blocks.BlockSize {
					t.Errorf("Size() = %d, want %d", size, 10002*blocks.BlockSize)
				}
			})

			t.Run("EmptyOperations", func(t *testing.T) {
				file := openFile(t, bfs, "noop.db")

				if n, err := file.WriteAt(nil, 500); n != 0 || err != nil {
					t.Errorf("WriteAt() of nothing = %d, %v", n, err)
				}

				if n, err := file.ReadAt(nil, 500); n != 0 || err != nil {
					t.Errorf("ReadAt() of nothing = %d, %v", n, err)
				}

				if size := fileSize(t, file); size != 0 {
					t.Errorf("Size() = %d after empty operations, want 0", size)
				}
			})

			t.Run("InvalidOffsets", func(t *testing.T) {
				file := openFile(t, bfs, "invalid.db")

				if _, err := file.WriteAt([]byte("x"), -1); !errors.Is(err, blocks.ErrInvalidArgument) {
					t.Errorf("WriteAt() at -1 returned %v, want ErrInvalidArgument", err)
				}

				if _, err := file.ReadAt(make([]byte, 1), -1); !errors.Is(err, blocks.ErrInvalidArgument) {
					t.Errorf("ReadAt() at -1 returned %v, want ErrInvalidArgument", err)
				}

				if err := file.Truncate(-1); !errors.Is(err, blocks.ErrInvalidArgument) {
					t.Errorf("Truncate(-1) returned %v, want ErrInvalidArgument", err)
				}
			})

			t.Run("ReopenKeepsData", func(t *testing.T) {
				file, err := bfs.Open("reopen.db")

				if err != nil {
					t.Fatal(err)
				}

				writeAt(t, file, pattern(6000, 3), 10)

				if err := file.Close(); err != nil {
					t.Fatalf("Close() returned an error: %v", err)
				}

				reopened := openFile(t, bfs, "reopen.db")

				if got := readAt(t, reopened, 6000, 10); !bytes.Equal(got, pattern(6000, 3)) {
					t.Error("ReadAt() after reopening did not return the written data")
				}
			})

			t.Run("SharedName", func(t *testing.T) {
				a := openFile(t, bfs, "shared.db")
				b := openFile(t, bfs, "shared.db")

				writeAt(t, a, []byte("from a"), 0)

				if got := readAt(t, b, 6, 0); string(got) != "from a" {
					t.Errorf("second handle read %q, want %q", got, "from a")
				}
			})

			t.Run("ClosedFile", func(t *testing.T) {
				file := openFile(t, bfs, "closed.db")

				if err := file.Close(); err != nil {
					t.Fatal(err)
				}

				if err := file.Close(); err != nil {
					t.Errorf("second Close() returned an error: %v", err)
				}

				if _, err := file.ReadAt(make([]byte, 1), 0); !errors.Is(err, os.ErrClosed) {
					t.Errorf("ReadAt() on a closed file returned %v, want os.ErrClosed", err)
				}

				if _, err := file.WriteAt([]byte("x"), 0); !errors.Is(err, os.ErrClosed) {
					t.Errorf("WriteAt() on a closed file returned %v, want os.ErrClosed", err)
				}

				if _, err := file.Size(); !errors.Is(err, os.ErrClosed) {
					t.Errorf("Size() on a closed file returned %v, want os.ErrClosed", err)
				}

				if err := file.Truncate(0); !errors.Is(err, os.ErrClosed) {
					t.Errorf("Truncate() on a closed file returned %v, want os.ErrClosed", err)
				}
			})
		})
	}
}

func TestFileBlockLayout(t *testing.T) {
	fs, dir := test.LocalFileSystem(t)
	bfs := blocks.NewFileSystem(fs)
	file := openFile(t, bfs, "layout.db")

	writeAt(t, file, []byte("Hello"), 0)
	writeAt(t, file, pattern(int(blocks.BlockSize), 9), 2*blocks.BlockSize)

	for index, size := range map[string]int64{"block_000000": 4096, "block_000002": 4096} {
		info, err := os.Stat(dir + "/layout.db.blocks/" + index)

		if err != nil {
			t.Fatalf("block file %s is missing: %v", index, err)
		}

		if info.Size() != size {
			t.Errorf("block file %s has %d bytes, want %d", index, info.Size(), size)
		}
	}

	if _, err := os.Stat(dir + "/layout.db.blocks/block_000001"); !os.IsNotExist(err) {
		t.Error("block_000001 exists, want it never written")
	}

	if _, err := os.Stat(dir + "/layout.db"); !os.IsNotExist(err) {
		t.Error("a plain file layout.db was created")
	}
}

func TestFileShortBlockReadsAsZeroExtended(t *testing.T) {
	fs, _ := test.LocalFileSystem(t)
	bfs := blocks.NewFileSystem(fs)
	file := openFile(t, bfs, "short.db")

	if err := fs.WriteFile("short.db.blocks/block_000001", []byte("tail"), 0644); err != nil {
		t.Fatal(err)
	}

	if size := fileSize(t, file); size != blocks.BlockSize+4 {
		t.Errorf("Size() = %d, want %d", size, blocks.BlockSize+4)
	}

	if got := readAt(t, file, 8, blocks.BlockSize); !bytes.Equal(got, []byte{'t', 'a', 'i', 'l', 0, 0, 0, 0}) {
		t.Errorf("ReadAt() = %v, want tail followed by zeros", got)
	}

	// A partial write fills the block out to full size.
	writeAt(t, file, []byte("T"), blocks.BlockSize)

	data, err := fs.ReadFile("short.db.blocks/block_000001")

	if err != nil {
		t.Fatal(err)
	}

	if int64(len(data)) != blocks.BlockSize || string(data[:4]) != "Tail" {
		t.Errorf("block has %d bytes starting %q, want %d starting %q", len(data), data[:4], blocks.BlockSize, "Tail")
	}
}

func TestFileSizeIgnoresForeignEntries(t *testing.T) {
	fs, _ := test.LocalFileSystem(t)
	bfs := blocks.NewFileSystem(fs)
	file := openFile(t, bfs, "foreign.db")

	writeAt(t, file, []byte("x"), 0)

	for _, name := range []string{"notes.txt", "block_12", "block_0000009"} {
		if err := fs.WriteFile("foreign.db.blocks/"+name, make([]byte, 10), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := fs.Mkdir("foreign.db.blocks/block_000050", 0755); err != nil {
		t.Fatal(err)
	}

	if size := fileSize(t, file); size != blocks.BlockSize {
		t.Errorf("Size() = %d, want %d", size, blocks.BlockSize)
	}
}

func TestOpenPathTooLong(t *testing.T) {
	bfs := test.BlockFileSystem(t)
	name := string(bytes.Repeat([]byte("a"), blocks.MaxPathLength))

	if _, err := bfs.Open(name); !errors.Is(err, blocks.ErrPathTooLong) {
		t.Errorf("Open() of a long name returned %v, want ErrPathTooLong", err)
	}
}

func TestFileBlocks(t *testing.T) {
	bfs := test.BlockFileSystem(t)
	file := openFile(t, bfs, "list.db")

	writeAt(t, file, []byte("x"), 5*blocks.BlockSize)
	writeAt(t, file, []byte("y"), 0)

	if err := file.Truncate(5*blocks.BlockSize + 7); err != nil {
		t.Fatal(err)
	}

	infos, err := file.Blocks()

	if err != nil {
		t.Fatalf("Blocks() returned an error: %v", err)
	}

	want := []blocks.BlockInfo{{Index: 0, Size: blocks.BlockSize}, {Index: 5, Size: 7}}

	if len(infos) != len(want) {
		t.Fatalf("Blocks() returned %d blocks, want %d", len(infos), len(want))
	}

	for i := range want {
		if infos[i] != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, infos[i], want[i])
		}
	}
}

func TestFileReadWrite(t *testing.T) {
	bfs := test.BlockFileSystem(t)
	file := openFile(t, bfs, "rw.db")

	n, err := file.Write([]byte("hello"), 4094)

	if err != nil || n != 5 {
		t.Fatalf("Write() = %d, %v", n, err)
	}

	data, err := file.Read(8, 4092)

	if err != nil {
		t.Fatalf("Read() returned an error: %v", err)
	}

	if !bytes.Equal(data, []byte{0, 0, 'h', 'e', 'l', 'l', 'o', 0}) {
		t.Errorf("Read() = %v", data)
	}

	_, err = file.Read(-1, 0)

	if !errors.Is(err, blocks.ErrInvalidArgument) {
		t.Errorf("Read(-1) returned %v, want ErrInvalidArgument", err)
	}

	if err != nil && !strings.Contains(err.Error(), "length -1") {
		t.Errorf("Read(-1) error %q does not name the length", err)
	}
}

// blockAsDirectory puts a directory where a block file of name is expected,
// so that reading, writing or removing that block fails.
func blockAsDirectory(t *testing.T, dataPath, name string, index int64) {
	t.Helper()

	path, err := blocks.BlockPath(name, index)

	if err != nil {
		t.Fatal(err)
	}

	if err := os.MkdirAll(filepath.Join(dataPath, path, "child"), 0755); err != nil {
		t.Fatal(err)
	}
}

func TestFileIOErrors(t *testing.T) {
	localStorage, dataPath := test.LocalFileSystem(t)
	bfs := blocks.NewFileSystem(localStorage)

	t.Run("ReadUnreadableBlock", func(t *testing.T) {
		file := openFile(t, bfs, "read.db")
		blockAsDirectory(t, dataPath, "read.db", 1)

		data := make([]byte, 10)

		if _, err := file.ReadAt(data, blocks.BlockSize); !errors.Is(err, blocks.ErrIO) {
			t.Errorf("ReadAt() of an unreadable block returned %v, want ErrIO", err)
		}

		if _, err := file.Read(10, 0); err != nil {
			t.Errorf("Read() of a missing block returned %v", err)
		}
	})

	t.Run("WriteKeepsEarlierBlocks", func(t *testing.T) {
		file := openFile(t, bfs, "write.db")
		blockAsDirectory(t, dataPath, "write.db", 1)

		data := bytes.Repeat([]byte{7}, int(blocks.BlockSize)+4)

		n, err := file.WriteAt(data, 0)

		if !errors.Is(err, blocks.ErrIO) {
			t.Errorf("WriteAt() over an unwritable block returned %v, want ErrIO", err)
		}

		if n != 0 {
			t.Errorf("WriteAt() returned n = %d, want 0", n)
		}

		stored, err := os.ReadFile(filepath.Join(dataPath, "write.db.blocks", "block_000000"))

		if err != nil {
			t.Fatalf("block 0 is missing after the failed write: %v", err)
		}

		if !bytes.Equal(stored, data[:blocks.BlockSize]) {
			t.Error("block 0 does not hold the data written before the failure")
		}
	})

	t.Run("OpenWithoutParentDirectory", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(dataPath, "plain"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := bfs.Open("plain/nested.db"); !errors.Is(err, blocks.ErrIO) {
			t.Errorf("Open() below a plain file returned %v, want ErrIO", err)
		}
	})

	t.Run("TruncateRewriteFails", func(t *testing.T) {
		file := openFile(t, bfs, "truncate.db")

		writeAt(t, file, []byte("abc"), 0)
		blockAsDirectory(t, dataPath, "truncate.db", 1)

		if err := file.Truncate(blocks.BlockSize + 5); !errors.Is(err, blocks.ErrIO) {
			t.Errorf("Truncate() onto an unreadable block returned %v, want ErrIO", err)
		}

		if data := readAt(t, file, 3, 0); string(data) != "abc" {
			t.Errorf("block 0 changed after the failed truncate: %q", data)
		}
	})

	t.Run("TruncateRemoveFails", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("permissions are not enforced for root")
		}

		file := openFile(t, bfs, "remove.db")

		writeAt(t, file, pattern(int(blocks.BlockSize), 1), 0)
		writeAt(t, file, []byte("z"), 2*blocks.BlockSize)

		dir := filepath.Join(dataPath, "remove.db.blocks")

		if err := os.Chmod(dir, 0555); err != nil {
			t.Fatal(err)
		}

		t.Cleanup(func() { os.Chmod(dir, 0755) })

		if err := file.Truncate(0); !errors.Is(err, blocks.ErrIO) {
			t.Errorf("Truncate() in a read-only block directory returned %v, want ErrIO", err)
		}
	})
}

func TestFailedWriteIsLoggedOnce(t *testing.T) {
	var buf bytes.Buffer

	defaultLogger := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	dataPath := t.TempDir()
	bfs := blocks.NewFileSystem(storage.NewFileSystem(storage.NewLocalFileSystemDriver(dataPath, true)))
	file := openFile(t, bfs, "logged.db")

	blockAsDirectory(t, dataPath, "logged.db", 0)

	if _, err := file.WriteAt(make([]byte, blocks.BlockSize), 0); !errors.Is(err, blocks.ErrIO) {
		t.Fatalf("WriteAt() over a directory returned %v, want ErrIO", err)
	}

	if count := strings.Count(buf.String(), "level=ERROR"); count != 1 {
		t.Errorf("failed write logged %d errors, want 1:\n%s", count, buf.String())
	}

	if !strings.Contains(buf.String(), "Failed to write block") {
		t.Errorf("log does not name the failed block write:\n%s", buf.String())
	}
}
