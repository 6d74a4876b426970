package test

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/litebase/blockfs/pkg/blocks"
	"github.com/litebase/blockfs/pkg/config"
	"github.com/litebase/blockfs/pkg/storage"
)

// Setup points the configuration at a fresh data directory that is removed
// when the test ends, and returns the configuration.
func Setup(t testing.TB) *config.Config {
	t.Helper()

	setTestEnvVariable(t, t.TempDir())

	return config.NewConfig()
}

// Run calls callback with a configuration set up by Setup.
func Run(t testing.TB, callback func(c *config.Config)) {
	t.Helper()

	callback(Setup(t))
}

// CreateHash returns a random hex string of the given length.
func CreateHash(length int) string {
	data := make([]byte, (length+1)/2)

	if _, err := rand.Read(data); err != nil {
		panic(err)
	}

	return hex.EncodeToString(data)[:length]
}

// LocalFileSystem returns a local file system rooted at a temporary
// directory, together with that directory.
func LocalFileSystem(t testing.TB) (*storage.FileSystem, string) {
	t.Helper()

	dir := t.TempDir()

	return storage.NewFileSystem(storage.NewLocalFileSystemDriver(dir, false)), dir
}

// BlockFileSystem returns a block file system on a temporary local directory.
func BlockFileSystem(t testing.TB) *blocks.FileSystem {
	t.Helper()

	fs, _ := LocalFileSystem(t)

	return blocks.NewFileSystem(fs)
}

// ObjectFileSystem returns a file system backed by an in-memory bucket,
// together with the bucket.
func ObjectFileSystem(t testing.TB) (*storage.FileSystem, *ObjectClient) {
	t.Helper()

	client := NewObjectClient()

	return storage.NewFileSystem(storage.NewObjectFileSystemDriverWithClient("blockfs-test", client)), client
}
