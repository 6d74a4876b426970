package vfs

import (
	"fmt"

	"github.com/litebase/blockfs/pkg/blocks"
	"github.com/litebase/blockfs/pkg/config"
	"github.com/litebase/blockfs/pkg/storage"
)

// Init builds the VFS described by c and registers it under c.VFSName. The
// returned logger must be closed once the VFS is no longer used. A name can
// be initialized once per process; later calls return ErrAlreadyRegistered
// without touching the registered VFS.
func Init(c *config.Config) (*VFS, *AuditLogger, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	if IsRegistered(c.VFSName) {
		return nil, nil, fmt.Errorf("%w: %q", ErrAlreadyRegistered, c.VFSName)
	}

	logger, err := NewAuditLogger(c)

	if err != nil {
		return nil, nil, err
	}

	opts := Options{
		Backend: Backend(c.Backend),
		Logger:  logger.Logger,
	}

	if opts.Backend == BackendBlocks {
		fileSystem, err := storage.Init(c)

		if err != nil {
			logger.Close()
			return nil, nil, err
		}

		opts.FileSystem = blocks.NewFileSystem(fileSystem)
	}

	v, err := New(opts)

	if err != nil {
		logger.Close()
		return nil, nil, err
	}

	if err := Register(c.VFSName, v); err != nil {
		logger.Close()
		return nil, nil, err
	}

	return v, logger, nil
}
