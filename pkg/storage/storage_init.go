package storage

import (
	"fmt"

	"github.com/litebase/blockfs/pkg/config"
)

// Init builds the file system for the driver selected in c.
func Init(c *config.Config) (*FileSystem, error) {
	switch c.Driver {
	case config.DriverLocal, "":
		return NewFileSystem(NewLocalFileSystemDriver(c.DataPath, c.SyncWrites)), nil
	case config.DriverObject:
		driver, err := NewObjectFileSystemDriver(c)

		if err != nil {
			return nil, err
		}

		return NewFileSystem(driver), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.Driver)
	}
}
