package config

import (
	"os"
	"strings"

	"github.com/litebase/blockfs/internal/validation"
)

const (
	DriverLocal  = "local"
	DriverObject = "object"

	BackendBlocks  = "blocks"
	BackendDefault = "default"

	DefaultVFSName = "blockfs"
)

type Config struct {
	Backend                string `env:"BLOCKFS_VFS_BACKEND" validate:"oneof=blocks default"`
	DataPath               string `env:"BLOCKFS_DATA_PATH"`
	Driver                 string `env:"BLOCKFS_DRIVER" validate:"oneof=local object"`
	LogLevel               string `env:"BLOCKFS_LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogPath                string `env:"BLOCKFS_LOG_PATH"`
	Logging                bool   `env:"BLOCKFS_LOGGING"`
	StorageAccessKeyId     string `env:"BLOCKFS_STORAGE_ACCESS_KEY_ID" validate:"required_with=StorageSecretAccessKey"`
	StorageBucket          string `env:"BLOCKFS_STORAGE_BUCKET" validate:"required_if=Driver object"`
	StorageEndpoint        string `env:"BLOCKFS_STORAGE_ENDPOINT" validate:"omitempty,url"`
	StoragePathStyle       bool   `env:"BLOCKFS_STORAGE_PATH_STYLE"`
	StorageRegion          string `env:"BLOCKFS_STORAGE_REGION"`
	StorageSecretAccessKey string `env:"BLOCKFS_STORAGE_SECRET_ACCESS_KEY" validate:"required_with=StorageAccessKeyId"`
	SyncWrites             bool   `env:"BLOCKFS_SYNC_WRITES"`
	VFSName                string `env:"BLOCKFS_VFS_NAME" validate:"required"`
}

var validationMessages = map[string]string{
	"BLOCKFS_VFS_BACKEND.oneof":                       "BLOCKFS_VFS_BACKEND must be one of: blocks, default",
	"BLOCKFS_DRIVER.oneof":                            "BLOCKFS_DRIVER must be one of: local, object",
	"BLOCKFS_LOG_LEVEL.oneof":                         "BLOCKFS_LOG_LEVEL must be one of: debug, info, warn, error",
	"BLOCKFS_STORAGE_BUCKET.required_if":              "BLOCKFS_STORAGE_BUCKET is required when BLOCKFS_DRIVER is object",
	"BLOCKFS_STORAGE_ENDPOINT.url":                    "BLOCKFS_STORAGE_ENDPOINT must be a valid URL",
	"BLOCKFS_STORAGE_ACCESS_KEY_ID.required_with":     "BLOCKFS_STORAGE_ACCESS_KEY_ID is required with a secret access key",
	"BLOCKFS_STORAGE_SECRET_ACCESS_KEY.required_with": "BLOCKFS_STORAGE_SECRET_ACCESS_KEY is required with an access key id",
	"BLOCKFS_VFS_NAME.required":                       "BLOCKFS_VFS_NAME is required",
}

func env(key string, defaultValue string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}

	return defaultValue
}

func NewConfig() *Config {
	return &Config{
		Backend:                env("BLOCKFS_VFS_BACKEND", BackendBlocks),
		DataPath:               env("BLOCKFS_DATA_PATH", ""),
		Driver:                 env("BLOCKFS_DRIVER", DriverLocal),
		LogLevel:               strings.ToLower(env("BLOCKFS_LOG_LEVEL", "info")),
		LogPath:                env("BLOCKFS_LOG_PATH", ""),
		Logging:                env("BLOCKFS_LOGGING", "true") == "true",
		StorageAccessKeyId:     env("BLOCKFS_STORAGE_ACCESS_KEY_ID", ""),
		StorageBucket:          env("BLOCKFS_STORAGE_BUCKET", ""),
		StorageEndpoint:        env("BLOCKFS_STORAGE_ENDPOINT", ""),
		StoragePathStyle:       env("BLOCKFS_STORAGE_PATH_STYLE", "false") == "true",
		StorageRegion:          env("BLOCKFS_STORAGE_REGION", "us-east-1"),
		StorageSecretAccessKey: env("BLOCKFS_STORAGE_SECRET_ACCESS_KEY", ""),
		SyncWrites:             env("BLOCKFS_SYNC_WRITES", "true") == "true",
		VFSName:                env("BLOCKFS_VFS_NAME", DefaultVFSName),
	}
}

// Validate returns an error describing every invalid setting, or nil.
func (c *Config) Validate() error {
	return validation.Error(validation.Validate(c, validationMessages))
}
