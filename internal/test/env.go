package test

import (
	"os"
	"testing"
)

func setTestEnvVariable(t testing.TB, dataPath string) {
	envVars := map[string]string{
		"BLOCKFS_DATA_PATH":      dataPath,
		"BLOCKFS_DRIVER":         "local",
		"BLOCKFS_LOG_LEVEL":      "debug",
		"BLOCKFS_LOGGING":        "false",
		"BLOCKFS_STORAGE_REGION": "us-east-1",
		"BLOCKFS_SYNC_WRITES":    "false",
		"BLOCKFS_VFS_BACKEND":    "blocks",
		"BLOCKFS_VFS_NAME":       "blockfs-test",
	}

	for key, value := range envVars {
		if os.Getenv(key) == "" {
			t.Setenv(key, value)
		}
	}
}
