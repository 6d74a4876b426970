package vfs

import (
	"io"
	"log/slog"
	"os"

	"github.com/litebase/blockfs/pkg/config"
)

// AuditLogger is the operation log of a VFS. Close releases the log file, if
// one was opened.
type AuditLogger struct {
	*slog.Logger
	closer io.Closer
}

// NewAuditLogger builds the operation log described by c: text records at
// c.LogLevel appended to c.LogPath, or written to stdout when no path is set.
// When c.Logging is false every record is dropped.
func NewAuditLogger(c *config.Config) (*AuditLogger, error) {
	if !c.Logging {
		return &AuditLogger{Logger: discardLogger()}, nil
	}

	var level slog.Level

	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, err
	}

	var writer io.Writer = os.Stdout
	var closer io.Closer

	if c.LogPath != "" {
		file, err := os.OpenFile(c.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)

		if err != nil {
			slog.Error("Failed to open log file", "path", c.LogPath, "error", err)
			return nil, err
		}

		writer = file
		closer = file
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level})

	return &AuditLogger{
		Logger: slog.New(handler).With("component", "vfs"),
		closer: closer,
	}, nil
}

func (l *AuditLogger) Close() error {
	if l.closer == nil {
		return nil
	}

	return l.closer.Close()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
