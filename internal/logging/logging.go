package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lowaak/workout-tool/internal/config"
)

// Session is the logger for one run of the dashboard
type Session struct {
	Logger *log.Logger
	ID     string

	closer io.Closer
}

// NewSession opens the rotating log file described by cfg and returns a
// logger whose prefix carries a fresh session id. An empty cfg.File discards
// all output.
func NewSession(cfg config.LogConfig) (*Session, error) {
	id := uuid.NewString()

	var (
		out    io.Writer = io.Discard
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		out, closer = rotating, rotating
	}

	return &Session{
		Logger: log.New(out, "["+ShortID(id)+"] ", log.LstdFlags|log.Lmicroseconds),
		ID:     id,
		closer: closer,
	}, nil
}

// Close flushes and closes the log file
func (s *Session) Close() error {
	return s.closer.Close()
}

// ShortID returns the first block of a uuid, enough to tell runs apart in one file
func ShortID(id string) string {
	if len(id) < 8 {
		return id
	}
	return id[:8]
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
