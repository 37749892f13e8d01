// Package logger holds the process-wide logrus logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. It logs info and above to stderr until Init
// is called.
var Log = newLogger(logrus.InfoLevel, os.Stderr)

// logFile is the file opened by the last Init, closed when Init runs again.
var logFile *os.File

func newLogger(level logrus.Level, w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetLevel(level)
	l.SetOutput(w)
	return l
}

// Init configures Log. Unknown levels fall back to info. When filePath is
// set, entries are written to stderr and appended to the file.
func Init(levelStr string, filePath string) error {
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}

	writers := []io.Writer{os.Stderr}
	var file *os.File
	if filePath != "" {
		if dir := filepath.Dir(filePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create log directory: %w", err)
			}
		}
		file, err = os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, file)
	}
	Log = newLogger(level, io.MultiWriter(writers...))
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file
	return nil
}
