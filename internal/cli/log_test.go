package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	time.Sleep(10 * time.Millisecond)
	prog.done("Loaded catalog")

	if !bytes.Contains(buf.Bytes(), []byte("Loaded catalog")) {
		t.Errorf("progress output = %q, should contain message", buf.String())
	}
}

func TestRedirectLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exhibit.log")
	logger := newLogger(os.Stderr, log.InfoLevel)

	restore, err := redirectLog(logger, path)
	if err != nil {
		t.Fatalf("redirectLog() error: %v", err)
	}
	logger.Info("into the file")
	restore()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "into the file") {
		t.Errorf("log file = %q", data)
	}

	if _, err := redirectLog(logger, filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Error("redirectLog into a missing directory should fail")
	}
}

func TestRedirectLogDiscard(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	restore, err := redirectLog(logger, "")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("dropped")
	restore()

	if buf.Len() != 0 {
		t.Errorf("discarded logger wrote %q", buf.String())
	}
}
