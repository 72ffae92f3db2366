// Package cmdutil is the setup shared by the command line tools.
package cmdutil

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/voidshard/tilegrid"
	"github.com/voidshard/tilegrid/persist"
)

// Logging are the log flags every tool embeds.
type Logging struct {
	Verbose bool   `short:"v" help:"log debug output"`
	LogFile string `help:"also log to this file (rotated at 10MB)"`
}

// Setup installs the tilegrid logger. The returned closer flushes the log
// file, if any.
func (l Logging) Setup() io.Closer {
	level := slog.LevelInfo
	if l.Verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if l.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   l.LogFile,
			MaxSize:    10,
			MaxBackups: 3,
		}
		out = io.MultiWriter(os.Stderr, lj)
		closer = lj
	}

	tilegrid.SetLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Storage are the flags picking where tilemaps are read from and written to.
type Storage struct {
	DB string `help:"use this sqlite database instead of the file system"`
}

// Open returns the selected store. Close it when done.
func (s Storage) Open() (persist.Store, io.Closer, error) {
	if s.DB == "" {
		return persist.DirStore{}, nopCloser{}, nil
	}
	db, err := persist.OpenSQLiteStore(s.DB)
	if err != nil {
		return nil, nil, err
	}
	return db, db, nil
}
