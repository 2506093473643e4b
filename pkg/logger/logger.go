package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger provides functionality for logging.
type Logger struct {
	*zerolog.Logger
}

// Options represents options for logger.
type Options struct {
	LogLevel        string
	LogFile         string
	PrettyLogOutput bool
	// MaxFileSizeMB is the size at which the log file gets rotated.
	MaxFileSizeMB int
	// MaxFileBackups is the number of rotated files to keep.
	MaxFileBackups int
}

func newFileWriter(opts Options) io.Writer {
	return &lumberjack.Logger{
		Filename:   opts.LogFile,
		MaxSize:    opts.MaxFileSizeMB,
		MaxBackups: opts.MaxFileBackups,
	}
}

// New returns a new instance of logger.
func New(opts Options) (*Logger, error) {
	// By default create console writer
	writers := []io.Writer{os.Stdout}

	if opts.PrettyLogOutput {
		writers[0] = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Stamp}
	}

	if opts.LogFile != "" {
		writers = append(writers, newFileWriter(opts))
	}

	level := zerolog.DebugLevel
	if opts.LogLevel != "" {
		var err error
		level, err = zerolog.ParseLevel(opts.LogLevel)
		if err != nil {
			return nil, err
		}
	}

	zeroLogger := zerolog.New(io.MultiWriter(writers...)).
		Level(level).
		With().Caller().Timestamp().
		Logger()

	return &Logger{&zeroLogger}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	zeroLogger := zerolog.Nop()
	return &Logger{&zeroLogger}
}
