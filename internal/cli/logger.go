package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/taskbook/internal/config"
	"github.com/mrz1836/taskbook/internal/constants"
	"github.com/mrz1836/taskbook/internal/logging"
)

// openLog is the rotating log file of the current process, if any.
var openLog io.WriteCloser //nolint:gochecknoglobals // closed by CloseLogFile

// stdLogMu guards log.Logger from zerolog/log; globalLoggerMu guards ours.
var stdLogMu sync.Mutex //nolint:gochecknoglobals // guards zerolog/log

// InitLogger builds the process logger. --verbose logs at debug, --quiet at
// warn, otherwise info. A terminal with colors gets the console writer;
// anything else gets JSON on stderr. Records are also appended to the
// rotating taskbook.log under $TASKBOOK_HOME/logs when that file can be opened.
func InitLogger(verbose, quiet bool) zerolog.Logger {
	var writer io.Writer = selectOutput()
	if file, err := createLogFileWriter(); err == nil {
		CloseLogFile()
		openLog = file
		writer = zerolog.MultiLevelWriter(writer, file)
	}

	logger := newLogger(writer, selectLevel(verbose, quiet))
	setGlobalLogger(logger)
	return logger
}

// InitLoggerWithWriter is InitLogger with w as the only destination.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	logger := newLogger(w, selectLevel(verbose, quiet))
	setGlobalLogger(logger)
	return logger
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).Hook(logging.NewSensitiveDataHook()).With().Timestamp().Logger()
}

func setGlobalLogger(l zerolog.Logger) {
	stdLogMu.Lock()
	log.Logger = l
	stdLogMu.Unlock()
}

// CloseLogFile flushes and closes the log file opened by InitLogger.
func CloseLogFile() {
	if openLog == nil {
		return
	}
	_ = openLog.Close()
	openLog = nil
}

func selectLevel(verbose, quiet bool) zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}
	if quiet {
		return zerolog.WarnLevel
	}
	return zerolog.InfoLevel
}

func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" { //nolint:gosec // Fd fits in int
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

// redactedFile redacts secrets on the way to a closable file.
type redactedFile struct {
	*logging.FilteringWriter
	file io.Closer
}

func (r redactedFile) Close() error {
	return r.file.Close()
}

func createLogFileWriter() (io.WriteCloser, error) {
	path, err := LogFilePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	rotating := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   constants.LogCompress,
	}
	return redactedFile{FilteringWriter: logging.NewFilteringWriter(rotating), file: rotating}, nil
}

// LogFilePath returns where InitLogger appends log records.
func LogFilePath() (string, error) {
	dir, err := config.LogDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.CLILogFileName), nil
}
