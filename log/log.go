package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	WarningLog *log.Logger
	InfoLog    *log.Logger
	ErrorLog   *log.Logger
)

// LogConfig holds logging configuration
type LogConfig struct {
	LogsEnabled bool
	LogsDir     string
	LogMaxSize  int
	LogMaxFiles int
	LogMaxAge   int
	LogCompress bool
}

// DefaultLogConfig returns the default logging configuration
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		LogsEnabled: true,
		LogsDir:     "",
		LogMaxSize:  10, // 10MB
		LogMaxFiles: 5,  // 5 backups
		LogMaxAge:   30, // 30 days
		LogCompress: true,
	}
}

// Default log file used when no directory can be resolved
var logFileName = filepath.Join(os.TempDir(), "menukit.log")

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".menukit"), nil
}

// GetLogDir returns the directory where logs should be stored
func GetLogDir(cfg *LogConfig) (string, error) {
	// If logging is disabled, return temp directory
	if cfg != nil && !cfg.LogsEnabled {
		return os.TempDir(), nil
	}

	// If a custom log directory is specified in config, use it
	if cfg != nil && cfg.LogsDir != "" {
		return cfg.LogsDir, nil
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return os.TempDir(), fmt.Errorf("failed to get config directory: %w", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return os.TempDir(), fmt.Errorf("failed to create log directory: %w", err)
	}

	return logDir, nil
}

// GetLogFilePath returns the full path to the log file
func GetLogFilePath(cfg *LogConfig) (string, error) {
	logDir, err := GetLogDir(cfg)
	if err != nil {
		return logFileName, err
	}

	return filepath.Join(logDir, "menukit.log"), nil
}

var globalLogFile io.WriteCloser

func init() {
	// Default loggers write to stderr so log calls never panic before
	// Initialize runs (tests, library embedders).
	if InfoLog == nil {
		InfoLog = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime)
	}
	if WarningLog == nil {
		WarningLog = log.New(os.Stderr, "WARNING: ", log.Ldate|log.Ltime)
	}
	if ErrorLog == nil {
		ErrorLog = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)
	}
}

// Initialize should be called once at the beginning of the program to set up
// logging; defer Close() after calling it.
func Initialize() {
	InitializeWithConfig(DefaultLogConfig())
}

// InitializeWithConfig sets up logging with the provided configuration.
func InitializeWithConfig(cfg *LogConfig) {
	if cfg == nil {
		cfg = DefaultLogConfig()
	}

	logFilePath, err := GetLogFilePath(cfg)
	if err != nil {
		fmt.Printf("Warning: Using default log file location due to error: %v\n", err)
		logFilePath = logFileName
	}

	writer := createRotatingWriter(logFilePath, cfg)

	InfoLog = log.New(writer, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(writer, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(writer, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	if closer, ok := writer.(io.WriteCloser); ok {
		globalLogFile = closer
	}

	logFileName = logFilePath
}

// createRotatingWriter creates a writer that handles log rotation based on config
func createRotatingWriter(logFilePath string, cfg *LogConfig) io.Writer {
	if cfg == nil || cfg.LogMaxSize <= 0 {
		logDir := filepath.Dir(logFilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			panic(fmt.Sprintf("could not create log directory: %s", err))
		}

		// No rotation, use standard file
		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			panic(fmt.Sprintf("could not open log file: %s", err))
		}
		return f
	}

	return &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    cfg.LogMaxSize,  // megabytes
		MaxBackups: cfg.LogMaxFiles, // number of backups
		MaxAge:     cfg.LogMaxAge,   // days
		Compress:   cfg.LogCompress, // compress rotated files
		LocalTime:  true,            // use local time in backup filenames
	}
}

func Close() {
	if globalLogFile != nil {
		_ = globalLogFile.Close()
	}
}

// Every is used to log at most once every timeout duration.
type Every struct {
	timeout time.Duration
	timer   *time.Timer
}

func NewEvery(timeout time.Duration) *Every {
	return &Every{timeout: timeout}
}

// ShouldLog returns true if the timeout has passed since the last log.
func (e *Every) ShouldLog() bool {
	if e.timer == nil {
		e.timer = time.NewTimer(e.timeout)
		e.timer.Reset(e.timeout)
		return true
	}

	select {
	case <-e.timer.C:
		e.timer.Reset(e.timeout)
		return true
	default:
		return false
	}
}
