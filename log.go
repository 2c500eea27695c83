//go:build !ios && !android && (amd64 || arm64)

package ffbind

import (
	"sync"

	"github.com/asticode/go-astikit"
	"github.com/obinnaokechukwu/ffbind/avutil"
)

// LogLevel represents FFmpeg log levels.
type LogLevel int32

// Log level constants matching FFmpeg's AV_LOG_* values.
const (
	LogQuiet   LogLevel = -8 // Print no output
	LogPanic   LogLevel = 0  // Something went really wrong, crash
	LogFatal   LogLevel = 8  // Something went wrong, exit now
	LogError   LogLevel = 16 // Something went wrong, recovery possible
	LogWarning LogLevel = 24 // Something unexpected but recovery possible
	LogInfo    LogLevel = 32 // Standard information
	LogVerbose LogLevel = 40 // Detailed information
	LogDebug   LogLevel = 48 // Stuff for debugging
	LogTrace   LogLevel = 56 // Extremely verbose debugging
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch {
	case l <= LogQuiet:
		return "quiet"
	case l <= LogPanic:
		return "panic"
	case l <= LogFatal:
		return "fatal"
	case l <= LogError:
		return "error"
	case l <= LogWarning:
		return "warning"
	case l <= LogInfo:
		return "info"
	case l <= LogVerbose:
		return "verbose"
	case l <= LogDebug:
		return "debug"
	default:
		return "trace"
	}
}

// SetLogLevel sets the level of FFmpeg's own log output (av_log_set_level).
func SetLogLevel(level LogLevel) error {
	if err := Init(); err != nil {
		return err
	}
	return avutil.SetLogLevel(int32(level))
}

// GetLogLevel returns FFmpeg's current log level.
func GetLogLevel() LogLevel {
	return LogLevel(avutil.LogLevel())
}

var (
	loggerMu sync.RWMutex
	logger   = astikit.AdaptStdLogger(nil)
)

// SetLogger routes this package's own events (ownership transitions, fatal
// pulls) to l. Pass nil to discard them, which is the default.
//
// Thread-safe.
func SetLogger(l astikit.StdLogger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = astikit.AdaptStdLogger(l)
}

func currentLogger() astikit.CompleteLogger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}
