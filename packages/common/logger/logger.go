package logger

import (
	"os"
	"sync/atomic"
)

var Debug atomic.Bool
var Trace atomic.Bool

// Additional info attached to log entries, mostly describes the request being handled.
type Meta map[string]any

// Returns copy of m with key set to v. m itself isn't modified, so it's safe
// to extend meta which is shared between goroutines.
func (m Meta) With(key string, v any) Meta {
	meta := make(Meta, len(m)+1)
	for k, val := range m {
		meta[k] = val
	}
	meta[key] = v
	return meta
}

func (m Meta) stringSuffix() string {
	if m == nil {
		return ""
	}

	return createSuffixFromWellKnownMeta(m)
}

// Meta properties that are appended to the text form of log entries (stdout/stderr), in this order.
var wellKnownMetaProperties = []string{
	"addr",
	"method",
	"path",
	"user_id",
	"user_agent",
	"request_id",
}

func createSuffixFromWellKnownMeta(m Meta) string {
	s := ""
	for _, prop := range wellKnownMetaProperties {
		if v, ok := m[prop].(string); ok && v != "" {
			if s != "" {
				s += " "
			}
			s += v
		}
	}
	if s == "" {
		return ""
	}
	return " (" + s + ")"
}

type Logger interface {
	Log(entry *LogEntry)
	// Just logs specified entry.
	// This method mustn't cause any side effects and mostly required for ForwardingLogger.
	// e.g. entry with panic level won't cause panic when
	// forwarded to another logger, only when main logger will handle it
	log(entry *LogEntry)
}

type ConcurrentLogger interface {
	Logger

	Start(dir string) error
	Stop() error
}

// Logger that can forward logs to another loggers.
type ForwardingLogger interface {
	Logger

	// Binds another logger to this logger.
	// On calling Log() it also will be called on all binded loggers
	// (entry will be the same for all loggers)
	//
	// Can't bind to self. Can't bind to one logger more then once.
	NewForwarding(logger Logger) error

	// Removes existing forwarding.
	// Will return error if forwading to specified logger isn't exist.
	RemoveForwarding(logger Logger) error
}

// Returns false if log must not be processed
func preprocess(entry *LogEntry, forwardings []Logger) bool {
	if entry.rawLevel == DebugLogLevel && !Debug.Load() {
		return false
	}

	if entry.rawLevel == TraceLogLevel && !Trace.Load() {
		return false
	}

	for _, forwarding := range forwardings {
		// Must call log() not Log(), since log() just doing logging
		// without any additional side effects.
		forwarding.log(entry)
	}

	return true
}

// If log entry rawLevel is:
//   - FatalLogLevel: will call os.Exit(1)
//   - PanicLogLevel: will cause panic with entry.Message and entry.Error
func handleCritical(entry *LogEntry) {
	if entry.rawLevel == PanicLogLevel {
		panic(entry.Message + "\n" + entry.Error)
	}
	os.Exit(1)
}

var Stdout = newStdoutLogger()

var Stderr = newStderrLogger()

var Default = NewFileLogger("default")

// Refers logger.Default
var Undefined = NewSource("UNDEFINED", Default)
