package logger

import (
	"errors"
	"hoa/packages/common/structs"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	jsoniter "github.com/json-iterator/go"
)

var errLogger = NewSource("LOG", Stderr)

// Writes log entries as JSON lines into <dir>/<name>.log.
// Entries are written asynchronously by a single worker, so their order is preserved.
// Till Start() is called entries are only forwarded.
//
// Satisfies ConcurrentLogger and ForwardingLogger interfaces.
type FileLogger struct {
	name         string
	instance     string
	mut          sync.RWMutex
	isRunning    atomic.Bool
	file         *os.File
	forwardings  []Logger
	pool         *structs.WorkerPool
	handler      logHandler
	taskProducer func(entry *LogEntry) *logTask
}

func NewFileLogger(name string) *FileLogger {
	return &FileLogger{
		name:        name,
		forwardings: []Logger{},
	}
}

// Sets ID of the service instance, it will be added to all entries.
func (l *FileLogger) Init(instance string) {
	l.mut.Lock()
	l.instance = instance
	l.mut.Unlock()
}

func (l *FileLogger) Start(dir string) error {
	l.mut.Lock()
	defer l.mut.Unlock()

	if l.isRunning.Load() {
		return errors.New("logger already started")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(
		filepath.Join(dir, l.name+".log"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644, // -rw-r--r--
	)
	if err != nil {
		return err
	}

	l.file = f
	l.handler = newLogEntryHandler(f)
	l.taskProducer = newTaskProducer(l.handler)
	l.pool = structs.NewWorkerPool(1)

	go l.pool.Start()

	l.isRunning.Store(true)

	return nil
}

// Writes all pending entries and closes log file.
func (l *FileLogger) Stop() error {
	l.mut.Lock()
	defer l.mut.Unlock()

	if !l.isRunning.Load() {
		return errors.New("logger isn't started, hence can't be stopped")
	}

	l.isRunning.Store(false)

	if err := l.pool.Cancel(); err != nil {
		return err
	}

	return l.file.Close()
}

// Creates function that writes entry into w as a single JSON line.
func newLogEntryHandler(w io.Writer) logHandler {
	pool := sync.Pool{
		New: func() any {
			return jsoniter.NewStream(jsoniter.ConfigFastest, nil, 1024)
		},
	}

	return func(entry *LogEntry) {
		stream := pool.Get().(*jsoniter.Stream)
		defer pool.Put(stream)

		stream.Reset(nil)
		stream.Error = nil

		stream.WriteVal(entry)
		if stream.Error != nil {
			errLogger.Error("failed to encode log entry", stream.Error.Error(), nil)
			return
		}

		// Without this all logs will be written in single line
		stream.WriteRaw("\n")

		if _, err := w.Write(stream.Buffer()); err != nil {
			errLogger.Error("failed to write log entry", err.Error(), nil)
		}
	}
}

func (l *FileLogger) log(entry *LogEntry) {
	l.mut.RLock()
	handler := l.handler
	l.mut.RUnlock()

	if l.isRunning.Load() {
		handler(entry)
	}
}

func (l *FileLogger) Log(entry *LogEntry) {
	l.mut.RLock()
	forwardings := l.forwardings
	instance := l.instance
	pool, handler, taskProducer := l.pool, l.handler, l.taskProducer
	running := l.isRunning.Load()
	l.mut.RUnlock()

	if !preprocess(entry, forwardings) {
		return
	}

	entry.Instance = instance

	// Immediatly handle panic or fatal log
	if entry.rawLevel >= FatalLogLevel {
		if running {
			handler(entry)
		}
		handleCritical(entry)
	}

	if !running {
		return
	}

	// pool could be canceled concurrently by Stop()
	if err := pool.Push(taskProducer(entry)); err != nil {
		handler(entry)
	}
}

func (l *FileLogger) NewForwarding(logger Logger) error {
	if logger == nil {
		return errors.New("received nil instead of logger")
	}

	if fileLogger, ok := logger.(*FileLogger); ok && fileLogger == l {
		return errors.New("can't create forwarding to self")
	}

	l.mut.Lock()
	defer l.mut.Unlock()

	if slices.Contains(l.forwardings, logger) {
		return errors.New("this logger already has forwarding")
	}

	// copy on write, Log() reads forwardings without holding the lock
	l.forwardings = append(slices.Clone(l.forwardings), logger)

	return nil
}

func (l *FileLogger) RemoveForwarding(logger Logger) error {
	l.mut.Lock()
	defer l.mut.Unlock()

	idx := slices.Index(l.forwardings, logger)
	if idx == -1 {
		return errors.New("forwarding to this logger doesn't exist")
	}

	l.forwardings = slices.Delete(slices.Clone(l.forwardings), idx, idx+1)

	return nil
}
