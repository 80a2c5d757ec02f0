package logger

type logHandler = func(entry *LogEntry)

// Designed to be used by worker pool
type logTask struct {
	entry   *LogEntry
	handler logHandler
}

func (t logTask) Process() {
	t.handler(t.entry)
}

func newTaskProducer(handler logHandler) func(*LogEntry) *logTask {
	return func(entry *LogEntry) *logTask {
		return &logTask{entry, handler}
	}
}
