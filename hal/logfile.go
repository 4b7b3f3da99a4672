package hal

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogFileMax is the size at which the log file is rotated.
const LogFileMax = 10 << 20

// fileLogger appends timestamped lines to a file and rotates it to path.1
// once it grows past max bytes.
type fileLogger struct {
	mu   sync.Mutex
	path string
	max  int64
	f    *os.File
	size int64
	now  func() time.Time
}

func openFileLogger(path string, max int64) (*fileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat log: %w", err)
	}
	return &fileLogger{path: path, max: max, f: f, size: st.Size(), now: time.Now}, nil
}

func (l *fileLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return
	}
	n, err := fmt.Fprintf(l.f, "%s %s\n", l.now().Format("15:04:05.000"), s)
	l.size += int64(n)
	if err == nil && l.max > 0 && l.size >= l.max {
		l.rotate()
	}
}

func (l *fileLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

// rotate moves the file to path.1 and starts a new one. When the rename
// fails it keeps appending to the current file.
func (l *fileLogger) rotate() {
	l.f.Close()
	l.f = nil
	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if err := os.Rename(l.path, l.path+".1"); err != nil {
		flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(l.path, flag, 0o644)
	if err != nil {
		return
	}
	l.f = f
	l.size = 0
	if flag&os.O_APPEND != 0 {
		if st, err := f.Stat(); err == nil {
			l.size = st.Size()
		}
	}
}

func (l *fileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}
