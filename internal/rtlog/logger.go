// Package rtlog is a small thread-safe, leveled logger with periodic
// reporters whose interval backs off exponentially each time they run.
// It exists for the bench harness in
// cmd/rtreebench: the rtree and geom packages never log anything themselves.
package rtlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Log message importance, least important first; a lower number is more
// important.
const (
	Debug   int = 9 // temporary or possibly interesting
	Info    int = 7 // interesting
	Warning int = 5 // temporary or client error
	Error   int = 3 // permanent degradation
	Fatal   int = 1 // irrecoverable error
)

// fatalExitCode is the code Logger aborts the process with after a
// Fatal-level message.
const fatalExitCode int = 3

// Logger is a utility for thread-safe and periodic logging.
// Use Log() or one of its level wrappers for things caught as they happen,
// and AddPeriodic for recurring statistics. Use Compose to make sure a
// multi-statement message gets written as one.
// Should not be copied or moved once created, as it embeds mutexes.
type Logger struct {
	writeTo   io.WriteCloser
	writeLock sync.Mutex
	Threshold int
	p         periodic
}

// NewLogger creates a Logger that writes to writeTo, dropping any message
// below level in importance (numerically above level is less important).
func NewLogger(writeTo io.WriteCloser, level int) *Logger {
	l := &Logger{
		writeTo:   writeTo,
		Threshold: level,
		p:         newPeriodic(),
	}
	go periodicRunner(l)
	return l
}

// Close stops the periodic runner and closes the underlying writer.
func (l *Logger) Close() {
	l.p.Close()
	l.writeLock.Lock()
	defer l.writeLock.Unlock()
	if l.writeTo != nil {
		_ = l.writeTo.Close()
		l.writeTo = nil
	}
}

func (l *Logger) prefixMessage(level int) {
	if l.Threshold < Debug {
		fmt.Fprint(l.writeTo, time.Now().Format("2006-01-02 15:04:05: "))
	}
	switch level {
	case Warning:
		fmt.Fprint(l.writeTo, "WARNING: ")
	case Error:
		fmt.Fprint(l.writeTo, "ERROR: ")
	case Fatal:
		fmt.Fprint(l.writeTo, "FATAL: ")
	}
}

// Compose holds the write lock across multiple writes so a multi-part
// message can't be interleaved with another goroutine's log line.
func (l *Logger) Compose(level int) Composer {
	c := Composer{level: level}
	if level <= l.Threshold {
		c.writeTo = l.writeTo
		c.heldLock = &l.writeLock
		l.writeLock.Lock()
		l.prefixMessage(level)
	}
	return c
}

// Log writes the message if it passes the logger's importance threshold.
func (l *Logger) Log(level int, format string, args ...interface{}) {
	if level > l.Threshold {
		return
	}
	l.writeLock.Lock()
	defer l.writeLock.Unlock()
	l.prefixMessage(level)
	if len(args) == 0 {
		fmt.Fprint(l.writeTo, format)
	} else {
		fmt.Fprintf(l.writeTo, format, args...)
	}
	fmt.Fprintln(l.writeTo)
	if level == Fatal {
		os.Exit(fatalExitCode)
	}
}

func (l *Logger) Debugf(format string, args ...interface{})   { l.Log(Debug, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})    { l.Log(Info, format, args...) }
func (l *Logger) Warningf(format string, args ...interface{}) { l.Log(Warning, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{})   { l.Log(Error, format, args...) }
func (l *Logger) Fatalf(format string, args ...interface{})   { l.Log(Fatal, format, args...) }

// Composer lets a caller split one logical message across multiple writes.
// End it by calling Close or Finish.
type Composer struct {
	level    int
	writeTo  io.Writer
	heldLock *sync.Mutex
}

// Write writes formatted text without a trailing newline.
func (c *Composer) Write(format string, args ...interface{}) {
	if c.writeTo == nil {
		return
	}
	if len(args) == 0 {
		fmt.Fprint(c.writeTo, format)
	} else {
		fmt.Fprintf(c.writeTo, format, args...)
	}
}

// Writeln writes formatted text plus a newline.
func (c *Composer) Writeln(format string, args ...interface{}) {
	c.Write(format, args...)
	if c.writeTo != nil {
		fmt.Fprintln(c.writeTo)
	}
}

// Finish writes a final line and closes the composer.
func (c *Composer) Finish(format string, args ...interface{}) {
	c.Write(format, args...)
	c.Close()
}

// Close releases the logger's write lock. Safe to call more than once.
func (c *Composer) Close() {
	if c.writeTo == nil {
		return
	}
	fmt.Fprintln(c.writeTo)
	c.heldLock.Unlock()
	if c.level == Fatal {
		os.Exit(fatalExitCode)
	}
	c.writeTo = nil
}
