/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package nlog

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the only logging contract the rest of the application sees.
type Logger interface {
	Logf(format string, v ...any)
}

type subsystemLogger struct {
	name   string
	logger *AppLogger
}

func (s *subsystemLogger) Logf(format string, v ...any) {
	s.logger.Logf(s.name, format, v...)
}

// Options configures an AppLogger.
type Options struct {
	Enabled bool
	Level   string // logrus level name, "info" when empty
	JSON    bool
	File    string // appended to when set, stderr otherwise
}

// AppLogger fans subsystem log lines into a single logrus logger, tagging
// each line with the subsystem it came from.
type AppLogger struct {
	inner *logrus.Logger
	file  *os.File

	lock    sync.RWMutex
	entries map[string]*logrus.Entry
	enabled bool
	level   logrus.Level
}

func NewAppLogger(opts Options) (*AppLogger, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	inner := logrus.New()
	inner.SetLevel(level)
	if opts.JSON {
		inner.SetFormatter(&logrus.JSONFormatter{})
	} else {
		inner.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	a := &AppLogger{
		inner:   inner,
		entries: make(map[string]*logrus.Entry),
		level:   level,
	}

	inner.SetOutput(os.Stderr)
	if opts.File != "" {
		file, err := os.OpenFile(opts.File, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
		if err != nil {
			return nil, err
		}
		a.file = file
		inner.SetOutput(file)
	}

	if opts.Enabled {
		a.EnableLogging()
	} else {
		a.DisableLogging()
	}
	return a, nil
}

// SetOutput redirects every subsystem, mostly for tests.
func (a *AppLogger) SetOutput(w io.Writer) {
	a.inner.SetOutput(w)
}

func (a *AppLogger) RegisterSubsystem(name string) Logger {
	a.lock.Lock()
	defer a.lock.Unlock()

	if _, ok := a.entries[name]; !ok {
		a.entries[name] = a.inner.WithField("subsystem", name)
	}
	return &subsystemLogger{name, a}
}

func (a *AppLogger) GetSubsystemLogger(name string) (Logger, error) {
	a.lock.RLock()
	defer a.lock.RUnlock()

	if _, ok := a.entries[name]; !ok {
		return nil, fmt.Errorf("The subsystem %q was not registered", name)
	}
	return &subsystemLogger{name, a}, nil
}

func (a *AppLogger) EnableLogging() {
	a.lock.Lock()
	a.enabled = true
	a.inner.SetLevel(a.level)
	a.lock.Unlock()
}

func (a *AppLogger) DisableLogging() {
	a.lock.Lock()
	a.enabled = false
	a.inner.SetLevel(logrus.PanicLevel)
	a.lock.Unlock()
}

func (a *AppLogger) Enabled() bool {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.enabled
}

func (a *AppLogger) Logf(subsystem, format string, v ...any) {
	a.lock.RLock()
	entry, ok := a.entries[subsystem]
	a.lock.RUnlock()

	if !ok {
		entry = a.inner.WithField("subsystem", subsystem)
	}
	entry.Infof(format, v...)
}

func (a *AppLogger) CloseAll() {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.file != nil {
		a.file.Sync()
		a.file.Close()
		a.file = nil
		a.inner.SetOutput(os.Stderr)
	}
	clear(a.entries)
}

// Discard is a Logger that drops everything.
type Discard struct{}

func (Discard) Logf(string, ...any) {}
