/*
Copyright © 2026 efibootkit authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package log

import (
	"bytes"
	"io"

	logrus "github.com/sirupsen/logrus"
)

// Logger is the interface every codec, variable store backend, and the
// boot entry manager log through, so callers can plug in their own
// implementation.
type Logger interface {
	Info(...interface{})
	Warn(...interface{})
	Debug(...interface{})
	Error(...interface{})
	Fatal(...interface{})
	Trace(...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Debugf(string, ...interface{})
	Errorf(string, ...interface{})
	Fatalf(string, ...interface{})
	Tracef(string, ...interface{})
	SetLevel(level logrus.Level)
	GetLevel() logrus.Level
	SetOutput(writer io.Writer)
	SetFormatter(formatter logrus.Formatter)
}

// NewLogger returns a logrus-backed Logger writing to stderr at the
// default level.
func NewLogger() Logger {
	return logrus.New()
}

// NewNullLogger returns a Logger that discards everything, for tests
// that exercise codec/manager paths without caring about log output.
func NewNullLogger() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// NewBufferLogger returns a Logger that writes into b, for tests that
// assert on emitted log lines.
func NewBufferLogger(b *bytes.Buffer) Logger {
	l := logrus.New()
	l.SetOutput(b)
	return l
}

// IsDebugEnabled reports whether l is configured at Debug level or
// finer (Trace).
func IsDebugEnabled(l Logger) bool {
	return l.GetLevel() >= logrus.DebugLevel
}
