// Package log provides the logging interface used throughout the
// emulator, backed by logrus.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Logger is the logging interface accepted by the emulator
// components. *logrus.Logger satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// New returns a logrus logger writing to stdout. Colours are only
// used when stdout is a terminal.
func New() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    !term.IsTerminal(int(os.Stdout.Fd())),
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}
