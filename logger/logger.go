// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package logger is the logging seam for the namenode client. The default
// logger is logrus-backed; embedders can swap it with SetLogger.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the printf-style logging contract used across the module.
type Logger interface {
	Trace(message string, args ...interface{})
	Debug(message string, args ...interface{})
	Info(message string, args ...interface{})
	Warn(message string, args ...interface{})
	Error(message string, args ...interface{})
}

// Log is the package-wide logger. Never nil.
var Log Logger = newDefaultLogger(logrus.InfoLevel)

// SetLogger replaces the package-wide logger. Passing nil restores the
// default.
func SetLogger(l Logger) {
	if l == nil {
		Log = newDefaultLogger(logrus.InfoLevel)
		return
	}
	Log = l
}

// SetLevel adjusts the default logger's level. It has no effect when a
// custom logger is installed.
func SetLevel(level logrus.Level) {
	if l, ok := Log.(*defaultLogger); ok {
		l.log.SetLevel(level)
	}
}

type defaultLogger struct {
	log *logrus.Logger
}

func newDefaultLogger(level logrus.Level) *defaultLogger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &defaultLogger{log: log}
}

func (d *defaultLogger) Trace(message string, args ...interface{}) {
	d.log.Tracef(message, args...)
}

func (d *defaultLogger) Debug(message string, args ...interface{}) {
	d.log.Debugf(message, args...)
}

func (d *defaultLogger) Info(message string, args ...interface{}) {
	d.log.Infof(message, args...)
}

func (d *defaultLogger) Warn(message string, args ...interface{}) {
	d.log.Warnf(message, args...)
}

func (d *defaultLogger) Error(message string, args ...interface{}) {
	d.log.Errorf(message, args...)
}
