// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

// Package trace provides a decorator for a modem device that logs all reads,
// writes and changes to the line settings.
package trace

import (
	"io"
	"log"
	"os"
	"time"
)

// Device is the modem device being traced.
type Device interface {
	io.ReadWriter
	Flush() error
	SetReadTimeout(d time.Duration) error
	SetBaud(baud int) error
}

// Trace is a trace log on a Device.
//
// All reads and writes are written to the logger.
type Trace struct {
	d    Device
	l    Logger
	wfmt string
	rfmt string
}

// Logger defines the interface used to log trace messages.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Option modifies a Trace object created by New.
type Option func(*Trace)

// New creates a new trace on the Device.
func New(d Device, options ...Option) *Trace {
	t := &Trace{
		d:    d,
		wfmt: "w: %s",
		rfmt: "r: %s",
	}
	for _, option := range options {
		option(t)
	}
	if t.l == nil {
		t.l = log.New(os.Stdout, "", log.LstdFlags)
	}
	return t
}

// WithReadFormat sets the format used for read logs.
func WithReadFormat(format string) Option {
	return func(t *Trace) {
		t.rfmt = format
	}
}

// WithWriteFormat sets the format used for write logs.
func WithWriteFormat(format string) Option {
	return func(t *Trace) {
		t.wfmt = format
	}
}

// WithLogger specifies the logger to be used to log trace messages.
//
// By default traces are logged to Stdout.
func WithLogger(l Logger) Option {
	return func(t *Trace) {
		t.l = l
	}
}

func (t *Trace) Read(p []byte) (n int, err error) {
	n, err = t.d.Read(p)
	if n > 0 {
		t.l.Printf(t.rfmt, p[:n])
	}
	return n, err
}

func (t *Trace) Write(p []byte) (n int, err error) {
	n, err = t.d.Write(p)
	if n > 0 {
		t.l.Printf(t.wfmt, p[:n])
	}
	return n, err
}

// Flush discards pending input on the underlying device.
func (t *Trace) Flush() error {
	t.l.Printf("flush")
	return t.d.Flush()
}

// SetReadTimeout sets the read timeout of the underlying device.
func (t *Trace) SetReadTimeout(d time.Duration) error {
	t.l.Printf("read timeout: %v", d)
	return t.d.SetReadTimeout(d)
}

// SetBaud reinitializes the underlying device at the baud rate.
func (t *Trace) SetBaud(baud int) error {
	t.l.Printf("baud: %d", baud)
	return t.d.SetBaud(baud)
}
