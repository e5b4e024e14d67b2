// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

// Package at provides a low level driver for AT modems.
//
// Commands are written to the modem and the reply is accumulated until it
// contains one of two expected tokens, or until the command times out.
package at

import (
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// AT represents a modem that can be managed using AT commands.
//
// The AT is not safe for concurrent use. Each command is a self contained
// exchange with the modem and no state is held between commands.
type AT struct {
	// the transport wrapping the underlying modem
	t *Transport

	// called on each pass of the wait loop
	yield func()

	// read timeout applied to the device
	readTimeout time.Duration

	l Logger
}

// Logger defines the interface used to log the progress of commands.
type Logger interface {
	Printf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// Option is a construction option for an AT.
type Option func(*AT)

// New creates a new AT modem on the device.
func New(d Device, options ...Option) *AT {
	a := &AT{
		t:           NewTransport(d),
		yield:       runtime.Gosched,
		readTimeout: 100 * time.Millisecond,
		l:           nopLogger{},
	}
	for _, option := range options {
		option(a)
	}
	if err := a.t.ConfigureTimeout(a.readTimeout); err != nil {
		a.l.Printf("Setting read timeout failed: %v", err)
	}
	return a
}

// WithLogger specifies the logger used to trace commands.
//
// By default nothing is logged.
func WithLogger(l Logger) Option {
	return func(a *AT) {
		a.l = l
	}
}

// WithYield sets the function called on each pass of the wait loop to give
// other tasks a chance to run.
//
// The default is runtime.Gosched.
func WithYield(y func()) Option {
	return func(a *AT) {
		a.yield = y
	}
}

// WithReadTimeout sets the read timeout of the device.
//
// The default is 100msec.
func WithReadTimeout(d time.Duration) Option {
	return func(a *AT) {
		a.readTimeout = d
	}
}

// Transport returns the transport used to communicate with the modem.
func (a *AT) Transport() *Transport {
	return a.t
}

// Logger returns the logger used to trace commands.
func (a *AT) Logger() Logger {
	return a.l
}

// Command issues the command to the modem and waits for a reply containing
// either token.
//
// The command must include the AT prefix, but not the trailing <CR> which is
// added automatically. An empty token never matches.
//
// The command is issued up to attempts times, stopping on the first OK.
// The status and reply of the last attempt are returned.
func (a *AT) Command(cmd, tok1, tok2 string, timeout time.Duration, attempts int) (Status, string) {
	status := NotOK
	reply := ""
	// get rid of any buffered output
	if err := a.t.Flush(); err != nil {
		a.l.Printf("Flush failed: %v", err)
	}
	for count := 0; count < attempts && status != OK; count++ {
		a.l.Printf("Issuing command: %s", cmd)
		if err := a.t.WriteString(cmd + "\r"); err != nil {
			a.l.Printf("Write failed: %v", err)
			status, reply = NotOK, ""
			continue
		}
		status, reply = a.WaitFor(tok1, tok2, timeout)
	}
	return status, reply
}

// WaitFor accumulates the text received from the modem until it contains
// either token or the timeout expires.
//
// The accumulated text is returned along with the status.
func (a *AT) WaitFor(tok1, tok2 string, timeout time.Duration) (Status, string) {
	start := time.Now()
	var reply strings.Builder
	var elapsed time.Duration
	found := false
	for {
		text, err := a.t.AvailableText()
		reply.WriteString(text)
		a.yield()
		found = contains(reply.String(), tok1) || contains(reply.String(), tok2)
		elapsed = time.Since(start)
		if found || elapsed >= timeout {
			break
		}
		if err != nil {
			a.l.Printf("Read failed: %v", err)
			break
		}
	}
	r := reply.String()
	if r != "" {
		a.l.Printf("Reply in %d ms: %s", elapsed.Milliseconds(), r)
	}
	switch {
	case elapsed >= timeout:
		a.l.Printf("Timed out.")
		return Timeout, r
	case found:
		a.l.Printf("Reply OK.")
		return OK, r
	default:
		a.l.Printf("Reply NOT OK.")
		return NotOK, r
	}
}

func contains(s, tok string) bool {
	return tok != "" && strings.Contains(s, tok)
}

// Status is the outcome of a command.
type Status int

const (
	// OK indicates one of the expected tokens was received.
	OK Status = iota

	// NotOK indicates the reply was unexpected, or the modem stopped
	// responding before an expected token was received.
	NotOK

	// Timeout indicates no expected token was received within the timeout.
	Timeout

	// Failure indicates the modem is in a state that requires it to be power
	// cycled.
	Failure
)

var statusNames = map[Status]string{
	OK:      "OK",
	NotOK:   "NOT OK",
	Timeout: "timeout",
	Failure: "failure",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "unknown"
}

// Err returns the error corresponding to the status, or nil for OK.
func (s Status) Err() error {
	switch s {
	case OK:
		return nil
	case Timeout:
		return ErrTimeout
	case Failure:
		return ErrFailure
	default:
		return ErrNotOK
	}
}

var (
	// ErrNotOK indicates the modem returned an unexpected reply.
	ErrNotOK = errors.New("not ok")

	// ErrTimeout indicates the modem did not reply in time.
	ErrTimeout = errors.New("timeout")

	// ErrFailure indicates the modem must be power cycled before it can be
	// used.
	ErrFailure = errors.New("modem failure")
)
