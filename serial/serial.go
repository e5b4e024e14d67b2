// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// Package serial provides a serial port which can be reconfigured while in
// use, as required to autodetect the baud rate of a modem.
package serial

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/tarm/serial"
)

// Port is a serial port.
//
// Changes to the line settings close and reopen the underlying port.
type Port struct {
	cfg Config
	p   *serial.Port
}

// Config contains the settings of a serial port.
type Config struct {
	port        string
	baud        int
	readTimeout time.Duration
}

// Option modifies the configuration of a Port.
type Option func(*Config)

// New creates a serial port.
//
// This is currently a simple wrapper around tarm serial.
func New(options ...Option) (*Port, error) {
	cfg := defaultConfig
	for _, option := range options {
		option(&cfg)
	}
	p := &Port{cfg: cfg}
	if err := p.open(); err != nil {
		return nil, err
	}
	return p, nil
}

// WithPort sets the path of the serial device.
func WithPort(port string) Option {
	return func(c *Config) {
		c.port = port
	}
}

// WithBaud sets the initial baud rate of the port.
func WithBaud(baud int) Option {
	return func(c *Config) {
		c.baud = baud
	}
}

// WithReadTimeout sets the initial read timeout of the port.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.readTimeout = d
	}
}

func (p *Port) open() error {
	sp, err := serial.OpenPort(&serial.Config{
		Name:        p.cfg.port,
		Baud:        p.cfg.baud,
		ReadTimeout: p.cfg.readTimeout,
	})
	if err != nil {
		return errors.Wrapf(err, "open %s at %d", p.cfg.port, p.cfg.baud)
	}
	p.p = sp
	return nil
}

func (p *Port) reopen() error {
	if p.p != nil {
		p.p.Close()
		p.p = nil
	}
	return p.open()
}

// Read reads the data available from the port, waiting up to the read
// timeout for data to arrive.
//
// A read that times out returns no data and a nil error.
func (p *Port) Read(b []byte) (int, error) {
	if p.p == nil {
		return 0, ErrClosed
	}
	n, err := p.p.Read(b)
	if err == io.EOF {
		err = nil
	}
	return n, err
}

func (p *Port) Write(b []byte) (int, error) {
	if p.p == nil {
		return 0, ErrClosed
	}
	return p.p.Write(b)
}

// Flush discards any data pending on the port.
func (p *Port) Flush() error {
	if p.p == nil {
		return ErrClosed
	}
	return p.p.Flush()
}

// SetReadTimeout changes the read timeout of the port.
func (p *Port) SetReadTimeout(d time.Duration) error {
	if d == p.cfg.readTimeout && p.p != nil {
		return nil
	}
	p.cfg.readTimeout = d
	return p.reopen()
}

// SetBaud reopens the port at the baud rate.
func (p *Port) SetBaud(baud int) error {
	p.cfg.baud = baud
	return p.reopen()
}

// Baud returns the current baud rate of the port.
func (p *Port) Baud() int {
	return p.cfg.baud
}

// Close closes the port.
func (p *Port) Close() error {
	if p.p == nil {
		return nil
	}
	err := p.p.Close()
	p.p = nil
	return err
}

// ErrClosed indicates the port has been closed.
var ErrClosed = errors.New("port closed")
