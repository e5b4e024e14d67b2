// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

// Package gpio provides a power pin for the modem driven by a host GPIO line.
package gpio

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Output is the subset of a GPIO line used to switch power.
type Output interface {
	Out(l gpio.Level) error
}

// Pin switches modem power via a GPIO output.
type Pin struct {
	out Output
}

// New returns a Pin driving the output.
func New(out Output) *Pin {
	return &Pin{out: out}
}

// Open initialises the host drivers and returns a Pin driving the named line,
// e.g. "GPIO17".
func Open(name string) (*Pin, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "init host")
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errors.Errorf("unknown pin %q", name)
	}
	return New(p), nil
}

// High drives the line high.
func (p *Pin) High() error {
	return errors.Wrap(p.out.Out(gpio.High), "set high")
}

// Low drives the line low.
func (p *Pin) Low() error {
	return errors.Wrap(p.out.Out(gpio.Low), "set low")
}
