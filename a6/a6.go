// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

// Package a6 provides a driver for A6 GSM/GPRS modems.
//
// The driver issues AT commands through the at package and parses the
// replies. It supports baud rate autodetection, bringing up the modem,
// power cycling it via an external switch, calls, SMS and audio settings.
package a6

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/warthog618/a6/at"
)

const (
	// CmdTimeout is the default time allowed for the modem to reply to a
	// command.
	CmdTimeout = 2 * time.Second

	// SMSTimeout is the default time allowed for the modem to accept an SMS
	// for delivery.
	SMSTimeout = 10 * time.Second
)

// A6 decorates the AT modem with A6 specific functionality.
//
// Like the underlying AT, an A6 is not safe for concurrent use.
type A6 struct {
	*at.AT
	pin        Pin
	sleep      func(time.Duration)
	timeout    time.Duration
	smsTimeout time.Duration
	storage    string
	atOptions  []at.Option
}

// Option is a construction option for an A6.
type Option func(*A6)

// New creates a new A6 modem on the device.
func New(d at.Device, options ...Option) *A6 {
	a := &A6{
		sleep:      time.Sleep,
		timeout:    CmdTimeout,
		smsTimeout: SMSTimeout,
		storage:    "ME",
	}
	for _, option := range options {
		option(a)
	}
	a.AT = at.New(d, a.atOptions...)
	return a
}

// WithATOptions passes options through to the underlying AT.
func WithATOptions(options ...at.Option) Option {
	return func(a *A6) {
		a.atOptions = append(a.atOptions, options...)
	}
}

// WithLogger specifies the logger used to trace the driver and its commands.
func WithLogger(l at.Logger) Option {
	return WithATOptions(at.WithLogger(l))
}

// WithPowerPin specifies the pin switching power to the modem.
func WithPowerPin(p Pin) Option {
	return func(a *A6) {
		a.pin = p
	}
}

// WithSleep replaces the function used to wait for the modem to settle.
//
// The default is time.Sleep.
func WithSleep(s func(time.Duration)) Option {
	return func(a *A6) {
		a.sleep = s
	}
}

// WithTimeout sets the time allowed for the modem to reply to a command.
//
// The default is CmdTimeout.
func WithTimeout(d time.Duration) Option {
	return func(a *A6) {
		a.timeout = d
	}
}

// WithSMSTimeout sets the time allowed for the modem to accept an SMS.
//
// The default is SMSTimeout.
func WithSMSTimeout(d time.Duration) Option {
	return func(a *A6) {
		a.smsTimeout = d
	}
}

// WithSMSStorage sets the SMS storage selected by Begin.
//
// The default is "ME", the module memory. Modems that fail to select that
// may work with "SM", the SIM.
func WithSMSStorage(mem string) Option {
	return func(a *A6) {
		a.storage = mem
	}
}

// Begin brings up the modem.
//
// The link is switched to the baud rate, then the modem is reset to factory
// defaults and configured for SMS in text mode.
//
// Returns at.ErrNotOK if the link could not be established, and
// at.ErrFailure if the modem must be power cycled before trying again.
func (a *A6) Begin(baud int) error {
	if err := a.Transport().Flush(); err != nil {
		a.Logger().Printf("Flush failed: %v", err)
	}
	if err := a.SetRate(baud); err != nil {
		return at.ErrNotOK
	}
	// Factory reset.
	a.command("AT&F", "OK", "", 2)
	// Echo off.
	a.command("ATE0", "OK", "", 2)
	// Switch audio to headset.
	a.EnableSpeaker(0)
	// Set caller ID on.
	a.command("AT+CLIP=1", "OK", "", 2)
	// Set SMS to text mode.
	a.command("AT+CMGF=1", "OK", "", 2)
	// Turn SMS indicators off.
	a.command("AT+CNMI=1,0", "OK", "", 2)
	// This sometimes fails, in which case the modem needs to be rebooted.
	cmd := fmt.Sprintf("AT+CPMS=%s,%s,%s", a.storage, a.storage, a.storage)
	if err := a.command(cmd, "OK", "", 2); err != nil {
		return at.ErrFailure
	}
	a.SetSMSCharset("UCS2")
	return nil
}

// BlockUntilReady repeatedly attempts to Begin until it succeeds.
//
// Returns at.ErrFailure immediately if the modem needs to be power cycled.
func (a *A6) BlockUntilReady(baud int) error {
	for {
		err := a.Begin(baud)
		if err == nil {
			return nil
		}
		if errors.Is(err, at.ErrFailure) {
			return err
		}
		a.sleep(time.Second)
		a.Logger().Printf("Waiting for module to be ready...")
	}
}

// command issues a command with the modem's timeout.
func (a *A6) command(cmd, tok1, tok2 string, attempts int) error {
	s, _ := a.Command(cmd, tok1, tok2, a.timeout, attempts)
	return s.Err()
}
